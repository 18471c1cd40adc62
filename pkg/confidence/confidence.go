// Package confidence turns heterogeneous provenance signals for a candidate
// link into a single score and a lifecycle state, so downstream code has one
// decision (show it, hold it for review, drop it) instead of re-deriving
// policy everywhere.
package confidence

import "github.com/fanstage-dev/linkscore/pkg/link"

// State is the lifecycle gate derived from a score.
type State string

// Lifecycle states, in increasing order of trust.
const (
	StateRejected State = "rejected"
	StatePending  State = "pending"
	StateActive   State = "active"
)

// Input is the per-evaluation value object. Optional fields that are absent
// simply contribute nothing to the score.
type Input struct {
	SourceType         link.SourceType
	Signals            []link.Signal
	Sources            []string
	UsernameNormalized string
	URL                string
}

// Result is the scorer output. The caller decides what to do with it,
// typically writing it onto a stored link row.
type Result struct {
	Confidence float64
	State      State
}

// Scoring policy. Manual submissions reflect a deliberate user action and
// start above the activation threshold; ingested candidates start low and
// must earn activation through corroboration.
const (
	manualBase   = 0.80
	ingestedBase = 0.15

	// An unrecognized signal tag still counts for something, but not much.
	defaultSignalWeight = 0.05

	// Bonus when the same candidate was seen on two or more distinct sources.
	multiSourceBonus = 0.10

	// Bonus when a canonical handle could be extracted for the candidate.
	usernameBonus = 0.05

	rejectedBelow = 0.40
	activeAt      = 0.70
)

// signalWeights maps each corroboration signal to its increment. Keeping the
// mapping in one table keeps the activation-threshold behavior easy to verify
// and extend. An aggregator listing alone must never cross activation;
// three corroborating signals together must.
var signalWeights = map[link.Signal]float64{
	link.SignalAggregatorLink:   0.10,
	link.SignalHandleSimilarity: 0.25,
	link.SignalSpotifyPresence:  0.25,
	link.SignalUsernameMatch:    0.25,
}

// Score computes the confidence and lifecycle state for a candidate link.
// It is pure and total: no I/O, no time-dependence, and it never fails for
// missing optional fields.
func Score(in Input) Result {
	score := ingestedBase
	if in.SourceType == link.SourceManual {
		score = manualBase
	}

	if in.SourceType == link.SourceIngested {
		seen := make(map[link.Signal]bool, len(in.Signals))
		for _, sig := range in.Signals {
			if seen[sig] {
				continue
			}
			seen[sig] = true
			weight, ok := signalWeights[sig]
			if !ok {
				weight = defaultSignalWeight
			}
			score += weight
		}

		if distinctCount(in.Sources) >= 2 {
			score += multiSourceBonus
		}
		if in.UsernameNormalized != "" {
			score += usernameBonus
		}
	}

	if score > 1.0 {
		score = 1.0
	}

	return Result{Confidence: score, State: stateFor(score)}
}

// stateFor maps a final score to its lifecycle state.
func stateFor(score float64) State {
	switch {
	case score >= activeAt:
		return StateActive
	case score >= rejectedBelow:
		return StatePending
	default:
		return StateRejected
	}
}

func distinctCount(tags []string) int {
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag != "" {
			seen[tag] = true
		}
	}
	return len(seen)
}
