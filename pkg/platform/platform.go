// Package platform normalizes social and payment URLs and classifies them
// against a registry of known platforms.
//
// Basic usage:
//
//	result := platform.Detect("tiktokcom/karaoke.queen")
//	fmt.Println(result.Platform.ID, result.IsValid, result.SuggestedTitle)
//
// Both Normalize and Detect are pure: no I/O, no hidden state, and identical
// input always yields identical output. The default registry is built once at
// init and never mutated afterward, so concurrent use needs no coordination.
package platform

import (
	"regexp"
	"strings"
)

// Definition describes one recognized platform. Definitions are immutable
// after registry construction.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Definition struct {
	ID      string   // Unique key, e.g. "tiktok"
	Name    string   // Display name, e.g. "TikTok"
	Domains []string // Exact hosts, matched case-insensitively with optional www. prefix
	Aliases []string // Substring fallbacks for hosts not listed in Domains

	// Sigil is the conventional handle prefix ("@" for TikTok). When set,
	// a path must carry it to be a valid profile URL, and suggested titles
	// include the sigiled handle.
	Sigil string

	// InsertSigil makes Normalize insert the missing sigil before the
	// first path segment. Only platforms where every profile URL carries
	// the sigil should set this.
	InsertSigil bool

	// SkipSegments lists path segments that precede the handle
	// (e.g. "u" for venmo.com/u/username, "channel" for YouTube).
	SkipSegments []string

	// HandleRe constrains the handle shape. Nil means the default
	// letters/digits/dot/underscore/hyphen set.
	HandleRe *regexp.Regexp
}

// Unknown is the sentinel definition returned for URLs that match no
// registry entry.
var Unknown = &Definition{ID: "unknown", Name: "Unknown"}

// Result is the outcome of classifying one URL. It has no identity beyond
// the call that produced it; callers may persist it.
type Result struct {
	Platform       *Definition // Matched definition, or Unknown
	IsValid        bool        // URL satisfies the platform's minimal path shape
	NormalizedURL  string      // Canonical absolute URL
	SuggestedTitle string      // Display string, e.g. "TikTok (@username)"
}

var defaultHandleRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// hasDomain reports whether host (lowercase, www-stripped) is one of the
// definition's exact domains.
func (d *Definition) hasDomain(host string) bool {
	for _, dom := range d.Domains {
		if host == dom {
			return true
		}
	}
	return false
}

// handleFromSegments extracts the handle from path segments and reports
// whether the path satisfies the platform's minimal shape.
func (d *Definition) handleFromSegments(segments []string) (handle string, ok bool) {
	if len(segments) == 0 || segments[0] == "" {
		return "", false
	}

	seg := segments[0]
	skipped := false
	for _, skip := range d.SkipSegments {
		if strings.EqualFold(seg, skip) {
			if len(segments) < 2 || segments[1] == "" {
				return "", false
			}
			seg = segments[1]
			skipped = true
			break
		}
	}

	// The sigil is required on the direct handle form only; prefixed forms
	// like youtube.com/channel/UC... carry no sigil.
	if d.Sigil != "" && !skipped {
		if !strings.HasPrefix(seg, d.Sigil) {
			return "", false
		}
		seg = strings.TrimPrefix(seg, d.Sigil)
	}

	if seg == "" {
		return "", false
	}

	re := d.HandleRe
	if re == nil {
		re = defaultHandleRe
	}
	if !re.MatchString(seg) {
		return "", false
	}
	return seg, true
}

// title builds the suggested display title for a detected link.
func (d *Definition) title(handle string, valid bool) string {
	if valid && d.Sigil != "" && handle != "" {
		return d.Name + " (" + d.Sigil + handle + ")"
	}
	return d.Name
}
