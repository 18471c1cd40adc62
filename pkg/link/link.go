// Package link defines the common types for candidate social links.
package link

import "errors"

// Common errors returned by ingestion and fetch layers.
var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrNoCookies       = errors.New("no cookies available")
	ErrProfileNotFound = errors.New("profile not found")
	ErrRateLimited     = errors.New("rate limited")
)

// SourceType describes how a candidate link entered the system.
type SourceType string

// Source types.
const (
	// SourceManual means the profile owner entered the link themselves.
	SourceManual SourceType = "manual"
	// SourceIngested means the link was scraped from a third-party page.
	SourceIngested SourceType = "ingested"
)

// Signal is a tag for one piece of corroborating evidence that a candidate
// link truly belongs to a profile.
type Signal string

// Known corroboration signals.
const (
	// SignalAggregatorLink means the URL was listed on a Linktree-style
	// aggregator page. Weak evidence on its own.
	SignalAggregatorLink Signal = "linktree_profile_link"
	// SignalHandleSimilarity means the link's handle resembles the
	// profile's normalized username.
	SignalHandleSimilarity Signal = "handle_similarity"
	// SignalSpotifyPresence means a Spotify profile was found alongside
	// this link, tying the page to a real artist identity.
	SignalSpotifyPresence Signal = "spotify_presence"
	// SignalUsernameMatch means the same username appears on another
	// trusted platform.
	SignalUsernameMatch Signal = "username_match"
)

// Link is a scored candidate link ready for persistence.
// The storage layer owns the row; this package never touches storage.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Link struct {
	URL            string     // Normalized absolute URL
	Platform       string     // Platform ID ("tiktok", "instagram", ...) or "unknown"
	Title          string     // Suggested display title
	Handle         string     // Extracted handle, without sigil
	SourceType     SourceType // Provenance class
	Sources        []string   // Provenance tags (which pages produced this candidate)
	Signals        []Signal   // Corroboration signals observed
	Confidence     float64    // Score in [0,1]
	State          string     // "active", "pending", or "rejected"
	SourceProfile  string     // URL of the page this candidate was scraped from
	SourceUsername string     // Username on the source page, if known
}
