// Package linkscore normalizes, classifies, and scores social links for
// creator profiles.
//
// Basic usage:
//
//	result := linkscore.Detect("tiktokcom/artistname")
//	fmt.Println(result.Platform.Name, result.IsValid, result.SuggestedTitle)
//
// Scoring a manually entered link:
//
//	l := linkscore.ManualLink("https://instagram.com/artistname")
//	fmt.Println(l.State, l.Confidence) // "active", >= 0.75
//
// Ingesting an aggregator page:
//
//	page, err := linkscore.Ingest(ctx, "https://linktr.ee/artistname")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range page.Candidates {
//	    fmt.Println(c.URL, c.State, c.Confidence)
//	}
package linkscore

import (
	"context"
	"log/slog"

	"github.com/fanstage-dev/linkscore/pkg/auth"
	"github.com/fanstage-dev/linkscore/pkg/confidence"
	"github.com/fanstage-dev/linkscore/pkg/httpcache"
	"github.com/fanstage-dev/linkscore/pkg/ingest"
	"github.com/fanstage-dev/linkscore/pkg/link"
	"github.com/fanstage-dev/linkscore/pkg/platform"
)

type (
	// DetectionResult re-exports platform.Result for convenience.
	DetectionResult = platform.Result
	// Link re-exports link.Link for convenience.
	Link = link.Link
	// Page re-exports ingest.Page for convenience.
	Page = ingest.Page
	// HTTPCache re-exports httpcache.Cache for convenience.
	HTTPCache = httpcache.Cache
)

// Re-export common errors.
var (
	ErrAuthRequired    = link.ErrAuthRequired
	ErrNoCookies       = link.ErrNoCookies
	ErrProfileNotFound = link.ErrProfileNotFound
	ErrRateLimited     = link.ErrRateLimited
)

// Detect normalizes a URL or handle string and classifies it against the
// default platform registry.
func Detect(url string) platform.Result {
	return platform.Detect(url)
}

// Normalize canonicalizes a possibly-malformed URL or handle string.
func Normalize(url string) string {
	return platform.Normalize(url)
}

// ManualLink builds a scored link record for a URL the profile owner entered
// themselves. Manual submissions reflect deliberate user action, so they
// always come back active.
func ManualLink(rawURL string) link.Link {
	res := platform.Detect(rawURL)
	handle := platform.Default.Handle(rawURL)

	scored := confidence.Score(confidence.Input{
		SourceType:         link.SourceManual,
		Sources:            []string{"dashboard"},
		UsernameNormalized: handle,
		URL:                res.NormalizedURL,
	})

	return link.Link{
		URL:        res.NormalizedURL,
		Platform:   res.Platform.ID,
		Title:      res.SuggestedTitle,
		Handle:     handle,
		SourceType: link.SourceManual,
		Sources:    []string{"dashboard"},
		Confidence: scored.Confidence,
		State:      string(scored.State),
	}
}

// Option configures an Ingest call.
type Option func(*config)

type config struct {
	cache          httpcache.Cacher
	cookies        map[string]string
	logger         *slog.Logger
	browserCookies bool
}

// WithCookies sets explicit cookie values for gated pages.
func WithCookies(cookies map[string]string) Option {
	return func(c *config) { c.cookies = cookies }
}

// WithBrowserCookies enables reading cookies from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// WithHTTPCache sets the HTTP cache for responses.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Ingest scrapes an aggregator profile page and returns its scored
// candidate links.
func Ingest(ctx context.Context, url string, opts ...Option) (*ingest.Page, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	var sources auth.Chain
	if len(cfg.cookies) > 0 {
		sources = append(sources, auth.StaticSource(cfg.cookies))
	}
	sources = append(sources, auth.EnvSource{})
	if cfg.browserCookies {
		sources = append(sources, auth.NewBrowserSource(cfg.logger))
	}

	ingestOpts := []ingest.Option{
		ingest.WithLogger(cfg.logger),
		ingest.WithCookieSource(sources),
	}
	if cfg.cache != nil {
		ingestOpts = append(ingestOpts, ingest.WithHTTPCache(cfg.cache))
	}

	client, err := ingest.New(ctx, ingestOpts...)
	if err != nil {
		return nil, err
	}
	return client.Scrape(ctx, url)
}
