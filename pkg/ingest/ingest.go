// Package ingest scrapes bio-link aggregator pages (Linktree and friends)
// and turns the links listed there into scored candidates. Candidates enter
// the system untrusted: every one carries the aggregator-listing signal plus
// whatever corroboration the page itself offers, and the confidence scorer
// decides their initial lifecycle state. Nothing here persists anything;
// callers own storage.
package ingest

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fanstage-dev/linkscore/pkg/auth"
	"github.com/fanstage-dev/linkscore/pkg/confidence"
	"github.com/fanstage-dev/linkscore/pkg/httpcache"
	"github.com/fanstage-dev/linkscore/pkg/link"
	"github.com/fanstage-dev/linkscore/pkg/platform"
)

// aggregator describes one bio-link aggregator site we can scrape.
type aggregator struct {
	id      string
	domains []string
}

// Known aggregators. The id doubles as the provenance source tag on every
// candidate scraped from that site.
var aggregators = []aggregator{
	{id: "linktree", domains: []string{"linktr.ee", "linktree.com"}},
	{id: "beacons", domains: []string{"beacons.ai"}},
	{id: "lnkbio", domains: []string{"lnk.bio"}},
}

// Match returns true if the URL is a known aggregator profile URL.
func Match(urlStr string) bool {
	return aggregatorFor(urlStr) != nil
}

func aggregatorFor(urlStr string) *aggregator {
	lower := strings.ToLower(urlStr)
	for i := range aggregators {
		for _, dom := range aggregators[i].domains {
			if strings.Contains(lower, dom+"/") || strings.HasSuffix(lower, dom) {
				return &aggregators[i]
			}
		}
	}
	return nil
}

// Page is the parsed result of scraping one aggregator profile.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Page struct {
	URL        string      // Normalized page URL
	Aggregator string      // Aggregator id, e.g. "linktree"
	Username   string      // Profile handle on the aggregator
	Name       string      // Display name, if present
	Bio        string      // Profile description, if present
	Candidates []link.Link // Scored candidate links found on the page
}

// Client scrapes aggregator pages.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	cookies    auth.Source
	registry   *platform.Registry
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache    httpcache.Cacher
	logger   *slog.Logger
	cookies  auth.Source
	registry *platform.Registry
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCookieSource sets the cookie source for gated pages.
func WithCookieSource(src auth.Source) Option {
	return func(c *config) { c.cookies = src }
}

// WithRegistry sets the platform registry used for classifying candidates.
func WithRegistry(reg *platform.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// New creates an aggregator scraping client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), registry: platform.Default}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // needed for corporate proxies
			},
		},
		cache:    cfg.cache,
		logger:   cfg.logger,
		cookies:  cfg.cookies,
		registry: cfg.registry,
	}, nil
}

// Scrape fetches an aggregator profile page and returns its scored
// candidate links.
func (c *Client) Scrape(ctx context.Context, urlStr string) (*Page, error) {
	agg := aggregatorFor(urlStr)
	if agg == nil {
		return nil, fmt.Errorf("%w: not a known aggregator page: %s", link.ErrProfileNotFound, urlStr)
	}

	pageURL := c.registry.Normalize(urlStr)
	username := usernameFromURL(pageURL)
	if username == "" {
		return nil, fmt.Errorf("%w: could not extract username from %s", link.ErrProfileNotFound, urlStr)
	}

	c.logger.InfoContext(ctx, "scraping aggregator profile",
		"aggregator", agg.id, "url", pageURL, "username", username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	if c.cookies != nil {
		cookies, cErr := c.cookies.Cookies(ctx, hostOf(pageURL))
		if cErr != nil {
			return nil, cErr
		}
		for name, value := range cookies {
			req.AddCookie(&http.Cookie{Name: name, Value: value})
		}
	}

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	page := parsePage(string(body), pageURL, username, agg.id)
	c.score(page)

	c.logger.InfoContext(ctx, "scraped aggregator profile",
		"aggregator", agg.id, "username", username, "candidates", len(page.Candidates))
	return page, nil
}

// score classifies every harvested URL and assigns confidence and state.
func (c *Client) score(page *Page) {
	raw := page.Candidates

	type classified struct {
		candidate link.Link
		result    platform.Result
		handle    string
	}

	var items []classified
	seen := make(map[string]bool)
	spotifyPresent := false

	for _, cand := range raw {
		res := c.registry.Detect(cand.URL)
		if seen[res.NormalizedURL] {
			continue
		}
		seen[res.NormalizedURL] = true

		// Links pointing back at an aggregator are navigation, not
		// candidates for the profile.
		if aggregatorFor(res.NormalizedURL) != nil {
			continue
		}

		handle := c.registry.Handle(res.NormalizedURL)
		if res.Platform.ID == "spotify" {
			spotifyPresent = true
		}
		items = append(items, classified{candidate: cand, result: res, handle: handle})
	}

	scored := make([]link.Link, 0, len(items))
	for _, item := range items {
		signals := []link.Signal{link.SignalAggregatorLink}
		if handleSimilar(page.Username, item.handle) {
			signals = append(signals, link.SignalHandleSimilarity)
		}
		if spotifyPresent && item.result.Platform.ID != "spotify" {
			signals = append(signals, link.SignalSpotifyPresence)
		}

		result := confidence.Score(confidence.Input{
			SourceType:         link.SourceIngested,
			Signals:            signals,
			Sources:            []string{page.Aggregator},
			UsernameNormalized: normalizeHandle(item.handle),
			URL:                item.result.NormalizedURL,
		})

		title := item.candidate.Title
		if title == "" {
			title = item.result.SuggestedTitle
		}

		scored = append(scored, link.Link{
			URL:            item.result.NormalizedURL,
			Platform:       item.result.Platform.ID,
			Title:          title,
			Handle:         item.handle,
			SourceType:     link.SourceIngested,
			Sources:        []string{page.Aggregator},
			Signals:        signals,
			Confidence:     result.Confidence,
			State:          string(result.State),
			SourceProfile:  page.URL,
			SourceUsername: page.Username,
		})
	}
	page.Candidates = scored
}

// usernameFromURL extracts the aggregator profile handle from the URL path.
func usernameFromURL(urlStr string) string {
	rest := strings.TrimPrefix(urlStr, "https://")
	rest = strings.TrimPrefix(rest, "http://")
	rest = strings.TrimPrefix(rest, "www.")

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 2 {
		return ""
	}
	username := parts[1]
	if idx := strings.IndexAny(username, "?#"); idx >= 0 {
		username = username[:idx]
	}
	return strings.TrimPrefix(username, "@")
}

func hostOf(urlStr string) string {
	rest := strings.TrimPrefix(urlStr, "https://")
	rest = strings.TrimPrefix(rest, "http://")
	rest = strings.TrimPrefix(rest, "www.")
	if idx := strings.Index(rest, "/"); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}

// normalizeHandle canonicalizes a handle for comparison: lowercase with
// separator characters removed.
func normalizeHandle(handle string) string {
	handle = strings.ToLower(handle)
	return strings.NewReplacer(".", "", "_", "", "-", "").Replace(handle)
}

// handleSimilar reports whether two handles plausibly belong to the same
// person. Very short handles are too generic to corroborate anything.
func handleSimilar(a, b string) bool {
	na, nb := normalizeHandle(a), normalizeHandle(b)
	if len(na) < 3 || len(nb) < 3 {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
