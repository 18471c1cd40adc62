package auth

import (
	"context"
	"log/slog"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // Import all browser cookie stores
)

// BrowserSource reads cookies from local browser cookie stores.
type BrowserSource struct {
	logger *slog.Logger
}

// NewBrowserSource creates a new browser cookie source.
func NewBrowserSource(logger *slog.Logger) *BrowserSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserSource{logger: logger}
}

// Cookies returns valid cookies for the given domain from whichever browser
// stores kooky can detect. Read failures are logged and reported as "no
// cookies" rather than errors: a locked or encrypted store should not stop
// an ingestion run.
func (s *BrowserSource) Cookies(ctx context.Context, domain string) (map[string]string, error) {
	kookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(domain))
	if err != nil {
		s.logger.DebugContext(ctx, "failed to read browser cookies", "domain", domain, "error", err)
		return nil, nil //nolint:nilnil // failed browser read is not a fatal error
	}
	if len(kookies) == 0 {
		return nil, nil //nolint:nilnil // no browser cookies is not an error
	}

	cookies := make(map[string]string, len(kookies))
	for _, c := range kookies {
		cookies[c.Name] = c.Value
	}
	s.logger.DebugContext(ctx, "found browser cookies", "domain", domain, "count", len(cookies))
	return cookies, nil
}

// Chain tries sources in order and returns the first non-empty result.
type Chain []Source

// Cookies returns cookies from the first source that has any.
func (c Chain) Cookies(ctx context.Context, domain string) (map[string]string, error) {
	for _, src := range c {
		cookies, err := src.Cookies(ctx, domain)
		if err != nil {
			return nil, err
		}
		if len(cookies) > 0 {
			return cookies, nil
		}
	}
	return nil, nil //nolint:nilnil // exhausting all sources is not an error
}
