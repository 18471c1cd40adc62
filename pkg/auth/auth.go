// Package auth provides session cookies for aggregator pages that gate
// content behind a login (e.g. Instagram bio pages). Cookies come from
// environment variables or from local browser cookie stores; a missing
// cookie source is never fatal, ingestion just falls back to an anonymous
// fetch.
package auth

import (
	"context"
	"os"
	"strings"
)

// Source yields session cookies for a domain. A nil map with a nil error
// means no cookies are available, which callers treat as "fetch anonymously".
type Source interface {
	Cookies(ctx context.Context, domain string) (map[string]string, error)
}

// EnvSource reads cookies from environment variables. The variable name is
// derived from the domain: cookies for instagram.com come from
// LINKSCORE_COOKIES_INSTAGRAM_COM, holding "name=value; name2=value2" pairs.
type EnvSource struct{}

// Cookies returns cookies for the given domain from the environment.
func (EnvSource) Cookies(_ context.Context, domain string) (map[string]string, error) {
	value := os.Getenv(EnvVarForDomain(domain))
	if value == "" {
		return nil, nil //nolint:nilnil // no env var set is not an error
	}

	cookies := make(map[string]string)
	for pair := range strings.SplitSeq(value, ";") {
		name, val, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || name == "" {
			continue
		}
		cookies[name] = val
	}
	if len(cookies) == 0 {
		return nil, nil //nolint:nilnil // malformed value is treated as absent
	}
	return cookies, nil
}

// StaticSource serves one fixed cookie set for every domain, for callers
// that already hold explicit cookie values.
type StaticSource map[string]string

// Cookies returns the static cookie set.
func (s StaticSource) Cookies(context.Context, string) (map[string]string, error) {
	if len(s) == 0 {
		return nil, nil //nolint:nilnil // empty static source means no cookies
	}
	return s, nil
}

// EnvVarForDomain returns the environment variable name holding cookies for
// a domain. Useful for generating help messages.
func EnvVarForDomain(domain string) string {
	name := strings.ToUpper(domain)
	name = strings.NewReplacer(".", "_", "-", "_").Replace(name)
	return "LINKSCORE_COOKIES_" + name
}
