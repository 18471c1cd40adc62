// Package htmlutil provides the HTML processing used when harvesting
// candidate links from bio-link aggregator pages.
package htmlutil

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"sync"
)

var (
	anchorPattern = regexp.MustCompile(`(?i)<a[^>]+href=["']([^"']+)["']`)
	titlePattern  = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

	metaPatternMu    sync.Mutex
	metaPatternCache = map[string]*regexp.Regexp{}
)

// Title extracts the page title.
func Title(content string) string {
	if matches := titlePattern.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// MetaContent extracts the content attribute of a meta tag by property or
// name (e.g. "og:title", "description").
func MetaContent(content, property string) string {
	matches := metaPattern(property).FindStringSubmatch(content)
	if len(matches) < 3 {
		return ""
	}
	value := matches[1]
	if value == "" {
		value = matches[2]
	}
	return strings.TrimSpace(html.UnescapeString(value))
}

func metaPattern(property string) *regexp.Regexp {
	metaPatternMu.Lock()
	defer metaPatternMu.Unlock()

	re, ok := metaPatternCache[property]
	if !ok {
		quoted := regexp.QuoteMeta(property)
		re = regexp.MustCompile(
			`(?i)<meta[^>]+(?:property|name)=["']` + quoted + `["'][^>]+content=["']([^"']*)["']` +
				`|<meta[^>]+content=["']([^"']*)["'][^>]+(?:property|name)=["']` + quoted + `["']`)
		metaPatternCache[property] = re
	}
	return re
}

// EmbeddedJSON extracts and parses the JSON body of a script tag by element
// ID, the pattern Next.js-style pages use to embed page state
// (<script id="__NEXT_DATA__" type="application/json">...</script>).
// Returns nil when the tag is absent or the body is not valid JSON.
func EmbeddedJSON(content, scriptID string) map[string]any {
	re := regexp.MustCompile(`(?s)<script id="` + regexp.QuoteMeta(scriptID) + `"[^>]*>(.*?)</script>`)
	matches := re.FindStringSubmatch(content)
	if len(matches) < 2 {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(matches[1]), &data); err != nil {
		return nil
	}
	return data
}

// Links extracts absolute http(s) anchor URLs from HTML content, cleaned and
// deduplicated in document order.
func Links(content string) []string {
	var urls []string
	seen := make(map[string]bool)

	for _, match := range anchorPattern.FindAllStringSubmatch(content, -1) {
		u := CleanURL(match[1])
		if u == "" || seen[u] {
			continue
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}

	return urls
}

// CleanURL strips HTML entities and trailing junk characters from an
// extracted URL.
func CleanURL(u string) string {
	u = strings.TrimSpace(html.UnescapeString(u))
	u = strings.TrimRight(u, `"'>)],.`)
	return u
}
