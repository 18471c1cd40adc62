package ingest

import (
	"strings"

	"github.com/fanstage-dev/linkscore/pkg/htmlutil"
	"github.com/fanstage-dev/linkscore/pkg/link"
)

// parsePage extracts the profile info and raw (unscored) candidate links
// from an aggregator page. Linktree-style pages embed their state as JSON in
// a __NEXT_DATA__ script tag; pages without it fall back to anchor and meta
// tag harvesting.
func parsePage(content, pageURL, username, aggregatorID string) *Page {
	page := &Page{
		URL:        pageURL,
		Aggregator: aggregatorID,
		Username:   username,
	}

	if data := htmlutil.EmbeddedJSON(content, "__NEXT_DATA__"); data != nil {
		parseNextData(page, data)
	}

	// Fallbacks for pages without embedded JSON, or with partial data.
	if len(page.Candidates) == 0 {
		for _, u := range htmlutil.Links(content) {
			page.Candidates = append(page.Candidates, link.Link{URL: u})
		}
	}
	if page.Name == "" {
		page.Name = htmlutil.MetaContent(content, "og:title")
		// Aggregators suffix their own branding onto the title.
		if idx := strings.Index(page.Name, " | "); idx > 0 {
			page.Name = strings.TrimSpace(page.Name[:idx])
		}
		page.Name = strings.TrimPrefix(page.Name, "@")
	}
	if page.Bio == "" {
		page.Bio = htmlutil.MetaContent(content, "og:description")
	}

	return page
}

func parseNextData(page *Page, data map[string]any) {
	props, ok := data["props"].(map[string]any)
	if !ok {
		return
	}
	pageProps, ok := props["pageProps"].(map[string]any)
	if !ok {
		return
	}

	if account, ok := pageProps["account"].(map[string]any); ok {
		if username, ok := account["username"].(string); ok && username != "" {
			page.Username = username
		}
		if title, ok := account["profileTitle"].(string); ok && title != "" {
			page.Name = title
		} else if title, ok := account["pageTitle"].(string); ok && title != "" {
			page.Name = strings.TrimPrefix(title, "@")
		}
		if desc, ok := account["description"].(string); ok {
			page.Bio = desc
		}
	}

	appendJSONLinks(page, pageProps, "links")
	appendJSONLinks(page, pageProps, "socialLinks")
}

// appendJSONLinks harvests url/title pairs from a pageProps list field.
func appendJSONLinks(page *Page, pageProps map[string]any, field string) {
	entries, ok := pageProps[field].([]any)
	if !ok {
		return
	}

	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		u, ok := m["url"].(string)
		if !ok || u == "" {
			continue
		}
		u = htmlutil.CleanURL(u)
		if strings.HasPrefix(u, "mailto:") {
			continue
		}
		title, _ := m["title"].(string)
		page.Candidates = append(page.Candidates, link.Link{URL: u, Title: title})
	}
}
