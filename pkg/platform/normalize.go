package platform

import "strings"

// Normalize canonicalizes a possibly-malformed URL or bare handle string.
// It repairs known dotless domain spellings ("tiktokcom/user"), prepends
// https:// when the scheme is missing, and inserts a missing handle sigil
// for platforms that always carry one (TikTok's @). Normalization is
// idempotent and never fails; unrecognized domains pass through with scheme
// insertion only.
func (r *Registry) Normalize(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return s
	}

	scheme, rest := splitScheme(s)
	host, pathq := splitHostPath(rest)
	if host == "" {
		return s
	}

	// Dot-insertion: repair a known bare-domain spelling. Host matching is
	// case-insensitive; path and query casing are left untouched.
	hostLower := strings.ToLower(host)
	www := strings.HasPrefix(hostLower, "www.")
	core := strings.TrimPrefix(hostLower, "www.")
	if canonical, ok := r.tokens[core]; ok {
		host = canonical
		if www {
			host = "www." + canonical
		}
		core = canonical
	}

	if scheme == "" {
		scheme = "https://"
	}

	// Sigil insertion for platforms whose profile paths always carry one.
	for _, d := range r.defs {
		if d.InsertSigil && d.hasDomain(core) {
			pathq = insertSigil(pathq, d.Sigil)
			break
		}
	}

	return scheme + host + pathq
}

// splitScheme separates an http(s) scheme prefix from the rest of the URL.
func splitScheme(s string) (scheme, rest string) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"):
		return s[:len("https://")], s[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		return s[:len("http://")], s[len("http://"):]
	default:
		return "", s
	}
}

// splitHostPath separates the host from the path, query, and fragment.
func splitHostPath(rest string) (host, pathq string) {
	if idx := strings.IndexAny(rest, "/?#"); idx >= 0 {
		return rest[:idx], rest[idx:]
	}
	return rest, ""
}

// insertSigil prepends sigil to the first path segment unless it is already
// present. Idempotent: a sigiled path comes back unchanged.
func insertSigil(pathq, sigil string) string {
	if !strings.HasPrefix(pathq, "/") {
		return pathq
	}
	seg := pathq[1:]
	if idx := strings.IndexAny(seg, "/?#"); idx >= 0 {
		seg = seg[:idx]
	}
	if seg == "" || strings.HasPrefix(seg, sigil) {
		return pathq
	}
	return "/" + sigil + pathq[1:]
}

// pathSegments splits a path into its segments, dropping the query string
// and empty trailing segments.
func pathSegments(pathq string) []string {
	if idx := strings.IndexAny(pathq, "?#"); idx >= 0 {
		pathq = pathq[:idx]
	}
	pathq = strings.Trim(pathq, "/")
	if pathq == "" {
		return nil
	}
	return strings.Split(pathq, "/")
}
