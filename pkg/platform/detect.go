package platform

import "strings"

// Detect normalizes input and classifies it against the registry.
// The exact-domain pass runs before the alias pass, and within each pass the
// first matching definition wins. URLs that match no entry come back with the
// Unknown sentinel and IsValid false rather than an error.
func (r *Registry) Detect(input string) Result {
	norm := r.Normalize(input)

	_, rest := splitScheme(norm)
	host, pathq := splitHostPath(rest)
	core := strings.TrimPrefix(strings.ToLower(host), "www.")

	var def *Definition
	for _, d := range r.defs {
		if d.hasDomain(core) {
			def = d
			break
		}
	}
	if def == nil {
		lower := strings.ToLower(norm)
		for _, d := range r.defs {
			for _, alias := range d.Aliases {
				if strings.Contains(lower, alias) {
					def = d
					break
				}
			}
			if def != nil {
				break
			}
		}
	}
	if def == nil {
		return Result{Platform: Unknown, NormalizedURL: norm}
	}

	handle, valid := def.handleFromSegments(pathSegments(pathq))
	return Result{
		Platform:       def,
		IsValid:        valid,
		NormalizedURL:  norm,
		SuggestedTitle: def.title(handle, valid),
	}
}

// Handle extracts the handle from an already-detected URL, without the sigil.
// Returns "" when the URL does not satisfy the platform's path shape.
func (r *Registry) Handle(input string) string {
	res := r.Detect(input)
	if !res.IsValid {
		return ""
	}
	_, rest := splitScheme(res.NormalizedURL)
	_, pathq := splitHostPath(rest)
	handle, _ := res.Platform.handleFromSegments(pathSegments(pathq))
	return handle
}
