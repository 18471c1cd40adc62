package platform

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry is an immutable ordered list of platform definitions. Matching is
// a first-match-wins scan: the exact-domain pass runs before the alias pass,
// so tie-breaks are deterministic.
type Registry struct {
	defs []*Definition
	// tokens maps dotless host spellings ("tiktokcom") to the canonical
	// domain ("tiktok.com") for dot-insertion during normalization.
	tokens map[string]string
}

// NewRegistry builds a registry from definitions in priority order.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{tokens: make(map[string]string)}
	for i := range defs {
		d := defs[i]
		r.defs = append(r.defs, &d)
		for _, dom := range d.Domains {
			token := strings.ReplaceAll(dom, ".", "")
			if _, exists := r.tokens[token]; !exists {
				r.tokens[token] = dom
			}
		}
	}
	return r
}

// Append adds definitions after the built-ins. Call during startup only;
// the registry must not change once Detect is being called concurrently.
func (r *Registry) Append(defs ...Definition) {
	for i := range defs {
		d := defs[i]
		r.defs = append(r.defs, &d)
		for _, dom := range d.Domains {
			token := strings.ReplaceAll(dom, ".", "")
			if _, exists := r.tokens[token]; !exists {
				r.tokens[token] = dom
			}
		}
	}
}

// Lookup returns the definition with the given ID, or nil.
func (r *Registry) Lookup(id string) *Definition {
	for _, d := range r.defs {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Definitions returns the registry entries in priority order.
func (r *Registry) Definitions() []*Definition {
	return r.defs
}

// definitionYAML is the on-disk form for registry overlays.
type definitionYAML struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Domains       []string `yaml:"domains"`
	Aliases       []string `yaml:"aliases"`
	Sigil         string   `yaml:"sigil"`
	InsertSigil   bool     `yaml:"insert_sigil"`
	SkipSegments  []string `yaml:"skip_segments"`
	HandlePattern string   `yaml:"handle_pattern"`
}

// LoadDefinitions parses platform definitions from a YAML file so
// deployments can recognize additional platforms without a code change.
// Entries are appended after the built-ins, keeping built-in priority stable.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read platform definitions: %w", err)
	}
	return ParseDefinitions(data)
}

// ParseDefinitions parses YAML platform definitions.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var raw []definitionYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse platform definitions: %w", err)
	}

	defs := make([]Definition, 0, len(raw))
	for _, y := range raw {
		if y.ID == "" || len(y.Domains) == 0 {
			return nil, fmt.Errorf("platform definition %q: id and domains are required", y.ID)
		}
		d := Definition{
			ID:           y.ID,
			Name:         y.Name,
			Domains:      y.Domains,
			Aliases:      y.Aliases,
			Sigil:        y.Sigil,
			InsertSigil:  y.InsertSigil,
			SkipSegments: y.SkipSegments,
		}
		if d.Name == "" {
			d.Name = y.ID
		}
		if y.HandlePattern != "" {
			re, err := regexp.Compile(y.HandlePattern)
			if err != nil {
				return nil, fmt.Errorf("platform definition %q: handle_pattern: %w", y.ID, err)
			}
			d.HandleRe = re
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// Built-in definitions in priority order.
// Note: Order matters! More specific patterns must come before broader ones.
// TikTok comes first because its @handle path shape overlaps other platforms.
var builtins = []Definition{
	{
		ID:          "tiktok",
		Name:        "TikTok",
		Domains:     []string{"tiktok.com"},
		Sigil:       "@",
		InsertSigil: true,
		HandleRe:    regexp.MustCompile(`^[A-Za-z0-9._]+$`),
	},
	{
		ID:      "instagram",
		Name:    "Instagram",
		Domains: []string{"instagram.com"},
		HandleRe: regexp.MustCompile(
			`^[A-Za-z0-9._]+$`),
	},
	{
		ID:           "youtube",
		Name:         "YouTube",
		Domains:      []string{"youtube.com", "youtu.be"},
		Sigil:        "@",
		SkipSegments: []string{"channel", "c", "user"},
	},
	{
		ID:       "twitch",
		Name:     "Twitch",
		Domains:  []string{"twitch.tv"},
		HandleRe: regexp.MustCompile(`^[A-Za-z0-9_]+$`),
	},
	{
		ID:           "venmo",
		Name:         "Venmo",
		Domains:      []string{"venmo.com"},
		SkipSegments: []string{"u"},
	},
	{
		ID:           "spotify",
		Name:         "Spotify",
		Domains:      []string{"open.spotify.com", "spotify.com"},
		SkipSegments: []string{"artist", "user"},
	},
	{
		ID:      "soundcloud",
		Name:    "SoundCloud",
		Domains: []string{"soundcloud.com"},
	},
	{
		ID:      "twitter",
		Name:    "X (Twitter)",
		Domains: []string{"twitter.com", "x.com"},
	},
	{
		ID:      "facebook",
		Name:    "Facebook",
		Domains: []string{"facebook.com", "fb.com"},
	},
	{
		ID:      "threads",
		Name:    "Threads",
		Domains: []string{"threads.net"},
		Sigil:   "@",
	},
	{
		ID:      "snapchat",
		Name:    "Snapchat",
		Domains: []string{"snapchat.com"},
		SkipSegments: []string{
			"add",
		},
	},
	{
		ID:       "cashapp",
		Name:     "Cash App",
		Domains:  []string{"cash.app"},
		HandleRe: regexp.MustCompile(`^\$?[A-Za-z0-9_]+$`),
	},
	{
		ID:      "paypal",
		Name:    "PayPal",
		Domains: []string{"paypal.me", "paypal.com"},
	},
	{
		ID:      "patreon",
		Name:    "Patreon",
		Domains: []string{"patreon.com"},
	},
	{
		ID:      "bandcamp",
		Name:    "Bandcamp",
		Domains: []string{"bandcamp.com"},
		Aliases: []string{".bandcamp.com"},
	},
	{
		ID:      "linktree",
		Name:    "Linktree",
		Domains: []string{"linktr.ee", "linktree.com"},
	},
	{
		ID:      "discord",
		Name:    "Discord",
		Domains: []string{"discord.gg", "discord.com"},
		SkipSegments: []string{
			"invite",
		},
	},
}

// Default is the process-wide registry, built once at init.
var Default = NewRegistry(builtins...)

// Detect classifies input against the default registry.
func Detect(input string) Result { return Default.Detect(input) }

// Normalize canonicalizes input using the default registry.
func Normalize(input string) string { return Default.Normalize(input) }
