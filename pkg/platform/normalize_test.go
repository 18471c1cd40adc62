package platform

import (
	"strings"
	"testing"
)

func TestNormalizeDotInsertion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"youtubecom/@user", "https://youtube.com/@user"},
		{"instagramcom/artist", "https://instagram.com/artist"},
		{"tiktokcom/username", "https://tiktok.com/@username"},
		{"twitchtv/streamer", "https://twitch.tv/streamer"},
		{"venmocom/handle", "https://venmo.com/handle"},
		{"www.tiktokcom/username", "https://www.tiktok.com/@username"},
		{"TIKTOKCOM/UserName", "https://tiktok.com/@UserName"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeScheme(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"instagram.com/artist", "https://instagram.com/artist"},
		{"http://instagram.com/artist", "http://instagram.com/artist"},
		{"https://instagram.com/artist", "https://instagram.com/artist"},
		{"example.org/page", "https://example.org/page"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSigilInsertion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tiktok.com/username", "https://tiktok.com/@username"},
		{"https://www.tiktok.com/username", "https://www.tiktok.com/@username"},
		{"tiktok.com/username?lang=en", "https://tiktok.com/@username?lang=en"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSigilNotDuplicated(t *testing.T) {
	inputs := []string{
		"https://tiktok.com/@username",
		"https://www.tiktok.com/@username",
		"tiktok.com/@username",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Normalize(input)
			if !strings.Contains(got, "@username") {
				t.Errorf("Normalize(%q) = %q, want it to contain @username", input, got)
			}
			if strings.Contains(got, "@@") {
				t.Errorf("Normalize(%q) = %q, sigil was duplicated", input, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"tiktokcom/username",
		"tiktok.com/username",
		"https://www.tiktok.com/@username",
		"youtubecom/@user",
		"twitchtv/streamer",
		"venmocom/handle",
		"instagramcom/artist",
		"example.org/some/Page?Query=Mixed",
		"",
		"not a url at all",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Normalize(input)
			twice := Normalize(once)
			if once != twice {
				t.Errorf("Normalize not idempotent: Normalize(%q) = %q, Normalize(that) = %q", input, once, twice)
			}
		})
	}
}

func TestNormalizePreservesPathCasing(t *testing.T) {
	got := Normalize("TIKTOKCOM/User.Name_01?Ref=ABC")
	want := "https://tiktok.com/@User.Name_01?Ref=ABC"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeUnknownDomainPassthrough(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"somesitecom/user", "https://somesitecom/user"},
		{"mysite.example/page", "https://mysite.example/page"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
