package htmlutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple", `<html><title>Artist Page</title></html>`, "Artist Page"},
		{"with attributes", `<title data-rh="true">Artist | Linktree</title>`, "Artist | Linktree"},
		{"entities", `<title>Tom &amp; Friends</title>`, "Tom & Friends"},
		{"missing", `<html><body>nothing</body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.content); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetaContent(t *testing.T) {
	content := `<html><head>
		<meta property="og:title" content="Artist Name" />
		<meta content="Music and tour dates" name="description" />
	</head></html>`

	tests := []struct {
		property string
		want     string
	}{
		{"og:title", "Artist Name"},
		{"description", "Music and tour dates"},
		{"og:image", ""},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			if got := MetaContent(content, tt.property); got != tt.want {
				t.Errorf("MetaContent(%q) = %q, want %q", tt.property, got, tt.want)
			}
		})
	}
}

func TestEmbeddedJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantNil bool
	}{
		{
			name:    "valid json",
			content: `<script id="__NEXT_DATA__" type="application/json">{"props":{}}</script>`,
			wantNil: false,
		},
		{
			name:    "extra attributes",
			content: `<script id="__NEXT_DATA__" type="application/json" crossorigin="anonymous">{"a":1}</script>`,
			wantNil: false,
		},
		{
			name:    "wrong id",
			content: `<script id="OTHER">{"a":1}</script>`,
			wantNil: true,
		},
		{
			name:    "invalid json",
			content: `<script id="__NEXT_DATA__" type="application/json">not json</script>`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmbeddedJSON(tt.content, "__NEXT_DATA__")
			if (got == nil) != tt.wantNil {
				t.Errorf("EmbeddedJSON() = %v, wantNil = %v", got, tt.wantNil)
			}
		})
	}
}

func TestLinks(t *testing.T) {
	content := `<html><body>
		<a href="https://instagram.com/artist">Instagram</a>
		<a href="https://tiktok.com/@artist">TikTok</a>
		<a href="https://instagram.com/artist">Instagram again</a>
		<a href="/relative/path">Relative</a>
		<a href="mailto:artist@example.com">Email</a>
	</body></html>`

	want := []string{
		"https://instagram.com/artist",
		"https://tiktok.com/@artist",
	}

	if diff := cmp.Diff(want, Links(content)); diff != "" {
		t.Errorf("Links() mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.com/page'", "https://example.com/page"},
		{" https://example.com ", "https://example.com"},
		{"https://example.com/a&amp;b=1", "https://example.com/a&b=1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanURL(tt.input); got != tt.want {
				t.Errorf("CleanURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
