package extracttext

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestFromFile(t *testing.T) {
	t.Run("markdown read verbatim", func(t *testing.T) {
		path := writeFile(t, "Player Handbook.md", "# Spells\n\nFireball burns things.\n")
		doc, err := FromFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Source != "Player Handbook" {
			t.Fatalf("unexpected source: %q", doc.Source)
		}
		if !strings.Contains(doc.Text, "Fireball burns things.") {
			t.Fatalf("unexpected text: %q", doc.Text)
		}
	})

	t.Run("byte order mark stripped", func(t *testing.T) {
		path := writeFile(t, "bom.txt", "\uFEFFclean text")
		doc, err := FromFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Text != "clean text" {
			t.Fatalf("BOM survived: %q", doc.Text)
		}
	})

	t.Run("html tag stripped", func(t *testing.T) {
		html := "<html><head><style>body{color:red}</style></head><body><h1>Goblin</h1><p>A small creature.</p><script>alert(1)</script></body></html>"
		path := writeFile(t, "bestiary.html", html)
		doc, err := FromFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(doc.Text, "Goblin") || !strings.Contains(doc.Text, "A small creature.") {
			t.Fatalf("unexpected text: %q", doc.Text)
		}
		if strings.Contains(doc.Text, "alert") || strings.Contains(doc.Text, "color:red") {
			t.Fatalf("script or style leaked: %q", doc.Text)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "sheet.docx", "binary-ish")
		_, err := FromFile(path)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("malformed pdf wraps extraction failure", func(t *testing.T) {
		path := writeFile(t, "broken.pdf", "not a pdf at all")
		_, err := FromFile(path)
		if !errors.Is(err, ErrExtractionFailure) {
			t.Fatalf("expected ErrExtractionFailure, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))
		if !errors.Is(err, ErrExtractionFailure) {
			t.Fatalf("expected ErrExtractionFailure, got %v", err)
		}
	})
}

func TestSourceID(t *testing.T) {
	cases := []struct{ path, want string }{
		{"/books/Player Handbook.pdf", "Player Handbook"},
		{"srd.md", "srd"},
		{"/deep/dir/Monster   Manual.txt", "Monster Manual"},
	}
	for _, tc := range cases {
		if got := SourceID(tc.path); got != tc.want {
			t.Fatalf("SourceID(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
