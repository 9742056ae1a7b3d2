package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(c.Posts) == 0 {
		t.Error("no posts")
	}
	if len(c.Comparison) != 2 || c.Comparison[0].Name != "Focused" || c.Comparison[1].Name != "NIFTY50" {
		t.Fatalf("comparison = %+v", c.Comparison)
	}
	if got := c.Comparison[0].MaxDD; got != "-40.3%" {
		t.Errorf("Focused maxdd = %q", got)
	}
	if got := len(c.Comparison[0].Cells()); got != len(Columns) {
		t.Errorf("Cells() len = %d, want %d", got, len(Columns))
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "content.yaml")
	doc := "posts:\n  - date: Jan 01, 2024\n    title: Hello\n    excerpt: Some **bold** text\n    read_more: More\ncomparison:\n  - name: Focused\n    1d: \"0.0%\"\n"
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Posts[0].Title != "Hello" || c.Comparison[0].OneD != "0.0%" {
		t.Errorf("Load() = %+v", c)
	}
	if html := string(c.Posts[0].ExcerptHTML()); !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("ExcerptHTML() = %q", html)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
	if _, err := Parse([]byte("comparison:\n  - ytd: \"1%\"\n")); err == nil {
		t.Error("Parse accepted a row without name")
	}
}

func TestClasses(t *testing.T) {
	tests := []struct{ in, want string }{
		{"-1.7%", "negative"},
		{"0.0%", "neutral"},
		{"0%", "neutral"},
		{"2.9%", "positive"},
	}
	for _, tt := range tests {
		if got := ValueClass(tt.in); got != tt.want {
			t.Errorf("ValueClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if RowClass("Focused") != "focused-row" || RowClass("NIFTY50") != "" {
		t.Error("RowClass")
	}
}
