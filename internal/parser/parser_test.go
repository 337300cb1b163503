package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Meow\ntags:\n  - telnet\n  - easy\n---\n# Meow box\nBody text.\n")
	r := Parse(input)
	if r.Title != "Meow" {
		t.Errorf("title = %q, want %q", r.Title, "Meow")
	}
	if len(r.Tags) != 2 || r.Tags[0] != "telnet" || r.Tags[1] != "easy" {
		t.Errorf("tags = %v, want [telnet easy]", r.Tags)
	}
	if r.Body != "# Meow box\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	r := Parse([]byte("# Just a heading\nSome text.\n"))
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := "---\n: invalid: yaml: {{{\n---\nBody\n"
	r := Parse([]byte(input))
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
	if r.Body != input {
		t.Errorf("body = %q, want whole input", r.Body)
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	input := "---\ntitle: x\nno closing line\n"
	if got := Body([]byte(input)); got != input {
		t.Errorf("Body = %q", got)
	}
}

func TestDeriveTitle_SkipsCodeFences(t *testing.T) {
	body := "```bash\n# not a title\n```\n# Real title\n"
	if got := deriveTitle(nil, body); got != "Real title" {
		t.Errorf("title = %q, want %q", got, "Real title")
	}
}

func TestExtractTags_Dedup(t *testing.T) {
	fm := map[string]any{"tags": []any{"smb", " smb ", "", 3, "ad"}}
	tags := extractTags(fm)
	if len(tags) != 2 || tags[0] != "smb" || tags[1] != "ad" {
		t.Errorf("tags = %v, want [smb ad]", tags)
	}
}
