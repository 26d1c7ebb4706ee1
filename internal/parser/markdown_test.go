package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitFrontMatter(t *testing.T) {
	src := "---\ndesc: A post\ntags: [go]\n---\n# Title\n\nBody\n"
	meta, body, err := SplitFrontMatter([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(meta) != "desc: A post\ntags: [go]\n" {
		t.Errorf("unexpected meta %q", meta)
	}
	if string(body) != "# Title\n\nBody\n" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestSplitFrontMatter_NoFrontMatter(t *testing.T) {
	src := "# Title\n\n---\n\nafter a rule"
	meta, body, err := SplitFrontMatter([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta != nil {
		t.Errorf("expected nil meta, got %q", meta)
	}
	if string(body) != src {
		t.Errorf("expected body unchanged, got %q", body)
	}
}

func TestSplitFrontMatter_CRLFAndNoTrailingBody(t *testing.T) {
	meta, body, err := SplitFrontMatter([]byte("---\r\ntitle: x\r\n---"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(meta) != "title: x\r\n" {
		t.Errorf("unexpected meta %q", meta)
	}
	if len(body) != 0 {
		t.Errorf("expected empty body, got %q", body)
	}
}

func TestSplitFrontMatter_Unterminated(t *testing.T) {
	_, _, err := SplitFrontMatter([]byte("---\ndesc: oops\n# Title\n"))
	if !errors.Is(err, ErrUnterminatedFrontMatter) {
		t.Fatalf("expected ErrUnterminatedFrontMatter, got %v", err)
	}
}

func TestOutline_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

## Section B
`
	got := Outline([]byte(input))
	want := []Heading{
		{Level: 1, Title: "Title", ID: "title"},
		{Level: 2, Title: "Section A", ID: "section-a"},
		{Level: 3, Title: "Subsection A1", ID: "subsection-a1"},
		{Level: 2, Title: "Section B", ID: "section-b"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d headings, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestOutline_IgnoresCodeBlocks(t *testing.T) {
	input := "# Real\n\n```sh\n# not a heading\n```\n"
	got := Outline([]byte(input))
	if len(got) != 1 || got[0].Title != "Real" {
		t.Errorf("expected only the real heading, got %+v", got)
	}
}

func TestOutline_Empty(t *testing.T) {
	if got := Outline(nil); len(got) != 0 {
		t.Errorf("expected no headings, got %+v", got)
	}
}

func TestPlainText(t *testing.T) {
	input := "# Title\n\nSome *emphasis* text.\n\n- a\n- b\n"
	got, err := PlainText([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Title\nSome emphasis text.\na\nb"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPlainText_CodeBlockKept(t *testing.T) {
	got, err := PlainText([]byte("Intro\n\n```\nGET /api/users\n```\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "GET /api/users") {
		t.Errorf("expected code content in text, got %q", got)
	}
}

func TestIsPostSource(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"index.md", true},
		{"index.MDX", true},
		{"notes.markdown", false},
		{"resume.pdf", false},
		{"draft.docx", false},
	}
	for _, tt := range tests {
		if got := IsPostSource(tt.filename); got != tt.want {
			t.Errorf("IsPostSource(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
	if !IsImportable("Draft.DOCX") {
		t.Error("expected .docx to be importable")
	}
}
