package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jbukuts/folio/internal/content"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, "Done", [][2]string{{"files", "3"}, {"size", "1.0 KiB"}})
	out := buf.String()
	for _, want := range []string{"Done", "files", "3", "1.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestClosestTitles(t *testing.T) {
	posts := []content.Post{
		{Slug: "a", Title: "Building a Static Site"},
		{Slug: "b", Title: "Notes on Go Generics"},
		{Slug: "c", Title: "Static Analysis Tools"},
	}
	got := closestTitles("sttc", posts, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 fuzzy matches, got %d", len(got))
	}
	for _, p := range got {
		if p.Slug == "b" {
			t.Errorf("unexpected match %q", p.Title)
		}
	}
	if got := closestTitles("zzz", posts, 5); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
	if got := closestTitles("s", posts, 1); len(got) != 1 {
		t.Errorf("expected limit to apply, got %d", len(got))
	}
}
