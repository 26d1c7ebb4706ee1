package search

import (
	"encoding/json"
	"testing"
)

func TestRecords_FieldsFromItemAndBlock(t *testing.T) {
	items := []Item{
		{
			Title:   "Hello",
			Slug:    "hello-world",
			Content: "# Hello\n\nIntro\n\n## Details\n\nMore",
			Tags:    []string{"intro", "meta"},
		},
	}
	records := Records(items)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	r := records[1]
	if r.Title != "Hello" || r.Heading != "Details" || r.Level != 2 || r.Content != "More" {
		t.Errorf("unexpected record %+v", r)
	}
	if r.Link != "/posts/hello-world" {
		t.Errorf("expected link /posts/hello-world, got %q", r.Link)
	}
	if len(r.Tags) != 2 || r.Tags[0] != "intro" {
		t.Errorf("expected tags copied from item, got %v", r.Tags)
	}
	if records[0].ID == "" || records[0].ID == records[1].ID {
		t.Errorf("expected unique non-empty ids, got %q and %q", records[0].ID, records[1].ID)
	}
}

func TestRecords_ItemWithoutHeadingsContributesNothing(t *testing.T) {
	withHeadings := Item{Title: "A", Slug: "a", Content: "## One\nx\n## Two\ny\n"}
	plain := Item{Title: "B", Slug: "b", Content: "no headings here\n\nat all"}

	base := Records([]Item{withHeadings})
	both := Records([]Item{withHeadings, plain})
	if len(base) != 2 || len(both) != 2 {
		t.Fatalf("expected plain item to add no records, got %d then %d", len(base), len(both))
	}
	if got := Records([]Item{plain}); len(got) != 0 {
		t.Errorf("expected 0 records, got %d", len(got))
	}
}

func TestBuildIndex(t *testing.T) {
	items := []Item{
		{Title: "Sectioning HTML", Slug: "sections", Content: "# Sectioning HTML\n\nWrap headings.\n\n## Nesting\n\nDeeper ranks first.", Tags: []string{"html"}},
		{Title: "Notes", Slug: "notes", Content: "plain text only"},
	}
	ix := BuildIndex(items)
	if ix.Len() != 2 {
		t.Fatalf("expected 2 indexed records, got %d", ix.Len())
	}

	results := ix.Search("ranks", 5)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Stored["heading"] != "Nesting" || results[0].Stored["link"] != "/posts/sections" {
		t.Errorf("unexpected stored fields %v", results[0].Stored)
	}

	if _, err := json.Marshal(ix); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}
