// Package search builds the client-side full-text search index for posts.
//
// Posts are cut into flat heading blocks (see ExtractBlocks), each block
// becomes one Record, and the records are loaded into an Index whose JSON
// form is served as /search.json.
package search

import (
	"github.com/google/uuid"
)

// Item is the subset of a content item the index needs.
type Item struct {
	Title   string
	Slug    string
	Content string // Raw Markdown without front matter.
	Tags    []string
}

// Record is one searchable heading block.
type Record struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Heading string   `json:"heading"`
	Level   int      `json:"level"`
	Content string   `json:"content"`
	Link    string   `json:"link"`
	Tags    []string `json:"tags"`
}

// DefaultOptions indexes title, content and heading, and stores what the
// search dialog displays.
func DefaultOptions() Options {
	return Options{
		Fields:      []string{"title", "content", "heading"},
		StoreFields: []string{"title", "heading", "link", "tags"},
	}
}

// PostLink is the site path of a post.
func PostLink(slug string) string {
	return "/posts/" + slug
}

// Records extracts one record per heading block of every item. Items without
// headings contribute nothing.
func Records(items []Item) []Record {
	var records []Record
	for _, item := range items {
		for _, b := range ExtractBlocks(item.Content) {
			records = append(records, Record{
				ID:      uuid.NewString(),
				Title:   item.Title,
				Heading: b.Heading,
				Level:   b.Level,
				Content: b.Content,
				Link:    PostLink(item.Slug),
				Tags:    item.Tags,
			})
		}
	}
	return records
}

// BuildIndex builds a fresh index over the heading blocks of items.
func BuildIndex(items []Item) *Index {
	ix := New(DefaultOptions())
	for _, r := range Records(items) {
		ix.Add(r.ID,
			map[string]string{
				"title":   r.Title,
				"content": r.Content,
				"heading": r.Heading,
			},
			map[string]any{
				"title":   r.Title,
				"heading": r.Heading,
				"link":    r.Link,
				"tags":    r.Tags,
			},
		)
	}
	return ix
}
