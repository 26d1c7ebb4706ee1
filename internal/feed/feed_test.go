package feed

import (
	"encoding/xml"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/content"
)

var (
	testBase, _ = url.Parse("https://example.com")
	testNow     = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
)

func testSite() config.Site {
	return config.Site{
		Title:       "Example",
		Description: "An example site",
		Image:       "/pc.png",
		Profile:     config.Profile{FirstName: "Jane", LastName: "Doe", EmailAddress: "jane@example.com"},
	}
}

func testPosts() []content.Post {
	return []content.Post{
		{
			Slug: "newer", Title: "Newer", Desc: "The newer one", Tags: []string{"go", "web"},
			Created: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Updated: time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			Slug: "older", Title: "Older", Desc: "The older one", Tags: []string{},
			Created: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Updated: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestRSS(t *testing.T) {
	out, err := RSS(testSite(), testBase, testPosts(), testNow)
	if err != nil {
		t.Fatalf("RSS: %v", err)
	}

	var doc struct {
		Channel struct {
			Title     string `xml:"title"`
			Link      string `xml:"link"`
			Language  string `xml:"language"`
			Copyright string `xml:"copyright"`
			Category  string `xml:"category"`
			Image     struct {
				URL string `xml:"url"`
			} `xml:"image"`
			Items []struct {
				Title       string `xml:"title"`
				Link        string `xml:"link"`
				Description string `xml:"description"`
				Category    string `xml:"category"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal rss: %v\n%s", err, out)
	}

	ch := doc.Channel
	if ch.Title != "Example" || ch.Language != "en" || ch.Category != "Development" {
		t.Errorf("unexpected channel %+v", ch)
	}
	if ch.Copyright != "2025 Jane Doe" {
		t.Errorf("unexpected copyright %q", ch.Copyright)
	}
	if ch.Image.URL != "https://example.com/pc.png" {
		t.Errorf("unexpected image %q", ch.Image.URL)
	}
	if len(ch.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(ch.Items))
	}
	first := ch.Items[0]
	if first.Title != "Newer" || first.Link != "https://example.com/posts/newer" {
		t.Errorf("unexpected first item %+v", first)
	}
	if first.Description != "The newer one" || first.Category != "go, web" {
		t.Errorf("unexpected first item %+v", first)
	}
	if ch.Items[1].Category != "" {
		t.Errorf("untagged post should have no category, got %q", ch.Items[1].Category)
	}
}

func TestRSS_NoPosts(t *testing.T) {
	out, err := RSS(testSite(), testBase, nil, testNow)
	if err != nil {
		t.Fatalf("RSS: %v", err)
	}
	if strings.Contains(string(out), "<item>") {
		t.Error("expected no items")
	}
}

func TestSitemap(t *testing.T) {
	out, err := Sitemap(testBase, testPosts(), testNow)
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "<?xml") {
		t.Error("missing xml header")
	}

	var doc struct {
		URLs []struct {
			Loc        string `xml:"loc"`
			LastMod    string `xml:"lastmod"`
			ChangeFreq string `xml:"changefreq"`
			Priority   string `xml:"priority"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal sitemap: %v", err)
	}
	if len(doc.URLs) != 5 {
		t.Fatalf("expected 5 urls, got %d", len(doc.URLs))
	}

	want := []struct{ loc, priority, lastmod string }{
		{"https://example.com/", "1", "2025-02-01T00:00:00Z"},
		{"https://example.com/projects", "0.8", "2025-02-01T00:00:00Z"},
		{"https://example.com/work-history", "0.8", "2025-02-01T00:00:00Z"},
		{"https://example.com/posts/newer", "0.8", "2024-06-02T10:00:00Z"},
		{"https://example.com/posts/older", "0.8", "2023-01-01T00:00:00Z"},
	}
	for i, w := range want {
		u := doc.URLs[i]
		if u.Loc != w.loc || u.Priority != w.priority || u.LastMod != w.lastmod || u.ChangeFreq != "monthly" {
			t.Errorf("url %d: got %+v, want %+v", i, u, w)
		}
	}
	if !strings.Contains(s, "<image:loc>https://example.com/me.webp</image:loc>") {
		t.Errorf("missing home image:\n%s", s)
	}
	if strings.Count(s, "<image:image>") != 1 {
		t.Error("only the home page carries an image")
	}
}

func TestRobots(t *testing.T) {
	got := string(Robots(testBase))
	want := "User-Agent: *\nAllow: /\n\nSitemap: https://example.com/sitemap.xml\n"
	if got != want {
		t.Errorf("unexpected robots.txt\n got: %q\nwant: %q", got, want)
	}
}
