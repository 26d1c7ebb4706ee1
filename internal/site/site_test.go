package site

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/content"
)

func testConfig() config.Config {
	return config.Config{Port: "3000", ContentDir: ".", SiteURL: "https://example.com"}
}

func testLibrary() *content.Library {
	site := config.Site{
		Title:       "Example",
		Description: "An example site",
		Image:       "/pc.png",
		Profile:     config.Profile{FirstName: "Jane", LastName: "Doe"},
	}
	return content.NewLibrary(site, []content.Post{
		{
			Slug: "alpha", Title: "Alpha", Tags: []string{"go"},
			Created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Content: "# Alpha\n\nIntro\n\n## Setup\n\nInstall the tool.\n",
		},
		{
			Slug: "beta", Title: "Beta", Tags: []string{},
			Created: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Content: "# Beta\n\nSecond post.\n",
		},
	})
}

func newTestSite(t *testing.T, lib *content.Library) *Site {
	t.Helper()
	s, err := New(testConfig(), lib, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRoutes_Order(t *testing.T) {
	s := newTestSite(t, testLibrary())

	var paths []string
	for _, r := range s.Routes() {
		paths = append(paths, r.Path)
	}
	want := []string{
		"/", "/projects", "/work-history",
		"/posts/beta", "/posts/alpha",
		"/search.json", "/rss.xml", "/sitemap.xml", "/robots.txt",
	}
	if strings.Join(paths, " ") != strings.Join(want, " ") {
		t.Errorf("unexpected routes\n got: %v\nwant: %v", paths, want)
	}
}

func TestRoutes_ResumeOnlyWhenLoaded(t *testing.T) {
	lib := testLibrary()
	lib.Resume = &content.Resume{Pages: []string{"page one"}}
	s := newTestSite(t, lib)
	r, ok := s.Lookup("/resume")
	if !ok {
		t.Fatal("expected /resume route")
	}
	out, err := r.Render()
	if err != nil {
		t.Fatalf("render resume: %v", err)
	}
	if !strings.Contains(string(out), "page one") {
		t.Error("resume text missing")
	}

	if _, ok := newTestSite(t, testLibrary()).Lookup("/resume"); ok {
		t.Error("unexpected /resume route without a resume")
	}
}

func TestRoutes_RenderAll(t *testing.T) {
	s := newTestSite(t, testLibrary())
	for _, r := range s.Routes() {
		out, err := r.Render()
		if err != nil {
			t.Errorf("%s: %v", r.Path, err)
			continue
		}
		if len(out) == 0 {
			t.Errorf("%s: empty output", r.Path)
		}
		if r.ContentType == "" {
			t.Errorf("%s: missing content type", r.Path)
		}
	}
}

func TestPostRoute(t *testing.T) {
	s := newTestSite(t, testLibrary())
	r, ok := s.Lookup("/posts/alpha")
	if !ok {
		t.Fatal("missing post route")
	}
	out, err := r.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, `aria-labelledby="setup"`) {
		t.Error("post body should be sectionized")
	}
	if !strings.Contains(page, `href="/posts/beta" rel="next"`) {
		t.Error("alpha should link to the newer beta post")
	}
}

func TestSearchIndex(t *testing.T) {
	s := newTestSite(t, testLibrary())
	data, err := s.SearchIndex()
	if err != nil {
		t.Fatalf("SearchIndex: %v", err)
	}
	var doc struct {
		DocumentCount        int                       `json:"documentCount"`
		SerializationVersion int                       `json:"serializationVersion"`
		StoredFields         map[string]map[string]any `json:"storedFields"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// alpha has two heading blocks, beta one.
	if doc.DocumentCount != 3 {
		t.Errorf("expected 3 records, got %d", doc.DocumentCount)
	}
	if doc.SerializationVersion != 2 {
		t.Errorf("unexpected serialization version %d", doc.SerializationVersion)
	}
	links := map[string]int{}
	for _, f := range doc.StoredFields {
		links[f["link"].(string)]++
	}
	if links["/posts/alpha"] != 2 || links["/posts/beta"] != 1 {
		t.Errorf("unexpected links %v", links)
	}
}

func TestSearchETag(t *testing.T) {
	a := newTestSite(t, testLibrary())
	b := newTestSite(t, testLibrary())
	ra, _ := a.Lookup("/search.json")
	rb, _ := b.Lookup("/search.json")
	if ra.ETag == "" || ra.ETag != rb.ETag {
		t.Errorf("expected stable etag, got %q and %q", ra.ETag, rb.ETag)
	}

	lib := content.NewLibrary(testLibrary().Site, testLibrary().Posts()[:1])
	rc, _ := newTestSite(t, lib).Lookup("/search.json")
	if rc.ETag == ra.ETag {
		t.Error("etag should change with content")
	}
}
