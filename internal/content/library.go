// Package content loads the site's authored content into an immutable
// Library: posts sorted newest first with a slug index, the resume
// collections and the optional resume PDF.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/parser"
	"github.com/jbukuts/folio/internal/search"
)

// ErrPostNotFound is returned for an unknown slug.
var ErrPostNotFound = errors.New("post not found")

const resumeFile = "resume.pdf"

// Resume is the text of the resume PDF, one entry per page.
type Resume struct {
	Path  string
	Pages []string
}

// Library is the loaded content. It is never modified after Load returns
// and is safe for concurrent readers.
type Library struct {
	Site config.Site

	posts  []Post
	bySlug map[string]int

	Education    []Education
	WorkHistory  []Job
	Publications []Publication
	Patents      []Patent
	Projects     []Project
	Resume       *Resume
}

// Load reads everything under dir.
func Load(dir string, log *slog.Logger) (*Library, error) {
	site, err := config.LoadSite(dir)
	if err != nil {
		return nil, err
	}

	posts, err := loadPosts(dir)
	if err != nil {
		return nil, err
	}
	sortPosts(posts)

	lib := &Library{
		Site:   site,
		posts:  posts,
		bySlug: make(map[string]int, len(posts)),
	}
	for i, p := range posts {
		lib.bySlug[p.Slug] = i
	}

	if lib.Education, err = loadCollection[Education](dir, "education.yaml"); err != nil {
		return nil, err
	}
	if lib.WorkHistory, err = loadCollection[Job](dir, "work-history.yaml"); err != nil {
		return nil, err
	}
	if lib.Publications, err = loadCollection[Publication](dir, "publications.yaml"); err != nil {
		return nil, err
	}
	if lib.Patents, err = loadCollection[Patent](dir, "patents.yaml"); err != nil {
		return nil, err
	}
	if lib.Projects, err = loadCollection[Project](dir, "projects.yaml"); err != nil {
		return nil, err
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}

	lib.Resume = loadResume(dir, log)

	log.Info("content loaded",
		"dir", dir,
		"posts", len(lib.posts),
		"jobs", len(lib.WorkHistory),
		"education", len(lib.Education),
		"publications", len(lib.Publications),
		"patents", len(lib.Patents),
		"projects", len(lib.Projects),
		"resume", lib.Resume != nil,
	)
	return lib, nil
}

func (l *Library) validate() error {
	if err := validateAll("education", l.Education); err != nil {
		return err
	}
	if err := validateAll("work-history", l.WorkHistory); err != nil {
		return err
	}
	if err := validateAll("publications", l.Publications); err != nil {
		return err
	}
	if err := validateAll("patents", l.Patents); err != nil {
		return err
	}
	return validateAll("projects", l.Projects)
}

// loadResume extracts resume.pdf when present. A PDF whose text cannot be
// read is still served for download, just without a text rendition.
func loadResume(dir string, log *slog.Logger) *Resume {
	path := filepath.Join(dir, resumeFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	pages, err := parser.PDFText(path, true)
	if err != nil {
		log.Warn("resume text extraction failed", "path", path, "error", err)
	}
	return &Resume{Path: path, Pages: pages}
}

// sortPosts orders posts newest first, breaking ties by slug.
func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Created.Equal(posts[j].Created) {
			return posts[i].Created.After(posts[j].Created)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Posts returns all posts, newest first.
func (l *Library) Posts() []Post {
	out := make([]Post, len(l.posts))
	copy(out, l.posts)
	return out
}

// Post looks a post up by slug.
func (l *Library) Post(slug string) (Post, error) {
	i, ok := l.bySlug[slug]
	if !ok {
		return Post{}, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	return l.posts[i], nil
}

// Neighbors returns the older (previous) and newer (next) posts around slug.
// Either may be nil.
func (l *Library) Neighbors(slug string) (prev, next *Post) {
	i, ok := l.bySlug[slug]
	if !ok {
		return nil, nil
	}
	if i+1 < len(l.posts) {
		p := l.posts[i+1]
		prev = &p
	}
	if i > 0 {
		n := l.posts[i-1]
		next = &n
	}
	return prev, next
}

// Tags returns the distinct post tags in sorted order.
func (l *Library) Tags() []string {
	set := make(map[string]struct{})
	for _, p := range l.posts {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// SearchItems adapts the posts for the search index builder.
func (l *Library) SearchItems() []search.Item {
	items := make([]search.Item, 0, len(l.posts))
	for _, p := range l.posts {
		items = append(items, search.Item{
			Title:   p.Title,
			Slug:    p.Slug,
			Content: p.Content,
			Tags:    p.Tags,
		})
	}
	return items
}

// NewLibrary builds a library from already-loaded posts. It is used by tests
// and tools that do not read a content directory.
func NewLibrary(site config.Site, posts []Post) *Library {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sortPosts(sorted)

	lib := &Library{Site: site, posts: sorted, bySlug: make(map[string]int, len(sorted))}
	for i, p := range sorted {
		lib.bySlug[p.Slug] = i
	}
	return lib
}
