// Package site is the route table shared by the HTTP server and the static
// exporter. Every page, feed and index the site publishes is a Route.
package site

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/content"
	"github.com/jbukuts/folio/internal/feed"
	"github.com/jbukuts/folio/internal/render"
	"github.com/jbukuts/folio/internal/search"
)

const (
	TypeHTML = "text/html; charset=utf-8"
	TypeJSON = "application/json"
	TypeXML  = "application/xml"
	TypeText = "text/plain; charset=utf-8"
)

// Route is one published path.
type Route struct {
	Path        string
	ContentType string
	// ETag, when set, identifies the content behind the route independently
	// of the rendered bytes.
	ETag   string
	Render func() ([]byte, error)
}

// Site renders the library's routes.
type Site struct {
	lib    *content.Library
	pages  *render.Renderer
	base   *url.URL
	log    *slog.Logger
	now    func() time.Time
	routes []Route
	index  map[string]int
}

// New builds the route table for lib. cfg must have been validated.
func New(cfg config.Config, lib *content.Library, log *slog.Logger) (*Site, error) {
	base := cfg.BaseURL()
	pages, err := render.New(lib.Site, base)
	if err != nil {
		return nil, err
	}
	s := &Site{
		lib:   lib,
		pages: pages,
		base:  base,
		log:   log,
		now:   time.Now,
	}
	s.routes = s.buildRoutes()
	s.index = make(map[string]int, len(s.routes))
	for i, r := range s.routes {
		s.index[r.Path] = i
	}
	return s, nil
}

func (s *Site) buildRoutes() []Route {
	lib := s.lib
	routes := []Route{
		{Path: "/", ContentType: TypeHTML, Render: func() ([]byte, error) {
			return s.pages.Home(lib.Posts())
		}},
		{Path: "/projects", ContentType: TypeHTML, Render: func() ([]byte, error) {
			return s.pages.Projects(lib.Projects)
		}},
		{Path: "/work-history", ContentType: TypeHTML, Render: func() ([]byte, error) {
			return s.pages.WorkHistory(lib)
		}},
	}
	if lib.Resume != nil {
		routes = append(routes, Route{Path: "/resume", ContentType: TypeHTML, Render: func() ([]byte, error) {
			return s.pages.Resume(lib.Resume)
		}})
	}

	for _, p := range lib.Posts() {
		slug := p.Slug
		routes = append(routes, Route{Path: search.PostLink(slug), ContentType: TypeHTML, Render: func() ([]byte, error) {
			return s.renderPost(slug)
		}})
	}

	routes = append(routes,
		Route{Path: "/search.json", ContentType: TypeJSON, ETag: s.searchETag(), Render: s.SearchIndex},
		Route{Path: "/rss.xml", ContentType: TypeXML, Render: func() ([]byte, error) {
			return feed.RSS(lib.Site, s.base, lib.Posts(), s.now())
		}},
		Route{Path: "/sitemap.xml", ContentType: TypeXML, Render: func() ([]byte, error) {
			return feed.Sitemap(s.base, lib.Posts(), s.now())
		}},
		Route{Path: "/robots.txt", ContentType: TypeText, Render: func() ([]byte, error) {
			return feed.Robots(s.base), nil
		}},
	)
	return routes
}

func (s *Site) renderPost(slug string) ([]byte, error) {
	post, err := s.lib.Post(slug)
	if err != nil {
		return nil, err
	}
	prev, next := s.lib.Neighbors(slug)
	return s.pages.Post(post, prev, next)
}

// Routes returns the route table in publication order.
func (s *Site) Routes() []Route {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out
}

// Lookup finds the route for path.
func (s *Site) Lookup(path string) (Route, bool) {
	i, ok := s.index[path]
	if !ok {
		return Route{}, false
	}
	return s.routes[i], true
}

// Library returns the content the site was built from.
func (s *Site) Library() *content.Library {
	return s.lib
}

// NotFound renders the 404 page.
func (s *Site) NotFound() ([]byte, error) {
	return s.pages.NotFound()
}

// SearchIndex builds a fresh search index over every post and serializes it.
func (s *Site) SearchIndex() ([]byte, error) {
	start := time.Now()
	ix := search.BuildIndex(s.lib.SearchItems())
	data, err := json.Marshal(ix)
	if err != nil {
		return nil, fmt.Errorf("encode search index: %w", err)
	}
	s.log.Debug("search index built",
		"records", ix.Len(),
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}

// searchETag fingerprints the indexed content. Record ids are regenerated on
// every build, so the serialized index itself is not a stable validator.
func (s *Site) searchETag() string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, item := range s.lib.SearchItems() {
		_ = enc.Encode(item)
	}
	return fmt.Sprintf(`"%x"`, h.Sum(nil))
}
