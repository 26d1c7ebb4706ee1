// Package render turns the content library into HTML pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home.html",
	"post.html",
	"projects.html",
	"work-history.html",
	"resume.html",
	"404.html",
}

// Renderer executes the page templates for one site.
type Renderer struct {
	site  config.Site
	base  *url.URL
	pages map[string]*template.Template
	now   func() time.Time
}

// page is the data every template receives.
type page struct {
	Site        config.Site
	Title       string
	Description string
	Path        string
	Canonical   string
	Image       string
	Keywords    []string
	JSONLD      any
	Year        int
	Data        any
}

// New parses the embedded templates. base is used for absolute URLs.
func New(site config.Site, base *url.URL) (*Renderer, error) {
	r := &Renderer{
		site:  site,
		base:  base,
		pages: make(map[string]*template.Template, len(pageNames)),
		now:   time.Now,
	}
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").
			Funcs(r.funcs()).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"date":      func(t time.Time) string { return t.Format("Jan 2 2006") },
		"shortDate": func(t time.Time) string { return t.Format("Jan 02 06") },
		"isoDate":   func(t time.Time) string { return t.Format("2006-01-02") },
		"month":     func(t time.Time) string { return t.Format("Jan 2006") },
		"daysAgo": func(t time.Time) int {
			return int(r.now().Sub(t).Hours() / 24)
		},
		"span": func(tr content.TimeRange) string {
			if tr.Current() {
				return tr.Start.Format("Jan 2006") + " - Present"
			}
			return tr.Start.Format("Jan 2006") + " - " + tr.End.Format("Jan 2006")
		},
		"gpa":  func(g *float64) string { return fmt.Sprintf("%.2f", *g) },
		"join": strings.Join,
	}
}

// URL resolves path against the site base.
func (r *Renderer) URL(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return r.base.ResolveReference(ref).String()
}

func (r *Renderer) render(name string, p page) ([]byte, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %s", name)
	}
	p.Site = r.site
	if p.Description == "" {
		p.Description = r.site.Description
	}
	if p.Path != "" {
		p.Canonical = r.URL(p.Path)
	}
	p.Image = r.URL(r.site.Image)
	p.Year = r.now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Home lists every post under the profile blurb.
func (r *Renderer) Home(posts []content.Post) ([]byte, error) {
	return r.render("home.html", page{Path: "/", Data: posts})
}

type postData struct {
	Post content.Post
	Body template.HTML
	Prev *content.Post
	Next *content.Post
}

// Post renders one post with links to its older and newer neighbours.
func (r *Renderer) Post(post content.Post, prev, next *content.Post) ([]byte, error) {
	body, err := Markdown([]byte(post.Content))
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", post.Slug, err)
	}
	return r.render("post.html", page{
		Title:       post.Title,
		Description: post.Desc,
		Path:        "/posts/" + post.Slug,
		Keywords:    post.Tags,
		JSONLD:      r.blogPosting(post),
		Data:        postData{Post: post, Body: body, Prev: prev, Next: next},
	})
}

type projectView struct {
	Name string
	Desc template.HTML
}

// Projects renders the project list with Markdown descriptions.
func (r *Renderer) Projects(projects []content.Project) ([]byte, error) {
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		desc, err := Inline(p.Desc)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", p.Name, err)
		}
		views = append(views, projectView{Name: p.Name, Desc: desc})
	}
	return r.render("projects.html", page{
		Title:       "Projects",
		Description: "List of my personal projects",
		Path:        "/projects",
		Data:        views,
	})
}

type workHistoryData struct {
	Jobs         []content.Job
	Education    []content.Education
	Publications []content.Publication
	Patents      []content.Patent
	HasResume    bool
}

// WorkHistory renders jobs newest first followed by education, publications
// and patents.
func (r *Renderer) WorkHistory(lib *content.Library) ([]byte, error) {
	jobs := sortJobs(lib.WorkHistory)
	return r.render("work-history.html", page{
		Title:       "Resume",
		Description: "Description of my work history",
		Path:        "/work-history",
		JSONLD:      r.person(jobs, lib.Education),
		Data: workHistoryData{
			Jobs:         jobs,
			Education:    lib.Education,
			Publications: lib.Publications,
			Patents:      lib.Patents,
			HasResume:    lib.Resume != nil,
		},
	})
}

// Resume renders the extracted resume text, one block per page.
func (r *Renderer) Resume(res *content.Resume) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no resume loaded")
	}
	return r.render("resume.html", page{
		Title:       "Resume",
		Description: "Plain text copy of my resume",
		Path:        "/resume",
		Data:        res.Pages,
	})
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound() ([]byte, error) {
	return r.render("404.html", page{Title: "Not Found"})
}

func sortJobs(jobs []content.Job) []content.Job {
	sorted := make([]content.Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimeRange.Start.After(sorted[j].TimeRange.Start)
	})
	return sorted
}
