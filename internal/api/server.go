package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/site"
)

// Server serves the site's routes over HTTP.
type Server struct {
	router chi.Router
	site   *site.Site
	stats  *LatencyStats
	limits *clientLimiter
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *site.Site, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		site:   st,
		stats:  NewLatencyStats(cfg.StatsWindow),
		limits: newClientLimiter(cfg.SearchRateLimit, cfg.SearchRateBurst),
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log, s.stats))

	r.Get("/health", s.handleHealth)
	r.Get("/api/stats", s.handleStats)
	r.Get("/resume.pdf", s.handleResumePDF)

	for _, route := range s.site.Routes() {
		if route.Path == "/search.json" {
			r.With(RateLimit(s.limits, s.log)).Get(route.Path, s.serveRoute(route))
			continue
		}
		r.Get(route.Path, s.serveRoute(route))
	}
	// Known posts are registered above; anything else under /posts is a miss.
	r.Get("/posts/{slug}", s.handleUnknownPost)

	r.NotFound(s.handleNotFound)
	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
