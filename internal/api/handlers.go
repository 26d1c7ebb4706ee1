package api

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jbukuts/folio/internal/content"
	"github.com/jbukuts/folio/internal/site"
)

const cacheControl = "public, max-age=3600"

// serveRoute renders route on every request. Responses carry an ETag and
// honour If-None-Match; routes with their own validator are answered before
// rendering.
func (s *Server) serveRoute(route site.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if route.ETag != "" && etagMatches(r, route.ETag) {
			s.notModified(w, route.ETag)
			return
		}

		body, err := route.Render()
		if err != nil {
			if errors.Is(err, content.ErrPostNotFound) {
				s.handleNotFound(w, r)
				return
			}
			s.log.Error("render failed", "path", route.Path, "error", err)
			jsonError(w, "failed to render "+route.Path, http.StatusInternalServerError)
			return
		}

		etag := route.ETag
		if etag == "" {
			etag = `"` + contentHashHex(body) + `"`
			if etagMatches(r, etag) {
				s.notModified(w, etag)
				return
			}
		}

		w.Header().Set("Content-Type", route.ContentType)
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", cacheControl)
		w.Write(body)
	}
}

func (s *Server) notModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusNotModified)
}

func (s *Server) handleUnknownPost(w http.ResponseWriter, r *http.Request) {
	s.log.Debug("unknown post", "slug", chi.URLParam(r, "slug"))
	s.handleNotFound(w, r)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	body, err := s.site.NotFound()
	if err != nil {
		s.log.Error("render 404 page", "error", err)
		jsonError(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", site.TypeHTML)
	w.WriteHeader(http.StatusNotFound)
	w.Write(body)
}

func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	resume := s.site.Library().Resume
	if resume == nil {
		s.handleNotFound(w, r)
		return
	}
	f, err := os.Open(resume.Path)
	if err != nil {
		s.log.Error("open resume", "path", resume.Path, "error", err)
		jsonError(w, "resume unavailable", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		jsonError(w, "resume unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeContent(w, r, filepath.Base(resume.Path), info.ModTime(), f)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"posts":    len(s.site.Library().Posts()),
		"requests": s.stats.Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// contentHashHex computes SHA-256 of content and returns hex string.
func contentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// etagMatches reports whether If-None-Match lists etag or is "*".
func etagMatches(r *http.Request, etag string) bool {
	header := r.Header.Get("If-None-Match")
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		c := strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if c == "*" || c == etag {
			return true
		}
	}
	return false
}
