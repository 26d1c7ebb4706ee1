package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process-level settings read from the environment.
type Config struct {
	Port string

	// Content
	ContentDir string
	OutputDir  string

	// Metadata base for absolute URLs (feed, sitemap, JSON-LD).
	SiteURL string

	LogLevel string

	// /search.json rate limit
	SearchRateLimit float64
	SearchRateBurst int

	// Rolling window for request latency stats
	StatsWindow time.Duration
}

func Load() Config {
	port := envOr("PORT", "3000")
	cfg := Config{
		Port: port,

		ContentDir: envOr("CONTENT_DIR", "./content"),
		OutputDir:  envOr("OUTPUT_DIR", "./out"),

		SiteURL: envOr("SITE_URL", "http://localhost:"+port),

		LogLevel: envOr("LOG_LEVEL", "info"),

		SearchRateLimit: envFloat("SEARCH_RATE_LIMIT", 5),
		SearchRateBurst: envInt("SEARCH_RATE_BURST", 10),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.SearchRateLimit <= 0 {
		cfg.SearchRateLimit = 5
	}
	if cfg.SearchRateBurst <= 0 {
		cfg.SearchRateBurst = 10
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SITE_URL must be an absolute URL, got %q", c.SiteURL)
	}
	return nil
}

// BaseURL returns the parsed SiteURL. Call Validate first.
func (c Config) BaseURL() *url.URL {
	u, _ := url.Parse(c.SiteURL)
	return u
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Profile is the site owner shown in the header, feed and JSON-LD.
type Profile struct {
	FirstName     string `yaml:"first_name"`
	LastName      string `yaml:"last_name"`
	Bio           string `yaml:"bio"`
	TwitterHandle string `yaml:"twitter_handle"`
	LinkedInURL   string `yaml:"linkedin_url"`
	GitHubURL     string `yaml:"github_url"`
	EmailAddress  string `yaml:"email"`
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Site is the site identity read from site.yaml in the content directory.
type Site struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Image       string  `yaml:"image"`
	Profile     Profile `yaml:"profile"`
}

// LoadSite reads and validates <dir>/site.yaml.
func LoadSite(dir string) (Site, error) {
	path := filepath.Join(dir, "site.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("read site config: %w", err)
	}
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Site{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.Title == "" {
		return Site{}, fmt.Errorf("%s: title is required", path)
	}
	if s.Profile.FullName() == "" {
		return Site{}, fmt.Errorf("%s: profile name is required", path)
	}
	if s.Image == "" {
		s.Image = "/pc.png"
	}
	return s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
