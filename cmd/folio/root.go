package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbukuts/folio/internal/config"
	"github.com/jbukuts/folio/internal/content"
	"github.com/jbukuts/folio/internal/version"
)

var contentDir string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Personal blog and portfolio site",
	Long: `folio renders a directory of Markdown posts and resume data into a
website. It can serve the site directly or export it as static files.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("folio %s\n", version.String()))
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "", "Content directory (default $CONTENT_DIR or ./content)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Load()
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func loadLibrary(cfg config.Config, log *slog.Logger) (*content.Library, error) {
	lib, err := content.Load(cfg.ContentDir, log)
	if err != nil {
		return nil, fmt.Errorf("load content from %s: %w", cfg.ContentDir, err)
	}
	return lib, nil
}
