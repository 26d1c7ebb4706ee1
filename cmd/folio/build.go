package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jbukuts/folio/internal/export"
	"github.com/jbukuts/folio/internal/site"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildOut != "" {
			cfg.OutputDir = buildOut
		}
		log := newLogger(cfg)

		lib, err := loadLibrary(cfg, log)
		if err != nil {
			return err
		}
		st, err := site.New(cfg, lib, log)
		if err != nil {
			return err
		}

		var extras []string
		if lib.Resume != nil {
			extras = append(extras, lib.Resume.Path)
		}
		rep, err := export.Export(cmd.Context(), st.Routes(), cfg.OutputDir, extras...)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Info("export complete",
			"out", cfg.OutputDir,
			"files", rep.Files,
			"bytes", rep.Bytes,
			"duration_ms", rep.Duration.Milliseconds(),
		)

		out, _ := filepath.Abs(cfg.OutputDir)
		printSummary(cmd.OutOrStdout(), successStyle.Render("✓")+" Site exported", [][2]string{
			{"output", out},
			{"posts", strconv.Itoa(len(lib.Posts()))},
			{"files", strconv.Itoa(rep.Files)},
			{"size", humanBytes(rep.Bytes)},
			{"took", rep.Duration.Round(time.Millisecond).String()},
		})
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", os.Getenv("OUTPUT_DIR"), "Output directory (default $OUTPUT_DIR or ./out)")
	rootCmd.AddCommand(buildCmd)
}
