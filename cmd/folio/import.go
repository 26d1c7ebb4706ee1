package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jbukuts/folio/internal/content"
	"github.com/jbukuts/folio/internal/parser"
)

var (
	importSlug string
	importDesc string
	importTags []string
)

var importCmd = &cobra.Command{
	Use:   "import <file.docx>",
	Short: "Convert a Word document into a new post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		src := args[0]
		if !parser.IsImportable(src) {
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(src))
		}

		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()

		path, err := content.ImportDOCX(cfg.ContentDir, f, content.ImportRequest{
			Slug: importSlug,
			Desc: importDesc,
			Tags: importTags,
		})
		if err != nil {
			return fmt.Errorf("import %s: %w", src, err)
		}
		newLogger(cfg).Info("post imported", "source", src, "path", path)
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓")+" wrote "+path)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSlug, "slug", "", "Post slug (default: derived from the first heading)")
	importCmd.Flags().StringVar(&importDesc, "desc", "", "Post description")
	importCmd.Flags().StringSliceVar(&importTags, "tags", nil, "Comma-separated tags")
	rootCmd.AddCommand(importCmd)
}
