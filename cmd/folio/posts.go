package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := loadLibrary(cfg, newLogger(cfg))
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetHeader([]string{"Created", "Slug", "Title", "Tags", "Read"})
		for _, p := range lib.Posts() {
			table.Append([]string{
				p.Created.Format("2006-01-02"),
				p.Slug,
				p.Title,
				strings.Join(p.Tags, ", "),
				fmt.Sprintf("%d min", p.ReadingTime),
			})
		}
		table.Render()

		if tags := lib.Tags(); len(tags) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("tags: "+strings.Join(tags, ", ")))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
}
