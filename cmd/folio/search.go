package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/jbukuts/folio/internal/content"
	"github.com/jbukuts/folio/internal/search"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := loadLibrary(cfg, newLogger(cfg))
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		ix := search.BuildIndex(lib.SearchItems())
		results := ix.Search(query, searchLimit)

		w := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(w, dimStyle.Render("no matches for "+query))
			if near := closestTitles(query, lib.Posts(), 3); len(near) > 0 {
				fmt.Fprintln(w, "did you mean:")
				for _, p := range near {
					fmt.Fprintf(w, "    %s %s\n", titleStyle.Render(p.Title), dimStyle.Render(search.PostLink(p.Slug)))
				}
			}
			return nil
		}
		for i, r := range results {
			title, _ := r.Stored["title"].(string)
			heading, _ := r.Stored["heading"].(string)
			link, _ := r.Stored["link"].(string)

			fmt.Fprintf(w, "%2d. %s\n", i+1, titleStyle.Render(title))
			if heading != "" && heading != title {
				fmt.Fprintf(w, "    %s\n", heading)
			}
			fmt.Fprintf(w, "    %s\n", dimStyle.Render(fmt.Sprintf("%s  score %.2f  terms %s", link, r.Score, strings.Join(r.Terms, ","))))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

// closestTitles fuzzy-matches query against post titles, best first.
func closestTitles(query string, posts []content.Post, limit int) []content.Post {
	titles := make([]string, len(posts))
	for i, p := range posts {
		titles[i] = p.Title
	}
	ranks := fuzzy.RankFindFold(query, titles)
	sort.Sort(ranks)

	var out []content.Post
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, posts[r.OriginalIndex])
	}
	return out
}
