package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/folio-blog/folio"
	"github.com/folio-blog/folio/blog"
)

var postsDrafts bool

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts grouped by year",
	RunE:  postsAction,
}

func init() {
	postsCmd.Flags().BoolVar(&postsDrafts, "drafts", false, "include unpublished posts")
	rootCmd.AddCommand(postsCmd)
}

func postsAction(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := folio.New(cfg)
	defer app.Close()
	ctx := cmd.Context()
	if err := app.Init(ctx); err != nil {
		return err
	}

	var posts []blog.Post
	if postsDrafts {
		posts, err = app.Store.ListAllPosts(ctx)
	} else {
		posts, err = app.Store.Posts(ctx)
	}
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No posts yet. Run 'folio import' first.")
		return nil
	}
	printPosts(cmd.OutOrStdout(), posts, app.Site().Freshness)
	return nil
}

const titleWidth = 48

// printPosts writes one table per year, newest year first. Titles are padded
// by display width so CJK and emoji titles stay aligned.
func printPosts(w io.Writer, posts []blog.Post, fresh blog.FreshnessPolicy) {
	for _, b := range blog.GroupByYear(posts) {
		fmt.Fprintf(w, "%d\n", b.Year)
		for _, p := range b.Posts {
			marker := "   "
			if fresh.IsFresh(p.Date) {
				marker = "new"
			}
			status := ""
			if !p.Published {
				status = " (draft)"
			}
			title := runewidth.Truncate(p.Title, titleWidth, "…")
			title = runewidth.FillRight(title, titleWidth)
			fmt.Fprintf(w, "  %s %s  %s  %s%s\n", p.Date, marker, title, strings.Join(p.Tags, ","), status)
		}
	}
}
