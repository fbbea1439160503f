package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-blog/folio"
	"github.com/folio-blog/folio/content"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load Markdown posts from the content directory into the database",
	RunE:  importAction,
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "content directory (default from config)")
	rootCmd.AddCommand(importCmd)
}

func importAction(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := importDir
	if dir == "" {
		dir = cfg.ContentDir
	}
	posts, err := content.Load(dir)
	if err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}

	app := folio.New(cfg)
	defer app.Close()
	if err := app.Init(cmd.Context()); err != nil {
		return err
	}
	if err := app.Store.SavePosts(cmd.Context(), posts); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d posts from %s\n", len(posts), dir)
	return nil
}
