package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-blog/folio"
)

var (
	buildOut    string
	buildClean  bool
	buildStatic string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the public site as static files",
	RunE:  buildAction,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "remove existing files in the output directory")
	buildCmd.Flags().StringVar(&buildStatic, "static", "public", "directory copied to /public")
	rootCmd.AddCommand(buildCmd)
}

func buildAction(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := folio.New(cfg, folio.WithStaticDir(buildStatic))
	defer app.Close()

	stats, err := app.Export(cmd.Context(), buildOut, buildClean)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d posts and %d pages (%d files) to %s\n", stats.Posts, stats.Pages, stats.Files, buildOut)
	return nil
}
