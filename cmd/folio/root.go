package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folio-blog/folio"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "A personal blog and portfolio server",
	Long:          "folio serves a Markdown blog with year-grouped listings, fuzzy search and an admin area, and can export it as a static site.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./folio.yaml or $XDG_CONFIG_HOME/folio/config.yaml)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (folio.SiteConfig, error) {
	cfg, err := folio.LoadConfig(configPath)
	if err != nil {
		return folio.SiteConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
