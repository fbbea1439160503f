package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-blog/folio/scaffold"
)

var newEmoji string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new folio project",
	Args:  cobra.ExactArgs(1),
	RunE:  newAction,
}

func init() {
	newCmd.Flags().StringVar(&newEmoji, "emoji", "✍️", "emoji shown in the navbar")
	rootCmd.AddCommand(newCmd)
}

func newAction(cmd *cobra.Command, args []string) error {
	dir := args[0]
	name := filepath.Base(dir)
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Creating new folio project: %s\n\n", name)
	err := scaffold.Write(dir, scaffold.Data{
		ProjectName: name,
		SiteName:    scaffold.Title(name),
		Emoji:       newEmoji,
		Secret:      hex.EncodeToString(secret),
		Today:       time.Now().Format("2006-01-02"),
	}, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nNext steps:\n  cd %s\n  folio import\n  folio serve\n", dir)
	return nil
}
