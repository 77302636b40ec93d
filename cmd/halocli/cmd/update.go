package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <note.md>",
	Short: "Overwrite a note with the remote post content",
	Long: `Overwrite a note's body and front matter with the current remote
state of the post it is bound to. Fails on notes that have never been
published.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := selectSite()
		if err != nil {
			return err
		}

		svc, err := newService(site)
		if err != nil {
			return err
		}

		result, err := svc.Update(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("update %s: %w", args[0], err)
		}

		fmt.Printf("updated %s from %q\n", result.Document, result.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
