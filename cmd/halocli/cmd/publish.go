package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"halo_sync/internal/domain"
)

var publishCmd = &cobra.Command{
	Use:   "publish <note.md>",
	Short: "Publish a note to the site",
	Long: `Publish a note to the site.

A note without a halo front matter key creates a new post; a note with one
updates the post it is bound to. The halo.publish flag in the front matter
overrides the publish_by_default policy from the config.

Examples:
  halocli publish posts/hello-world.md
  halocli publish --site blog notes/draft.md`,
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

		result, err := svc.Publish(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("publish %s: %w", args[0], err)
		}

		state := "draft"
		if result.Published {
			state = "published"
		}
		if result.Operation == domain.OperationCreate {
			fmt.Printf("created %q as %s (%s)\n", result.Title, result.PostName, state)
		} else {
			fmt.Printf("updated %q (%s)\n", result.Title, state)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
