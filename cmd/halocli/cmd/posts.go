package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"halo_sync/internal/halo"
)

type postLister interface {
	ListPosts(ctx context.Context) ([]halo.ListedPost, error)
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the posts on the site",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := selectSite()
		if err != nil {
			return err
		}

		svc, err := newService(site)
		if err != nil {
			return err
		}

		posts, err := svc.ListPosts(cmd.Context())
		if err != nil {
			return err
		}

		for _, p := range posts {
			state := "draft"
			if p.Post.Spec.Publish {
				state = "published"
			}
			fmt.Printf("%-36s  %-9s  %s\n", p.Post.Metadata.Name, state, p.Post.Spec.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
}
