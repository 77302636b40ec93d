package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull [post-name]",
	Short: "Create a new note from a remote post",
	Long: `Create a new note in the vault from a remote post. Without an
argument the remote posts are listed for interactive selection. The new note
is named after the post title and fails if a note with that name exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := selectSite()
		if err != nil {
			return err
		}
		svc, err := newService(site)
		if err != nil {
			return err
		}

		var postName string
		if len(args) == 1 {
			postName = args[0]
		} else {
			postName, err = selectPost(cmd, svc)
			if err != nil {
				return err
			}
		}

		result, err := svc.Pull(cmd.Context(), postName)
		if err != nil {
			return fmt.Errorf("pull %s: %w", postName, err)
		}

		fmt.Printf("pulled %q into %s\n", result.Title, result.Document)
		return nil
	},
}

func selectPost(cmd *cobra.Command, svc postLister) (string, error) {
	posts, err := svc.ListPosts(cmd.Context())
	if err != nil {
		return "", err
	}
	if len(posts) == 0 {
		return "", fmt.Errorf("no posts on the site")
	}

	options := make([]huh.Option[string], len(posts))
	for i, p := range posts {
		label := fmt.Sprintf("%s (%s)", p.Post.Spec.Title, p.Post.Spec.Slug)
		options[i] = huh.NewOption(label, p.Post.Metadata.Name)
	}

	var chosen string
	if err := huh.NewSelect[string]().
		Title("Choose a post to pull").
		Options(options...).
		Value(&chosen).
		Run(); err != nil {
		return "", fmt.Errorf("post selection: %w", err)
	}
	return chosen, nil
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
