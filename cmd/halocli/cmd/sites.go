package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the configured sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Sites) == 0 {
			fmt.Println("no sites configured")
			return nil
		}

		for _, site := range cfg.Sites {
			marker := " "
			if site.Default {
				marker = "*"
			}
			fmt.Printf("%s %-16s %s\n", marker, site.Name, site.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
