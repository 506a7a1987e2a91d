// Package profiles implements the CLI commands for managing site profiles.
package profiles

import (
	"github.com/spf13/cobra"
)

// Command returns the profiles parent command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage site profiles",
		Long:  `List and validate the site profiles configured for the crawler.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}
