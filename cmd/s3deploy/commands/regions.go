package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/s3deploy/cmd/s3deploy/handlers"
)

// Regions returns the command that lists known AWS regions.
func Regions() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List available AWS regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListRegions(cmd.OutOrStdout())
		},
	}
}
