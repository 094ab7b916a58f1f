package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/s3deploy/cmd/s3deploy/handlers"
	"github.com/imamik/s3deploy/internal/config"
)

// Init returns the command for interactively creating a deployment configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "s3deploy.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

The wizard asks for the bucket name, region, application path, build
output directory, and optionally a CloudFront distribution ID and AWS
profile. Pass the resulting file to s3deploy with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
