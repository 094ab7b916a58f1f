// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imamik/s3deploy/cmd/s3deploy/handlers"
	"github.com/imamik/s3deploy/internal/config"
)

// deployFlags holds the raw flag values of the root command.
type deployFlags struct {
	bucket         string
	path           string
	region         string
	profile        string
	distributionID string
	buildDir       string
	invalidate     []string
	configPath     string
	logFormat      string
	tui            bool
	metricsFile    string
	listRegions    bool
}

// Root returns the root command for the s3deploy CLI.
//
// Without a subcommand it runs a deployment: preflight checks, build, bucket
// provisioning, website configuration, upload, optional CloudFront
// invalidation, and the final URL report.
func Root() *cobra.Command {
	f := &deployFlags{}

	cmd := &cobra.Command{
		Use:   "s3deploy",
		Short: "Build a web app and deploy it to an S3 static website",
		Long: `Build a Node.js web application and deploy it to AWS S3.

s3deploy runs npm install and npm run build, creates the bucket if needed,
enables static website hosting with a public read policy, uploads the build
output, and optionally invalidates a CloudFront distribution.

Values can also be read from a YAML file (--config). Flags given on the
command line override values from the file.`,
		Example: `  s3deploy --bucket my-app-demo
  s3deploy -b my-app-demo -p ./web --region eu-west-1 -d E2EXAMPLE
  s3deploy --config s3deploy.yaml --tui`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.listRegions {
				return handlers.ListRegions(cmd.OutOrStdout())
			}
			if f.logFormat != "text" && f.logFormat != "json" {
				return fmt.Errorf("invalid --log-format %q: must be text or json", f.logFormat)
			}
			return handlers.Deploy(cmd.Context(), handlers.DeployOptions{
				ConfigPath:  f.configPath,
				Overrides:   overridesFromFlags(cmd.Flags(), f),
				LogFormat:   f.logFormat,
				TUI:         f.tui,
				MetricsFile: f.metricsFile,
			})
		},
	}

	bindDeployFlags(cmd.Flags(), f)

	cmd.AddCommand(Init())
	cmd.AddCommand(Regions())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

func bindDeployFlags(fs *pflag.FlagSet, f *deployFlags) {
	fs.StringVarP(&f.bucket, "bucket", "b", "", "S3 bucket name (must be globally unique)")
	fs.StringVarP(&f.path, "path", "p", config.DefaultSourceDir, "Path to the application directory")
	fs.StringVar(&f.region, "region", config.DefaultRegion, "AWS region")
	fs.StringVar(&f.profile, "profile", "", "AWS profile name")
	fs.StringVarP(&f.distributionID, "distribution-id", "d", "", "CloudFront distribution ID to invalidate after deploy")
	fs.BoolVar(&f.listRegions, "list-regions", false, "List available AWS regions")

	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file")
	fs.StringVar(&f.buildDir, "build-dir", config.DefaultBuildDir, "Build output directory, relative to --path")
	fs.StringArrayVar(&f.invalidate, "invalidate-path", nil, "CloudFront path to invalidate (repeatable, default /*)")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format: text or json")
	fs.BoolVar(&f.tui, "tui", false, "Show an interactive progress view (terminal only)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
}

// overridesFromFlags returns only the values set explicitly on the command
// line, so flag defaults never mask values from a config file.
func overridesFromFlags(fs *pflag.FlagSet, f *deployFlags) config.Deployment {
	var d config.Deployment
	if fs.Changed("bucket") {
		d.Bucket = f.bucket
	}
	if fs.Changed("path") {
		d.SourceDir = f.path
	}
	if fs.Changed("region") {
		d.Region = f.region
	}
	if fs.Changed("profile") {
		d.Profile = f.profile
	}
	if fs.Changed("distribution-id") {
		d.DistributionID = f.distributionID
	}
	if fs.Changed("build-dir") {
		d.BuildDir = f.buildDir
	}
	if fs.Changed("invalidate-path") {
		d.InvalidationPaths = append([]string(nil), f.invalidate...)
	}
	return d
}
