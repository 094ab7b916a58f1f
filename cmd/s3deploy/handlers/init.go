package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/s3deploy/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive form.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.Write
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToDeployment()
	if err := writeConfig(outputPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout, titleStyle.Render("s3deploy - static sites on AWS S3"))
	fmt.Fprintln(stdout, "This wizard will help you create a deployment configuration.")
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, cfg config.Deployment) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s %s\n", successStyle.Render("Configuration written to"), outputPath)
	fmt.Fprintf(stdout, "  bucket: %s\n", cfg.Bucket)
	if cfg.Region != "" {
		fmt.Fprintf(stdout, "  region: %s\n", cfg.Region)
	}
	if cfg.DistributionID != "" {
		fmt.Fprintf(stdout, "  distribution: %s\n", cfg.DistributionID)
	}
	fmt.Fprintln(stdout, "\nNext steps:")
	fmt.Fprintf(stdout, "  s3deploy --config %s\n", outputPath)
}
