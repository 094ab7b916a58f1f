// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr/funcr"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/imamik/s3deploy/internal/build"
	"github.com/imamik/s3deploy/internal/config"
	"github.com/imamik/s3deploy/internal/deploy"
	"github.com/imamik/s3deploy/internal/metrics"
	"github.com/imamik/s3deploy/internal/platform/awsconfig"
	"github.com/imamik/s3deploy/internal/platform/cloudfront"
	"github.com/imamik/s3deploy/internal/platform/s3"
	"github.com/imamik/s3deploy/internal/ui/tui"
	"github.com/imamik/s3deploy/internal/util/prerequisites"
)

// DeployOptions carries the command-line inputs of a deployment.
type DeployOptions struct {
	// ConfigPath is an optional YAML file; Overrides win over its values.
	ConfigPath string
	Overrides  config.Deployment

	LogFormat   string // "text" or "json"
	TUI         bool
	MetricsFile string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads a deployment config file.
	loadConfigFile = config.Load

	// loadAWSConfig resolves credentials and region.
	loadAWSConfig = awsconfig.Load

	// newStorage creates the S3 client.
	newStorage = func(cfg aws.Config) deploy.Storage {
		return s3.NewClient(cfg)
	}

	// newCDN creates the CloudFront client.
	newCDN = func(cfg aws.Config) deploy.CDN {
		return cloudfront.NewClient(cfg)
	}

	// newToolchain creates the local tool checker.
	newToolchain = func() deploy.Toolchain {
		return prerequisites.NewChecker(prerequisites.NodeTools())
	}

	// newBuilder creates the npm build runner.
	newBuilder = func() deploy.Builder {
		return build.NewRunner()
	}

	// runTUI runs the deployment behind the progress view.
	runTUI = tui.RunDeployTUI

	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	newRunID = uuid.NewString

	now = time.Now

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Deploy builds the application and publishes it to S3.
//
// The workflow:
//  1. Merges the optional config file with command-line overrides and applies defaults
//  2. Resolves AWS credentials for the region and profile
//  3. Runs the deployment stages, with a console, JSON, or TUI observer
//  4. Writes Prometheus metrics if requested
//  5. Prints a summary with the website URL or the failure hints
//
// A non-nil error means the process should exit with status 1.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := resolveDeployment(opts)
	if err != nil {
		return err
	}

	if !config.IsKnownRegion(cfg.Region) {
		fmt.Fprintf(stderr, "Warning: region %q is not in the list of known regions (see s3deploy regions)\n", cfg.Region)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		if awsconfig.IsProfileNotFound(err) {
			return fmt.Errorf("AWS profile %q not found: %w", cfg.Profile, err)
		}
		return err
	}

	services := deploy.Services{
		Storage:   newStorage(awsCfg),
		Toolchain: newToolchain(),
		Builder:   newBuilder(),
		Now:       now,
	}
	if cfg.InvalidationEnabled() {
		services.CDN = newCDN(awsCfg)
	}

	stages := deploy.DefaultStages()
	runID := newRunID()
	run := func(ctx context.Context, obs deploy.Observer) (*deploy.Report, error) {
		return deploy.Run(deploy.NewContext(ctx, runID, cfg, services, obs), stages)
	}

	var report *deploy.Report
	var runErr error
	if opts.TUI && isTerminal() {
		report, runErr = runTUI(ctx, cfg.Bucket, cfg.Region, tui.StageNames(stages), run)
	} else {
		if opts.LogFormat != "json" {
			printHeader(stdout, cfg)
		}
		report, runErr = run(ctx, newObserver(opts.LogFormat, stderr))
	}

	if opts.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(report, now().Unix())
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}

	if opts.LogFormat != "json" {
		renderSummary(stdout, report, runErr)
	}
	return runErr
}

// resolveDeployment merges file and flag values, applies defaults, and
// validates the result. The source path is made absolute. A relative path
// from the config file is taken relative to that file; one from a flag is
// taken relative to the working directory.
func resolveDeployment(opts DeployOptions) (config.Deployment, error) {
	var cfg config.Deployment
	if opts.ConfigPath != "" {
		fileCfg, err := loadConfigFile(opts.ConfigPath)
		if err != nil {
			return config.Deployment{}, err
		}
		if fileCfg.SourceDir != "" && !filepath.IsAbs(fileCfg.SourceDir) {
			fileCfg.SourceDir = filepath.Join(filepath.Dir(opts.ConfigPath), fileCfg.SourceDir)
		}
		cfg = fileCfg
	}
	cfg = cfg.Merge(opts.Overrides).WithDefaults()

	abs, err := filepath.Abs(cfg.SourceDir)
	if err != nil {
		return config.Deployment{}, fmt.Errorf("failed to resolve path %s: %w", cfg.SourceDir, err)
	}
	cfg.SourceDir = abs

	if err := cfg.Validate(); err != nil {
		return config.Deployment{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newObserver picks the event sink for a non-interactive run.
func newObserver(format string, w io.Writer) deploy.Observer {
	if format == "json" {
		logger := funcr.NewJSON(func(obj string) {
			fmt.Fprintln(w, obj)
		}, funcr.Options{LogTimestamp: true})
		return deploy.NewLogrObserver(logger)
	}
	return deploy.NewConsoleObserver()
}

func printHeader(w io.Writer, cfg config.Deployment) {
	fmt.Fprintln(w, titleStyle.Render("Starting deployment to S3..."))
	fmt.Fprintf(w, "Bucket: %s\n", cfg.Bucket)
	fmt.Fprintf(w, "Region: %s\n", cfg.Region)
	fmt.Fprintf(w, "App path: %s\n", cfg.SourceDir)
	if cfg.InvalidationEnabled() {
		fmt.Fprintf(w, "CloudFront distribution: %s\n", cfg.DistributionID)
	}
	fmt.Fprintln(w, dimStyle.Render("--------------------------------------------------"))
}
