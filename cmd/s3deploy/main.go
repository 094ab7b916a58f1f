// Package main is the entry point for the s3deploy CLI.
//
// s3deploy builds a Node.js web application and publishes the build output to
// an S3 bucket configured for static website hosting, optionally invalidating
// a CloudFront distribution afterward.
//
// Commands: init, regions, version, completion. Running s3deploy without a
// subcommand performs a deployment.
//
// For detailed usage information, run:
//
//	s3deploy --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/s3deploy/cmd/s3deploy/commands"
	"github.com/imamik/s3deploy/internal/deploy"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Interrupts cancel the run between stages and abort in-flight AWS calls.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(deploy.ExitCode(err))
	}
}
