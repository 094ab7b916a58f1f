package deploy

import (
	"fmt"
	"os"
	"strings"

	"github.com/imamik/s3deploy/internal/platform/s3"
)

// RequiredPermissions lists the S3 actions a full deployment performs.
var RequiredPermissions = []string{
	"s3:ListBucket",
	"s3:CreateBucket",
	"s3:PutBucketWebsite",
	"s3:PutBucketPolicy",
	"s3:PutObject",
}

var credentialHints = []string{
	"Run 'aws configure'",
	"Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables",
	"Use --profile with a named profile",
}

// preflightStage verifies credentials, the local toolchain, and the source
// directory before anything is built or created.
type preflightStage struct{}

func (s *preflightStage) Name() string { return StagePreflight }
func (s *preflightStage) Fatal() bool  { return true }

func (s *preflightStage) Run(ctx *Context) error {
	if err := checkAccess(ctx); err != nil {
		return err
	}
	if err := checkToolchain(ctx); err != nil {
		return err
	}
	return checkSourceDir(ctx)
}

// checkAccess lists buckets as a minimal proxy for having usable credentials.
// Write permissions are only discovered by the stages that need them.
func checkAccess(ctx *Context) error {
	err := ctx.Services.Storage.CheckAccess(ctx)
	switch {
	case err == nil:
		LogCheckPassed(ctx.Observer, StagePreflight, "AWS credentials have sufficient permissions")
		return nil
	case s3.IsCredentialsError(err):
		return newError(CategoryCredentials, err, credentialHints, "AWS credentials error")
	case s3.IsAccessDenied(err):
		return newError(CategoryPermission, err,
			[]string{"Required permissions: " + strings.Join(RequiredPermissions, ", ")},
			"AWS credentials don't have sufficient permissions")
	default:
		return newError(CategoryUnknown, err, nil, "AWS permissions check failed")
	}
}

func checkToolchain(ctx *Context) error {
	results := ctx.Services.Toolchain.Check(ctx)
	for _, r := range results.Results {
		if r.Found {
			LogCheckPassed(ctx.Observer, StagePreflight, fmt.Sprintf("%s found: %s", r.Tool.DisplayName, r.Version))
		}
	}
	if !results.HasErrors() {
		return nil
	}

	var hints []string
	seen := map[string]bool{}
	for _, t := range results.Missing {
		if t.Required && t.InstallURL != "" && !seen[t.InstallURL] {
			seen[t.InstallURL] = true
			hints = append(hints, fmt.Sprintf("Install %s from %s", t.DisplayName, t.InstallURL))
		}
	}
	return newError(CategoryToolchain, results.Error(), hints, "build toolchain is not installed")
}

func checkSourceDir(ctx *Context) error {
	dir := ctx.Config.SourceDir
	info, err := os.Stat(dir)
	if err != nil {
		return newError(CategoryNotFound, err, nil, "application directory not found: %s", dir)
	}
	if !info.IsDir() {
		return newError(CategoryNotFound, nil, nil, "application path is not a directory: %s", dir)
	}
	LogCheckPassed(ctx.Observer, StagePreflight, "application directory found: "+dir)
	return nil
}
