package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the answers collected by [RunWizard].
type WizardResult struct {
	Bucket         string
	Region         string
	SourceDir      string
	BuildDir       string
	DistributionID string
	Profile        string
}

// RunWizard asks for the values of a deployment config interactively.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Region:    DefaultRegion,
		SourceDir: DefaultSourceDir,
		BuildDir:  DefaultBuildDir,
	}

	regionOptions := make([]huh.Option[string], 0, len(knownRegions))
	for _, r := range knownRegions {
		regionOptions = append(regionOptions, huh.NewOption(r, r))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bucket name").
				Description("Globally unique S3 bucket that will host the site").
				Placeholder("my-app-demo").
				Value(&result.Bucket).
				Validate(validateBucketAnswer),
			huh.NewSelect[string]().
				Title("Region").
				Options(regionOptions...).
				Value(&result.Region),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Application path").
				Description("Directory containing package.json").
				Value(&result.SourceDir),
			huh.NewInput().
				Title("Build output directory").
				Description("Relative to the application path").
				Value(&result.BuildDir),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("CloudFront distribution ID (optional)").
				Description("Leave empty to skip cache invalidation").
				Value(&result.DistributionID),
			huh.NewInput().
				Title("AWS profile (optional)").
				Description("Named profile from ~/.aws/config").
				Value(&result.Profile),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToDeployment converts the wizard answers to a Deployment.
func (r *WizardResult) ToDeployment() Deployment {
	return Deployment{
		Bucket:         strings.TrimSpace(r.Bucket),
		Region:         r.Region,
		Profile:        strings.TrimSpace(r.Profile),
		DistributionID: strings.TrimSpace(r.DistributionID),
		SourceDir:      strings.TrimSpace(r.SourceDir),
		BuildDir:       strings.TrimSpace(r.BuildDir),
	}
}

func validateBucketAnswer(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("bucket name is required")
	}
	return nil
}
