// Package awsconfig resolves AWS credentials and region through the SDK's
// standard chain: environment variables, shared config and credentials files,
// an optional named profile, and instance roles.
package awsconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Load returns an aws.Config for region, optionally pinned to a named profile.
func Load(ctx context.Context, region, profile string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// IsProfileNotFound reports whether err came from a missing named profile.
func IsProfileNotFound(err error) bool {
	var notExist config.SharedConfigProfileNotExistError
	return errors.As(err, &notExist)
}
