package config

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultRegion is the AWS primary region.
	DefaultRegion = "us-east-1"

	// DefaultSourceDir is the application directory used when none is given.
	DefaultSourceDir = "."

	// DefaultBuildDir is the build output directory relative to the source directory.
	DefaultBuildDir = "build"

	// DefaultIndexDocument serves both as index and error document so that
	// client-side routes resolve to the application shell.
	DefaultIndexDocument = "index.html"

	// DefaultConfigFilename is the file written by init and read by --config.
	DefaultConfigFilename = "s3deploy.yaml"
)

// DefaultInvalidationPaths matches every cached object.
var DefaultInvalidationPaths = []string{"/*"}

// Deployment holds everything one deployment run needs to know.
type Deployment struct {
	// Bucket must be globally unique within S3.
	Bucket string `yaml:"bucket"`

	Region string `yaml:"region,omitempty"`

	// Profile selects a named profile from the shared AWS config files.
	Profile string `yaml:"profile,omitempty"`

	// DistributionID enables CloudFront invalidation when set.
	DistributionID string `yaml:"distributionId,omitempty"`

	SourceDir string `yaml:"path,omitempty"`
	BuildDir  string `yaml:"buildDir,omitempty"`

	IndexDocument     string   `yaml:"indexDocument,omitempty"`
	InvalidationPaths []string `yaml:"invalidationPaths,omitempty"`
}

// WithDefaults returns a copy with surrounding whitespace removed from the
// AWS identifiers and every empty field set to its default.
func (d Deployment) WithDefaults() Deployment {
	d.Bucket = strings.TrimSpace(d.Bucket)
	d.Region = strings.TrimSpace(d.Region)
	d.Profile = strings.TrimSpace(d.Profile)
	d.DistributionID = strings.TrimSpace(d.DistributionID)

	if d.Region == "" {
		d.Region = DefaultRegion
	}
	if d.SourceDir == "" {
		d.SourceDir = DefaultSourceDir
	}
	if d.BuildDir == "" {
		d.BuildDir = DefaultBuildDir
	}
	if d.IndexDocument == "" {
		d.IndexDocument = DefaultIndexDocument
	}
	if len(d.InvalidationPaths) == 0 {
		d.InvalidationPaths = append([]string(nil), DefaultInvalidationPaths...)
	}
	return d
}

// Merge returns d with every non-empty field of override applied on top.
func (d Deployment) Merge(override Deployment) Deployment {
	if override.Bucket != "" {
		d.Bucket = override.Bucket
	}
	if override.Region != "" {
		d.Region = override.Region
	}
	if override.Profile != "" {
		d.Profile = override.Profile
	}
	if override.DistributionID != "" {
		d.DistributionID = override.DistributionID
	}
	if override.SourceDir != "" {
		d.SourceDir = override.SourceDir
	}
	if override.BuildDir != "" {
		d.BuildDir = override.BuildDir
	}
	if override.IndexDocument != "" {
		d.IndexDocument = override.IndexDocument
	}
	if len(override.InvalidationPaths) > 0 {
		d.InvalidationPaths = append([]string(nil), override.InvalidationPaths...)
	}
	return d
}

// BuildOutputDir returns the directory the build is expected to produce.
func (d Deployment) BuildOutputDir() string {
	return filepath.Join(d.SourceDir, d.BuildDir)
}

// InvalidationEnabled reports whether a CloudFront distribution was configured.
func (d Deployment) InvalidationEnabled() bool {
	return d.DistributionID != ""
}
