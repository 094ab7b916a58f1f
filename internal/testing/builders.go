package testing

import (
	"github.com/imamik/s3deploy/internal/config"
)

// DeploymentBuilder provides a fluent interface for constructing test deployments.
// Each method returns a new builder (immutable) for chaining.
type DeploymentBuilder struct {
	cfg config.Deployment
}

// NewDeploymentBuilder creates a new DeploymentBuilder with sensible defaults.
func NewDeploymentBuilder() *DeploymentBuilder {
	return &DeploymentBuilder{
		cfg: config.Deployment{
			Bucket:    "test-site",
			Region:    config.DefaultRegion,
			SourceDir: ".",
		},
	}
}

// WithBucket sets the bucket name.
func (b *DeploymentBuilder) WithBucket(bucket string) *DeploymentBuilder {
	nb := b.clone()
	nb.cfg.Bucket = bucket
	return nb
}

// WithRegion sets the region.
func (b *DeploymentBuilder) WithRegion(region string) *DeploymentBuilder {
	nb := b.clone()
	nb.cfg.Region = region
	return nb
}

// WithSourceDir sets the application directory.
func (b *DeploymentBuilder) WithSourceDir(dir string) *DeploymentBuilder {
	nb := b.clone()
	nb.cfg.SourceDir = dir
	return nb
}

// WithBuildDir sets the build output directory name.
func (b *DeploymentBuilder) WithBuildDir(dir string) *DeploymentBuilder {
	nb := b.clone()
	nb.cfg.BuildDir = dir
	return nb
}

// WithDistribution sets the CloudFront distribution and optional paths.
func (b *DeploymentBuilder) WithDistribution(id string, paths ...string) *DeploymentBuilder {
	nb := b.clone()
	nb.cfg.DistributionID = id
	if len(paths) > 0 {
		nb.cfg.InvalidationPaths = append([]string(nil), paths...)
	}
	return nb
}

// Build returns the deployment with defaults applied.
func (b *DeploymentBuilder) Build() config.Deployment {
	return b.cfg.WithDefaults()
}

func (b *DeploymentBuilder) clone() *DeploymentBuilder {
	cfg := b.cfg
	cfg.InvalidationPaths = append([]string(nil), b.cfg.InvalidationPaths...)
	return &DeploymentBuilder{cfg: cfg}
}
