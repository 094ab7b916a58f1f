package deploy

import (
	"github.com/imamik/s3deploy/internal/platform/s3"
)

// configureStage enables website hosting and grants public read access.
// Both calls are applied on every run.
type configureStage struct{}

func (s *configureStage) Name() string { return StageConfigure }
func (s *configureStage) Fatal() bool  { return true }

func (s *configureStage) Run(ctx *Context) error {
	bucket := ctx.Config.Bucket
	storage := ctx.Services.Storage

	if err := storage.PutWebsite(ctx, bucket, ctx.Config.IndexDocument); err != nil {
		return configureError(bucket, err)
	}
	LogResourceConfigured(ctx.Observer, StageConfigure, bucket, "static website hosting enabled")

	if err := storage.PutPublicReadPolicy(ctx, bucket); err != nil {
		return configureError(bucket, err)
	}
	LogResourceConfigured(ctx.Observer, StageConfigure, bucket, "public read policy set")
	return nil
}

func configureError(bucket string, err error) error {
	hints := []string{"Required permissions: s3:PutBucketWebsite, s3:PutBucketPolicy"}
	if s3.IsAccessDenied(err) {
		hints = append(hints, "Block Public Access settings on the bucket or account can reject public policies")
		return newError(CategoryPermission, err, hints, "failed to configure bucket '%s'", bucket)
	}
	return newError(CategoryUnknown, err, hints, "failed to configure bucket '%s'", bucket)
}
