package deploy

import (
	"time"

	"github.com/imamik/s3deploy/internal/platform/s3"
	"github.com/imamik/s3deploy/internal/util/retry"
)

const resourceBucket = "bucket"

// provisionStage makes sure the target bucket exists and is ours to use.
type provisionStage struct{}

func (s *provisionStage) Name() string { return StageProvision }
func (s *provisionStage) Fatal() bool  { return true }

func (s *provisionStage) Run(ctx *Context) error {
	bucket := ctx.Config.Bucket
	storage := ctx.Services.Storage

	state, err := storage.BucketStatus(ctx, bucket)
	if err != nil {
		return newError(CategoryUnknown, err, nil, "error checking bucket '%s'", bucket)
	}

	switch state {
	case s3.BucketExists:
		LogResourceExists(ctx.Observer, StageProvision, resourceBucket, bucket)
		return nil
	case s3.BucketForbidden:
		return newError(CategoryForbidden, nil, []string{
			"The bucket may belong to another AWS account",
			"Your credentials may lack s3:ListBucket on this bucket",
			"Choose a different bucket name if it is not yours",
		}, "access denied to bucket '%s': it exists under different ownership or insufficient list permission", bucket)
	}

	LogResourceCreating(ctx.Observer, StageProvision, resourceBucket, bucket)
	if err := storage.CreateBucket(ctx, bucket); err != nil {
		return classifyCreateError(bucket, err)
	}

	t := ctx.Timeouts
	err = storage.WaitUntilExists(ctx, bucket,
		retry.WithMaxRetries(t.BucketWaitAttempts),
		retry.WithInitialDelay(t.BucketWaitInitialDelay),
		retry.WithMaxDelay(t.BucketWaitMaxDelay),
		retry.WithOnRetry(func(attempt int, err error, next time.Duration) {
			ctx.Observer.Printf("[%s] bucket %s not available yet (attempt %d), retrying in %v", StageProvision, bucket, attempt, next)
		}),
	)
	if err != nil {
		return newError(CategoryUnknown, err, nil, "bucket '%s' was created but never became available", bucket)
	}

	ctx.State.BucketCreated = true
	LogResourceCreated(ctx.Observer, StageProvision, resourceBucket, bucket, "")
	return nil
}

func classifyCreateError(bucket string, err error) error {
	switch {
	case s3.IsAccessDenied(err):
		return newError(CategoryPermission, err,
			[]string{"Required permission: s3:CreateBucket"},
			"failed to create bucket '%s': insufficient permissions", bucket)
	case s3.IsBucketAlreadyExists(err):
		return newError(CategoryNameTaken, err,
			[]string{"Bucket names are globally unique; choose another name"},
			"failed to create bucket '%s': name already taken", bucket)
	case s3.IsInvalidBucketName(err):
		return newError(CategoryInvalidName, err,
			[]string{"Use 3-63 lowercase letters, digits, dots and hyphens"},
			"failed to create bucket '%s': invalid bucket name", bucket)
	default:
		return newError(CategoryUnknown, err, []string{
			"Insufficient permissions (s3:CreateBucket)",
			"Bucket name already taken (must be globally unique)",
			"Invalid bucket name",
		}, "failed to create bucket '%s'", bucket)
	}
}

