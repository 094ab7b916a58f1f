package deploy

import (
	"fmt"

	"github.com/imamik/s3deploy/internal/platform/s3"
	"github.com/imamik/s3deploy/internal/publish"
)

// publishStage uploads the build output. Objects uploaded before a failure
// are left in place.
type publishStage struct{}

func (s *publishStage) Name() string { return StagePublish }
func (s *publishStage) Fatal() bool  { return true }

func (s *publishStage) Run(ctx *Context) error {
	root := ctx.State.Artifact.Dir
	if root == "" {
		root = ctx.Config.BuildOutputDir()
	}

	files, err := publish.Walk(root)
	if err != nil {
		return newError(CategoryNotFound, err, nil, "failed to read build output")
	}
	ctx.Observer.Printf("[%s] Uploading %d files to %s...", StagePublish, len(files), ctx.Config.Bucket)

	sum, err := publish.Publish(ctx, ctx.Services.Storage, ctx.Config.Bucket, files, func(f publish.File, done, total int) {
		LogObjectUploaded(ctx.Observer, StagePublish, f.Key, f.ContentType)
		ctx.Observer.Progress(StagePublish, done, total)
	})
	ctx.State.Files = sum.Files
	ctx.State.Bytes = sum.Bytes
	if err != nil {
		hints := []string{"Required permission: s3:PutObject"}
		if s3.IsAccessDenied(err) {
			return newError(CategoryPermission, err, hints, "failed to upload files")
		}
		return newError(CategoryUnknown, err, hints, "failed to upload files")
	}

	LogCheckPassed(ctx.Observer, StagePublish, fmt.Sprintf("%d files uploaded (%d bytes)", sum.Files, sum.Bytes))
	return nil
}
