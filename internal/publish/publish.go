package publish

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Uploader stores one object.
type Uploader interface {
	PutObject(ctx context.Context, bucket, key, contentType string, body io.ReadSeeker, size int64) error
}

// Summary describes a completed publish.
type Summary struct {
	Files int
	Bytes int64
}

// UploadError identifies the object whose upload aborted the publish.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ProgressFunc is called after each successful upload.
type ProgressFunc func(f File, done, total int)

// Publish uploads files to bucket one at a time and stops at the first failure.
// The returned Summary counts what was uploaded before any failure.
func Publish(ctx context.Context, up Uploader, bucket string, files []File, progress ProgressFunc) (Summary, error) {
	var sum Summary

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return sum, &UploadError{Key: f.Key, Err: err}
		}
		if err := uploadFile(ctx, up, bucket, f); err != nil {
			return sum, &UploadError{Key: f.Key, Err: err}
		}

		sum.Files++
		sum.Bytes += f.Size
		if progress != nil {
			progress(f, sum.Files, len(files))
		}
	}

	return sum, nil
}

func uploadFile(ctx context.Context, up Uploader, bucket string, f File) error {
	fh, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer fh.Close()

	return up.PutObject(ctx, bucket, f.Key, f.ContentType, fh, f.Size)
}
