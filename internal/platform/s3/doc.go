// Package s3 wraps the Amazon S3 API calls a static-site deployment needs.
//
// It checks that credentials can list buckets, classifies HeadBucket into
// exists, missing, or forbidden, creates buckets with the right location
// constraint and waits until they answer, configures website hosting and a
// public-read policy, and uploads objects with an explicit content type.
package s3
