package handlers

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/s3deploy/internal/deploy"
)

func TestListRegions(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, ListRegions(&buf))

	out := buf.String()
	assert.Contains(t, out, "Available AWS regions:")
	assert.Contains(t, out, "  us-east-1\n")
	assert.Contains(t, out, "  ca-central-1\n")
}

func TestRenderSummary_Success(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, &deploy.Report{
		WebsiteURL:     "http://b.s3-website-us-east-1.amazonaws.com",
		Files:          3,
		Bytes:          2048,
		Duration:       1500 * time.Millisecond,
		InvalidationID: "I1",
		Succeeded:      true,
	}, nil)

	out := buf.String()
	assert.Contains(t, out, "Deployment completed successfully!")
	assert.Contains(t, out, "Uploaded 3 files (2.0 KiB) in 1.5s")
	assert.Contains(t, out, "CloudFront invalidation: I1")
	assert.Contains(t, out, "1. Visit http://b.s3-website-us-east-1.amazonaws.com to see your app")
	assert.Contains(t, out, "3. Set up a custom domain with Route 53 if needed")
}

func TestRenderSummary_FailureWithoutHints(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, nil, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Deployment failed (unknown)")
	assert.NotContains(t, out, "This could be resolved by")
}
