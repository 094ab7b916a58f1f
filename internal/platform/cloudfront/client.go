// Package cloudfront submits CDN cache invalidations after a publish.
package cloudfront

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

// InvalidationRequest describes one CreateInvalidation call.
type InvalidationRequest struct {
	DistributionID string
	Paths          []string

	// CallerReference makes the request idempotent on the CloudFront side.
	CallerReference string
}

// NewInvalidationRequest tags paths with a caller reference derived from now.
func NewInvalidationRequest(distributionID string, paths []string, now time.Time) InvalidationRequest {
	return InvalidationRequest{
		DistributionID:  distributionID,
		Paths:           append([]string(nil), paths...),
		CallerReference: strconv.FormatInt(now.Unix(), 10),
	}
}

// Client wraps the CloudFront API.
type Client struct {
	cf *cloudfront.Client
}

// NewClient creates a client from a resolved AWS config.
func NewClient(cfg aws.Config, optFns ...func(*cloudfront.Options)) *Client {
	return &Client{cf: cloudfront.NewFromConfig(cfg, optFns...)}
}

// CreateInvalidation submits req and returns the invalidation ID.
func (c *Client) CreateInvalidation(ctx context.Context, req InvalidationRequest) (string, error) {
	if req.DistributionID == "" {
		return "", errors.New("distribution id is required")
	}
	if len(req.Paths) == 0 {
		return "", errors.New("at least one invalidation path is required")
	}

	out, err := c.cf.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(req.DistributionID),
		InvalidationBatch: &types.InvalidationBatch{
			CallerReference: aws.String(req.CallerReference),
			Paths: &types.Paths{
				Quantity: aws.Int32(int32(len(req.Paths))),
				Items:    req.Paths,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to invalidate distribution %s: %w", req.DistributionID, err)
	}

	if out.Invalidation == nil || out.Invalidation.Id == nil {
		return "", nil
	}
	return *out.Invalidation.Id, nil
}
