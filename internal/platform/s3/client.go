package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/imamik/s3deploy/internal/util/retry"
)

// primaryRegion is the only region where CreateBucket must omit the
// location constraint.
const primaryRegion = "us-east-1"

// BucketState is the outcome of a bucket existence check.
type BucketState int

const (
	// BucketExists means HeadBucket succeeded.
	BucketExists BucketState = iota
	// BucketMissing means S3 answered 404.
	BucketMissing
	// BucketForbidden means the bucket exists but this principal may not access it.
	BucketForbidden
)

func (s BucketState) String() string {
	switch s {
	case BucketExists:
		return "exists"
	case BucketMissing:
		return "missing"
	case BucketForbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("BucketState(%d)", int(s))
	}
}

// Client wraps the S3 client for a single region.
type Client struct {
	s3     *s3.Client
	region string
}

// NewClient creates a client from a resolved AWS config.
func NewClient(cfg aws.Config, optFns ...func(*s3.Options)) *Client {
	return &Client{
		s3:     s3.NewFromConfig(cfg, optFns...),
		region: cfg.Region,
	}
}

// Region returns the region buckets are created in.
func (c *Client) Region() string {
	return c.region
}

// CheckAccess lists buckets as a minimal proof that credentials work.
// It does not prove the create and write permissions needed later.
func (c *Client) CheckAccess(ctx context.Context) error {
	if _, err := c.s3.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}
	return nil
}

// BucketStatus reports whether bucketName exists and is accessible.
// Errors other than not-found and forbidden are returned as-is.
func (c *Client) BucketStatus(ctx context.Context, bucketName string) (BucketState, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	switch {
	case err == nil:
		return BucketExists, nil
	case IsNotFound(err):
		return BucketMissing, nil
	case IsForbidden(err):
		return BucketForbidden, nil
	default:
		return BucketMissing, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
}

// CreateBucket creates bucketName in the client's region.
// Returns nil if the bucket already exists and is owned by us.
func (c *Client) CreateBucket(ctx context.Context, bucketName string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}
	if c.region != "" && c.region != primaryRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}

	if _, err := c.s3.CreateBucket(ctx, input); err != nil {
		if IsBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}
	return nil
}

// WaitUntilExists polls HeadBucket with exponential backoff until the bucket
// is visible. A forbidden answer stops the poll.
func (c *Client) WaitUntilExists(ctx context.Context, bucketName string, opts ...retry.Option) error {
	err := retry.WithExponentialBackoff(ctx, func() error {
		state, err := c.BucketStatus(ctx, bucketName)
		if err != nil {
			return err
		}
		switch state {
		case BucketExists:
			return nil
		case BucketForbidden:
			return retry.Fatal(fmt.Errorf("access to bucket %s denied while waiting", bucketName))
		default:
			return fmt.Errorf("bucket %s not available yet", bucketName)
		}
	}, opts...)
	if err != nil {
		return fmt.Errorf("bucket %s did not become available: %w", bucketName, err)
	}
	return nil
}

// PutWebsite enables static website hosting. indexDocument is used as both
// index and error document.
func (c *Client) PutWebsite(ctx context.Context, bucketName, indexDocument string) error {
	_, err := c.s3.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: aws.String(bucketName),
		WebsiteConfiguration: &types.WebsiteConfiguration{
			IndexDocument: &types.IndexDocument{Suffix: aws.String(indexDocument)},
			ErrorDocument: &types.ErrorDocument{Key: aws.String(indexDocument)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to configure website hosting on %s: %w", bucketName, err)
	}
	return nil
}

// PutPublicReadPolicy attaches a policy allowing anonymous GetObject on every object.
func (c *Client) PutPublicReadPolicy(ctx context.Context, bucketName string) error {
	policy, err := PublicReadPolicy(bucketName)
	if err != nil {
		return err
	}
	_, err = c.s3.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucketName),
		Policy: aws.String(policy),
	})
	if err != nil {
		return fmt.Errorf("failed to set bucket policy on %s: %w", bucketName, err)
	}
	return nil
}

// PutObject uploads body to key. An empty contentType leaves the header unset
// so S3 applies its default.
func (c *Client) PutObject(ctx context.Context, bucketName, key, contentType string, body io.ReadSeeker, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, bucketName, err)
	}
	return nil
}

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Sid       string `json:"Sid"`
	Effect    string `json:"Effect"`
	Principal string `json:"Principal"`
	Action    string `json:"Action"`
	Resource  string `json:"Resource"`
}

// PublicReadPolicy renders the bucket policy JSON granting public read.
func PublicReadPolicy(bucketName string) (string, error) {
	doc := policyDocument{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Sid:       "PublicReadGetObject",
			Effect:    "Allow",
			Principal: "*",
			Action:    "s3:GetObject",
			Resource:  fmt.Sprintf("arn:aws:s3:::%s/*", bucketName),
		}},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode bucket policy: %w", err)
	}
	return string(data), nil
}
