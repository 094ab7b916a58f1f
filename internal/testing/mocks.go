package testing

import (
	"context"
	"io"

	"github.com/imamik/s3deploy/internal/build"
	"github.com/imamik/s3deploy/internal/platform/cloudfront"
	"github.com/imamik/s3deploy/internal/platform/s3"
	"github.com/imamik/s3deploy/internal/util/prerequisites"
	"github.com/imamik/s3deploy/internal/util/retry"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock of the bucket and object operations used by a deployment.
type MockStorage struct {
	mock.Mock
}

// CheckAccess mocks the credential probe.
func (m *MockStorage) CheckAccess(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// BucketStatus mocks HeadBucket classification.
func (m *MockStorage) BucketStatus(ctx context.Context, bucket string) (s3.BucketState, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(s3.BucketState), args.Error(1)
}

// CreateBucket mocks bucket creation.
func (m *MockStorage) CreateBucket(ctx context.Context, bucket string) error {
	return m.Called(ctx, bucket).Error(0)
}

// WaitUntilExists mocks the post-create wait. Retry options are not recorded.
func (m *MockStorage) WaitUntilExists(ctx context.Context, bucket string, _ ...retry.Option) error {
	return m.Called(ctx, bucket).Error(0)
}

// PutWebsite mocks website configuration.
func (m *MockStorage) PutWebsite(ctx context.Context, bucket, indexDocument string) error {
	return m.Called(ctx, bucket, indexDocument).Error(0)
}

// PutPublicReadPolicy mocks the bucket policy call.
func (m *MockStorage) PutPublicReadPolicy(ctx context.Context, bucket string) error {
	return m.Called(ctx, bucket).Error(0)
}

// PutObject mocks an upload. The body is not read.
func (m *MockStorage) PutObject(ctx context.Context, bucket, key, contentType string, _ io.ReadSeeker, size int64) error {
	return m.Called(ctx, bucket, key, contentType, size).Error(0)
}

// MockCDN is a mock CloudFront client.
type MockCDN struct {
	mock.Mock
}

// CreateInvalidation mocks an invalidation request and returns its ID.
func (m *MockCDN) CreateInvalidation(ctx context.Context, req cloudfront.InvalidationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockToolchain is a mock local tool checker.
type MockToolchain struct {
	mock.Mock
}

// Check mocks the toolchain check.
func (m *MockToolchain) Check(ctx context.Context) *prerequisites.CheckResults {
	return m.Called(ctx).Get(0).(*prerequisites.CheckResults)
}

// MockBuilder is a mock application builder.
type MockBuilder struct {
	mock.Mock
}

// Install mocks dependency installation.
func (m *MockBuilder) Install(ctx context.Context, sourceDir string) error {
	return m.Called(ctx, sourceDir).Error(0)
}

// Build mocks the application build.
func (m *MockBuilder) Build(ctx context.Context, sourceDir, outputDir string) (build.Artifact, error) {
	args := m.Called(ctx, sourceDir, outputDir)
	return args.Get(0).(build.Artifact), args.Error(1)
}
