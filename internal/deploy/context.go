package deploy

import (
	"context"
	"time"

	"github.com/imamik/s3deploy/internal/build"
	"github.com/imamik/s3deploy/internal/config"
	"github.com/imamik/s3deploy/internal/platform/cloudfront"
	"github.com/imamik/s3deploy/internal/platform/s3"
	"github.com/imamik/s3deploy/internal/publish"
	"github.com/imamik/s3deploy/internal/util/prerequisites"
	"github.com/imamik/s3deploy/internal/util/retry"
)

// Storage is the object-storage surface the pipeline needs.
// Implemented by internal/platform/s3.Client.
type Storage interface {
	CheckAccess(ctx context.Context) error
	BucketStatus(ctx context.Context, bucket string) (s3.BucketState, error)
	CreateBucket(ctx context.Context, bucket string) error
	WaitUntilExists(ctx context.Context, bucket string, opts ...retry.Option) error
	PutWebsite(ctx context.Context, bucket, indexDocument string) error
	PutPublicReadPolicy(ctx context.Context, bucket string) error
	publish.Uploader
}

// CDN submits cache invalidations.
// Implemented by internal/platform/cloudfront.Client.
type CDN interface {
	CreateInvalidation(ctx context.Context, req cloudfront.InvalidationRequest) (string, error)
}

// Toolchain verifies the local build tools.
// Implemented by internal/util/prerequisites.Checker.
type Toolchain interface {
	Check(ctx context.Context) *prerequisites.CheckResults
}

// Builder installs dependencies and builds the application.
// Implemented by internal/build.Runner.
type Builder interface {
	Install(ctx context.Context, sourceDir string) error
	Build(ctx context.Context, sourceDir, outputDir string) (build.Artifact, error)
}

// Services bundles the external collaborators of a run.
// CDN may be nil when no distribution is configured.
type Services struct {
	Storage   Storage
	CDN       CDN
	Toolchain Toolchain
	Builder   Builder
	Now       func() time.Time
}

// State holds what earlier stages produced for later ones.
type State struct {
	Artifact       build.Artifact
	BucketCreated  bool
	Files          int
	Bytes          int64
	InvalidationID string
	WebsiteURL     string
}

// Context wraps all dependencies and state needed by a stage.
type Context struct {
	context.Context
	RunID    string
	Config   config.Deployment
	Services Services
	State    *State
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a deployment context. cfg is copied and must already be
// defaulted and validated.
func NewContext(ctx context.Context, runID string, cfg config.Deployment, services Services, observer Observer) *Context {
	if services.Now == nil {
		services.Now = time.Now
	}
	if observer == nil {
		observer = NewConsoleObserver()
	}
	return &Context{
		Context:  ctx,
		RunID:    runID,
		Config:   cfg,
		Services: services,
		State:    &State{},
		Observer: observer.WithFields(map[string]string{"run_id": runID, "bucket": cfg.Bucket}),
		Timeouts: config.LoadTimeouts(),
	}
}
