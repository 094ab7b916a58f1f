package deploy

import (
	"errors"

	"github.com/imamik/s3deploy/internal/platform/cloudfront"
)

// invalidateStage asks CloudFront to drop cached copies of the site.
// It never fails the deployment.
type invalidateStage struct{}

func (s *invalidateStage) Name() string { return StageInvalidate }
func (s *invalidateStage) Fatal() bool  { return false }

func (s *invalidateStage) Run(ctx *Context) error {
	if !ctx.Config.InvalidationEnabled() {
		return skip("no CloudFront distribution id provided")
	}
	if ctx.Services.CDN == nil {
		return errors.New("no CloudFront client configured")
	}

	req := cloudfront.NewInvalidationRequest(ctx.Config.DistributionID, ctx.Config.InvalidationPaths, ctx.Services.Now())
	ctx.Observer.Printf("[%s] Invalidating CloudFront distribution %s (paths: %v)", StageInvalidate, req.DistributionID, req.Paths)

	id, err := ctx.Services.CDN.CreateInvalidation(ctx, req)
	if err != nil {
		return newError(CategoryUnknown, err, nil, "CloudFront invalidation failed")
	}

	ctx.State.InvalidationID = id
	LogResourceCreated(ctx.Observer, StageInvalidate, "invalidation", req.DistributionID, id)
	return nil
}
