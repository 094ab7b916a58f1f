package deploy

import "fmt"

const defaultRegion = "us-east-1"

// WebsiteURL returns the public S3 website endpoint for bucket in region.
// us-east-1 uses a dash-separated hostname; other regions use a dot.
func WebsiteURL(bucket, region string) string {
	if region == "" || region == defaultRegion {
		return fmt.Sprintf("http://%s.s3-website-us-east-1.amazonaws.com", bucket)
	}
	return fmt.Sprintf("http://%s.s3-website.%s.amazonaws.com", bucket, region)
}

// NextSteps returns follow-up suggestions shown after a successful deployment.
func NextSteps(url string) []string {
	return []string{
		fmt.Sprintf("Visit %s to see your app", url),
		"Consider setting up CloudFront for HTTPS and better performance",
		"Set up a custom domain with Route 53 if needed",
	}
}

type reportStage struct{}

func (s *reportStage) Name() string { return StageReport }
func (s *reportStage) Fatal() bool  { return true }

func (s *reportStage) Run(ctx *Context) error {
	ctx.State.WebsiteURL = WebsiteURL(ctx.Config.Bucket, ctx.Config.Region)
	ctx.Observer.Printf("[%s] Website URL: %s", StageReport, ctx.State.WebsiteURL)
	return nil
}
