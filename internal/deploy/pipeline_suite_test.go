package deploy_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/imamik/s3deploy/internal/build"
	"github.com/imamik/s3deploy/internal/config"
	"github.com/imamik/s3deploy/internal/deploy"
	"github.com/imamik/s3deploy/internal/platform/s3"
	dtesting "github.com/imamik/s3deploy/internal/testing"
)

// quietObserver drops everything so ginkgo output stays readable.
type quietObserver struct{}

func (quietObserver) Printf(string, ...interface{})                  {}
func (quietObserver) Event(deploy.Event)                             {}
func (quietObserver) Progress(string, int, int)                      {}
func (q quietObserver) WithFields(map[string]string) deploy.Observer { return q }

var _ = Describe("Deployment pipeline", func() {
	var (
		site      *dtesting.SiteFixture
		storage   *dtesting.MockStorage
		cdn       *dtesting.MockCDN
		cfg       config.Deployment
		services  deploy.Services
		newRunCtx func() *deploy.Context
	)

	BeforeEach(func() {
		site = dtesting.NewSiteFixture(GinkgoT(), map[string]string{
			"index.html":      "<html></html>",
			"static/main.js":  "run()",
			"static/main.css": "a{}",
		})
		storage = &dtesting.MockStorage{}
		cdn = &dtesting.MockCDN{}
		cfg = dtesting.NewDeploymentBuilder().
			WithBucket("my-app-demo").
			WithRegion("us-east-1").
			WithSourceDir(site.SourceDir).
			Build()
		services = deploy.Services{
			Storage:   storage,
			CDN:       cdn,
			Toolchain: dtesting.InstalledToolchain(),
			Builder:   site.Builder(),
			Now:       func() time.Time { return time.Unix(1700000000, 0) },
		}
		newRunCtx = func() *deploy.Context {
			return deploy.NewContext(context.Background(), "suite", cfg, services, quietObserver{})
		}
	})

	Context("with an existing accessible bucket", func() {
		BeforeEach(func() {
			storage.On("CheckAccess", mock.Anything).Return(nil)
			storage.On("BucketStatus", mock.Anything, "my-app-demo").Return(s3.BucketExists, nil)
			storage.On("PutWebsite", mock.Anything, "my-app-demo", "index.html").Return(nil)
			storage.On("PutPublicReadPolicy", mock.Anything, "my-app-demo").Return(nil)
			storage.On("PutObject", mock.Anything, "my-app-demo", "index.html", "text/html; charset=utf-8", int64(13)).Return(nil)
			storage.On("PutObject", mock.Anything, "my-app-demo", "static/main.js", "application/javascript", int64(5)).Return(nil)
			storage.On("PutObject", mock.Anything, "my-app-demo", "static/main.css", "text/css; charset=utf-8", int64(3)).Return(nil)
		})

		It("publishes every file and reports the primary-region URL", func() {
			report, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

			Expect(err).NotTo(HaveOccurred())
			Expect(report.Succeeded).To(BeTrue())
			Expect(report.Files).To(Equal(3))
			Expect(report.Bytes).To(Equal(int64(21)))
			Expect(report.WebsiteURL).To(Equal("http://my-app-demo.s3-website-us-east-1.amazonaws.com"))
			storage.AssertExpectations(GinkgoT())
		})

		It("never attempts to create the bucket", func() {
			_, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

			Expect(err).NotTo(HaveOccurred())
			storage.AssertNotCalled(GinkgoT(), "CreateBucket", mock.Anything, mock.Anything)
		})

		It("skips invalidation when no distribution is configured", func() {
			report, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

			Expect(err).NotTo(HaveOccurred())
			res, ok := report.Result(deploy.StageInvalidate)
			Expect(ok).To(BeTrue())
			Expect(res.Outcome).To(Equal(deploy.OutcomeSkipped))
			cdn.AssertNotCalled(GinkgoT(), "CreateInvalidation", mock.Anything, mock.Anything)
		})

		Context("and a CloudFront distribution", func() {
			BeforeEach(func() {
				cfg.DistributionID = "E2EXAMPLE"
			})

			It("records the invalidation ID", func() {
				cdn.On("CreateInvalidation", mock.Anything, mock.Anything).Return("I2J0I21PCUYOIK", nil)

				report, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

				Expect(err).NotTo(HaveOccurred())
				Expect(report.InvalidationID).To(Equal("I2J0I21PCUYOIK"))
			})

			It("keeps exit code 0 when invalidation fails", func() {
				cdn.On("CreateInvalidation", mock.Anything, mock.Anything).Return("", errors.New("throttled"))

				report, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

				Expect(err).NotTo(HaveOccurred())
				Expect(deploy.ExitCode(err)).To(Equal(0))
				Expect(report.Succeeded).To(BeTrue())
				res, _ := report.Result(deploy.StageInvalidate)
				Expect(res.Outcome).To(Equal(deploy.OutcomeWarned))
				Expect(report.WebsiteURL).NotTo(BeEmpty())
			})

			It("keeps exit code 0 when invalidation panics", func() {
				cdn.On("CreateInvalidation", mock.Anything, mock.Anything).Panic("nil response")

				report, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

				Expect(err).NotTo(HaveOccurred())
				res, _ := report.Result(deploy.StageInvalidate)
				Expect(res.Outcome).To(Equal(deploy.OutcomeWarned))
			})
		})
	})

	Context("when the build reports success but produces no output", func() {
		BeforeEach(func() {
			storage.On("CheckAccess", mock.Anything).Return(nil)
			succeed := func(context.Context, string, string, ...string) (string, error) { return "", nil }
			services.Builder = build.NewRunnerWith(succeed, []string{"npm", "install"}, []string{"npm", "run", "build"})
			cfg.BuildDir = "dist"
		})

		It("fails before any bucket operation", func() {
			report, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

			Expect(err).To(HaveOccurred())
			Expect(deploy.ExitCode(err)).To(Equal(1))
			Expect(deploy.CategoryOf(err)).To(Equal(deploy.CategoryBuild))
			Expect(errors.Is(err, build.ErrOutputMissing)).To(BeTrue())
			Expect(report.Succeeded).To(BeFalse())
			storage.AssertNotCalled(GinkgoT(), "BucketStatus", mock.Anything, mock.Anything)
			storage.AssertNotCalled(GinkgoT(), "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	})

	Context("when the bucket belongs to someone else", func() {
		BeforeEach(func() {
			storage.On("CheckAccess", mock.Anything).Return(nil)
			storage.On("BucketStatus", mock.Anything, mock.Anything).Return(s3.BucketForbidden, nil)
		})

		It("fails with a forbidden error distinct from not-found", func() {
			_, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

			Expect(err).To(HaveOccurred())
			Expect(deploy.CategoryOf(err)).To(Equal(deploy.CategoryForbidden))
			Expect(deploy.CategoryOf(err)).NotTo(Equal(deploy.CategoryNotFound))
			Expect(err.Error()).To(ContainSubstring("provision stage failed"))
			storage.AssertNotCalled(GinkgoT(), "CreateBucket", mock.Anything, mock.Anything)
		})
	})

	Context("when the bucket does not exist", func() {
		BeforeEach(func() {
			cfg.Region = "eu-west-1"
			storage.On("CheckAccess", mock.Anything).Return(nil)
			storage.On("BucketStatus", mock.Anything, mock.Anything).Return(s3.BucketMissing, nil)
			storage.On("CreateBucket", mock.Anything, "my-app-demo").Return(nil)
			storage.On("WaitUntilExists", mock.Anything, "my-app-demo").Return(nil)
			storage.On("PutWebsite", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			storage.On("PutPublicReadPolicy", mock.Anything, mock.Anything).Return(nil)
			storage.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		})

		It("creates it and reports the regional URL", func() {
			report, err := deploy.Run(newRunCtx(), deploy.DefaultStages())

			Expect(err).NotTo(HaveOccurred())
			storage.AssertCalled(GinkgoT(), "CreateBucket", mock.Anything, "my-app-demo")
			Expect(report.WebsiteURL).To(Equal("http://my-app-demo.s3-website.eu-west-1.amazonaws.com"))
		})
	})
})
