package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/s3deploy/internal/config"
	"github.com/imamik/s3deploy/internal/deploy"
	"github.com/imamik/s3deploy/internal/platform/s3"
	dtesting "github.com/imamik/s3deploy/internal/testing"
	"github.com/imamik/s3deploy/internal/ui/tui"
)

// saveAndRestoreFactories saves and restores deploy factory functions.
func saveAndRestoreFactories(t *testing.T) {
	origLoadConfigFile := loadConfigFile
	origLoadAWSConfig := loadAWSConfig
	origNewStorage := newStorage
	origNewCDN := newCDN
	origNewToolchain := newToolchain
	origNewBuilder := newBuilder
	origRunTUI := runTUI
	origIsTerminal := isTerminal
	origNewRunID := newRunID
	origStdout := stdout
	origStderr := stderr

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		loadAWSConfig = origLoadAWSConfig
		newStorage = origNewStorage
		newCDN = origNewCDN
		newToolchain = origNewToolchain
		newBuilder = origNewBuilder
		runTUI = origRunTUI
		isTerminal = origIsTerminal
		newRunID = origNewRunID
		stdout = origStdout
		stderr = origStderr
	})
}

type deployHarness struct {
	site    *dtesting.SiteFixture
	storage *dtesting.MockStorage
	cdn     *dtesting.MockCDN
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	awsArgs []string
}

// setupDeploy wires every factory to in-memory fakes backed by a site fixture.
func setupDeploy(t *testing.T) *deployHarness {
	t.Helper()
	saveAndRestoreFactories(t)

	h := &deployHarness{
		site: dtesting.NewSiteFixture(t, map[string]string{
			"index.html":     "<html></html>",
			"static/main.js": "run()",
		}),
		storage: dtesting.NewStorageFixture().SuccessfulDeploy(),
		cdn:     &dtesting.MockCDN{},
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}

	loadAWSConfig = func(_ context.Context, region, profile string) (aws.Config, error) {
		h.awsArgs = []string{region, profile}
		return aws.Config{Region: region}, nil
	}
	newStorage = func(aws.Config) deploy.Storage { return h.storage }
	newCDN = func(aws.Config) deploy.CDN { return h.cdn }
	newToolchain = func() deploy.Toolchain { return dtesting.InstalledToolchain() }
	newBuilder = func() deploy.Builder { return h.site.Builder() }
	isTerminal = func() bool { return false }
	newRunID = func() string { return "run-test" }
	stdout = h.out
	stderr = h.errOut
	return h
}

func TestDeploy_Success(t *testing.T) {
	h := setupDeploy(t)

	err := Deploy(context.Background(), DeployOptions{
		Overrides: config.Deployment{Bucket: "my-app-demo", SourceDir: h.site.SourceDir},
		LogFormat: "text",
	})

	require.NoError(t, err)
	out := h.out.String()
	assert.Contains(t, out, "Deployment completed successfully!")
	assert.Contains(t, out, "http://my-app-demo.s3-website-us-east-1.amazonaws.com")
	assert.Contains(t, out, "Uploaded 2 files")
	assert.Contains(t, out, "Next steps:")
	assert.Equal(t, []string{"us-east-1", ""}, h.awsArgs)
	h.storage.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestDeploy_FlagsOverrideConfigFile(t *testing.T) {
	h := setupDeploy(t)

	path := filepath.Join(t.TempDir(), "s3deploy.yaml")
	require.NoError(t, config.Write(path, config.Deployment{
		Bucket:    "file-bucket",
		Region:    "eu-west-1",
		Profile:   "file-profile",
		SourceDir: h.site.SourceDir,
	}))

	err := Deploy(context.Background(), DeployOptions{
		ConfigPath: path,
		Overrides:  config.Deployment{Bucket: "flag-bucket"},
		LogFormat:  "text",
	})

	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "http://flag-bucket.s3-website.eu-west-1.amazonaws.com")
	assert.Equal(t, []string{"eu-west-1", "file-profile"}, h.awsArgs)
}

func TestDeploy_MissingBucket(t *testing.T) {
	h := setupDeploy(t)

	err := Deploy(context.Background(), DeployOptions{LogFormat: "text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket name is required")
	assert.Nil(t, h.awsArgs, "AWS config must not be loaded for an invalid configuration")
}

func TestDeploy_ConfigFileError(t *testing.T) {
	setupDeploy(t)
	loadConfigFile = func(string) (config.Deployment, error) {
		return config.Deployment{}, errors.New("failed to read config file: boom")
	}

	err := Deploy(context.Background(), DeployOptions{ConfigPath: "missing.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDeploy_ProfileNotFound(t *testing.T) {
	h := setupDeploy(t)
	loadAWSConfig = func(context.Context, string, string) (aws.Config, error) {
		return aws.Config{}, awsconfig.SharedConfigProfileNotExistError{Profile: "ghost"}
	}

	err := Deploy(context.Background(), DeployOptions{
		Overrides: config.Deployment{Bucket: "b", Profile: "ghost", SourceDir: h.site.SourceDir},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `AWS profile "ghost" not found`)
}

func TestDeploy_UnknownRegionWarns(t *testing.T) {
	h := setupDeploy(t)

	err := Deploy(context.Background(), DeployOptions{
		Overrides: config.Deployment{Bucket: "b", Region: "mars-north-1", SourceDir: h.site.SourceDir},
		LogFormat: "text",
	})

	require.NoError(t, err)
	assert.Contains(t, h.errOut.String(), `region "mars-north-1" is not in the list of known regions`)
}

func TestDeploy_FatalFailure(t *testing.T) {
	h := setupDeploy(t)
	h.storage = &dtesting.MockStorage{}
	h.storage.On("CheckAccess", mock.Anything).Return(nil)
	h.storage.On("BucketStatus", mock.Anything, mock.Anything).Return(s3.BucketForbidden, nil)

	err := Deploy(context.Background(), DeployOptions{
		Overrides: config.Deployment{Bucket: "theirs", SourceDir: h.site.SourceDir},
		LogFormat: "text",
	})

	require.Error(t, err)
	assert.Equal(t, 1, deploy.ExitCode(err))
	assert.Equal(t, deploy.CategoryForbidden, deploy.CategoryOf(err))
	out := h.out.String()
	assert.Contains(t, out, "Deployment failed during provision")
	assert.Contains(t, out, "another AWS account")
}

func TestDeploy_InvalidationFailureKeepsSuccess(t *testing.T) {
	h := setupDeploy(t)
	h.cdn.On("CreateInvalidation", mock.Anything, mock.Anything).Return("", errors.New("throttled"))

	err := Deploy(context.Background(), DeployOptions{
		Overrides: config.Deployment{Bucket: "b", DistributionID: "E1", SourceDir: h.site.SourceDir},
		LogFormat: "text",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, deploy.ExitCode(err))
	assert.Contains(t, h.out.String(), "Warning: invalidate")
	h.cdn.AssertExpectations(t)
}

func TestDeploy_JSONLogs(t *testing.T) {
	h := setupDeploy(t)

	err := Deploy(context.Background(), DeployOptions{
		Overrides: config.Deployment{Bucket: "b", SourceDir: h.site.SourceDir},
		LogFormat: "json",
	})

	require.NoError(t, err)
	logs := h.errOut.String()
	assert.Contains(t, logs, `"event":"stage.started"`)
	assert.Contains(t, logs, `"run_id":"run-test"`)
	assert.Empty(t, h.out.String(), "json mode writes no human summary")
}

func TestDeploy_MetricsFile(t *testing.T) {
	h := setupDeploy(t)
	path := filepath.Join(t.TempDir(), "deploy.prom")

	err := Deploy(context.Background(), DeployOptions{
		Overrides:   config.Deployment{Bucket: "b", SourceDir: h.site.SourceDir},
		LogFormat:   "text",
		MetricsFile: path,
	})

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `s3deploy_publish_files{bucket="b"} 2`)
}

func TestDeploy_TUIOnlyOnTerminal(t *testing.T) {
	h := setupDeploy(t)
	called := false
	runTUI = func(ctx context.Context, bucket, region string, stages []string, fn tui.RunFunc) (*deploy.Report, error) {
		called = true
		assert.Equal(t, "b", bucket)
		assert.Len(t, stages, 7)
		return fn(ctx, deploy.NewConsoleObserver())
	}
	opts := DeployOptions{
		Overrides: config.Deployment{Bucket: "b", SourceDir: h.site.SourceDir},
		LogFormat: "text",
		TUI:       true,
	}

	require.NoError(t, Deploy(context.Background(), opts))
	assert.False(t, called, "TUI must not start without a terminal")

	isTerminal = func() bool { return true }
	require.NoError(t, Deploy(context.Background(), opts))
	assert.True(t, called)
}

func TestResolveDeployment_Defaults(t *testing.T) {
	cfg, err := resolveDeployment(DeployOptions{Overrides: config.Deployment{Bucket: "b"}})
	require.NoError(t, err)

	wd, _ := os.Getwd()
	assert.Equal(t, wd, cfg.SourceDir)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "build", cfg.BuildDir)
	assert.Equal(t, []string{"/*"}, cfg.InvalidationPaths)
}

func TestResolveDeployment_FilePathRelativeToConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "web", "s3deploy.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, config.Write(path, config.Deployment{Bucket: "b", SourceDir: "."}))

	cfg, err := resolveDeployment(DeployOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "web"), cfg.SourceDir)

	require.NoError(t, config.Write(path, config.Deployment{Bucket: "b", SourceDir: "app"}))
	cfg, err = resolveDeployment(DeployOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "web", "app"), cfg.SourceDir)
}

func TestResolveDeployment_FlagPathRelativeToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s3deploy.yaml")
	require.NoError(t, config.Write(path, config.Deployment{Bucket: "b", SourceDir: "from-file"}))

	cfg, err := resolveDeployment(DeployOptions{
		ConfigPath: path,
		Overrides:  config.Deployment{SourceDir: "site"},
	})
	require.NoError(t, err)

	wd, _ := os.Getwd()
	assert.Equal(t, filepath.Join(wd, "site"), cfg.SourceDir)
}

func TestResolveDeployment_TrimsBucket(t *testing.T) {
	cfg, err := resolveDeployment(DeployOptions{Overrides: config.Deployment{Bucket: " my-app "}})
	require.NoError(t, err)
	assert.Equal(t, "my-app", cfg.Bucket)
}
