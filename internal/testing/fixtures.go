package testing

import (
	"os"
	"path/filepath"

	"github.com/imamik/s3deploy/internal/build"
	"github.com/imamik/s3deploy/internal/platform/s3"
	"github.com/imamik/s3deploy/internal/util/prerequisites"

	"github.com/stretchr/testify/mock"
)

// StorageFixture provides a pre-configured MockStorage for common scenarios.
type StorageFixture struct {
	mock *MockStorage
}

// NewStorageFixture creates a new storage fixture.
func NewStorageFixture() *StorageFixture {
	return &StorageFixture{mock: &MockStorage{}}
}

// Mock returns the underlying MockStorage for custom configuration.
func (f *StorageFixture) Mock() *MockStorage {
	return f.mock
}

// SuccessfulDeploy configures every call to succeed against an existing bucket.
// Expectations are optional (Maybe) so tests can override individual calls first.
func (f *StorageFixture) SuccessfulDeploy() *MockStorage {
	m := f.mock
	m.On("CheckAccess", mock.Anything).Return(nil).Maybe()
	m.On("BucketStatus", mock.Anything, mock.Anything).Return(s3.BucketExists, nil).Maybe()
	m.On("PutWebsite", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("PutPublicReadPolicy", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

// NewBucket configures the bucket as missing and creatable, then delegates to
// SuccessfulDeploy for the remaining calls.
func (f *StorageFixture) NewBucket() *MockStorage {
	m := f.mock
	m.On("BucketStatus", mock.Anything, mock.Anything).Return(s3.BucketMissing, nil).Once()
	m.On("CreateBucket", mock.Anything, mock.Anything).Return(nil).Once()
	m.On("WaitUntilExists", mock.Anything, mock.Anything).Return(nil).Once()
	return f.SuccessfulDeploy()
}

// InstalledToolchain returns a toolchain mock reporting node and npm present.
func InstalledToolchain() *MockToolchain {
	m := &MockToolchain{}
	var results []prerequisites.CheckResult
	for _, tool := range prerequisites.NodeTools() {
		results = append(results, prerequisites.CheckResult{Tool: tool, Found: true, Path: "/usr/bin/" + tool.Name, Version: "v1.0.0"})
	}
	m.On("Check", mock.Anything).Return(&prerequisites.CheckResults{Results: results}).Maybe()
	return m
}

// MissingToolchain returns a toolchain mock reporting npm absent.
func MissingToolchain() *MockToolchain {
	m := &MockToolchain{}
	tools := prerequisites.NodeTools()
	res := &prerequisites.CheckResults{}
	for _, tool := range tools {
		if tool.Name == "npm" {
			res.Results = append(res.Results, prerequisites.CheckResult{Tool: tool})
			res.Missing = append(res.Missing, tool)
			continue
		}
		res.Results = append(res.Results, prerequisites.CheckResult{Tool: tool, Found: true, Version: "v20.0.0"})
	}
	m.On("Check", mock.Anything).Return(res).Maybe()
	return m
}

// TB is the subset of testing.TB the fixtures need. GinkgoT satisfies it.
type TB interface {
	Helper()
	TempDir() string
	Fatalf(format string, args ...any)
}

// SiteFixture is an application directory with a build output tree on disk.
type SiteFixture struct {
	SourceDir string
	BuildDir  string
}

// NewSiteFixture creates files (relative path -> content) under
// <tmp>/build and returns the fixture.
func NewSiteFixture(t TB, files map[string]string) *SiteFixture {
	t.Helper()
	src := t.TempDir()
	out := filepath.Join(src, "build")
	WriteFiles(t, out, files)
	return &SiteFixture{SourceDir: src, BuildDir: out}
}

// Builder returns a builder mock that succeeds and points at the fixture's
// build directory.
func (s *SiteFixture) Builder() *MockBuilder {
	m := &MockBuilder{}
	m.On("Install", mock.Anything, s.SourceDir).Return(nil).Maybe()
	m.On("Build", mock.Anything, s.SourceDir, mock.Anything).Return(build.Artifact{Dir: s.BuildDir}, nil).Maybe()
	return m
}

// WriteFiles writes files (relative path -> content) under root.
func WriteFiles(t TB, root string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", root, err)
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}
