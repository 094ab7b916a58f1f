// Package testing provides test utilities, builders, and fixtures for
// deployment tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - DeploymentBuilder: Fluent builder for creating test deployment configs
//   - MockStorage, MockCDN, MockToolchain, MockBuilder: testify mocks for the
//     pipeline's external services
//   - SiteFixture: an on-disk application with a populated build directory
//
// Usage:
//
//	cfg := testing.NewDeploymentBuilder().
//	    WithBucket("my-site").
//	    WithRegion("eu-west-1").
//	    Build()
//
//	storage := testing.NewStorageFixture().SuccessfulDeploy()
package testing
