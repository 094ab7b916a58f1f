// Package deploy runs the static-site deployment pipeline.
//
// A deployment is a fixed sequence of stages:
//   - preflight: credentials, local toolchain, source directory
//   - build: dependency install and build, output directory check
//   - provision: ensure the bucket exists
//   - configure: website hosting and public-read policy
//   - publish: upload the build output
//   - invalidate: optional CloudFront invalidation
//   - report: derive the website URL
//
// Every stage except invalidate is fatal: its error aborts the run. The
// invalidate stage only ever produces a warning. Progress is reported as
// structured [Event] values through an [Observer]; failures are returned as
// categorized [*Error] values so callers can tell causes apart without
// parsing text.
package deploy
