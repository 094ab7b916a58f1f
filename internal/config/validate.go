package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the fields a deployment cannot run without.
//
// Bucket naming rules are left to S3 itself; CreateBucket reports an invalid
// name with a dedicated error code that the provision stage classifies.
func (d Deployment) Validate() error {
	var errs []error

	if strings.TrimSpace(d.Bucket) == "" {
		errs = append(errs, errors.New("bucket name is required (--bucket)"))
	} else if strings.TrimSpace(d.Bucket) != d.Bucket {
		errs = append(errs, fmt.Errorf("bucket name %q has surrounding whitespace", d.Bucket))
	}
	if d.Region == "" {
		errs = append(errs, errors.New("region is required"))
	}
	if d.SourceDir == "" {
		errs = append(errs, errors.New("source path is required"))
	}
	if d.BuildDir == "" {
		errs = append(errs, errors.New("build directory is required"))
	} else if filepath.IsAbs(d.BuildDir) {
		errs = append(errs, fmt.Errorf("build directory %q must be relative to the source path", d.BuildDir))
	}
	if d.IndexDocument == "" || strings.Contains(d.IndexDocument, "/") {
		errs = append(errs, fmt.Errorf("index document %q must be a plain file name", d.IndexDocument))
	}
	for _, p := range d.InvalidationPaths {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Errorf("invalidation path %q must start with /", p))
		}
	}

	return errors.Join(errs...)
}
