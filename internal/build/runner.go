// Package build installs dependencies and produces the static asset output
// directory of a Node.js web application.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrOutputMissing is returned when the build command succeeded but the
// expected output directory does not exist.
var ErrOutputMissing = errors.New("build directory not found")

// Artifact is the output of a successful build.
type Artifact struct {
	// Dir is the absolute path of the build output directory.
	Dir string
}

// CommandError reports a build command that exited unsuccessfully.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandFunc runs name with args in dir and returns captured stderr.
type CommandFunc func(ctx context.Context, dir, name string, args ...string) (stderr string, err error)

// Runner runs the install and build commands in sequence.
type Runner struct {
	run     CommandFunc
	install []string
	build   []string
}

// NewRunner returns a runner for `npm install` followed by `npm run build`.
func NewRunner() *Runner {
	return NewRunnerWith(execCommand, []string{"npm", "install"}, []string{"npm", "run", "build"})
}

// NewRunnerWith returns a runner with an injected command function and
// explicit install and build command lines.
func NewRunnerWith(run CommandFunc, install, build []string) *Runner {
	return &Runner{run: run, install: install, build: build}
}

// Install runs the dependency installation command in sourceDir.
func (r *Runner) Install(ctx context.Context, sourceDir string) error {
	return r.runLine(ctx, sourceDir, r.install)
}

// Build runs the build command in sourceDir and verifies that outputDir
// (relative to sourceDir) now exists as a directory.
func (r *Runner) Build(ctx context.Context, sourceDir, outputDir string) (Artifact, error) {
	if err := r.runLine(ctx, sourceDir, r.build); err != nil {
		return Artifact{}, err
	}

	dir := outputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(sourceDir, outputDir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Artifact{}, fmt.Errorf("%w: %s", ErrOutputMissing, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to resolve build directory: %w", err)
	}
	return Artifact{Dir: abs}, nil
}

func (r *Runner) runLine(ctx context.Context, dir string, line []string) error {
	if len(line) == 0 {
		return nil
	}
	stderr, err := r.run(ctx, dir, line[0], line[1:]...)
	if err != nil {
		// A killed process only reports its signal; keep the cancellation visible.
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return &CommandError{
			Command: strings.Join(line, " "),
			Stderr:  strings.TrimSpace(stderr),
			Err:     err,
		}
	}
	return nil
}

func execCommand(ctx context.Context, dir, name string, args ...string) (string, error) {
	var stderr bytes.Buffer
	// #nosec G204 - command lines are fixed by the runner, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}
