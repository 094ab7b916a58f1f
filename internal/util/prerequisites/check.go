// Package prerequisites checks that the local build toolchain is installed
// and invocable before a deployment touches any remote resource.
package prerequisites

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// DisplayName is used in progress output, e.g. "Node.js".
	DisplayName string

	// Required indicates if this tool is mandatory.
	Required bool

	// VersionArgs are passed to the tool to request its version string.
	VersionArgs []string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// NodeTools returns the toolchain needed to build a Node.js web application.
func NodeTools() []Tool {
	return []Tool{
		{
			Name:        "node",
			DisplayName: "Node.js",
			Required:    true,
			VersionArgs: []string{"--version"},
			InstallURL:  "https://nodejs.org/",
		},
		{
			Name:        "npm",
			DisplayName: "npm",
			Required:    true,
			VersionArgs: []string{"--version"},
			InstallURL:  "https://nodejs.org/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
	Err     error
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// VersionFunc runs a tool with the given arguments and returns its stdout.
type VersionFunc func(ctx context.Context, name string, args ...string) (string, error)

// Checker verifies a fixed tool list.
type Checker struct {
	tools    []Tool
	lookPath func(string) (string, error)
	version  VersionFunc
}

// NewChecker creates a checker for tools backed by PATH lookup and os/exec.
func NewChecker(tools []Tool) *Checker {
	return &Checker{
		tools:    tools,
		lookPath: exec.LookPath,
		version:  execVersion,
	}
}

// NewCheckerWith creates a checker with injected lookup and version functions.
func NewCheckerWith(tools []Tool, lookPath func(string) (string, error), version VersionFunc) *Checker {
	return &Checker{tools: tools, lookPath: lookPath, version: version}
}

// Check verifies that every tool is on PATH and answers its version request.
// A tool that is found but cannot report a version counts as missing.
func (c *Checker) Check(ctx context.Context) *CheckResults {
	results := &CheckResults{}

	for _, tool := range c.tools {
		result := CheckResult{Tool: tool}

		path, err := c.lookPath(tool.Name)
		if err != nil {
			result.Err = err
			results.Missing = append(results.Missing, tool)
			results.Results = append(results.Results, result)
			continue
		}
		result.Path = path

		out, err := c.version(ctx, tool.Name, tool.VersionArgs...)
		if err != nil {
			result.Err = err
			results.Missing = append(results.Missing, tool)
		} else {
			result.Found = true
			result.Version = firstLine(out)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

func execVersion(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	// #nosec G204 - name comes from the fixed tool list, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
