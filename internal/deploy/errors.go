package deploy

import (
	"context"
	"errors"
	"fmt"
)

// Category classifies why a stage failed.
type Category string

const (
	CategoryCredentials Category = "credentials"
	CategoryPermission  Category = "permission"
	CategoryToolchain   Category = "toolchain"
	CategoryNotFound    Category = "not-found"
	CategoryBuild       Category = "build"
	CategoryForbidden   Category = "forbidden"
	CategoryNameTaken   Category = "name-taken"
	CategoryInvalidName Category = "invalid-name"
	CategoryInterrupted Category = "interrupted"
	CategoryUnknown     Category = "unknown"
)

// Error is a categorized stage failure. Hints are remediation steps meant for
// the person running the deployment.
type Error struct {
	Stage    string
	Category Category
	Message  string
	Hints    []string
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds a categorized error. A cancelled context anywhere in err's
// chain overrides category with CategoryInterrupted and drops the hints.
func newError(category Category, err error, hints []string, format string, args ...any) *Error {
	if errors.Is(err, context.Canceled) {
		category = CategoryInterrupted
		hints = nil
	}
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Hints:    hints,
		Err:      err,
	}
}

// CategoryOf returns the category of the first *Error in err's chain,
// or CategoryUnknown.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return CategoryUnknown
}

// HintsOf returns the remediation hints carried by err, if any.
func HintsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Hints
	}
	return nil
}

// ErrSkipped is returned by a stage that had nothing to do.
var ErrSkipped = errors.New("skipped")

func skip(reason string) error {
	return fmt.Errorf("%w: %s", ErrSkipped, reason)
}
