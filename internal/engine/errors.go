package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrAppDirNotFound indicates the route tree directory does not exist.
	ErrAppDirNotFound = errors.New("app directory not found")

	// ErrViolations indicates the scan found server/client boundary violations.
	ErrViolations = errors.New("server component violations")

	// ErrNotClientComponent indicates a prerender target lacks the client directive.
	ErrNotClientComponent = errors.New("not a client component")

	// ErrOutsideAppDir indicates a path argument resolves outside the route tree.
	ErrOutsideAppDir = errors.New("path is outside the app directory")
)

// AppDirError reports the missing route tree directory.
type AppDirError struct {
	Path string
}

func (e *AppDirError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAppDirNotFound, e.Path)
}

func (e *AppDirError) Unwrap() error {
	return ErrAppDirNotFound
}

// ViolationError reports how many boundary violations blocked a build.
type ViolationError struct {
	Count int
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: found %d", ErrViolations, e.Count)
}

func (e *ViolationError) Unwrap() error {
	return ErrViolations
}
