package meson

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrDirNotFound is returned when a required directory does not exist.
	ErrDirNotFound = errors.New("directory does not exist")
	// ErrNotDirectory is returned when a required path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// ValidateDir checks that path names an existing directory.
func ValidateDir(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrDirNotFound)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDirNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return nil
}

// Requirement names the directory an operation needs before it can run.
type Requirement int

const (
	NeedsNothing Requirement = iota
	NeedsSourceDir
	NeedsBuildDir
)

// RequirementOf returns which directory op needs to exist. Introspect needs
// the build directory when one is set and the source directory otherwise.
func RequirementOf(op Operation, p Params) Requirement {
	switch op {
	case Setup:
		return NeedsSourceDir
	case Configure, Compile, Test, Install, Clean, Dist:
		return NeedsBuildDir
	case Introspect:
		if p.BuildDir == "" {
			return NeedsSourceDir
		}
		return NeedsBuildDir
	default:
		return NeedsNothing
	}
}

// Check validates the directory op requires. A non-nil error means the
// operation must not be dispatched.
func Check(op Operation, p Params) error {
	switch RequirementOf(op, p) {
	case NeedsSourceDir:
		if err := ValidateDir(p.SourceDir); err != nil {
			return fmt.Errorf("source directory: %w", err)
		}
	case NeedsBuildDir:
		if p.BuildDir == "" {
			return ErrMissingBuildDir
		}
		if err := ValidateDir(p.BuildDir); err != nil {
			return fmt.Errorf("build directory: %w", err)
		}
	}
	return nil
}
