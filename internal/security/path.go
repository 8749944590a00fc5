// Package security keeps file access inside a configured directory.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideDirectory is returned for paths that escape the configured directory
var ErrOutsideDirectory = errors.New("path is outside configured directory")

// PathValidator provides containment checks for file paths
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator creates a new path validator for the given directory.
// The directory does not need to exist yet.
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	abs, err := filepath.Abs(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	return &PathValidator{configuredDirectory: abs}, nil
}

// GetConfiguredDirectory returns the absolute configured directory
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

// NormalizePath resolves a location against the configured directory and
// checks that the result stays inside it. Bare file names and relative
// paths are taken relative to the configured directory.
func (v *PathValidator) NormalizePath(path string) (string, error) {
	// Remove null bytes before anything touches the path
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.configuredDirectory, path)
	}
	clean := filepath.Clean(path)

	if err := v.ValidatePath(clean); err != nil {
		return "", err
	}
	return clean, nil
}

// ValidatePath checks that an absolute path lies inside the configured
// directory. Symlinks are resolved when both ends exist on disk.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if !within(absPath, v.configuredDirectory) {
		return fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}

	realPath, errPath := filepath.EvalSymlinks(absPath)
	realDir, errDir := filepath.EvalSymlinks(v.configuredDirectory)
	if errPath == nil && errDir == nil && !within(realPath, realDir) {
		return fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}

	return nil
}

// within reports whether path equals dir or lies below it
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
