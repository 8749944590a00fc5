// Package upload defines the contract for publishing exported artifacts to
// remote storage and a directory-backed implementation of it.
package upload

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/a3tai/mcp-report-author/internal/security"
)

// MIMEJSON is the media type of report snapshots
const MIMEJSON = "application/json"

// Sink stores one file remotely and returns where it can be found
type Sink interface {
	Name() string
	Upload(ctx context.Context, filename string, data []byte, mime string) (string, error)
}

// DirSink publishes artifacts into a local or mounted directory
type DirSink struct {
	fs    afero.Fs
	paths *security.PathValidator
}

// NewDirSink creates a sink writing into dir
func NewDirSink(fs afero.Fs, dir string) (*DirSink, error) {
	paths, err := security.NewPathValidator(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	return &DirSink{fs: fs, paths: paths}, nil
}

// Name implements Sink
func (s *DirSink) Name() string {
	return "directory"
}

// Dir returns the absolute publish directory
func (s *DirSink) Dir() string {
	return s.paths.GetConfiguredDirectory()
}

// Upload writes data to filename inside the publish directory and returns
// its file:// URL. Existing files are replaced.
func (s *DirSink) Upload(ctx context.Context, filename string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename == "" || filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid artifact name %q", filename)
	}

	path, err := s.paths.NormalizePath(filename)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(s.Dir(), 0o750); err != nil {
		return "", fmt.Errorf("cannot create publish directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}
