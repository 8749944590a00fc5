package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// DefaultDirPerm is used for directories created on demand
	DefaultDirPerm = 0o750
	// DefaultFilePerm is used for drafts and the counter file
	DefaultFilePerm = 0o644
)

// writeFileAtomic replaces path with data through a temporary sibling file
// so readers see either the old or the new content
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, DefaultDirPerm); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("cannot write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("cannot close temporary file: %w", err)
	}
	if err := fs.Chmod(tmpName, DefaultFilePerm); err != nil && !os.IsNotExist(err) {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("cannot set file mode: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("cannot replace %s: %w", path, err)
	}
	return nil
}

// isOS reports whether fs is backed by the operating system
func isOS(fs afero.Fs) bool {
	_, ok := fs.(*afero.OsFs)
	return ok
}
