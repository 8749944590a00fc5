package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/a3tai/mcp-report-author/internal/report"
	"github.com/a3tai/mcp-report-author/internal/security"
)

// DraftInfo describes one snapshot file in the drafts directory
type DraftInfo struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// DraftStore saves and loads report snapshots inside one directory
type DraftStore struct {
	fs    afero.Fs
	paths *security.PathValidator
}

// NewDraftStore creates a draft store rooted at dir. The directory is
// created on first save or list.
func NewDraftStore(fs afero.Fs, dir string) (*DraftStore, error) {
	paths, err := security.NewPathValidator(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	return &DraftStore{fs: fs, paths: paths}, nil
}

// Dir returns the absolute drafts directory
func (s *DraftStore) Dir() string {
	return s.paths.GetConfiguredDirectory()
}

// Save writes the full snapshot of r to <code>.json (or report.json when
// the code is blank) and returns the file location
func (s *DraftStore) Save(r *report.Report) (string, error) {
	path := filepath.Join(s.Dir(), r.BaseName()+".json")
	if err := s.paths.ValidatePath(path); err != nil {
		return "", &StoreError{Op: "save", Path: path, Err: err}
	}

	data, err := report.Marshal(r)
	if err != nil {
		return "", &StoreError{Op: "save", Path: path, Err: err}
	}
	if err := writeFileAtomic(s.fs, path, data); err != nil {
		return "", &StoreError{Op: "save", Path: path, Err: err}
	}
	return path, nil
}

// Load reads a snapshot. location is a file name inside the drafts
// directory or a path that resolves inside it.
func (s *DraftStore) Load(location string) (*report.Report, error) {
	path, err := s.paths.NormalizePath(location)
	if err != nil {
		return nil, &StoreError{Op: "load", Path: location, Err: err}
	}

	format, err := report.FormatFromPath(path)
	if err != nil {
		return nil, &StoreError{Op: "load", Path: path, Err: err}
	}

	data, err := afero.ReadFile(s.fs, path)
	if os.IsNotExist(err) {
		return nil, &StoreError{Op: "load", Path: path, Err: ErrDraftNotFound}
	}
	if err != nil {
		return nil, &StoreError{Op: "load", Path: path, Err: err}
	}

	r, err := report.Decode(data, format)
	if err != nil {
		return nil, &StoreError{Op: "load", Path: path, Err: err}
	}
	return r, nil
}

// List enumerates snapshot files, sorted by name. A non-empty query keeps
// only files whose name matches it loosely.
func (s *DraftStore) List(query string) ([]DraftInfo, error) {
	dir := s.Dir()
	if err := s.fs.MkdirAll(dir, DefaultDirPerm); err != nil {
		return nil, &StoreError{Op: "list", Path: dir, Err: err}
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, &StoreError{Op: "list", Path: dir, Err: err}
	}

	query = strings.ToLower(strings.TrimSpace(query))
	drafts := []DraftInfo{}
	for _, info := range entries {
		if info.IsDir() || !isDraftFile(info.Name()) {
			continue
		}
		if !matchesQuery(info.Name(), query) {
			continue
		}
		drafts = append(drafts, DraftInfo{
			Name:         info.Name(),
			Path:         filepath.Join(dir, info.Name()),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}

	sort.Slice(drafts, func(i, j int) bool { return drafts[i].Name < drafts[j].Name })
	return drafts, nil
}

// isDraftFile accepts snapshot files and skips the counter and temp files
func isDraftFile(name string) bool {
	if name == CounterFile || strings.HasPrefix(name, ".") {
		return false
	}
	_, err := report.FormatFromPath(name)
	return err == nil
}
