package editor

import (
	"fmt"

	"github.com/a3tai/mcp-report-author/internal/upload"
)

// Artifact is one file produced by an export
type Artifact struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	MIME   string `json:"mime"`
	Size   int    `json:"size"`
	Pages  int    `json:"pages,omitempty"`
	Path   string `json:"path,omitempty"`
	Data   []byte `json:"-"`
}

// ExportResult summarizes one run of the export pipeline. Every step that
// failed is described in Notices; the steps after it still ran.
type ExportResult struct {
	SessionID string          `json:"session_id"`
	BaseName  string          `json:"base_name"`
	DraftPath string          `json:"draft_path,omitempty"`
	Artifacts []Artifact      `json:"artifacts"`
	Uploads   []upload.Result `json:"uploads,omitempty"`
	Notices   []string        `json:"notices,omitempty"`
}

// Artifact returns the artifact with the given format, or nil
func (r *ExportResult) Artifact(format string) *Artifact {
	for i := range r.Artifacts {
		if r.Artifacts[i].Format == format {
			return &r.Artifacts[i]
		}
	}
	return nil
}

func (r *ExportResult) notice(format string, args ...any) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}
