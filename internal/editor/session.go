// Package editor runs report authoring actions against an explicit,
// request-scoped session instead of process-wide UI state.
package editor

import (
	"github.com/google/uuid"

	"github.com/a3tai/mcp-report-author/internal/render"
	"github.com/a3tai/mcp-report-author/internal/report"
)

// Toggles are the per-session feature switches
type Toggles struct {
	Autosave bool `json:"autosave"`
	Publish  bool `json:"publish"`
}

// Session carries everything one authoring request operates on
type Session struct {
	ID          string
	Report      *report.Report
	DraftDir    string
	Logo        []byte
	LogoWidthCM float64
	Toggles     Toggles
}

// NewSession starts a session on a fresh report with autosave enabled
func NewSession(draftDir string) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Report:      report.New(),
		DraftDir:    draftDir,
		LogoWidthCM: render.DefaultLogoWidthCM,
		Toggles:     Toggles{Autosave: true},
	}
}

// WithReport replaces the session report and returns the session
func (s *Session) WithReport(r *report.Report) *Session {
	s.Report = r
	return s
}

func (s *Session) logo() *render.Logo {
	if len(s.Logo) == 0 {
		return nil
	}
	return &render.Logo{Data: s.Logo, WidthCM: s.LogoWidthCM}
}
