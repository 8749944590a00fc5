package editor

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/a3tai/mcp-report-author/internal/logger"
	"github.com/a3tai/mcp-report-author/internal/pdf"
	"github.com/a3tai/mcp-report-author/internal/render"
	"github.com/a3tai/mcp-report-author/internal/report"
	"github.com/a3tai/mcp-report-author/internal/store"
	"github.com/a3tai/mcp-report-author/internal/upload"
)

// ErrNoReport is returned for sessions without a report
var ErrNoReport = errors.New("session has no report")

// Options configure a Service. Zero values select the OS filesystem, no
// output directory, no sinks and the global logger.
type Options struct {
	Fs         afero.Fs
	OutputDir  string
	CodePrefix string
	Sinks      []upload.Sink
	Inspector  *pdf.Inspector
	Logger     *logrus.Logger
}

// Service runs authoring actions for sessions
type Service struct {
	fs         afero.Fs
	outputDir  string
	codePrefix string
	sinks      []upload.Sink
	inspector  *pdf.Inspector
	log        *logrus.Logger
}

// NewService creates a service with all components
func NewService(opts Options) *Service {
	s := &Service{
		fs:         opts.Fs,
		outputDir:  opts.OutputDir,
		codePrefix: opts.CodePrefix,
		sinks:      opts.Sinks,
		inspector:  opts.Inspector,
		log:        opts.Logger,
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.log == nil {
		s.log = logger.Log
	}
	return s
}

// CodePrefix returns the default prefix for generated codes
func (s *Service) CodePrefix() string {
	return s.codePrefix
}

// Sinks returns the configured publish sinks
func (s *Service) Sinks() []upload.Sink {
	return s.sinks
}

// Preview returns the structured-text projection of the session report
func (s *Service) Preview(session *Session) (string, error) {
	if err := checkSession(session); err != nil {
		return "", err
	}
	return render.Markdown(session.Report), nil
}

// GenerateCode issues the next code for prefix (the service default when
// empty) from the session's draft directory and stores it on the report
func (s *Service) GenerateCode(ctx context.Context, session *Session, prefix string) (string, error) {
	if err := checkSession(session); err != nil {
		return "", err
	}
	if prefix == "" {
		prefix = s.codePrefix
	}

	code, err := store.NewCounter(s.fs, session.DraftDir).Next(ctx, prefix)
	if err != nil {
		return "", err
	}
	session.Report.Code = code

	s.logger(session).WithField("code", code).Info("report code generated")
	return code, nil
}

// SaveDraft writes the session report to the draft directory
func (s *Service) SaveDraft(session *Session) (string, error) {
	if err := checkSession(session); err != nil {
		return "", err
	}
	drafts, err := store.NewDraftStore(s.fs, session.DraftDir)
	if err != nil {
		return "", err
	}

	location, err := drafts.Save(session.Report)
	if err != nil {
		return "", err
	}

	s.logger(session).WithField("path", location).Info("draft saved")
	return location, nil
}

// LoadDraft replaces the session report with the draft at location
func (s *Service) LoadDraft(session *Session, location string) (*report.Report, error) {
	if session == nil {
		return nil, ErrNoReport
	}
	drafts, err := store.NewDraftStore(s.fs, session.DraftDir)
	if err != nil {
		return nil, err
	}

	r, err := drafts.Load(location)
	if err != nil {
		return nil, err
	}
	session.Report = r

	s.logger(session).WithField("location", location).Debug("draft loaded")
	return r, nil
}

// ListDrafts lists the drafts of the session's draft directory
func (s *Service) ListDrafts(session *Session, query string) ([]store.DraftInfo, error) {
	if session == nil {
		return nil, ErrNoReport
	}
	drafts, err := store.NewDraftStore(s.fs, session.DraftDir)
	if err != nil {
		return nil, err
	}
	return drafts.List(query)
}

// Inspect checks an exported PDF
func (s *Service) Inspect(data []byte) (*pdf.Inspection, error) {
	if s.inspector == nil {
		return nil, errors.New("no PDF inspector configured")
	}
	return s.inspector.Inspect(data)
}

func (s *Service) logger(session *Session) *logrus.Entry {
	return s.log.WithField("session", session.ID)
}

func checkSession(session *Session) error {
	if session == nil || session.Report == nil {
		return ErrNoReport
	}
	return nil
}

// InspectFile checks a PDF on disk
func (s *Service) InspectFile(path string) (*pdf.Inspection, error) {
	if s.inspector == nil {
		return nil, errors.New("no PDF inspector configured")
	}
	return s.inspector.InspectFile(path)
}

// Fs returns the filesystem drafts and counters live on
func (s *Service) Fs() afero.Fs {
	return s.fs
}
