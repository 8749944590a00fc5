package editor

import (
	"github.com/spf13/afero"

	"github.com/a3tai/mcp-report-author/internal/config"
	"github.com/a3tai/mcp-report-author/internal/logger"
	"github.com/a3tai/mcp-report-author/internal/pdf"
	"github.com/a3tai/mcp-report-author/internal/upload"
)

// FromConfig wires a service on the OS filesystem: output directory, code
// prefix, PDF inspector and, when a publish directory is configured, a
// directory sink
func FromConfig(cfg *config.Config) (*Service, error) {
	fs := afero.NewOsFs()

	var sinks []upload.Sink
	if cfg.PublishEnabled() {
		sink, err := upload.NewDirSink(fs, cfg.PublishDirectory)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}

	return NewService(Options{
		Fs:         fs,
		OutputDir:  cfg.OutputDirectory,
		CodePrefix: cfg.CodePrefix,
		Sinks:      sinks,
		Inspector:  pdf.NewInspector(cfg.MaxFileSize),
		Logger:     logger.Log,
	}), nil
}

// SessionFromConfig starts a session with the configured drafts directory,
// logo and toggles. Publishing is on when a publish directory is set.
func SessionFromConfig(cfg *config.Config) (*Session, error) {
	logo, err := cfg.ReadLogo()
	if err != nil {
		return nil, err
	}

	session := NewSession(cfg.DraftDirectory)
	session.Logo = logo
	session.LogoWidthCM = cfg.LogoWidthCM
	session.Toggles = Toggles{Autosave: cfg.Autosave, Publish: cfg.PublishEnabled()}
	return session, nil
}
