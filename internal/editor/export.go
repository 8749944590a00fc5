package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/a3tai/mcp-report-author/internal/render"
	"github.com/a3tai/mcp-report-author/internal/report"
	"github.com/a3tai/mcp-report-author/internal/security"
	"github.com/a3tai/mcp-report-author/internal/upload"
)

// FormatJSON names the snapshot artifact that accompanies every export
const FormatJSON = "json"

// Export runs the update-preview pipeline: optional autosave, snapshot and
// projections, optional write to the output directory, optional publish.
// An empty formats list exports every projection. Failures of single steps
// are collected as notices; only a missing report is an error.
func (s *Service) Export(ctx context.Context, session *Session, formats []render.Format) (*ExportResult, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		formats = render.AllFormats
	}

	log := s.logger(session)
	r := session.Report
	result := &ExportResult{
		SessionID: session.ID,
		BaseName:  r.BaseName(),
		Artifacts: []Artifact{},
	}

	if session.Toggles.Autosave {
		if location, err := s.SaveDraft(session); err != nil {
			log.WithError(err).Warn("autosave failed")
			result.notice("autosave failed: %v", err)
		} else {
			result.DraftPath = location
		}
	}

	snapshot, err := report.Marshal(r)
	if err != nil {
		result.notice("snapshot failed: %v", err)
	} else {
		result.Artifacts = append(result.Artifacts, Artifact{
			Name:   result.BaseName + ".json",
			Format: FormatJSON,
			MIME:   upload.MIMEJSON,
			Size:   len(snapshot),
			Data:   snapshot,
		})
	}

	for _, format := range formats {
		artifact, err := s.project(format, session, result.BaseName)
		if err != nil {
			log.WithError(err).WithField("format", format).Warn("projection failed")
			if errors.Is(err, render.ErrUnreadableLogo) {
				result.notice("%s export skipped: the logo image could not be read (%v)", format, err)
			} else {
				result.notice("%s export failed: %v", format, err)
			}
			continue
		}
		if format == render.FormatPDF && s.inspector != nil {
			if inspection, err := s.inspector.Inspect(artifact.Data); err != nil {
				result.notice("pdf inspection failed: %v", err)
			} else {
				artifact.Pages = inspection.Pages
				if !inspection.Valid {
					result.notice("pdf inspection: %s", inspection.Message)
				}
			}
		}
		result.Artifacts = append(result.Artifacts, *artifact)
	}

	if s.outputDir != "" {
		s.writeArtifacts(result)
	}

	if session.Toggles.Publish {
		s.publish(ctx, result)
	}

	log.WithField("artifacts", len(result.Artifacts)).WithField("notices", len(result.Notices)).Info("export finished")
	return result, nil
}

func (s *Service) project(format render.Format, session *Session, base string) (*Artifact, error) {
	data, err := render.Render(format, session.Report, session.logo())
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Name:   base + format.Extension(),
		Format: string(format),
		MIME:   format.MIME(),
		Size:   len(data),
		Data:   data,
	}, nil
}

// writeArtifacts stores every artifact in the output directory
func (s *Service) writeArtifacts(result *ExportResult) {
	if err := s.fs.MkdirAll(s.outputDir, 0o750); err != nil {
		result.notice("cannot create output directory %s: %v", s.outputDir, err)
		return
	}
	paths, err := security.NewPathValidator(s.outputDir)
	if err != nil {
		result.notice("cannot use output directory %s: %v", s.outputDir, err)
		return
	}
	for i := range result.Artifacts {
		a := &result.Artifacts[i]
		path := filepath.Join(paths.GetConfiguredDirectory(), a.Name)
		if err := paths.ValidatePath(path); err != nil {
			result.notice("cannot write %s: %v", a.Name, err)
			continue
		}
		if err := afero.WriteFile(s.fs, path, a.Data, 0o644); err != nil {
			result.notice("cannot write %s: %v", path, err)
			continue
		}
		a.Path = path
	}
}

// publish uploads the artifacts to every sink and reports failures
func (s *Service) publish(ctx context.Context, result *ExportResult) {
	if len(s.sinks) == 0 {
		result.notice("publishing requested but no upload sink is configured")
		return
	}

	artifacts := make([]upload.Artifact, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		artifacts = append(artifacts, upload.Artifact{Name: a.Name, Data: a.Data, MIME: a.MIME})
	}

	result.Uploads = upload.Publish(ctx, s.sinks, artifacts)
	for _, failed := range upload.Failed(result.Uploads) {
		result.notice("%s", failed.String())
	}
}

// Summary renders a short human readable account of the export
func (r *ExportResult) Summary() string {
	summary := fmt.Sprintf("Exported %s (%d files)\n", r.BaseName, len(r.Artifacts))
	if r.DraftPath != "" {
		summary += fmt.Sprintf("Draft saved: %s\n", r.DraftPath)
	}
	for _, a := range r.Artifacts {
		line := fmt.Sprintf("- %s (%s, %d bytes", a.Name, a.MIME, a.Size)
		if a.Pages > 0 {
			line += fmt.Sprintf(", %d pages", a.Pages)
		}
		line += ")"
		if a.Path != "" {
			line += " -> " + a.Path
		}
		summary += line + "\n"
	}
	for _, u := range r.Uploads {
		if u.OK() {
			summary += "Uploaded " + u.String() + "\n"
		}
	}
	for _, n := range r.Notices {
		summary += "Notice: " + n + "\n"
	}
	return summary
}
