package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/a3tai/mcp-report-author/internal/config"
	"github.com/a3tai/mcp-report-author/internal/editor"
	"github.com/a3tai/mcp-report-author/internal/render"
	"github.com/a3tai/mcp-report-author/internal/report"
)

var errNoReportInput = errors.New("either 'report' or 'draft' is required")

// newSession builds the request-scoped session from the configuration
func (s *Server) newSession() *editor.Session {
	session := editor.NewSession(s.config.DraftDirectory)
	session.Logo = s.logo
	session.LogoWidthCM = s.config.LogoWidthCM
	session.Toggles = editor.Toggles{Autosave: s.config.Autosave}
	return session
}

// sessionFor creates a session and fills its report from the 'report' or
// 'draft' argument. found is false when neither was given.
func (s *Server) sessionFor(request mcp.CallToolRequest) (session *editor.Session, found bool, err error) {
	session = s.newSession()
	args := request.GetArguments()

	if raw, ok := args["report"]; ok && raw != nil {
		r, err := decodeReportArgument(raw)
		if err != nil {
			return nil, false, err
		}
		session.Report = r
		return session, true, nil
	}

	if draft := request.GetString("draft", ""); draft != "" {
		if _, err := s.editor.LoadDraft(session, draft); err != nil {
			return nil, false, err
		}
		return session, true, nil
	}

	return session, false, nil
}

// decodeReportArgument accepts a JSON object or a JSON string
func decodeReportArgument(raw any) (*report.Report, error) {
	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("invalid report argument: %w", err)
		}
		data = encoded
	}

	r, err := report.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("invalid report argument: %w", err)
	}
	return r, nil
}

// parseFormats accepts a list of names or one comma separated string
func parseFormats(raw any) ([]render.Format, error) {
	var names []string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		names = strings.Split(v, ",")
	case []string:
		names = v
	case []any:
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("formats must be strings, got %T", item)
			}
			names = append(names, name)
		}
	default:
		return nil, fmt.Errorf("formats must be a list of strings, got %T", raw)
	}

	formats := make([]render.Format, 0, len(names))
	seen := map[render.Format]bool{}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

func snapshotResult(header string, r *report.Report) (*mcp.CallToolResult, error) {
	data, err := report.Marshal(r)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(header + string(data)), nil
}

// Handler functions
func (s *Server) handleReportTemplate(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult("", report.New())
}

func (s *Server) handleReportPreview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, found, err := s.sessionFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultError(errNoReportInput.Error()), nil
	}

	text, err := s.editor.Preview(session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleReportNextCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, found, err := s.sessionFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	code, err := s.editor.GenerateCode(ctx, session, request.GetString("prefix", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !found {
		return mcp.NewToolResultText(code), nil
	}
	return snapshotResult(fmt.Sprintf("Generated code: %s\n\n", code), session.Report)
}

func (s *Server) handleReportSaveDraft(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, found, err := s.sessionFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultError(errNoReportInput.Error()), nil
	}

	location, err := s.editor.SaveDraft(session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Draft saved: %s", location)), nil
}

func (s *Server) handleReportLoadDraft(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	draft, err := request.RequireString("draft")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session := s.newSession()
	r, err := s.editor.LoadDraft(session, draft)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return snapshotResult("", r)
}

func (s *Server) handleReportListDrafts(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")

	drafts, err := s.editor.ListDrafts(s.newSession(), query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatDraftList(s.config.DraftDirectory, query, drafts)), nil
}

func (s *Server) handleReportExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, found, err := s.sessionFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultError(errNoReportInput.Error()), nil
	}

	args := request.GetArguments()
	formats, err := parseFormats(args["formats"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session.Toggles.Autosave = request.GetBool("autosave", s.config.Autosave)
	session.Toggles.Publish = request.GetBool("publish", false)
	if path := request.GetString("logo", ""); path != "" {
		logo, err := s.readLogo(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		session.Logo = logo
	}
	if width := request.GetFloat("logo_width", 0); width != 0 {
		if width < config.MinLogoWidthCM || width > config.MaxLogoWidthCM {
			return mcp.NewToolResultError(fmt.Sprintf("logo_width must be between %g and %g cm, got %g",
				config.MinLogoWidthCM, config.MaxLogoWidthCM, width)), nil
		}
		session.LogoWidthCM = width
	}

	result, err := s.editor.Export(ctx, session, formats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result.Summary()), nil
}

func (s *Server) handleReportInspectPDF(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.outputPaths.NormalizePath(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("security validation failed: %v", err)), nil
	}

	inspection, err := s.editor.InspectFile(resolved)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatInspection(resolved, inspection)), nil
}

func (s *Server) handleReportServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.serverInfo()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatServerInfo(info)), nil
}

// readLogo reads a logo file named in a tool call. Only files inside the
// drafts directory are accepted.
func (s *Server) readLogo(location string) ([]byte, error) {
	path, err := s.logoPaths.NormalizePath(location)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access logo: %w", err)
	}
	if info.Size() > s.config.MaxLogoSize {
		return nil, fmt.Errorf("logo too large: %d bytes (max: %d bytes)", info.Size(), s.config.MaxLogoSize)
	}
	return os.ReadFile(path)
}
