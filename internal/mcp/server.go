package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-report-author/internal/config"
	"github.com/a3tai/mcp-report-author/internal/descriptions"
	"github.com/a3tai/mcp-report-author/internal/editor"
	"github.com/a3tai/mcp-report-author/internal/logger"
	"github.com/a3tai/mcp-report-author/internal/security"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config      *config.Config
	editor      *editor.Service
	mcpServer   *server.MCPServer
	outputPaths *security.PathValidator
	logoPaths   *security.PathValidator
	logo        []byte
}

// NewServer creates a new MCP server instance. The configured default
// logo is read once here.
func NewServer(cfg *config.Config, svc *editor.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("editor service cannot be nil")
	}

	outputPaths, err := security.NewPathValidator(cfg.OutputDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	logoPaths, err := security.NewPathValidator(cfg.DraftDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	logo, err := cfg.ReadLogo()
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
		server.WithRecovery(),
	)

	s := &Server{
		config:      cfg,
		editor:      svc,
		mcpServer:   mcpServer,
		outputPaths: outputPaths,
		logoPaths:   logoPaths,
		logo:        logo,
	}

	s.registerTools()

	return s, nil
}

// reportInput adds the two ways of naming the report a tool works on
func reportInput(required bool) []mcp.ToolOption {
	reportDesc := "Report snapshot as a JSON object or JSON string (see report_template)"
	if required {
		reportDesc += ". Either 'report' or 'draft' is required"
	}
	return []mcp.ToolOption{
		mcp.WithObject("report", mcp.Description(reportDesc)),
		mcp.WithString("draft",
			mcp.Description("Draft file name or path inside the drafts directory, used when 'report' is absent"),
		),
	}
}

func newTool(name string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(descriptions.GetToolDescription(name))}, opts...)...)
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(newTool("report_template"), s.handleReportTemplate)

	s.mcpServer.AddTool(newTool("report_preview", reportInput(true)...), s.handleReportPreview)

	s.mcpServer.AddTool(newTool("report_next_code", append(reportInput(false),
		mcp.WithString("prefix",
			mcp.Description("Code prefix (defaults to the configured prefix)"),
		),
	)...), s.handleReportNextCode)

	s.mcpServer.AddTool(newTool("report_save_draft", reportInput(true)...), s.handleReportSaveDraft)

	s.mcpServer.AddTool(newTool("report_load_draft",
		mcp.WithString("draft",
			mcp.Required(),
			mcp.Description("Draft file name or path inside the drafts directory"),
		),
	), s.handleReportLoadDraft)

	s.mcpServer.AddTool(newTool("report_list_drafts",
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	), s.handleReportListDrafts)

	s.mcpServer.AddTool(newTool("report_export", append(reportInput(true),
		mcp.WithArray("formats",
			mcp.Description("Formats to export: markdown, pdf, docx (default: all)"),
			mcp.Items(map[string]any{"type": "string", "enum": []string{"markdown", "pdf", "docx"}}),
		),
		mcp.WithBoolean("autosave",
			mcp.Description("Save the draft before exporting (defaults to the configured setting)"),
		),
		mcp.WithBoolean("publish",
			mcp.Description("Publish the exported files (requires a configured publish directory)"),
		),
		mcp.WithString("logo",
			mcp.Description("Header logo image (PNG, JPEG, GIF, BMP, TIFF or WebP) inside the drafts directory; overrides the configured logo"),
		),
		mcp.WithNumber("logo_width",
			mcp.Description("Logo width in centimetres, 1 to 12"),
			mcp.Min(config.MinLogoWidthCM),
			mcp.Max(config.MaxLogoWidthCM),
		),
	)...), s.handleReportExport)

	s.mcpServer.AddTool(newTool("report_inspect_pdf",
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("PDF file name or path inside the output directory"),
		),
	), s.handleReportInspectPDF)

	s.mcpServer.AddTool(newTool("report_server_info"), s.handleReportServerInfo)
}

// Run starts the MCP server in the configured mode and returns when ctx is
// done or the transport fails
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves MCP over standard input and output
func (s *Server) runStdioMode(ctx context.Context) error {
	logger.Log.WithField("drafts", s.config.DraftDirectory).Debug("starting report MCP server in stdio mode")

	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over HTTP with server-sent events
func (s *Server) runServerMode(ctx context.Context) error {
	addr := s.config.Address()
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	logger.Log.WithField("address", addr).Info("starting report MCP server in SSE mode")

	errCh := make(chan error, 1)
	go func() {
		errCh <- sse.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down SSE server: %w", err)
	}
	logger.Log.Info("SSE server stopped")
	return nil
}
