package mcp

import (
	"fmt"

	"github.com/a3tai/mcp-report-author/internal/descriptions"
	"github.com/a3tai/mcp-report-author/internal/render"
	"github.com/a3tai/mcp-report-author/internal/store"
)

// maxListedDrafts limits the drafts shown in server info
const maxListedDrafts = 10

// ToolInfo describes one registered tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// ServerInfo is the result of report_server_info
type ServerInfo struct {
	ServerName       string            `json:"server_name"`
	Version          string            `json:"version"`
	DraftDirectory   string            `json:"draft_directory"`
	OutputDirectory  string            `json:"output_directory"`
	PublishDirectory string            `json:"publish_directory,omitempty"`
	CodePrefix       string            `json:"code_prefix"`
	NextCounter      int               `json:"next_counter"`
	LogoConfigured   bool              `json:"logo_configured"`
	LogoWidthCM      float64           `json:"logo_width_cm"`
	Autosave         bool              `json:"autosave"`
	Drafts           []store.DraftInfo `json:"drafts"`
	AvailableTools   []ToolInfo        `json:"available_tools"`
	Formats          []string          `json:"formats"`
	UsageGuidance    string            `json:"usage_guidance"`
}

func (s *Server) serverInfo() (*ServerInfo, error) {
	drafts, err := s.editor.ListDrafts(s.newSession(), "")
	if err != nil {
		return nil, err
	}

	formats := make([]string, 0, len(render.AllFormats))
	for _, f := range render.AllFormats {
		formats = append(formats, string(f))
	}

	return &ServerInfo{
		ServerName:       s.config.ServerName,
		Version:          s.config.Version,
		DraftDirectory:   s.config.DraftDirectory,
		OutputDirectory:  s.config.OutputDirectory,
		PublishDirectory: s.config.PublishDirectory,
		CodePrefix:       s.config.CodePrefix,
		NextCounter:      store.NewCounter(s.editor.Fs(), s.config.DraftDirectory).Current() + 1,
		LogoConfigured:   len(s.logo) > 0,
		LogoWidthCM:      s.config.LogoWidthCM,
		Autosave:         s.config.Autosave,
		Drafts:           drafts,
		AvailableTools:   availableTools(),
		Formats:          formats,
		UsageGuidance:    usageGuidance(s.config.CodePrefix),
	}, nil
}

func availableTools() []ToolInfo {
	reportParams := "report (object) or draft (string): the report to work on"
	tools := []ToolInfo{
		{
			Name:       "report_template",
			Usage:      "Get the JSON shape of a new report with all defaults.",
			Parameters: "none",
		},
		{
			Name:       "report_preview",
			Usage:      "Read the report as Markdown before exporting.",
			Parameters: reportParams,
		},
		{
			Name:       "report_next_code",
			Usage:      "Issue the next sequential report code.",
			Parameters: "prefix (optional); " + reportParams + " (optional, returned with the code applied)",
		},
		{
			Name:       "report_save_draft",
			Usage:      "Persist the report as <code>.json in the drafts directory.",
			Parameters: reportParams,
		},
		{
			Name:       "report_load_draft",
			Usage:      "Load a saved draft.",
			Parameters: "draft (required): file name or path inside the drafts directory",
		},
		{
			Name:       "report_list_drafts",
			Usage:      "Find drafts, optionally with a fuzzy query.",
			Parameters: "query (optional)",
		},
		{
			Name:  "report_export",
			Usage: "Export to Markdown, PDF and DOCX, with optional autosave and publishing.",
			Parameters: reportParams + "; formats (optional list); autosave, publish (optional booleans); " +
				"logo (optional path); logo_width (optional, cm)",
		},
		{
			Name:       "report_inspect_pdf",
			Usage:      "Validate an exported PDF and read back its text.",
			Parameters: "path (required): file name or path inside the output directory",
		},
		{
			Name:       "report_server_info",
			Usage:      "Show this overview.",
			Parameters: "none",
		},
	}
	for i := range tools {
		tools[i].Description = descriptions.GetToolDescription(tools[i].Name)
	}
	return tools
}

func usageGuidance(prefix string) string {
	return fmt.Sprintf(`Report Author Usage Guide:

1. START A REPORT:
   - Use 'report_template' to get an empty report
   - Use 'report_next_code' to assign the next %s code

2. WRITE AND REVIEW:
   - Fill in the fields and call 'report_preview' to read the result
   - Use 'report_save_draft' regularly; 'report_list_drafts' and 'report_load_draft' bring drafts back

3. EXPORT:
   - 'report_export' writes Markdown, PDF and DOCX to the output directory
   - Check the notices in the response: a step that failed never stops the others
   - 'report_inspect_pdf' confirms the PDF reads back correctly

IMPORTANT NOTES:
- Empty sections are exported as "(to be filled)"; notes are left out when empty
- Authors without a name, references without text and attachments without a title are not exported
- Drafts are named after the report code; reports without a code are saved as report.json`, prefix)
}
