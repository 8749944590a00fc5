package descriptions

import "sort"

// Tool descriptions with practical examples and use cases

const (
	// Authoring tools
	ReportTemplateDescription = `Return a blank report snapshot with every default filled in.

**When to use:** Starting a new report and you need the exact JSON shape the other tools accept.

**Why it's useful:** Shows every field (metadata, authors, the eight body sections, references, attachments, notes) with today's date, version 1.0 and one empty author row.

**Examples:**
• Start a report: "Give me an empty technical report to fill in"
• Check field names: "Which keys does the report JSON use?"

**Best practices:** Fill the template, then pass it as 'report' to report_preview or report_export.`

	ReportPreviewDescription = `Render a report as structured Markdown text without writing any file.

**When to use:** Reviewing a report while it is being written, before exporting it.

**Why it's useful:** Uses the same section order, placeholders and filtering as the PDF and DOCX exports, so what you read is what gets exported.

**Examples:**
• Check progress: "Preview the draft R007 so far"
• Review a pasted report: "Show the Markdown for this report JSON"

**Best practices:** Empty sections show "(to be filled)"; authors, references and attachments without a name, text or title are left out.`

	ReportNextCodeDescription = `Issue the next sequential report code from the drafts directory counter.

**When to use:** A new report needs its identifier.

**Why it's useful:** Codes are the prefix followed by a zero-padded number (RTEC001, RTEC002, ...). The counter lives in counter.json and is locked while it is incremented, so parallel callers never receive the same code.

**Examples:**
• "Give me the next report code"
• "Next code with prefix ACME"

**Best practices:** Pass 'report' or 'draft' as well to get the report back with the code applied.`

	ReportSaveDraftDescription = `Save a report snapshot as <code>.json in the drafts directory.

**When to use:** Persisting work in progress so it can be reloaded later.

**Why it's useful:** Every field is stored, so loading the draft gives back exactly the same report. Reports without a code are saved as report.json.

**Examples:**
• "Save this report as a draft"

**Best practices:** Generate a code first to avoid overwriting report.json.`

	ReportLoadDraftDescription = `Load a saved draft and return its full snapshot.

**When to use:** Continuing work on an earlier report.

**Why it's useful:** Accepts a file name (R007.json) or a path inside the drafts directory. JSON and YAML snapshots are both understood; missing keys take their default values.

**Examples:**
• "Open draft R007"
• "Load ACME_site_visit.yaml"`

	ReportListDraftsDescription = `List the drafts in the drafts directory with optional fuzzy filtering.

**When to use:** Finding a draft to load.

**Why it's useful:** Matches on substrings and on every word of the query, in any order ("site acme" finds ACME_site_visit.json). The counter file is never listed.

**Examples:**
• "Which drafts exist?"
• "Find drafts about the Acme audit"`

	ReportExportDescription = `Export a report to Markdown, PDF and DOCX.

**When to use:** The report is ready to be shared.

**Why it's useful:** One call runs the whole pipeline: optional autosave of the draft, JSON snapshot, the three document formats with the configured logo in the header, files written to the output directory and optional publishing. Failures of single steps are reported as notices while the remaining steps still run.

**Examples:**
• "Export R007 as PDF only"
• "Export this report and publish it"

**Best practices:** An unreadable logo image skips the PDF and DOCX exports with a notice; fix the logo or omit it. A logo argument names an image inside the drafts directory.`

	ReportInspectPDFDescription = `Validate an exported PDF and read its text back.

**When to use:** Checking a PDF in the output directory before sending it out.

**Why it's useful:** Reports validity, page count and the extracted text of every page.

**Examples:**
• "Check out/R007.pdf"`

	ReportServerInfoDescription = `Get server configuration, available tools, drafts and usage guidance.

**When to use:** First call of a session, or when unsure which tool to use.

**Why it's useful:** Shows the drafts, output and publish directories, the code prefix, the logo settings and the current drafts.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"report_template":    ReportTemplateDescription,
	"report_preview":     ReportPreviewDescription,
	"report_next_code":   ReportNextCodeDescription,
	"report_save_draft":  ReportSaveDraftDescription,
	"report_load_draft":  ReportLoadDraftDescription,
	"report_list_drafts": ReportListDraftsDescription,
	"report_export":      ReportExportDescription,
	"report_inspect_pdf": ReportInspectPDFDescription,
	"report_server_info": ReportServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the names of all tools in alphabetical order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
