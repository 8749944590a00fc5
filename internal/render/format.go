package render

import (
	"fmt"
	"strings"

	"github.com/a3tai/mcp-report-author/internal/report"
)

// Format names an exported representation
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// MIME types of the exported representations
const (
	MIMEMarkdown = "text/markdown"
	MIMEPDF      = "application/pdf"
	MIMEDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllFormats lists every projection in export order
var AllFormats = []Format{FormatMarkdown, FormatPDF, FormatDOCX}

// ParseFormat accepts a format name or its file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "docx", "word":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatPDF:
		return ".pdf"
	case FormatDOCX:
		return ".docx"
	}
	return ""
}

// MIME returns the media type of the format
func (f Format) MIME() string {
	switch f {
	case FormatMarkdown:
		return MIMEMarkdown
	case FormatPDF:
		return MIMEPDF
	case FormatDOCX:
		return MIMEDOCX
	}
	return "application/octet-stream"
}

// Render runs the projection for the given format
func Render(f Format, r *report.Report, logo *Logo) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(Markdown(r)), nil
	case FormatPDF:
		return PDF(r, logo)
	case FormatDOCX:
		return DOCX(r, logo)
	default:
		return nil, &RenderError{Format: f, Op: "dispatch", Err: fmt.Errorf("unsupported format")}
	}
}
