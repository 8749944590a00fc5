package render

import (
	"strings"

	"github.com/a3tai/mcp-report-author/internal/report"
)

// Markdown renders the report as structured text: heading markers for
// headings and dash-prefixed lines for lists
func Markdown(r *report.Report) string {
	parts := make([]string, 0, 32)

	for _, b := range Outline(r) {
		switch b.Kind {
		case BlockTitle:
			parts = append(parts, "# "+b.Text)
		case BlockMetadata:
			lines := make([]string, len(b.Fields))
			for i, f := range b.Fields {
				lines[i] = "**" + f.Label + ":** " + f.Value
			}
			// two trailing spaces force line breaks inside the paragraph
			parts = append(parts, strings.Join(lines, "  \n"), "---")
		case BlockHeading:
			parts = append(parts, "## "+b.Text)
		case BlockText:
			parts = append(parts, b.Text)
		case BlockList:
			lines := make([]string, len(b.Items))
			for i, it := range b.Items {
				lead := ""
				if it.Lead != "" {
					lead = "**" + it.Lead + "**"
				}
				lines[i] = "- " + lead + it.Text
			}
			parts = append(parts, strings.Join(lines, "\n"))
		case BlockField:
			for _, f := range b.Fields {
				parts = append(parts, "**"+f.Label+":** "+f.Value)
			}
		}
	}

	return strings.Join(parts, "\n\n") + "\n"
}
