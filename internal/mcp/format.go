package mcp

import (
	"fmt"

	"github.com/a3tai/mcp-report-author/internal/pdf"
	"github.com/a3tai/mcp-report-author/internal/store"
)

func formatDraftList(dir, query string, drafts []store.DraftInfo) string {
	if len(drafts) == 0 {
		text := fmt.Sprintf("No drafts found in directory: %s", dir)
		if query != "" {
			text += fmt.Sprintf(" (searched for: %s)", query)
		}
		return text
	}

	text := fmt.Sprintf("Found %d draft(s) in directory: %s\n", len(drafts), dir)
	if query != "" {
		text += fmt.Sprintf("Search query: %s\n", query)
	}
	text += "\n"
	for i, d := range drafts {
		text += fmt.Sprintf("%d. %s\n", i+1, d.Name)
		text += fmt.Sprintf("   Path: %s\n", d.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", d.Size)
		text += fmt.Sprintf("   Modified: %s\n", d.ModifiedTime)
	}
	return text
}

func formatInspection(path string, inspection *pdf.Inspection) string {
	var text string
	if inspection.Valid {
		text = fmt.Sprintf("PDF file %s is valid and readable\n", path)
	} else {
		text = fmt.Sprintf("PDF validation failed for %s: %s\n", path, inspection.Message)
	}
	text += fmt.Sprintf("Pages: %d\n", inspection.Pages)
	text += fmt.Sprintf("Size: %d bytes\n", inspection.Size)
	if inspection.Text != "" {
		text += "\nContent:\n" + inspection.Text
	}
	return text
}

func formatServerInfo(info *ServerInfo) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", info.ServerName, info.Version)
	text += fmt.Sprintf("📁 Drafts Directory: %s\n", info.DraftDirectory)
	text += fmt.Sprintf("📤 Output Directory: %s\n", info.OutputDirectory)
	if info.PublishDirectory != "" {
		text += fmt.Sprintf("🌐 Publish Directory: %s\n", info.PublishDirectory)
	} else {
		text += "🌐 Publishing: disabled\n"
	}
	text += fmt.Sprintf("🔢 Next Code: %s\n", store.FormatCode(info.CodePrefix, info.NextCounter))
	if info.LogoConfigured {
		text += fmt.Sprintf("🖼️  Logo: configured, %.1f cm wide\n", info.LogoWidthCM)
	} else {
		text += "🖼️  Logo: none\n"
	}
	text += fmt.Sprintf("💾 Autosave: %t\n\n", info.Autosave)

	if len(info.Drafts) > 0 {
		text += fmt.Sprintf("📂 Drafts (%d found):\n", len(info.Drafts))
		for i, d := range info.Drafts {
			if i >= maxListedDrafts {
				text += fmt.Sprintf("   ... and %d more drafts\n", len(info.Drafts)-maxListedDrafts)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, d.Name, d.Size)
		}
		text += "\n"
	} else {
		text += "📂 Drafts: none saved yet\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range info.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n📄 Export Formats:\n"
	for _, f := range info.Formats {
		text += fmt.Sprintf("  • %s\n", f)
	}

	text += "\n" + info.UsageGuidance
	return text
}
