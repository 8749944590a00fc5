// Package render projects a report into its exported representations.
//
// Every projection walks the same Outline, so section order, placeholder
// substitution and entry filtering are decided once and only the surface
// formatting differs between Markdown, PDF and DOCX.
package render

import (
	"strings"

	"github.com/a3tai/mcp-report-author/internal/report"
)

const (
	// Placeholder stands in for any blank field or empty list
	Placeholder = "(to be filled)"
	// Dash stands in for blank metadata values
	Dash = "-"
)

// BlockKind tells a projection how to lay out a block
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockMetadata
	BlockHeading
	BlockText
	BlockList
	BlockField
)

// Field is a label/value pair
type Field struct {
	Label string
	Value string
}

// Item is one list entry. Lead, when set, is rendered emphasised before Text.
type Item struct {
	Lead string
	Text string
}

// Block is one unit of the outline
type Block struct {
	Kind   BlockKind
	Text   string
	Fields []Field
	Items  []Item
}

// Outline returns the ordered blocks every projection renders
func Outline(r *report.Report) []Block {
	blocks := []Block{
		{Kind: BlockTitle, Text: orPlaceholder(r.Title)},
		{Kind: BlockMetadata, Fields: []Field{
			{Label: "Client", Value: orDash(r.Client)},
			{Label: "Project", Value: orDash(r.Project)},
			{Label: "Code", Value: orDash(r.Code)},
			{Label: "Date", Value: orDash(r.Date)},
			{Label: "Version", Value: orDash(r.Version)},
		}},
		{Kind: BlockHeading, Text: "Authors"},
	}

	var authors []Item
	for _, a := range r.QualifiedAuthors() {
		authors = append(authors, Item{Text: AuthorLine(a)})
	}
	blocks = append(blocks, listOrPlaceholder(authors))
	blocks = append(blocks, Block{Kind: BlockField, Fields: []Field{
		{Label: "Approver", Value: orPlaceholder(r.Approver)},
	}})

	for _, s := range r.Sections() {
		blocks = append(blocks,
			Block{Kind: BlockHeading, Text: s.Heading},
			Block{Kind: BlockText, Text: orPlaceholder(s.Text)},
		)
	}

	var refs []Item
	for _, ref := range r.QualifiedReferences() {
		refs = append(refs, Item{Text: ref.Text})
	}
	blocks = append(blocks, Block{Kind: BlockHeading, Text: "References"}, listOrPlaceholder(refs))

	var attachments []Item
	for _, a := range r.QualifiedAttachments() {
		attachments = append(attachments, Item{Lead: a.Title, Text: attachmentTail(a)})
	}
	blocks = append(blocks, Block{Kind: BlockHeading, Text: "Attachments"}, listOrPlaceholder(attachments))

	// notes are omitted entirely when blank
	if !report.Blank(r.Notes) {
		blocks = append(blocks,
			Block{Kind: BlockHeading, Text: "Notes"},
			Block{Kind: BlockText, Text: r.Notes},
		)
	}

	return blocks
}

// AuthorLine formats an author as "name (role) <email>", leaving out blank parts
func AuthorLine(a report.Author) string {
	var b strings.Builder
	b.WriteString(a.Name)
	if !report.Blank(a.Role) {
		b.WriteString(" (" + a.Role + ")")
	}
	if !report.Blank(a.Email) {
		b.WriteString(" <" + a.Email + ">")
	}
	return b.String()
}

// attachmentTail is everything after the title: " – description (link)"
func attachmentTail(a report.Attachment) string {
	var b strings.Builder
	if !report.Blank(a.Description) {
		b.WriteString(" – " + a.Description)
	}
	if !report.Blank(a.Link) {
		b.WriteString(" (" + a.Link + ")")
	}
	return b.String()
}

func listOrPlaceholder(items []Item) Block {
	if len(items) == 0 {
		return Block{Kind: BlockText, Text: Placeholder}
	}
	return Block{Kind: BlockList, Items: items}
}

func orPlaceholder(s string) string {
	if report.Blank(s) {
		return Placeholder
	}
	return s
}

func orDash(s string) string {
	if report.Blank(s) {
		return Dash
	}
	return s
}
