// Package report holds the in-memory report record and its snapshot encoding.
package report

import (
	"strings"
	"time"
)

const (
	// DefaultTitle is the title a freshly created report starts with
	DefaultTitle = "Technical Report"
	// DefaultVersion is the version string a freshly created report starts with
	DefaultVersion = "1.0"
	// FallbackName names drafts and exports of reports that have no code yet
	FallbackName = "report"
	// DateLayout is the ISO-8601 calendar date layout used for Report.Date
	DateLayout = "2006-01-02"
)

// Author is one member of the team that wrote the report
type Author struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Email string `json:"email" yaml:"email"`
}

// Reference is a single citation
type Reference struct {
	Text string `json:"text" yaml:"text"`
}

// Attachment describes supporting material shipped with the report
type Attachment struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
}

// Report is the complete record of one report's fields.
//
// No field is validated: dates, codes and versions are kept exactly as
// supplied. Collections keep insertion order, which is also rendering order.
type Report struct {
	// Metadata
	Title   string `json:"title" yaml:"title"`
	Client  string `json:"client" yaml:"client"`
	Project string `json:"project" yaml:"project"`
	Code    string `json:"code" yaml:"code"`
	Date    string `json:"date" yaml:"date"`
	Version string `json:"version" yaml:"version"`

	// Team
	Authors  []Author `json:"authors" yaml:"authors"`
	Approver string   `json:"approver" yaml:"approver"`

	// Body
	ExecutiveSummary string `json:"executive_summary" yaml:"executive_summary"`
	Scope            string `json:"scope" yaml:"scope"`
	DataSources      string `json:"data_sources" yaml:"data_sources"`
	Methodology      string `json:"methodology" yaml:"methodology"`
	Results          string `json:"results" yaml:"results"`
	Discussion       string `json:"discussion" yaml:"discussion"`
	Conclusions      string `json:"conclusions" yaml:"conclusions"`
	Recommendations  string `json:"recommendations" yaml:"recommendations"`

	// Other
	References  []Reference  `json:"references" yaml:"references"`
	Attachments []Attachment `json:"attachments" yaml:"attachments"`
	Notes       string       `json:"notes" yaml:"notes"`
}

// New returns a report with every field at its default value
func New() *Report {
	return NewAt(time.Now())
}

// NewAt returns a default report dated on the given day
func NewAt(now time.Time) *Report {
	return &Report{
		Title:       DefaultTitle,
		Date:        now.Format(DateLayout),
		Version:     DefaultVersion,
		Authors:     []Author{{}},
		References:  []Reference{},
		Attachments: []Attachment{},
	}
}

// Section is one of the eight free-text body sections
type Section struct {
	Heading string
	Text    string
}

// Sections returns the body sections in their fixed rendering order
func (r *Report) Sections() []Section {
	return []Section{
		{Heading: "Executive Summary", Text: r.ExecutiveSummary},
		{Heading: "Scope", Text: r.Scope},
		{Heading: "Data & Sources", Text: r.DataSources},
		{Heading: "Methodology", Text: r.Methodology},
		{Heading: "Results", Text: r.Results},
		{Heading: "Discussion", Text: r.Discussion},
		{Heading: "Conclusions", Text: r.Conclusions},
		{Heading: "Recommendations", Text: r.Recommendations},
	}
}

// QualifiedAuthors returns the authors that have a name
func (r *Report) QualifiedAuthors() []Author {
	var out []Author
	for _, a := range r.Authors {
		if !Blank(a.Name) {
			out = append(out, a)
		}
	}
	return out
}

// QualifiedReferences returns the references whose text is not blank
func (r *Report) QualifiedReferences() []Reference {
	var out []Reference
	for _, ref := range r.References {
		if !Blank(ref.Text) {
			out = append(out, ref)
		}
	}
	return out
}

// QualifiedAttachments returns the attachments that have a title
func (r *Report) QualifiedAttachments() []Attachment {
	var out []Attachment
	for _, a := range r.Attachments {
		if !Blank(a.Title) {
			out = append(out, a)
		}
	}
	return out
}

// baseNameReplacer turns a code into a single path element
var baseNameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "..", "_", "\x00", "")

// BaseName is the file name stem used for drafts and exported files.
// Spaces and path separators become underscores so the stem never leaves
// the directory it is written to.
func (r *Report) BaseName() string {
	if Blank(r.Code) {
		return FallbackName
	}
	name := baseNameReplacer.Replace(strings.TrimSpace(r.Code))
	if strings.HasPrefix(name, ".") {
		name = "_" + name[1:]
	}
	if name == "" {
		return FallbackName
	}
	return name
}

// Clone returns a deep copy of the report
func (r *Report) Clone() *Report {
	c := *r
	if r.Authors != nil {
		c.Authors = append([]Author{}, r.Authors...)
	}
	if r.References != nil {
		c.References = append([]Reference{}, r.References...)
	}
	if r.Attachments != nil {
		c.Attachments = append([]Attachment{}, r.Attachments...)
	}
	return &c
}

// Blank reports whether s has no visible content
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
