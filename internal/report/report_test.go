package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullReport() *Report {
	return &Report{
		Title:   "Audit",
		Client:  "Acme",
		Project: "Plant <B> & co",
		Code:    "R007",
		Date:    "2024-13-45",
		Version: "2.1",
		Authors: []Author{
			{Name: "Jane Doe", Role: "Lead", Email: "j@x.com"},
			{Name: "", Role: "Ghost", Email: "ghost@x.com"},
			{Name: "João Silva", Role: "Analyst"},
		},
		Approver:         "Mary",
		ExecutiveSummary: "summary",
		Scope:            "scope\nsecond line",
		DataSources:      "sources",
		Methodology:      "method",
		Results:          "results",
		Discussion:       "discussion",
		Conclusions:      "conclusions",
		Recommendations:  "recommendations",
		References:       []Reference{{Text: "ISO 9001"}, {Text: "  "}, {Text: "RFC 2119"}},
		Attachments: []Attachment{
			{Title: "Photos", Description: "site photos", Link: "https://example.com/p"},
			{Title: "", Description: "orphan"},
		},
		Notes: "notes",
	}
}

func TestNewAt_Defaults(t *testing.T) {
	r := NewAt(time.Date(2025, 3, 9, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, DefaultTitle, r.Title)
	assert.Equal(t, "2025-03-09", r.Date)
	assert.Equal(t, DefaultVersion, r.Version)
	assert.Len(t, r.Authors, 1)
	assert.Equal(t, Author{}, r.Authors[0])
	assert.Empty(t, r.References)
	assert.Empty(t, r.Attachments)
	assert.Empty(t, r.Code)
	assert.Empty(t, r.Notes)
}

func TestSections_FixedOrder(t *testing.T) {
	sections := fullReport().Sections()
	require.Len(t, sections, 8)

	want := []string{
		"Executive Summary", "Scope", "Data & Sources", "Methodology",
		"Results", "Discussion", "Conclusions", "Recommendations",
	}
	for i, s := range sections {
		assert.Equal(t, want[i], s.Heading)
	}
	assert.Equal(t, "scope\nsecond line", sections[1].Text)
}

func TestQualified_FiltersWithoutMutating(t *testing.T) {
	r := fullReport()

	authors := r.QualifiedAuthors()
	require.Len(t, authors, 2)
	assert.Equal(t, "Jane Doe", authors[0].Name)
	assert.Equal(t, "João Silva", authors[1].Name)

	refs := r.QualifiedReferences()
	require.Len(t, refs, 2)
	assert.Equal(t, "RFC 2119", refs[1].Text)

	attachments := r.QualifiedAttachments()
	require.Len(t, attachments, 1)
	assert.Equal(t, "Photos", attachments[0].Title)

	// the model keeps every entry
	assert.Len(t, r.Authors, 3)
	assert.Len(t, r.References, 3)
	assert.Len(t, r.Attachments, 2)
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "R007", want: "R007"},
		{code: "", want: FallbackName},
		{code: "   ", want: FallbackName},
		{code: "ACME RT 01", want: "ACME_RT_01"},
		{code: "../x", want: "__x"},
		{code: "a/b", want: "a_b"},
		{code: `..\..\win`, want: "____win"},
		{code: ".hidden", want: "_hidden"},
		{code: "v1.2", want: "v1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := &Report{Code: tt.code}
			assert.Equal(t, tt.want, r.BaseName())
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	r := fullReport()
	c := r.Clone()
	require.Equal(t, r, c)

	c.Authors[0].Name = "changed"
	c.References[0].Text = "changed"
	c.Attachments[0].Title = "changed"

	assert.Equal(t, "Jane Doe", r.Authors[0].Name)
	assert.Equal(t, "ISO 9001", r.References[0].Text)
	assert.Equal(t, "Photos", r.Attachments[0].Title)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank(" \t\n"))
	assert.False(t, Blank(" x "))
}
