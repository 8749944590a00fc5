package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-report-author/internal/report"
)

func TestPDF_Content(t *testing.T) {
	data, err := PDF(populatedReport(), nil)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	text := pdfText(t, data)
	assert.Contains(t, text, "Site Assessment")
	assert.Contains(t, text, "Jane Doe (Lead) <j@x.com>")
	assert.Contains(t, text, "Executive Summary")
	assert.Contains(t, text, "Everything is fine.")
	assert.Contains(t, text, "ISO 9001")
	assert.Contains(t, text, "Photos")
	assert.Contains(t, text, "Reviewed twice")
	assert.NotContains(t, text, Placeholder)

	assert.NotContains(t, text, "ghost@x.com")
	assert.NotContains(t, text, "orphan description")
}

func TestPDF_NonLatinText(t *testing.T) {
	r := auditReport()
	r.Title = "Ελλάδα"
	r.Client = "Łódź"
	r.Project = "Ação"
	r.Approver = "Привет"

	data, err := PDF(r, nil)
	require.NoError(t, err)

	content := pageContent(t, data, 1)
	for _, s := range []string{"Ελλάδα", "Łódź", "Привет"} {
		assert.Contains(t, content, utf16BE(s), s)
	}
	assert.Contains(t, pdfText(t, data), "Ação")
}

func TestPDF_PlaceholderInvariant(t *testing.T) {
	data, err := PDF(&report.Report{}, nil)
	require.NoError(t, err)

	text := pdfText(t, data)
	assert.Equal(t, 13, strings.Count(text, Placeholder))
	assert.NotContains(t, text, "Notes")
}

func TestPDF_Deterministic(t *testing.T) {
	first, err := PDF(populatedReport(), nil)
	require.NoError(t, err)
	second, err := PDF(populatedReport(), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPDF_Paginates(t *testing.T) {
	r := populatedReport()
	r.Results = strings.Repeat("A long line of findings that keeps going and going.\n", 200)

	data, err := PDF(r, nil)
	require.NoError(t, err)
	assert.Greater(t, bytes.Count(data, []byte("/Type /Page\n")), 1)
}

func TestPDF_Logo(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{name: "png", data: func(t *testing.T) []byte { return pngBytes(t, 200, 100) }},
		{name: "jpeg", data: func(t *testing.T) []byte { return jpegBytes(t, 120, 60) }},
		{name: "bmp", data: func(t *testing.T) []byte { return bmpBytes(t, 30, 30) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := PDF(auditReport(), &Logo{Data: tt.data(t), WidthCM: 3.5})
			require.NoError(t, err)
			assert.Contains(t, string(data), "/Subtype /Image")
			assert.Contains(t, pdfText(t, data), "Audit")
		})
	}
}

func TestPDF_UnreadableLogo(t *testing.T) {
	_, err := PDF(auditReport(), &Logo{Data: []byte("garbage"), WidthCM: 3})
	require.Error(t, err)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, FormatPDF, renderErr.Format)
	assert.Equal(t, "logo", renderErr.Op)
	assert.True(t, errors.Is(err, ErrUnreadableLogo))
}

func TestPDF_EmptyLogoIsIgnored(t *testing.T) {
	data, err := PDF(auditReport(), &Logo{WidthCM: 3})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/Subtype /Image")
}
