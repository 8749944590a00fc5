package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		report *Report
	}{
		{name: "full", report: fullReport()},
		{name: "defaults", report: New()},
		{name: "nil collections", report: &Report{Title: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.report)
			require.NoError(t, err)

			got, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, tt.report, got)
		})
	}
}

func TestMarshal_Layout(t *testing.T) {
	data, err := Marshal(fullReport())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "\n  \"title\": \"Audit\"")
	assert.Contains(t, text, "\"executive_summary\": \"summary\"")
	// no HTML escaping, non-ASCII kept as is
	assert.Contains(t, text, "Plant <B> & co")
	assert.Contains(t, text, "João Silva")
	assert.Contains(t, text, "\"authors\": [")
}

func TestUnmarshal_MissingKeysKeepDefaults(t *testing.T) {
	r, err := Unmarshal([]byte(`{"title": "Only title", "code": "X001"}`))
	require.NoError(t, err)

	assert.Equal(t, "Only title", r.Title)
	assert.Equal(t, "X001", r.Code)
	assert.Equal(t, DefaultVersion, r.Version)
	assert.Len(t, r.Authors, 1)
	assert.NotEmpty(t, r.Date)
}

func TestUnmarshal_Malformed(t *testing.T) {
	_, err := Unmarshal([]byte(`{"title": `))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`{"authors": "not a list"}`))
	assert.Error(t, err)
}

func TestDecode_YAML(t *testing.T) {
	src := strings.Join([]string{
		"title: Field survey",
		"client: Acme",
		"authors:",
		"  - name: Jane Doe",
		"    role: Lead",
		"    email: j@x.com",
		"references:",
		"  - text: ISO 9001",
		"notes: |",
		"  first",
		"  second",
	}, "\n")

	r, err := Decode([]byte(src), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Field survey", r.Title)
	assert.Equal(t, []Author{{Name: "Jane Doe", Role: "Lead", Email: "j@x.com"}}, r.Authors)
	assert.Equal(t, []Reference{{Text: "ISO 9001"}}, r.References)
	assert.Equal(t, "first\nsecond", strings.TrimSpace(r.Notes))
	assert.Equal(t, DefaultVersion, r.Version)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("drafts/R001.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatFromPath("draft.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("draft.txt")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Decode([]byte("{}"), Format("toml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
