package render

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"
	"unicode/utf16"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/a3tai/mcp-report-author/internal/report"
)

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), nil))
	return buf.Bytes()
}

func bmpBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

// zeroSizeGIF is a GIF header declaring a 0x0 logical screen
var zeroSizeGIF = []byte("GIF89a\x00\x00\x00\x00\x00\x00\x00")

func pdfText(t *testing.T, data []byte) string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	plain, err := r.GetPlainText()
	require.NoError(t, err)
	text, err := io.ReadAll(plain)
	require.NoError(t, err)
	return string(text)
}

// pageContent returns the decoded content stream of one page
func pageContent(t *testing.T, data []byte, page int) string {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadAndValidate(bytes.NewReader(data), conf)
	require.NoError(t, err)
	r, err := pdfcpu.ExtractPageContent(ctx, page)
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(content)
}

// utf16BE is the string encoding used by embedded TrueType fonts
func utf16BE(s string) string {
	var b []byte
	for _, u := range utf16.Encode([]rune(s)) {
		b = append(b, byte(u>>8), byte(u))
	}
	return string(b)
}

func readDocxPart(t *testing.T, data []byte, name string) (string, bool) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content), true
	}
	return "", false
}

func auditReport() *report.Report {
	return &report.Report{
		Title:   "Audit",
		Client:  "Acme",
		Date:    "2025-01-02",
		Version: "1.0",
		Authors: []report.Author{{Name: "Jane Doe", Role: "Lead", Email: "j@x.com"}},
	}
}

func populatedReport() *report.Report {
	return &report.Report{
		Title:   "Site Assessment",
		Client:  "Acme",
		Project: "North Plant",
		Code:    "RT042",
		Date:    "2025-06-30",
		Version: "2.0",
		Authors: []report.Author{
			{Name: "Jane Doe", Role: "Lead", Email: "j@x.com"},
			{Name: " ", Role: "Ghost", Email: "ghost@x.com"},
			{Name: "Sam Roe"},
		},
		Approver:         "Mary Major",
		ExecutiveSummary: "Everything is fine.",
		Scope:            "Two buildings.\nOne yard.",
		DataSources:      "Sensors",
		Methodology:      "Walkthrough",
		Results:          "No findings",
		Discussion:       "None needed",
		Conclusions:      "Pass",
		Recommendations:  "Repeat yearly",
		References:       []report.Reference{{Text: "ISO 9001"}, {Text: ""}},
		Attachments: []report.Attachment{
			{Title: "Photos", Description: "Site photos", Link: "https://example.com/p"},
			{Title: "Checklist"},
			{Title: "", Description: "orphan description"},
		},
		Notes: "Reviewed twice",
	}
}
