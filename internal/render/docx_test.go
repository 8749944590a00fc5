package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-report-author/internal/report"
)

func TestDOCX_Package(t *testing.T) {
	data, err := DOCX(populatedReport(), nil)
	require.NoError(t, err)

	for _, name := range []string{
		"[Content_Types].xml", "_rels/.rels", "docProps/core.xml",
		"word/styles.xml", "word/_rels/document.xml.rels", "word/document.xml",
	} {
		_, ok := readDocxPart(t, data, name)
		assert.True(t, ok, name)
	}
	_, ok := readDocxPart(t, data, "word/header1.xml")
	assert.False(t, ok)

	core, _ := readDocxPart(t, data, "docProps/core.xml")
	assert.Contains(t, core, "<dc:title>Site Assessment</dc:title>")
	assert.Contains(t, core, "2025-06-30T00:00:00Z")
}

func TestDOCX_Body(t *testing.T) {
	data, err := DOCX(populatedReport(), nil)
	require.NoError(t, err)
	doc, _ := readDocxPart(t, data, "word/document.xml")

	assert.Contains(t, doc, `<w:pStyle w:val="Title"/></w:pPr><w:r><w:t xml:space="preserve">Site Assessment</w:t>`)
	assert.Contains(t, doc, `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Client: </w:t></w:r>`+
		`<w:r><w:t xml:space="preserve">Acme</w:t></w:r>`)
	assert.Contains(t, doc, `<w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t xml:space="preserve">Recommendations</w:t>`)
	assert.Contains(t, doc, `Jane Doe (Lead) &lt;j@x.com&gt;`)
	assert.Contains(t, doc, `Two buildings.</w:t><w:br/><w:t xml:space="preserve">One yard.`)
	assert.Contains(t, doc, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Photos</w:t>`)
	assert.Contains(t, doc, "Reviewed twice")
	assert.NotContains(t, doc, "headerReference")
	assert.NotContains(t, doc, Placeholder)

	assert.NotContains(t, doc, "ghost@x.com")
	assert.NotContains(t, doc, "orphan description")
}

func TestDOCX_PlaceholderInvariant(t *testing.T) {
	data, err := DOCX(&report.Report{}, nil)
	require.NoError(t, err)
	doc, _ := readDocxPart(t, data, "word/document.xml")

	assert.Equal(t, 13, strings.Count(doc, Placeholder))
	assert.NotContains(t, doc, "Notes")
}

func TestDOCX_Logo(t *testing.T) {
	data, err := DOCX(auditReport(), &Logo{Data: pngBytes(t, 200, 100), WidthCM: 3.5})
	require.NoError(t, err)

	header, ok := readDocxPart(t, data, "word/header1.xml")
	require.True(t, ok)
	assert.Contains(t, header, `<wp:extent cx="1260000" cy="630000"/>`)
	assert.Contains(t, header, `r:embed="rId1"`)

	rels, _ := readDocxPart(t, data, "word/_rels/header1.xml.rels")
	assert.Contains(t, rels, `Target="media/logo.png"`)

	_, ok = readDocxPart(t, data, "word/media/logo.png")
	assert.True(t, ok)

	doc, _ := readDocxPart(t, data, "word/document.xml")
	assert.Contains(t, doc, `<w:headerReference w:type="default" r:id="rId2"/>`)

	types, _ := readDocxPart(t, data, "[Content_Types].xml")
	assert.Contains(t, types, `<Default Extension="png" ContentType="image/png"/>`)
}

func TestDOCX_JPEGLogoKeepsEncoding(t *testing.T) {
	data, err := DOCX(auditReport(), &Logo{Data: jpegBytes(t, 100, 50), WidthCM: 2})
	require.NoError(t, err)

	_, ok := readDocxPart(t, data, "word/media/logo.jpeg")
	assert.True(t, ok)
	types, _ := readDocxPart(t, data, "[Content_Types].xml")
	assert.Contains(t, types, `ContentType="image/jpeg"`)
}

func TestDOCX_UnreadableLogo(t *testing.T) {
	_, err := DOCX(auditReport(), &Logo{Data: []byte{1, 2, 3}})
	assert.True(t, errors.Is(err, ErrUnreadableLogo))
}

func TestDOCX_Deterministic(t *testing.T) {
	first, err := DOCX(populatedReport(), &Logo{Data: pngBytes(t, 10, 10)})
	require.NoError(t, err)
	second, err := DOCX(populatedReport(), &Logo{Data: pngBytes(t, 10, 10)})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_Dispatch(t *testing.T) {
	for _, f := range AllFormats {
		data, err := Render(f, auditReport(), nil)
		require.NoError(t, err, f)
		assert.NotEmpty(t, data)
	}

	_, err := Render(Format("odt"), auditReport(), nil)
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}
