package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/a3tai/mcp-report-author/internal/report"
)

const (
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	relOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relStyles      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relHeader      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	wordNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
		`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// docxPart is one file inside the package
type docxPart struct {
	name string
	data []byte
}

// DOCX renders the report as a flow-formatted WordprocessingML document.
// The logo, when given, sits in the default section header at the
// requested physical width.
func DOCX(r *report.Report, logo *Logo) ([]byte, error) {
	var prepared *preparedLogo
	if logo != nil && len(logo.Data) > 0 {
		p, err := prepareLogo(logo)
		if err != nil {
			return nil, &RenderError{Format: FormatDOCX, Op: "logo", Err: err}
		}
		prepared = p
	}

	parts := []docxPart{
		{name: "[Content_Types].xml", data: contentTypesXML(prepared)},
		{name: "_rels/.rels", data: relationshipsXML([][3]string{
			{"rId1", relOfficeDoc, "word/document.xml"},
			{"rId2", relCoreProps, "docProps/core.xml"},
		})},
		{name: "docProps/core.xml", data: corePropsXML(r)},
		{name: "word/styles.xml", data: []byte(xmlHeader + stylesXML)},
	}

	docRels := [][3]string{{"rId1", relStyles, "styles.xml"}}
	if prepared != nil {
		media := "media/logo." + prepared.extension()
		docRels = append(docRels, [3]string{"rId2", relHeader, "header1.xml"})
		parts = append(parts,
			docxPart{name: "word/header1.xml", data: headerXML(prepared)},
			docxPart{name: "word/_rels/header1.xml.rels", data: relationshipsXML([][3]string{
				{"rId1", relImage, media},
			})},
			docxPart{name: "word/" + media, data: prepared.data},
		)
	}
	parts = append(parts,
		docxPart{name: "word/_rels/document.xml.rels", data: relationshipsXML(docRels)},
		docxPart{name: "word/document.xml", data: documentXML(r, prepared != nil)},
	)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	stamp := documentTime(r)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: stamp})
		if err != nil {
			return nil, &RenderError{Format: FormatDOCX, Op: "package", Err: err}
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, &RenderError{Format: FormatDOCX, Op: "package", Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Format: FormatDOCX, Op: "package", Err: err}
	}
	return buf.Bytes(), nil
}

func documentXML(r *report.Report, withHeader bool) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document ` + wordNamespaces + `><w:body>`)

	for _, blk := range Outline(r) {
		switch blk.Kind {
		case BlockTitle:
			b.WriteString(paragraph("Title", run(blk.Text, false)))
		case BlockHeading:
			b.WriteString(paragraph("Heading1", run(blk.Text, false)))
		case BlockText:
			b.WriteString(paragraph("", run(blk.Text, false)))
		case BlockMetadata, BlockField:
			// one paragraph, labels in bold runs, values plain
			var runs strings.Builder
			for i, f := range blk.Fields {
				if i > 0 {
					runs.WriteString(`<w:r><w:br/></w:r>`)
				}
				runs.WriteString(run(f.Label+": ", true))
				runs.WriteString(run(f.Value, false))
			}
			b.WriteString(paragraph("", runs.String()))
		case BlockList:
			for _, it := range blk.Items {
				runs := run("- ", false)
				if it.Lead != "" {
					runs += run(it.Lead, true)
				}
				runs += run(it.Text, false)
				b.WriteString(paragraph("", runs))
			}
		}
	}

	b.WriteString(`<w:sectPr>`)
	if withHeader {
		b.WriteString(`<w:headerReference w:type="default" r:id="rId2"/>`)
	}
	// A4 with 2 cm margins, in twentieths of a point
	b.WriteString(`<w:pgSz w:w="11906" w:h="16838"/>`)
	b.WriteString(`<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" ` +
		`w:header="567" w:footer="567" w:gutter="0"/>`)
	b.WriteString(`</w:sectPr></w:body></w:document>`)
	return []byte(b.String())
}

func paragraph(style, runs string) string {
	if style == "" {
		return `<w:p>` + runs + `</w:p>`
	}
	return `<w:p><w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>` + runs + `</w:p>`
}

// run writes text as one run; newlines become line breaks
func run(text string, bold bool) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<w:r>`)
	if bold {
		b.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString(`<w:br/>`)
		}
		b.WriteString(`<w:t xml:space="preserve">` + escapeXML(line) + `</w:t>`)
	}
	b.WriteString(`</w:r>`)
	return b.String()
}

func headerXML(p *preparedLogo) []byte {
	cx := int64(p.widthCM * emuPerCM)
	cy := int64(p.heightCM * emuPerCM)
	name := "logo." + p.extension()

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:hdr ` + wordNamespaces + `><w:p><w:r><w:drawing>`)
	fmt.Fprintf(&b, `<wp:inline distT="0" distB="0" distL="0" distR="0"><wp:extent cx="%d" cy="%d"/>`, cx, cy)
	b.WriteString(`<wp:docPr id="1" name="Logo"/>`)
	b.WriteString(`<wp:cNvGraphicFramePr><a:graphicFrameLocks noChangeAspect="1"/></wp:cNvGraphicFramePr>`)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString(`<pic:pic><pic:nvPicPr><pic:cNvPr id="0" name="` + name + `"/><pic:cNvPicPr/></pic:nvPicPr>`)
	b.WriteString(`<pic:blipFill><a:blip r:embed="rId1"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	fmt.Fprintf(&b, `<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, cx, cy)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic>`)
	b.WriteString(`</a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p></w:hdr>`)
	return []byte(b.String())
}

func contentTypesXML(logo *preparedLogo) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="` + nsContentTypes + `">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	if logo != nil {
		b.WriteString(`<Default Extension="` + logo.extension() + `" ContentType="image/` + logo.extension() + `"/>`)
	}
	b.WriteString(`<Override PartName="/word/document.xml" ` +
		`ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ` +
		`ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	if logo != nil {
		b.WriteString(`<Override PartName="/word/header1.xml" ` +
			`ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`)
	}
	b.WriteString(`<Override PartName="/docProps/core.xml" ` +
		`ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

// relationshipsXML writes {id, type, target} triples
func relationshipsXML(rels [][3]string) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsPackageRels + `">`)
	for _, rel := range rels {
		b.WriteString(`<Relationship Id="` + rel[0] + `" Type="` + rel[1] + `" Target="` + rel[2] + `"/>`)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

func corePropsXML(r *report.Report) []byte {
	stamp := documentTime(r).UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties ` +
		`xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString(`<dc:title>` + escapeXML(r.Title) + `</dc:title>`)
	b.WriteString(`<dc:subject>` + escapeXML(r.Project) + `</dc:subject>`)
	b.WriteString(`<dc:creator>` + escapeXML(authorNames(r)) + `</dc:creator>`)
	b.WriteString(`<cp:version>` + escapeXML(r.Version) + `</cp:version>`)
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>`)
	b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>`)
	b.WriteString(`</cp:coreProperties>`)
	return []byte(b.String())
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails when the writer does
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Calibri 11 body text, a Title style and a Heading1 style
const stylesXML = `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Calibri"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="en-US"/>` +
	`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/>` +
	`</w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/>` +
	`<w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>` +
	`<w:next w:val="Normal"/><w:qFormat/><w:pPr><w:spacing w:after="240"/></w:pPr>` +
	`<w:rPr><w:sz w:val="52"/><w:szCs w:val="52"/><w:color w:val="17365D"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="360" w:after="120"/>` +
	`<w:outlineLvl w:val="0"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="28"/><w:szCs w:val="28"/><w:color w:val="365F91"/></w:rPr></w:style>` +
	`</w:styles>`
