package render

import (
	"bytes"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/a3tai/mcp-report-author/internal/report"
)

// Page geometry of the paginated projection, in millimetres
const (
	pdfMargin       = 20.0
	pdfParagraphGap = 3.0
	pdfLogoGap      = 4.0
	pdfLineHeight   = 5.5
	pdfFontFamily   = "Go"
	pdfCreator      = "mcp-report-author"
)

// PDF renders the report as a paginated A4 document. Text flows into one
// growing body and the layout engine breaks pages on its own. A nil logo
// renders no header image.
func PDF(r *report.Report, logo *Logo) ([]byte, error) {
	var prepared *preparedLogo
	if logo != nil && len(logo.Data) > 0 {
		p, err := prepareLogo(logo)
		if err != nil {
			return nil, &RenderError{Format: FormatPDF, Op: "logo", Err: err}
		}
		prepared = p
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetCatalogSort(true)
	stamp := documentTime(r)
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	doc.SetTitle(r.Title, true)
	doc.SetSubject(r.Project, true)
	doc.SetAuthor(authorNames(r), true)
	doc.SetCreator(pdfCreator, false)
	// embedded TrueType so text outside cp1252 survives
	doc.AddUTF8FontFromBytes(pdfFontFamily, "", goregular.TTF)
	doc.AddUTF8FontFromBytes(pdfFontFamily, "B", gobold.TTF)
	if err := doc.Error(); err != nil {
		return nil, &RenderError{Format: FormatPDF, Op: "font", Err: err}
	}
	doc.AddPage()

	if prepared != nil {
		opts := fpdf.ImageOptions{ImageType: prepared.kind}
		doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(prepared.data))
		doc.ImageOptions("logo", pdfMargin, 0,
			prepared.widthCM*mmPerCM, prepared.heightCM*mmPerCM, true, opts, 0, "")
		doc.Ln(pdfLogoGap)
	}

	for _, b := range Outline(r) {
		writePDFBlock(doc, b)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &RenderError{Format: FormatPDF, Op: "output", Err: err}
	}
	return buf.Bytes(), nil
}

func writePDFBlock(doc *fpdf.Fpdf, b Block) {
	switch b.Kind {
	case BlockTitle:
		doc.SetFont(pdfFontFamily, "B", 18)
		doc.MultiCell(0, 8, b.Text, "", "L", false)
	case BlockHeading:
		doc.SetFont(pdfFontFamily, "B", 12)
		doc.MultiCell(0, 6, b.Text, "", "L", false)
	case BlockText:
		doc.SetFont(pdfFontFamily, "", 11)
		doc.MultiCell(0, pdfLineHeight, b.Text, "", "L", false)
	case BlockMetadata, BlockField:
		for _, f := range b.Fields {
			doc.SetFont(pdfFontFamily, "B", 11)
			doc.Write(pdfLineHeight, f.Label+": ")
			doc.SetFont(pdfFontFamily, "", 11)
			doc.Write(pdfLineHeight, f.Value)
			doc.Ln(pdfLineHeight)
		}
	case BlockList:
		for _, it := range b.Items {
			doc.SetFont(pdfFontFamily, "", 11)
			doc.Write(pdfLineHeight, "- ")
			if it.Lead != "" {
				doc.SetFont(pdfFontFamily, "B", 11)
				doc.Write(pdfLineHeight, it.Lead)
				doc.SetFont(pdfFontFamily, "", 11)
			}
			doc.Write(pdfLineHeight, it.Text)
			doc.Ln(pdfLineHeight)
		}
	}
	doc.Ln(pdfParagraphGap)
}

// documentTime pins document timestamps to the report date so that the
// same report always renders the same bytes
func documentTime(r *report.Report) time.Time {
	if t, err := time.Parse(report.DateLayout, strings.TrimSpace(r.Date)); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}

func authorNames(r *report.Report) string {
	var names []string
	for _, a := range r.QualifiedAuthors() {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
