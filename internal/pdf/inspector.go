package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	// DefaultMaxTextSize caps the text returned by an inspection
	DefaultMaxTextSize = 1024 * 1024
	pageSeparator      = "\n\n--- Page Break ---\n\n"
)

// Inspection is the result of checking an exported PDF
type Inspection struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Pages   int    `json:"pages"`
	Size    int64  `json:"size"`
	Text    string `json:"text,omitempty"`
}

// Inspector validates exported PDFs and reads their text back
type Inspector struct {
	maxFileSize int64
	maxTextSize int
}

// NewInspector creates an inspector that refuses files above maxFileSize bytes
func NewInspector(maxFileSize int64) *Inspector {
	return &Inspector{
		maxFileSize: maxFileSize,
		maxTextSize: DefaultMaxTextSize,
	}
}

// InspectFile inspects a PDF on disk
func (i *Inspector) InspectFile(path string) (*Inspection, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > i.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), i.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return i.Inspect(data)
}

// Inspect validates the document structure with pdfcpu, counts its pages
// and extracts its text. A structurally broken document is reported through
// Valid and Message rather than as an error.
func (i *Inspector) Inspect(data []byte) (*Inspection, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	if int64(len(data)) > i.maxFileSize {
		return nil, fmt.Errorf("document too large: %d bytes (max: %d bytes)", len(data), i.maxFileSize)
	}

	result := &Inspection{Size: int64(len(data))}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		result.Message = fmt.Sprintf("failed to read PDF context: %v", err)
		return result, nil //nolint:nilerr // an unreadable document is an inspection outcome
	}
	if err := ctx.EnsurePageCount(); err != nil {
		result.Message = fmt.Sprintf("failed to count pages: %v", err)
		return result, nil //nolint:nilerr // see above
	}
	if err := api.ValidateContext(ctx); err != nil {
		result.Message = fmt.Sprintf("validation failed: %v", err)
		result.Pages = ctx.PageCount
		return result, nil //nolint:nilerr // see above
	}

	result.Valid = true
	result.Pages = ctx.PageCount

	text, err := i.extractText(data)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // text is best effort for a valid document
	}
	result.Text = text

	return result, nil
}

// extractText reads the plain text of every page, separated by page breaks
func (i *Inspector) extractText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF for text extraction: %w", err)
	}

	var builder strings.Builder
	total := 0
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		if total+len(content) > i.maxTextSize {
			if remaining := i.maxTextSize - total; remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}
		builder.WriteString(content)
		total += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString(pageSeparator)
		}
	}

	return builder.String(), nil
}
