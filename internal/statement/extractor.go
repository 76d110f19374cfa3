package statement

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/marketfold/fund-analyzer/internal/apperrors"
)

// maxPages caps extraction; statements longer than this carry only
// disclosures past page 10.
const maxPages = 10

// TextExtractor produces a positioned-text document from raw upload bytes.
// Implementations must be safe for concurrent use; the HTTP layer shares
// one extractor across requests.
type TextExtractor interface {
	Extract(data []byte) (Document, error)
}

// PDFExtractor extracts positioned text fragments from PDF bytes. A
// pdfcpu pre-pass validates the document (page count, encryption) before
// glyph-level extraction.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract reads the document and returns up to maxPages of positioned
// fragments. Any failure, including library panics on malformed input,
// surfaces as a single terminal error; no partial results are returned.
func (e *PDFExtractor) Extract(data []byte) (doc Document, err error) {
	// The underlying PDF reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			doc = Document{}
			err = fmt.Errorf("%w: %v", apperrors.ErrStatementUnreadable, r)
		}
	}()

	ctx, err := pdfcpu.ReadContext(bytes.NewReader(data), pdfcpumodel.NewDefaultConfiguration())
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperrors.ErrStatementUnreadable, err)
	}
	if ctx.Encrypt != nil {
		return Document{}, apperrors.ErrStatementEncrypted
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperrors.ErrStatementUnreadable, err)
	}

	doc.PageCount = reader.NumPage()
	pages := doc.PageCount
	if pages > maxPages {
		pages = maxPages
	}

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		fragments := make([]Fragment, 0, len(content.Text))
		for _, t := range content.Text {
			fragments = append(fragments, Fragment{Text: t.S, X: t.X, Y: t.Y})
		}
		doc.Pages = append(doc.Pages, Page{Number: i, Fragments: fragments})
	}

	if len(doc.Pages) == 0 {
		return Document{}, apperrors.ErrEmptyStatement
	}

	return doc, nil
}
