// Package pdfparser extracts plain text from PDF bank statements. The
// pipeline core never touches PDF bytes; it consumes the extracted text
// through the extractor package.
package pdfparser

import (
	"fmt"
	"os"
	"strings"

	"greenspend/carbonstmt/internal/logging"

	"github.com/ledongthuc/pdf"
)

// TextExtractor defines the interface for extracting text from PDF files.
// The interface exists for dependency injection: tests provide a mock
// instead of real PDF fixtures.
type TextExtractor interface {
	// ExtractText extracts text content from a PDF file at the given path.
	ExtractText(pdfPath string) (string, error)
}

// PDFExtractor is the production TextExtractor.
type PDFExtractor struct {
	logger logging.Logger
}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor(logger logging.Logger) *PDFExtractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &PDFExtractor{logger: logger}
}

// ExtractText reads every page of the PDF and concatenates the plain text.
func (e *PDFExtractor) ExtractText(pdfPath string) (string, error) {
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", fmt.Errorf("statement file does not exist: %s", pdfPath)
	}

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", pdfPath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			e.logger.WithError(closeErr).Warn("Failed to close PDF file")
		}
	}()

	var text strings.Builder
	totalPages := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	e.logger.Debug("PDF text extracted",
		logging.Field{Key: "file", Value: pdfPath},
		logging.Field{Key: "pages", Value: totalPages},
		logging.Field{Key: "chars", Value: text.Len()})
	return text.String(), nil
}

// MockExtractor implements TextExtractor for testing.
type MockExtractor struct {
	MockText string
	MockErr  error
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
