// Package pdfparser turns statement documents into the ordered line sequence
// consumed by the leak engine. PDFs are read page by page with an OCR
// fallback for pages without a text layer; plain text files are read as is.
package pdfparser

import (
	"context"
	"path/filepath"
	"strings"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/parsererror"
)

// Extractor returns the text lines of a document in reading order, with page
// boundaries flattened away.
type Extractor interface {
	ExtractLines(ctx context.Context, path string) ([]string, error)
}

// Options controls PDF ingestion.
type Options struct {
	OCREnabled   bool
	MinPageChars int // pages whose trimmed text is shorter than this go to OCR
	OCRDPI       int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		OCREnabled:   true,
		MinPageChars: 10,
		OCRDPI:       300,
	}
}

// ExtractorFor selects an extractor from the file extension.
func ExtractorFor(path string, opts Options, logger logging.Logger) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFExtractor(opts, logger), nil
	case ".txt":
		return NewTextExtractor(logger), nil
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF or TXT",
			Msg:            "unsupported file extension",
		}
	}
}

// splitLines splits page text into lines, dropping carriage returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// MockExtractor returns fixed lines or a fixed error.
type MockExtractor struct {
	Lines []string
	Err   error

	Calls []string
}

// NewMockExtractor creates a MockExtractor.
func NewMockExtractor(lines []string, err error) *MockExtractor {
	return &MockExtractor{Lines: lines, Err: err}
}

// ExtractLines implements Extractor.
func (m *MockExtractor) ExtractLines(_ context.Context, path string) ([]string, error) {
	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Lines, nil
}
