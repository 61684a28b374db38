package pdfparser

import (
	"context"
	"os"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/parsererror"
)

// TextExtractor reads an already extracted statement, one line per line.
type TextExtractor struct {
	logger logging.Logger
}

// NewTextExtractor creates a TextExtractor.
func NewTextExtractor(logger logging.Logger) *TextExtractor {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &TextExtractor{logger: logger}
}

// ExtractLines implements Extractor.
func (e *TextExtractor) ExtractLines(_ context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's input file
	if err != nil {
		return nil, &parsererror.ExtractionError{FilePath: path, Stage: "open", Err: err}
	}
	if len(data) == 0 {
		return nil, nil
	}

	lines := splitLines(string(data))
	e.logger.Debug("Text file read",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(lines)))
	return lines, nil
}
