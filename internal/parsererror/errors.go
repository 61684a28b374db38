// Package parsererror defines the typed errors raised around the leak engine:
// document ingestion failures, empty documents and suggestion-service failures.
package parsererror

import (
	"errors"
	"fmt"
)

// ExtractionError means a document could not be read at all.
type ExtractionError struct {
	FilePath string
	Stage    string // "open", "page", "ocr", ...
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed for '%s' at %s: %v", e.FilePath, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// EmptyDocumentError means ingestion succeeded but produced no non-blank
// lines. Callers surface it to users separately from internal failures.
type EmptyDocumentError struct {
	FilePath string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no text could be extracted from '%s'", e.FilePath)
}

// InvalidFormatError means the input is not a format the ingestion layer
// accepts.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// SuggestionError wraps a failure of an external suggestion strategy. It is
// logged and recovered, never returned from an analysis.
type SuggestionError struct {
	Strategy string
	Err      error
}

func (e *SuggestionError) Error() string {
	return fmt.Sprintf("suggestion strategy %s failed: %v", e.Strategy, e.Err)
}

func (e *SuggestionError) Unwrap() error {
	return e.Err
}

// IsEmptyDocument reports whether err is, or wraps, an EmptyDocumentError.
func IsEmptyDocument(err error) bool {
	var target *EmptyDocumentError
	return errors.As(err, &target)
}

// IsExtraction reports whether err is, or wraps, an ExtractionError.
func IsExtraction(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}

// IsInvalidFormat reports whether err is, or wraps, an InvalidFormatError.
func IsInvalidFormat(err error) bool {
	var target *InvalidFormatError
	return errors.As(err, &target)
}
