// Package service runs the whole analysis of one statement: ingestion, leak
// detection and suggestions.
package service

import (
	"context"
	"strings"
	"time"

	"fjacquet/leak-detector/internal/leak"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"
	"fjacquet/leak-detector/internal/parsererror"
	"fjacquet/leak-detector/internal/pdfparser"
	"fjacquet/leak-detector/internal/suggest"
)

// ExtractorFactory picks the extractor for a document path.
type ExtractorFactory func(path string) (pdfparser.Extractor, error)

// Analyzer ties the ingestion layer, the leak detector and a suggestion
// strategy together. It is safe for concurrent use.
type Analyzer struct {
	extractorFor ExtractorFactory
	detector     *leak.Detector
	suggester    suggest.Generator
	logger       logging.Logger
}

// NewAnalyzer creates an Analyzer. A nil suggester means rule-based advice.
func NewAnalyzer(extractorFor ExtractorFactory, detector *leak.Detector, suggester suggest.Generator, logger logging.Logger) *Analyzer {
	if suggester == nil {
		suggester = suggest.NewRuleBased()
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Analyzer{
		extractorFor: extractorFor,
		detector:     detector,
		suggester:    suggester,
		logger:       logger,
	}
}

// AnalyzeLines builds the report for already extracted lines and attaches
// suggestions. It never fails.
func (a *Analyzer) AnalyzeLines(ctx context.Context, lines []string) *models.LeakReport {
	report := a.detector.Analyze(lines)
	report.Suggestions = a.suggester.Suggest(ctx, report.Summary())
	return report
}

// AnalyzeFile extracts the lines of the document at path and analyses them.
// A document without any non-blank line yields an EmptyDocumentError.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*models.LeakReport, error) {
	start := time.Now()
	logger := a.logger.WithFields(logging.F(logging.FieldFile, path))

	extractor, err := a.extractorFor(path)
	if err != nil {
		return nil, err
	}

	lines, err := extractor.ExtractLines(ctx, path)
	if err != nil {
		logger.WithError(err).Error("Failed to extract text")
		return nil, err
	}
	if !hasContent(lines) {
		logger.Warn("No text extracted from document")
		return nil, &parsererror.EmptyDocumentError{FilePath: path}
	}

	logger.Info("Analyzing lines", logging.F(logging.FieldCount, len(lines)))
	report := a.AnalyzeLines(ctx, lines)

	logger.Info("Analysis complete",
		logging.F("repeating_charges", len(report.RepeatingCharges)),
		logging.F("micro_transactions", len(report.MicroTransactions)),
		logging.F(logging.FieldStrategy, a.suggester.Name()),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return report, nil
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}
