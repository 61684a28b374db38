// Package batch analyzes every statement of a directory and writes one report
// per statement.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/leak-detector/internal/fileutils"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"
	"fjacquet/leak-detector/internal/report"
	"fjacquet/leak-detector/internal/service"

	"github.com/shopspring/decimal"
)

// SupportedExtensions lists the statement files picked up from a directory.
var SupportedExtensions = []string{".pdf", ".txt"}

// FileResult is the outcome for one statement.
type FileResult struct {
	InputFile  string
	OutputFile string
	TotalWaste float64
	Err        error
}

// Summary aggregates the results of a run.
type Summary struct {
	Results    []FileResult
	Succeeded  int
	Failed     int
	TotalWaste float64
}

// Processor runs the analyzer over a directory.
type Processor struct {
	analyzer *service.Analyzer
	reports  *report.Generator
	logger   logging.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(analyzer *service.Analyzer, reports *report.Generator, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Processor{
		analyzer: analyzer,
		reports:  reports,
		logger:   logger,
	}
}

// ProcessDir analyzes each supported file in inputDir and writes
// "<name>-<ext>-leaks.<format>" to outputDir. A failing file is recorded in the
// summary and does not stop the run; only directory errors are returned.
func (p *Processor) ProcessDir(ctx context.Context, inputDir, outputDir, format string) (*Summary, error) {
	files, err := fileutils.ListFilesWithExtensions(inputDir, SupportedExtensions...)
	if err != nil {
		return nil, err
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	summary := &Summary{Results: make([]FileResult, 0, len(files))}
	if len(files) == 0 {
		p.logger.Warn("No supported files found in input directory",
			logging.F(logging.FieldFile, inputDir))
		return summary, nil
	}
	p.logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	start := time.Now()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := p.processFile(ctx, file, outputDir, format)
		summary.Results = append(summary.Results, result)
		if result.Err != nil {
			summary.Failed++
			p.logger.WithError(result.Err).Warn("Failed to analyze statement",
				logging.F(logging.FieldInputFile, file))
			continue
		}
		summary.Succeeded++
		summary.TotalWaste = models.Round2(decimal.NewFromFloat(summary.TotalWaste + result.TotalWaste))
	}

	p.logger.Info("Batch analysis complete",
		logging.F("succeeded", summary.Succeeded),
		logging.F("failed", summary.Failed),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return summary, nil
}

func (p *Processor) processFile(ctx context.Context, file, outputDir, format string) FileResult {
	result := FileResult{InputFile: file}

	leaks, err := p.analyzer.AnalyzeFile(ctx, file)
	if err != nil {
		result.Err = err
		return result
	}

	data, err := p.reports.Generate(leaks, format)
	if err != nil {
		result.Err = err
		return result
	}

	output := filepath.Join(outputDir, fileutils.DerivedName(file, "-leaks."+format))
	if err := fileutils.WriteFile(output, data, models.PermissionReportFile); err != nil {
		result.Err = fmt.Errorf("failed to write report for %s: %w", file, err)
		return result
	}

	result.OutputFile = output
	result.TotalWaste = leaks.TotalWaste
	return result
}
