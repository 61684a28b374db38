package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/leak-detector/internal/categorizer"
	"fjacquet/leak-detector/internal/leak"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/parsererror"
	"fjacquet/leak-detector/internal/pdfparser"
	"fjacquet/leak-detector/internal/report"
	"fjacquet/leak-detector/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(logger logging.Logger) *Processor {
	detector := leak.NewDetector(categorizer.NewDefault(logger), logger)
	extractorFor := func(path string) (pdfparser.Extractor, error) {
		return pdfparser.ExtractorFor(path, pdfparser.DefaultOptions(), logger)
	}
	analyzer := service.NewAnalyzer(extractorFor, detector, nil, logger)
	return NewProcessor(analyzer, report.NewGenerator(logger), logger)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestProcessDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "reports")

	writeFile(t, in, "january.txt", "NETFLIX Rs 500\nNETFLIX Rs 500\nNETFLIX Rs 500\n")
	writeFile(t, in, "february.txt", "15 Feb ATM FEE Rs 300\n")
	writeFile(t, in, "empty.txt", "\n\n")
	writeFile(t, in, "notes.md", "ignored")

	logger := logging.NewMockLogger()
	summary, err := newProcessor(logger).ProcessDir(context.Background(), in, out, "json")
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1800.0, summary.TotalWaste)

	// results follow file name order
	assert.True(t, parsererror.IsEmptyDocument(summary.Results[0].Err))
	assert.Equal(t, filepath.Join(out, "february-txt-leaks.json"), summary.Results[1].OutputFile)
	assert.Equal(t, 300.0, summary.Results[1].TotalWaste)
	assert.FileExists(t, filepath.Join(out, "january-txt-leaks.json"))
	assert.NoFileExists(t, filepath.Join(out, "empty-txt-leaks.json"))

	assert.True(t, logger.HasEntry("WARN", "Failed to analyze statement"))
	assert.True(t, logger.HasEntry("INFO", "Batch analysis complete"))
}

func TestProcessDir_NoFiles(t *testing.T) {
	logger := logging.NewMockLogger()
	summary, err := newProcessor(logger).ProcessDir(context.Background(), t.TempDir(), t.TempDir(), "csv")
	require.NoError(t, err)
	assert.Empty(t, summary.Results)
	assert.True(t, logger.HasEntry("WARN", "No supported files found in input directory"))
}

func TestProcessDir_MissingInput(t *testing.T) {
	_, err := newProcessor(nil).ProcessDir(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), "json")
	assert.Error(t, err)
}

func TestProcessDir_Cancelled(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "a.txt", "Rs 50\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newProcessor(nil).ProcessDir(ctx, in, t.TempDir(), "json")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, summary.Results)
}

func TestProcessDir_SameNameDifferentExtension(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, in, "statement.pdf", "%PDF")
	writeFile(t, in, "statement.txt", "NETFLIX Rs 500\n")

	detector := leak.NewDetector(categorizer.NewDefault(nil), nil)
	extractorFor := func(string) (pdfparser.Extractor, error) {
		return pdfparser.NewMockExtractor([]string{"NETFLIX Rs 500", "ATM FEE Rs 25"}, nil), nil
	}
	analyzer := service.NewAnalyzer(extractorFor, detector, nil, nil)
	processor := NewProcessor(analyzer, report.NewGenerator(nil), nil)

	summary, err := processor.ProcessDir(context.Background(), in, out, "json")
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, 2, summary.Succeeded)
	assert.NotEqual(t, summary.Results[0].OutputFile, summary.Results[1].OutputFile)
	assert.FileExists(t, filepath.Join(out, "statement-pdf-leaks.json"))
	assert.FileExists(t, filepath.Join(out, "statement-txt-leaks.json"))
}
