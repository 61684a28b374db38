// Package analyze implements the analyze command.
package analyze

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/leak-detector/cmd/root"
	"fjacquet/leak-detector/internal/config"
	"fjacquet/leak-detector/internal/fileutils"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"

	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string
	format     string
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a bank statement for money leaks",
	Long: `Analyze a PDF bank statement (or a text file with one line per row) and
print the leak report. The report is JSON by default; CSV and XLSX can be
written with --format or inferred from the --output extension.`,
	Example: `  leak-detector analyze -i statement.pdf
  leak-detector analyze -i statement.pdf -o leaks.xlsx`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Statement file (.pdf or .txt)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: json, csv or xlsx")
	_ = Cmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if !fileutils.FileExists(inputFile) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	reportFormat, err := ResolveFormat(format, outputFile, c.GetConfig().Report.Format)
	if err != nil {
		return err
	}
	if reportFormat == config.FormatXLSX && outputFile == "" {
		return fmt.Errorf("the xlsx format needs an output file (--output)")
	}

	report, err := c.GetAnalyzer().AnalyzeFile(cmd.Context(), inputFile)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", inputFile, err)
	}

	data, err := c.GetReportGenerator().Generate(report, reportFormat)
	if err != nil {
		return err
	}

	if err := WriteReport(cmd.OutOrStdout(), outputFile, data); err != nil {
		return err
	}
	if outputFile != "" {
		root.Log.Info("Report written",
			logging.F(logging.FieldInputFile, inputFile),
			logging.F(logging.FieldOutputFile, outputFile),
			logging.F("format", reportFormat),
			logging.F("total_waste", report.TotalWaste))
	}
	return nil
}

// ResolveFormat picks the report format: the explicit flag, then the output
// file extension, then the configured default.
func ResolveFormat(flag, output, fallback string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" && output != "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if config.IsReportFormat(ext) {
			f = ext
		}
	}
	if f == "" {
		f = strings.ToLower(fallback)
	}
	if f == "" {
		f = config.FormatJSON
	}
	if !config.IsReportFormat(f) {
		return "", fmt.Errorf("unsupported report format: %s", f)
	}
	return f, nil
}

// WriteReport writes data to output, or to w when output is empty.
func WriteReport(w io.Writer, output string, data []byte) error {
	if output == "" {
		if _, err := w.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}

	return fileutils.WriteFile(output, data, models.PermissionReportFile)
}
