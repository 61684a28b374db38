// Package batch implements the batch command.
package batch

import (
	"fmt"
	"io"

	"fjacquet/leak-detector/cmd/analyze"
	"fjacquet/leak-detector/cmd/root"
	"fjacquet/leak-detector/internal/batch"

	"github.com/spf13/cobra"
)

var (
	inputDir  string
	outputDir string
	format    string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every statement in a directory",
	Long: `Analyze every .pdf and .txt statement in the input directory and write one
report per statement to the output directory, named <statement>-<ext>-leaks.<format>.
A statement that cannot be analyzed is reported and skipped; the command then
exits with an error once the others are done.`,
	Example: `  leak-detector batch -i statements/ -o reports/ -f csv`,
	RunE:    run,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory of statements")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for the reports")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: json, csv or xlsx")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	reportFormat, err := analyze.ResolveFormat(format, "", c.GetConfig().Report.Format)
	if err != nil {
		return err
	}

	summary, err := c.NewBatchProcessor().ProcessDir(cmd.Context(), inputDir, outputDir, reportFormat)
	if err != nil {
		return err
	}

	PrintSummary(cmd.OutOrStdout(), summary)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d statements failed", summary.Failed, len(summary.Results))
	}
	return nil
}

// PrintSummary writes one line per statement followed by the overall total.
func PrintSummary(w io.Writer, summary *batch.Summary) {
	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "FAIL  %s: %v\n", r.InputFile, r.Err)
			continue
		}
		fmt.Fprintf(w, "OK    %s -> %s (waste %.2f)\n", r.InputFile, r.OutputFile, r.TotalWaste)
	}
	fmt.Fprintf(w, "%d analyzed, %d failed, total waste %.2f\n", summary.Succeeded, summary.Failed, summary.TotalWaste)
}
