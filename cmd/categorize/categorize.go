// Package categorize inspects how single statement lines are classified and
// exports the active category table.
package categorize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/leak-detector/cmd/root"
	"fjacquet/leak-detector/internal/leak"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/store"

	"github.com/spf13/cobra"
)

var (
	line       string
	exportPath string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Show how a statement line is classified",
	Long: `Show the amount, direction, merchant label, category and leak buckets
detected for a single statement line. With --export-categories the active
category table is written as YAML so it can be edited and loaded back via
categories.file.`,
	Example: `  leak-detector categorize --line "15 Mar SWIGGY ORDER Rs 149"
  leak-detector categorize --export-categories categories.yaml`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&line, "line", "l", "", "Statement line to classify")
	Cmd.Flags().StringVar(&exportPath, "export-categories", "", "Write the active category table to this YAML file")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	if line == "" && len(args) > 0 {
		line = strings.Join(args, " ")
	}
	if line == "" && exportPath == "" {
		return fmt.Errorf("nothing to do: pass --line or --export-categories")
	}

	if exportPath != "" {
		s := store.NewCategoryStore(exportPath, c.GetLogger())
		if err := s.SaveCategories(c.GetCategorizer().Table()); err != nil {
			return err
		}
		root.Log.Info("Category table exported", logging.F(logging.FieldOutputFile, exportPath))
	}

	if line != "" {
		PrintExplanation(cmd.OutOrStdout(), c.GetDetector().Explain(line))
	}
	return nil
}

// PrintExplanation writes e as aligned key/value lines.
func PrintExplanation(w io.Writer, e leak.Explanation) {
	amount := "-"
	if e.HasAmount {
		amount = e.Amount.StringFixed(2)
	}
	merchant := e.Merchant
	if merchant == "" {
		merchant = "-"
	}
	buckets := "-"
	if len(e.Buckets) > 0 {
		buckets = strings.Join(e.Buckets, ", ")
	}

	fmt.Fprintf(w, "Line:     %s\n", e.Line)
	fmt.Fprintf(w, "Amount:   %s\n", amount)
	fmt.Fprintf(w, "Outgoing: %t\n", e.Outgoing)
	fmt.Fprintf(w, "Counted:  %t\n", e.Counted())
	fmt.Fprintf(w, "Merchant: %s\n", merchant)
	fmt.Fprintf(w, "Category: %s\n", e.Category)
	fmt.Fprintf(w, "Buckets:  %s\n", buckets)
}
