package report

import (
	"fmt"
	"strings"

	"fjacquet/leak-detector/internal/models"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetSummary   = "Summary"
	SheetRepeating = "Repeating"
	SheetMicro     = "Micro"
	SheetFees      = "Fees"
	SheetPenalties = "Penalties"
)

var itemHeader = []interface{}{"Line", "Amount", "Category"}

func (g *Generator) generateXLSX(report *models.LeakReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			g.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRows(f, SheetSummary, summaryRows(report)); err != nil {
		return nil, err
	}

	repeating := [][]interface{}{{"Merchant", "Count", "Total", "Category", "Sample lines"}}
	for _, charge := range report.RepeatingCharges {
		repeating = append(repeating, []interface{}{
			charge.Merchant, charge.Count, charge.Total, charge.Category, strings.Join(charge.Lines, "\n"),
		})
	}
	if err := addSheet(f, SheetRepeating, repeating); err != nil {
		return nil, err
	}

	for _, bucket := range []struct {
		sheet string
		items []models.LeakItem
	}{
		{SheetMicro, report.MicroTransactions},
		{SheetFees, report.Fees},
		{SheetPenalties, report.Penalties},
	} {
		rows := [][]interface{}{itemHeader}
		for _, item := range bucket.items {
			rows = append(rows, []interface{}{item.Line, item.Amount, item.Category})
		}
		if err := addSheet(f, bucket.sheet, rows); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryRows(report *models.LeakReport) [][]interface{} {
	s := report.CategorySummary
	rows := [][]interface{}{
		{"Metric", "Count", "Total"},
		{"Transactions", report.TransactionCount, nil},
		{models.BucketRepeatingCharges, s.RepeatingCharges.Count, s.RepeatingCharges.Total},
		{models.BucketMicroTransactions, s.MicroTransactions.Count, s.MicroTransactions.Total},
		{models.BucketFees, s.Fees.Count, s.Fees.Total},
		{models.BucketPenalties, s.Penalties.Count, s.Penalties.Total},
		{"Total waste", nil, report.TotalWaste},
		{},
		{"Top merchant", "Count", "Amount"},
	}
	for _, m := range report.TopMerchants {
		rows = append(rows, []interface{}{m.Name, m.Count, m.Amount})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Category", nil, "Amount"})
	for _, c := range report.CategorySpending {
		rows = append(rows, []interface{}{c.Category, nil, c.Amount})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Suggestions"})
	for _, suggestion := range report.Suggestions {
		rows = append(rows, []interface{}{suggestion})
	}
	return rows
}

func addSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
