// Package report renders leak reports as JSON, CSV or an Excel workbook.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/leak-detector/internal/config"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Generator renders reports in the supported formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Generator{logger: logger}
}

// Generate renders report in format (json, csv or xlsx).
func (g *Generator) Generate(report *models.LeakReport, format string) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to render")
	}
	switch strings.ToLower(format) {
	case config.FormatJSON:
		return g.generateJSON(report)
	case config.FormatCSV:
		return g.generateCSV(report)
	case config.FormatXLSX:
		return g.generateXLSX(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(report *models.LeakReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

// FlaggedRow is one CSV row: a flagged bucket item, or a repeating charge
// with the merchant as line and its total as amount.
type FlaggedRow struct {
	Bucket   string `csv:"bucket"`
	Line     string `csv:"line"`
	Amount   string `csv:"amount"`
	Category string `csv:"category"`
}

// FlaggedRows flattens the report buckets, repeating charges first.
func FlaggedRows(report *models.LeakReport) []FlaggedRow {
	rows := make([]FlaggedRow, 0,
		len(report.RepeatingCharges)+len(report.MicroTransactions)+len(report.Fees)+len(report.Penalties))

	for _, charge := range report.RepeatingCharges {
		rows = append(rows, FlaggedRow{
			Bucket:   models.BucketRepeatingCharges,
			Line:     charge.Merchant,
			Amount:   formatAmount(charge.Total),
			Category: charge.Category,
		})
	}

	buckets := []struct {
		name  string
		items []models.LeakItem
	}{
		{models.BucketMicroTransactions, report.MicroTransactions},
		{models.BucketFees, report.Fees},
		{models.BucketPenalties, report.Penalties},
	}
	for _, bucket := range buckets {
		for _, item := range bucket.items {
			rows = append(rows, FlaggedRow{
				Bucket:   bucket.name,
				Line:     item.Line,
				Amount:   formatAmount(item.Amount),
				Category: item.Category,
			})
		}
	}
	return rows
}

func (g *Generator) generateCSV(report *models.LeakReport) ([]byte, error) {
	rows := FlaggedRows(report)

	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	g.logger.Debug("CSV report generated", logging.F(logging.FieldCount, len(rows)))
	return data, nil
}

func formatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
