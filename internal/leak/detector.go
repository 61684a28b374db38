// Package leak turns the lines of a bank statement into a leak report:
// repeating merchant charges, micro-transactions, fees and penalties, with a
// total-waste figure that counts every line at most once.
package leak

import (
	"sort"
	"strings"
	"time"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"
	"fjacquet/leak-detector/internal/textutils"

	"github.com/shopspring/decimal"
)

const (
	// RepeatingThreshold is the number of charges from one merchant that
	// makes it a repeating charge.
	RepeatingThreshold = 3
	// MaxEvidenceLines caps the sample lines kept per repeating charge.
	MaxEvidenceLines = 5
	// TopMerchantLimit caps the top merchants ranking.
	TopMerchantLimit = 5
)

var (
	microMin = decimal.NewFromInt(20)
	microMax = decimal.NewFromInt(200)

	feeMarkers     = []string{"atm", "fee", "charge", "charges"}
	penaltyMarkers = []string{"penalty", "interest", "late", "overdue"}
)

// Categorizer assigns a spending category to a line or merchant label.
type Categorizer interface {
	Categorize(text string) string
}

// Detector builds leak reports. It holds no per-run state and may be shared
// between goroutines.
type Detector struct {
	categorizer Categorizer
	logger      logging.Logger
}

// NewDetector creates a Detector.
func NewDetector(categorizer Categorizer, logger logging.Logger) *Detector {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Detector{
		categorizer: categorizer,
		logger:      logger,
	}
}

// run holds the state of one Analyze call.
type run struct {
	transactionCount int
	merchants        *merchantTable
	micro            []Item
	fees             []Item
	penalties        []Item
}

// Analyze scans lines in order and builds the report. Suggestions are left
// empty for the caller to fill. Lines without a positive amount and
// credit-only lines are skipped silently.
func (d *Detector) Analyze(lines []string) *models.LeakReport {
	start := time.Now()
	r := &run{merchants: newMerchantTable()}

	for i, line := range lines {
		d.scanLine(r, i, line)
	}

	repeating := r.merchants.repeating(RepeatingThreshold)
	totalWaste := d.totalWaste(r, repeating)

	micro := Dedupe(d.categorize(r.micro))
	fees := Dedupe(d.categorize(r.fees))
	penalties := Dedupe(d.categorize(r.penalties))

	report := &models.LeakReport{
		TransactionCount: r.transactionCount,
		TopMerchants:     topMerchants(r.merchants),
		CategorySummary: models.CategorySummary{
			RepeatingCharges:  repeatingSummary(repeating),
			MicroTransactions: bucketSummary(micro),
			Fees:              bucketSummary(fees),
			Penalties:         bucketSummary(penalties),
		},
		CategorySpending:  d.categorySpending(repeating, micro, fees, penalties),
		Suggestions:       []string{},
		RepeatingCharges:  d.repeatingCharges(repeating),
		MicroTransactions: leakItems(micro),
		Fees:              leakItems(fees),
		Penalties:         leakItems(penalties),
		TotalWaste:        models.Round2(totalWaste),
	}
	d.logger.Info("Leak analysis complete",
		logging.F(logging.FieldCount, report.TransactionCount),
		logging.F("repeating_charges", len(report.RepeatingCharges)),
		logging.F("micro_transactions", len(report.MicroTransactions)),
		logging.F("fees", len(report.Fees)),
		logging.F("penalties", len(report.Penalties)),
		logging.F("total_waste", report.TotalWaste),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return report
}

func (d *Detector) scanLine(r *run, index int, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	amount, ok := textutils.ParseAmount(line)
	if !ok {
		return
	}
	if !textutils.IsOutgoing(line) {
		d.logger.Debug("Skipping credit line", logging.F(logging.FieldLineIndex, index))
		return
	}

	r.transactionCount++

	if merchant, ok := textutils.MerchantName(line); ok {
		r.merchants.add(merchant, index, line, amount)
	}

	item := Item{Index: index, Text: line, Amount: amount}
	micro, fee, penalty := bucketsFor(line, amount)
	if micro {
		r.micro = append(r.micro, item)
	}
	if fee {
		r.fees = append(r.fees, item)
	}
	if penalty {
		r.penalties = append(r.penalties, item)
	}
}

// bucketsFor tests the independent bucket rules for one transaction.
func bucketsFor(line string, amount decimal.Decimal) (micro, fee, penalty bool) {
	lower := strings.ToLower(line)
	micro = amount.GreaterThanOrEqual(microMin) && amount.LessThanOrEqual(microMax)
	fee = textutils.ContainsAny(lower, feeMarkers)
	penalty = textutils.ContainsAny(lower, penaltyMarkers)
	return micro, fee, penalty
}

// totalWaste adds repeating totals first, then micro-transactions, fees and
// penalties whose line was not counted yet.
func (d *Detector) totalWaste(r *run, repeating []*merchantAggregate) decimal.Decimal {
	counted := make(map[int]struct{})
	total := decimal.Zero

	for _, agg := range repeating {
		total = total.Add(agg.total)
		for _, idx := range agg.indices {
			counted[idx] = struct{}{}
		}
	}

	for _, bucket := range [][]Item{r.micro, r.fees, r.penalties} {
		for _, item := range bucket {
			if _, done := counted[item.Index]; done {
				continue
			}
			total = total.Add(item.Amount)
			counted[item.Index] = struct{}{}
		}
	}
	return total
}

func (d *Detector) categorize(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		item.Category = d.categorizer.Categorize(item.Text)
		out[i] = item
	}
	return out
}

// categorySpending sums kept bucket items and repeating charges per category.
// A line may contribute through several buckets.
func (d *Detector) categorySpending(repeating []*merchantAggregate, buckets ...[]Item) []models.CategorySpend {
	totals := make(map[string]decimal.Decimal)
	var order []string
	add := func(category string, amount decimal.Decimal) {
		if _, ok := totals[category]; !ok {
			order = append(order, category)
		}
		totals[category] = totals[category].Add(amount)
	}

	for _, bucket := range buckets {
		for _, item := range bucket {
			add(item.Category, item.Amount)
		}
	}
	for _, agg := range repeating {
		add(d.categorizer.Categorize(agg.name), agg.total)
	}

	spending := make([]models.CategorySpend, 0, len(order))
	for _, category := range order {
		if totals[category].IsZero() {
			continue
		}
		spending = append(spending, models.CategorySpend{
			Category: category,
			Amount:   models.Round2(totals[category]),
		})
	}
	sort.SliceStable(spending, func(i, j int) bool {
		return spending[i].Amount > spending[j].Amount
	})
	return spending
}

func topMerchants(table *merchantTable) []models.MerchantSpend {
	ranked := table.ranked(TopMerchantLimit)
	out := make([]models.MerchantSpend, 0, len(ranked))
	for _, agg := range ranked {
		out = append(out, models.MerchantSpend{
			Name:   agg.name,
			Amount: models.Round2(agg.total),
			Count:  agg.count,
		})
	}
	return out
}

func (d *Detector) repeatingCharges(repeating []*merchantAggregate) []models.RepeatingCharge {
	out := make([]models.RepeatingCharge, 0, len(repeating))
	for _, agg := range repeating {
		lines := agg.lines
		if len(lines) > MaxEvidenceLines {
			lines = lines[:MaxEvidenceLines]
		}
		out = append(out, models.RepeatingCharge{
			Merchant: agg.name,
			Count:    agg.count,
			Total:    models.Round2(agg.total),
			Lines:    append([]string(nil), lines...),
			Category: d.categorizer.Categorize(agg.name),
		})
	}
	return out
}

func leakItems(items []Item) []models.LeakItem {
	out := make([]models.LeakItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.LeakItem{
			Line:     item.Text,
			Amount:   models.Round2(item.Amount),
			Category: item.Category,
		})
	}
	return out
}

func repeatingSummary(repeating []*merchantAggregate) models.BucketSummary {
	total := decimal.Zero
	for _, agg := range repeating {
		total = total.Add(agg.total)
	}
	return models.BucketSummary{Count: len(repeating), Total: models.Round2(total)}
}

func bucketSummary(items []Item) models.BucketSummary {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return models.BucketSummary{Count: len(items), Total: models.Round2(total)}
}
