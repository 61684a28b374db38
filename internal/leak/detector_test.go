package leak

import (
	"sync"
	"testing"

	"fjacquet/leak-detector/internal/categorizer"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector() *Detector {
	return NewDetector(categorizer.NewDefault(nil), logging.NewMockLogger())
}

func TestAnalyze_MicroTransaction(t *testing.T) {
	report := newTestDetector().Analyze([]string{"05 Jan SWIGGY ORDER PAID Rs. 150.00"})

	assert.Equal(t, 1, report.TransactionCount)
	require.Len(t, report.MicroTransactions, 1)
	assert.Equal(t, models.LeakItem{
		Line:     "05 Jan SWIGGY ORDER PAID Rs. 150.00",
		Amount:   150,
		Category: models.CategoryFood,
	}, report.MicroTransactions[0])
	assert.Empty(t, report.Fees)
	assert.Empty(t, report.Penalties)
	assert.Empty(t, report.RepeatingCharges)
	assert.Equal(t, []models.MerchantSpend{{Name: "SWIGGY ORDER PAID", Amount: 150, Count: 1}}, report.TopMerchants)
	assert.Equal(t, []models.CategorySpend{{Category: models.CategoryFood, Amount: 150}}, report.CategorySpending)
	assert.Equal(t, 150.0, report.TotalWaste)
}

func TestAnalyze_RepeatingCharge(t *testing.T) {
	report := newTestDetector().Analyze([]string{
		"NETFLIX Rs 500",
		"NETFLIX Rs 500",
		"NETFLIX Rs 500",
	})

	assert.Equal(t, 3, report.TransactionCount)
	require.Len(t, report.RepeatingCharges, 1)
	charge := report.RepeatingCharges[0]
	assert.Equal(t, "NETFLIX", charge.Merchant)
	assert.Equal(t, 3, charge.Count)
	assert.Equal(t, 1500.0, charge.Total)
	assert.Len(t, charge.Lines, 3)
	assert.Equal(t, models.CategoryEntertainment, charge.Category)

	assert.Equal(t, models.BucketSummary{Count: 1, Total: 1500}, report.CategorySummary.RepeatingCharges)
	assert.Equal(t, []models.CategorySpend{{Category: models.CategoryEntertainment, Amount: 1500}}, report.CategorySpending)
	assert.Equal(t, 1500.0, report.TotalWaste)
}

func TestAnalyze_LineInTwoBucketsCountsOnce(t *testing.T) {
	line := "15 Mar ATM WITHDRAWAL FEE Rs 25"
	report := newTestDetector().Analyze([]string{line})

	assert.Equal(t, 1, report.TransactionCount)
	require.Len(t, report.MicroTransactions, 1)
	require.Len(t, report.Fees, 1)
	assert.Equal(t, 25.0, report.MicroTransactions[0].Amount)
	assert.Equal(t, models.CategoryOther, report.Fees[0].Category)
	assert.Equal(t, 25.0, report.TotalWaste)

	// Category spending is gross: the line counts once per bucket.
	assert.Equal(t, []models.CategorySpend{{Category: models.CategoryOther, Amount: 50}}, report.CategorySpending)
	assert.Equal(t, models.BucketSummary{Count: 1, Total: 25}, report.CategorySummary.MicroTransactions)
	assert.Equal(t, models.BucketSummary{Count: 1, Total: 25}, report.CategorySummary.Fees)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for name, lines := range map[string][]string{
		"nil":   nil,
		"blank": {"", "   ", "\t"},
	} {
		t.Run(name, func(t *testing.T) {
			report := newTestDetector().Analyze(lines)

			assert.Equal(t, 0, report.TransactionCount)
			assert.NotNil(t, report.TopMerchants)
			assert.Empty(t, report.TopMerchants)
			assert.NotNil(t, report.RepeatingCharges)
			assert.NotNil(t, report.MicroTransactions)
			assert.NotNil(t, report.Fees)
			assert.NotNil(t, report.Penalties)
			assert.NotNil(t, report.CategorySpending)
			assert.Empty(t, report.CategorySpending)
			assert.Equal(t, models.CategorySummary{}, report.CategorySummary)
			assert.Equal(t, 0.0, report.TotalWaste)
		})
	}
}

func TestAnalyze_SkipsLinesWithoutSpend(t *testing.T) {
	report := newTestDetector().Analyze([]string{
		"Salary CREDIT Rs 50000",
		"Refund received Rs 120",
		"Opening balance Rs 0.00",
		"Statement period summary",
	})

	assert.Equal(t, 0, report.TransactionCount)
	assert.Empty(t, report.TopMerchants)
	assert.Empty(t, report.MicroTransactions)
	assert.Equal(t, 0.0, report.TotalWaste)
}

func TestAnalyze_AmbiguousDirectionIsSpend(t *testing.T) {
	report := newTestDetector().Analyze([]string{
		"CARD PAYMENT Rs 75",
		"Credit card bill paid Rs 90",
	})

	assert.Equal(t, 2, report.TransactionCount)
	assert.Len(t, report.MicroTransactions, 2)
}

func TestAnalyze_RepeatingThreshold(t *testing.T) {
	tests := []struct {
		name          string
		occurrences   int
		wantRepeating int
	}{
		{"two charges", 2, 0},
		{"three charges", 3, 1},
		{"six charges", 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]string, tt.occurrences)
			for i := range lines {
				lines[i] = "UBER TRIP Rs 500"
			}
			report := newTestDetector().Analyze(lines)

			assert.Len(t, report.RepeatingCharges, tt.wantRepeating)
			require.Len(t, report.TopMerchants, 1)
			assert.Equal(t, tt.occurrences, report.TopMerchants[0].Count)
			assert.Equal(t, float64(500*tt.occurrences), report.TopMerchants[0].Amount)
		})
	}
}

func TestAnalyze_EvidenceLinesCapped(t *testing.T) {
	lines := make([]string, 7)
	for i := range lines {
		lines[i] = "SPOTIFY PREMIUM Rs 119"
	}
	report := newTestDetector().Analyze(lines)

	require.Len(t, report.RepeatingCharges, 1)
	assert.Equal(t, 7, report.RepeatingCharges[0].Count)
	assert.Len(t, report.RepeatingCharges[0].Lines, MaxEvidenceLines)
}

func TestAnalyze_TotalWasteCountsEachLineOnce(t *testing.T) {
	// Each line is a repeating charge, a micro-transaction, a fee and a penalty.
	line := "NETFLIX LATE FEE Rs 150"
	report := newTestDetector().Analyze([]string{line, line, line})

	require.Len(t, report.RepeatingCharges, 1)
	assert.Equal(t, 450.0, report.RepeatingCharges[0].Total)
	assert.Equal(t, 450.0, report.TotalWaste)

	// Identical lines collapse to one entry per bucket.
	assert.Len(t, report.MicroTransactions, 1)
	assert.Len(t, report.Fees, 1)
	assert.Len(t, report.Penalties, 1)

	// 150 per kept bucket item plus the repeating total.
	assert.Equal(t, []models.CategorySpend{{Category: models.CategoryEntertainment, Amount: 900}}, report.CategorySpending)
}

func TestAnalyze_TotalWasteBucketOrder(t *testing.T) {
	report := newTestDetector().Analyze([]string{
		"ZOMATO Rs 120",              // micro
		"ANNUAL CARD FEE Rs 500",     // fee
		"OVERDUE PENALTY Rs 750",     // penalty
		"LATE PAYMENT FEE Rs 100",    // micro, fee and penalty
		"Rent transfer Rs 15,000.00", // none
	})

	assert.Equal(t, 5, report.TransactionCount)
	assert.Len(t, report.MicroTransactions, 2)
	assert.Len(t, report.Fees, 2)
	assert.Len(t, report.Penalties, 2)
	assert.Equal(t, 1470.0, report.TotalWaste)
}

func TestAnalyze_MicroBoundaries(t *testing.T) {
	report := newTestDetector().Analyze([]string{
		"KIOSK ONE Rs 20",
		"KIOSK TWO Rs 200",
		"KIOSK THREE Rs 19.99",
		"KIOSK FOUR Rs 200.01",
	})

	require.Len(t, report.MicroTransactions, 2)
	assert.Equal(t, 20.0, report.MicroTransactions[0].Amount)
	assert.Equal(t, 200.0, report.MicroTransactions[1].Amount)
}

func TestAnalyze_TopMerchants(t *testing.T) {
	report := newTestDetector().Analyze([]string{
		"ALPHA STORE Rs 300",
		"BRAVO Rs 700",
		"CHARLIE Rs 300",
		"DELTA Rs 900",
		"ECHO Rs 100",
		"FOXTROT Rs 300",
		"GOLF Rs 50",
	})

	names := make([]string, 0, len(report.TopMerchants))
	for _, m := range report.TopMerchants {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"DELTA", "BRAVO", "ALPHA STORE", "CHARLIE", "FOXTROT"}, names)
	for i := 1; i < len(report.TopMerchants); i++ {
		assert.GreaterOrEqual(t, report.TopMerchants[i-1].Amount, report.TopMerchants[i].Amount)
	}
}

func TestAnalyze_CategorySpendingSorted(t *testing.T) {
	report := newTestDetector().Analyze([]string{
		"SWIGGY Rs 50",
		"UBER RIDE Rs 180",
		"AMAZON Rs 60",
	})

	assert.Equal(t, []models.CategorySpend{
		{Category: models.CategoryTravel, Amount: 180},
		{Category: models.CategoryShopping, Amount: 60},
		{Category: models.CategoryFood, Amount: 50},
	}, report.CategorySpending)
}

func TestAnalyze_RepeatingMerchantCategorizedByLabel(t *testing.T) {
	// The label stops before the keyword, so the charge lands in Other.
	line := "AUTO DEBIT MANDATE NETFLIX Rs 999"
	report := newTestDetector().Analyze([]string{line, line, line})

	require.Len(t, report.RepeatingCharges, 1)
	assert.Equal(t, "AUTO DEBIT MANDATE", report.RepeatingCharges[0].Merchant)
	assert.Equal(t, []models.CategorySpend{{Category: models.CategoryOther, Amount: 2997}}, report.CategorySpending)
}

func TestAnalyze_IndependentRuns(t *testing.T) {
	d := newTestDetector()
	lines := []string{"NETFLIX Rs 500", "NETFLIX Rs 500", "NETFLIX Rs 500", "ATM FEE Rs 25"}
	want := d.Analyze(lines)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, d.Analyze(lines))
		}()
	}
	wg.Wait()
}
