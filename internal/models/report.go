package models

// LeakReport is the result of analysing one statement. It is not modified
// after it is returned.
type LeakReport struct {
	TransactionCount  int               `json:"transaction_count"`
	TopMerchants      []MerchantSpend   `json:"top_merchants"`
	CategorySummary   CategorySummary   `json:"category_summary"`
	CategorySpending  []CategorySpend   `json:"category_spending"`
	Suggestions       []string          `json:"suggestions"`
	RepeatingCharges  []RepeatingCharge `json:"repeating_charges"`
	MicroTransactions []LeakItem        `json:"micro_transactions"`
	Fees              []LeakItem        `json:"fees"`
	Penalties         []LeakItem        `json:"penalties"`
	TotalWaste        float64           `json:"total_waste"`
}

// MerchantSpend is one entry of the top merchants ranking.
type MerchantSpend struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// BucketSummary holds the size and gross total of one leak bucket.
type BucketSummary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// CategorySummary holds the per-bucket summaries.
type CategorySummary struct {
	RepeatingCharges  BucketSummary `json:"repeating_charges"`
	MicroTransactions BucketSummary `json:"micro_transactions"`
	Fees              BucketSummary `json:"fees"`
	Penalties         BucketSummary `json:"penalties"`
}

// CategorySpend is the flagged spend attributed to one category.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// RepeatingCharge is a merchant billed at least three times.
type RepeatingCharge struct {
	Merchant string   `json:"merchant"`
	Count    int      `json:"count"`
	Total    float64  `json:"total"`
	Lines    []string `json:"lines"`

	// Category of the merchant label. Not part of the JSON report.
	Category string `json:"-"`
}

// LeakItem is an entry of the micro-transaction, fee or penalty bucket.
type LeakItem struct {
	Line     string  `json:"line"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// ReportSummary is the aggregated view handed to suggestion strategies.
type ReportSummary struct {
	TransactionCount  int
	RepeatingCharges  int
	MicroTransactions int
	Fees              int
	Penalties         int
	TotalWaste        float64
	TopMerchants      []MerchantSpend
	CategorySpending  []CategorySpend
}

// Summary extracts the figures suggestion strategies work from.
func (r *LeakReport) Summary() ReportSummary {
	return ReportSummary{
		TransactionCount:  r.TransactionCount,
		RepeatingCharges:  len(r.RepeatingCharges),
		MicroTransactions: len(r.MicroTransactions),
		Fees:              len(r.Fees),
		Penalties:         len(r.Penalties),
		TotalWaste:        r.TotalWaste,
		TopMerchants:      r.TopMerchants,
		CategorySpending:  r.CategorySpending,
	}
}
