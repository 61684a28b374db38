package leak

import (
	"strings"

	"fjacquet/leak-detector/internal/models"
	"fjacquet/leak-detector/internal/textutils"

	"github.com/shopspring/decimal"
)

// Explanation describes how a single line is classified.
type Explanation struct {
	Line      string
	Amount    decimal.Decimal
	HasAmount bool
	Outgoing  bool
	Merchant  string
	Category  string
	Buckets   []string
}

// Counted reports whether the line would count as a transaction.
func (e Explanation) Counted() bool {
	return e.HasAmount && e.Outgoing
}

// Explain classifies one line in isolation. Repeating charges depend on the
// whole statement and are not reported here.
func (d *Detector) Explain(line string) Explanation {
	e := Explanation{
		Line:     line,
		Outgoing: textutils.IsOutgoing(line),
		Category: d.categorizer.Categorize(line),
		Buckets:  []string{},
	}
	if strings.TrimSpace(line) == "" {
		return e
	}
	e.Amount, e.HasAmount = textutils.ParseAmount(line)
	e.Merchant, _ = textutils.MerchantName(line)

	if !e.Counted() {
		return e
	}
	micro, fee, penalty := bucketsFor(line, e.Amount)
	if micro {
		e.Buckets = append(e.Buckets, models.BucketMicroTransactions)
	}
	if fee {
		e.Buckets = append(e.Buckets, models.BucketFees)
	}
	if penalty {
		e.Buckets = append(e.Buckets, models.BucketPenalties)
	}
	return e
}
