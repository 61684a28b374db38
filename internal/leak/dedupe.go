package leak

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is an entry of the micro-transaction, fee or penalty bucket.
type Item struct {
	Index    int
	Text     string
	Amount   decimal.Decimal
	Category string
}

type dedupeKey struct {
	text   string
	amount string
}

// Dedupe drops items whose trimmed text is empty or whose (trimmed text,
// amount) pair was already seen. The first occurrence is kept and order is
// preserved.
func Dedupe(items []Item) []Item {
	seen := make(map[dedupeKey]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		key := dedupeKey{text: text, amount: item.Amount.String()}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
