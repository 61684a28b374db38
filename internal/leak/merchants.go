package leak

import (
	"sort"

	"github.com/shopspring/decimal"
)

// merchantAggregate accumulates the transactions sharing one merchant label.
type merchantAggregate struct {
	name    string
	count   int
	total   decimal.Decimal
	indices []int
	lines   []string
}

// merchantTable is keyed by merchant label and remembers first-seen order,
// which is used to break ties when ranking.
type merchantTable struct {
	order  []*merchantAggregate
	byName map[string]*merchantAggregate
}

func newMerchantTable() *merchantTable {
	return &merchantTable{byName: make(map[string]*merchantAggregate)}
}

func (t *merchantTable) add(name string, index int, line string, amount decimal.Decimal) {
	agg, ok := t.byName[name]
	if !ok {
		agg = &merchantAggregate{name: name}
		t.byName[name] = agg
		t.order = append(t.order, agg)
	}
	agg.count++
	agg.total = agg.total.Add(amount)
	agg.indices = append(agg.indices, index)
	agg.lines = append(agg.lines, line)
}

// repeating returns the merchants seen at least threshold times, in
// first-seen order.
func (t *merchantTable) repeating(threshold int) []*merchantAggregate {
	var out []*merchantAggregate
	for _, agg := range t.order {
		if agg.count >= threshold {
			out = append(out, agg)
		}
	}
	return out
}

// ranked returns up to limit merchants by descending total. Equal totals keep
// first-seen order.
func (t *merchantTable) ranked(limit int) []*merchantAggregate {
	sorted := make([]*merchantAggregate, len(t.order))
	copy(sorted, t.order)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].total.GreaterThan(sorted[j].total)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
