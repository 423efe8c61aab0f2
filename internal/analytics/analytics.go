// Package analytics implements read-only aggregate queries over a sale log
// snapshot. Every function is pure: it takes the sales and inclusive calendar
// bounds and holds no state of its own. Date comparisons operate at date
// granularity; any time-of-day component is discarded first.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"bottega/internal/core"
)

// DefaultTopN is the ranking size used when a caller passes topN <= 0.
const DefaultTopN = 5

// ItemTotal is one entry of a top-seller ranking: the per-item sums of
// quantity and revenue over the queried range.
type ItemTotal struct {
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Summary bundles the range aggregates the dashboard shows.
type Summary struct {
	Start         core.Date
	End           core.Date
	Revenue       decimal.Decimal
	Transactions  int
	DistinctItems int
}

// SalesOn returns the sales recorded on exactly the given date.
func SalesOn(sales []core.Sale, date core.Date) []core.Sale {
	return SalesBetween(sales, date, date)
}

// SalesBetween returns the sales whose date falls within [start, end]
// inclusive. A reversed range (start after end) yields an empty result by
// contract; the bounds are not swapped.
func SalesBetween(sales []core.Sale, start, end core.Date) []core.Sale {
	var out []core.Sale
	for _, s := range sales {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// RevenueBetween sums quantity times unit price over the range.
func RevenueBetween(sales []core.Sale, start, end core.Date) decimal.Decimal {
	total := decimal.Zero
	for _, s := range SalesBetween(sales, start, end) {
		total = total.Add(s.Total())
	}
	return total
}

// TransactionsBetween counts the sales in the range.
func TransactionsBetween(sales []core.Sale, start, end core.Date) int {
	return len(SalesBetween(sales, start, end))
}

// DistinctItemsSoldBetween counts the distinct item names sold in the range.
func DistinctItemsSoldBetween(sales []core.Sale, start, end core.Date) int {
	seen := make(map[string]struct{})
	for _, s := range SalesBetween(sales, start, end) {
		seen[s.ItemName] = struct{}{}
	}
	return len(seen)
}

// TopByQuantityBetween groups the in-range sales by item name, sums the
// quantities, and returns at most topN entries ordered by descending summed
// quantity. Ties keep the order items first appeared in the sale log.
func TopByQuantityBetween(sales []core.Sale, start, end core.Date, topN int) []ItemTotal {
	ranked := groupByItem(sales, start, end)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})
	return truncate(ranked, topN)
}

// TopByRevenueBetween is TopByQuantityBetween with summed revenue as the
// ranking metric.
func TopByRevenueBetween(sales []core.Sale, start, end core.Date, topN int) []ItemTotal {
	ranked := groupByItem(sales, start, end)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	return truncate(ranked, topN)
}

// Summarize computes the full range summary in one pass over the filter.
func Summarize(sales []core.Sale, start, end core.Date) Summary {
	inRange := SalesBetween(sales, start, end)
	revenue := decimal.Zero
	seen := make(map[string]struct{})
	for _, s := range inRange {
		revenue = revenue.Add(s.Total())
		seen[s.ItemName] = struct{}{}
	}
	return Summary{
		Start:         start,
		End:           end,
		Revenue:       revenue,
		Transactions:  len(inRange),
		DistinctItems: len(seen),
	}
}

// groupByItem collects per-item totals in first-appearance order, which is
// what makes the stable sorts above deterministic on ties.
func groupByItem(sales []core.Sale, start, end core.Date) []ItemTotal {
	positions := make(map[string]int)
	var groups []ItemTotal
	for _, s := range SalesBetween(sales, start, end) {
		pos, ok := positions[s.ItemName]
		if !ok {
			pos = len(groups)
			positions[s.ItemName] = pos
			groups = append(groups, ItemTotal{ItemName: s.ItemName, Revenue: decimal.Zero})
		}
		groups[pos].Quantity += s.Quantity
		groups[pos].Revenue = groups[pos].Revenue.Add(s.Total())
	}
	return groups
}

func truncate(ranked []ItemTotal, topN int) []ItemTotal {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
