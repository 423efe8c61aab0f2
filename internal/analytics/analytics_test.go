package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"bottega/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale(name string, qty int, price string, date core.Date) core.Sale {
	return core.Sale{ItemName: name, Quantity: qty, UnitPrice: dec(price), Date: date}
}

var (
	day1 = core.NewDate(2024, 6, 1)
	day2 = core.NewDate(2024, 6, 2)
	day3 = core.NewDate(2024, 6, 3)
)

func fixtureSales() []core.Sale {
	return []core.Sale{
		sale("Rice 5kg", 2, "350", day1),       // 700
		sale("Sugar 1kg", 5, "70", day1),       // 350
		sale("Rice 5kg", 1, "350", day2),       // 350
		sale("Laundry Soap", 10, "45", day2),   // 450
		sale("Cooking Oil 1L", 3, "200", day3), // 600
	}
}

func TestSalesOnMatchesDateOnly(t *testing.T) {
	sales := fixtureSales()
	got := SalesOn(sales, day1)
	if len(got) != 2 {
		t.Fatalf("SalesOn(day1) = %d sales, want 2", len(got))
	}
	for _, s := range got {
		if !s.Date.Equal(day1) {
			t.Errorf("sale dated %v leaked into day1 query", s.Date)
		}
	}
}

func TestSalesBetweenInclusiveBounds(t *testing.T) {
	sales := fixtureSales()

	if got := SalesBetween(sales, day1, day3); len(got) != 5 {
		t.Errorf("full range = %d sales, want 5", len(got))
	}
	if got := SalesBetween(sales, day2, day2); len(got) != 2 {
		t.Errorf("single day = %d sales, want 2", len(got))
	}
	if got := SalesBetween(sales, day3, day1); got != nil {
		t.Errorf("reversed range = %v, want empty (no bound swap)", got)
	}
}

func TestRevenueBetween(t *testing.T) {
	sales := fixtureSales()

	if got := RevenueBetween(sales, day1, day3); !got.Equal(dec("2450")) {
		t.Errorf("full-range revenue = %s, want 2450", got)
	}

	// start == end must equal the summed totals of SalesOn for that day.
	onDay := SalesOn(sales, day2)
	sum := decimal.Zero
	for _, s := range onDay {
		sum = sum.Add(s.Total())
	}
	if got := RevenueBetween(sales, day2, day2); !got.Equal(sum) {
		t.Errorf("single-day revenue = %s, want %s", got, sum)
	}
}

func TestCountsBetween(t *testing.T) {
	sales := fixtureSales()
	if got := TransactionsBetween(sales, day1, day2); got != 4 {
		t.Errorf("TransactionsBetween = %d, want 4", got)
	}
	if got := DistinctItemsSoldBetween(sales, day1, day2); got != 3 {
		t.Errorf("DistinctItemsSoldBetween = %d, want 3", got)
	}
}

func TestTopByQuantityBetween(t *testing.T) {
	sales := fixtureSales()
	got := TopByQuantityBetween(sales, day1, day3, 2)

	if len(got) != 2 {
		t.Fatalf("top entries = %d, want 2", len(got))
	}
	if got[0].ItemName != "Laundry Soap" || got[0].Quantity != 10 {
		t.Errorf("top[0] = %+v, want Laundry Soap with 10", got[0])
	}
	if got[1].ItemName != "Sugar 1kg" || got[1].Quantity != 5 {
		t.Errorf("top[1] = %+v, want Sugar 1kg with 5", got[1])
	}
}

func TestTopByRevenueBetween(t *testing.T) {
	sales := fixtureSales()
	got := TopByRevenueBetween(sales, day1, day3, 3)

	if len(got) != 3 {
		t.Fatalf("top entries = %d, want 3", len(got))
	}
	// Rice: 1050, Cooking Oil: 600, Laundry Soap: 450.
	if got[0].ItemName != "Rice 5kg" || !got[0].Revenue.Equal(dec("1050")) {
		t.Errorf("top[0] = %+v, want Rice 5kg with 1050", got[0])
	}
	if got[1].ItemName != "Cooking Oil 1L" {
		t.Errorf("top[1] = %+v, want Cooking Oil 1L", got[1])
	}
	if got[2].ItemName != "Laundry Soap" {
		t.Errorf("top[2] = %+v, want Laundry Soap", got[2])
	}
}

func TestTopRankingTiesKeepFirstAppearanceOrder(t *testing.T) {
	sales := []core.Sale{
		sale("B", 3, "10", day1),
		sale("A", 3, "10", day1),
		sale("C", 3, "10", day1),
	}
	got := TopByQuantityBetween(sales, day1, day1, 5)
	wantOrder := []string{"B", "A", "C"}
	for i, want := range wantOrder {
		if got[i].ItemName != want {
			t.Errorf("tie order[%d] = %q, want %q", i, got[i].ItemName, want)
		}
	}
}

func TestTopSumsMatchAggregatesWhenUnbounded(t *testing.T) {
	sales := fixtureSales()

	byRevenue := TopByRevenueBetween(sales, day1, day3, 100)
	total := decimal.Zero
	for _, e := range byRevenue {
		total = total.Add(e.Revenue)
	}
	if want := RevenueBetween(sales, day1, day3); !total.Equal(want) {
		t.Errorf("ranking revenue sum = %s, want %s", total, want)
	}

	byQty := TopByQuantityBetween(sales, day1, day3, 100)
	qtySum := 0
	for _, e := range byQty {
		qtySum += e.Quantity
	}
	wantQty := 0
	for _, s := range SalesBetween(sales, day1, day3) {
		wantQty += s.Quantity
	}
	if qtySum != wantQty {
		t.Errorf("ranking quantity sum = %d, want %d", qtySum, wantQty)
	}
}

func TestTopNDefaultsWhenNonPositive(t *testing.T) {
	var sales []core.Sale
	for i := 0; i < 8; i++ {
		name := string(rune('A' + i))
		sales = append(sales, sale(name, i+1, "10", day1))
	}
	got := TopByQuantityBetween(sales, day1, day1, 0)
	if len(got) != DefaultTopN {
		t.Errorf("topN=0 entries = %d, want default %d", len(got), DefaultTopN)
	}
}

func TestSummarize(t *testing.T) {
	sales := fixtureSales()
	got := Summarize(sales, day1, day2)

	if !got.Revenue.Equal(dec("1850")) {
		t.Errorf("Revenue = %s, want 1850", got.Revenue)
	}
	if got.Transactions != 4 {
		t.Errorf("Transactions = %d, want 4", got.Transactions)
	}
	if got.DistinctItems != 3 {
		t.Errorf("DistinctItems = %d, want 3", got.DistinctItems)
	}
}
