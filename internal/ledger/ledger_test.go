package ledger

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"bottega/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddItemCreatesAndRestocks(t *testing.T) {
	ctx := context.Background()
	l := New()

	if err := l.AddItem(ctx, "Widget", 5, dec("100")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	item, ok := l.Item("widget")
	if !ok {
		t.Fatal("case-insensitive lookup failed")
	}
	if item.QuantityRemaining != 5 {
		t.Errorf("QuantityRemaining = %d, want 5", item.QuantityRemaining)
	}

	// Restock by a different casing keeps the original name and cost.
	if err := l.AddItem(ctx, "WIDGET", 3, dec("999")); err != nil {
		t.Fatalf("restock: %v", err)
	}
	item, _ = l.Item("Widget")
	if item.Name != "Widget" {
		t.Errorf("canonical name = %q, want %q", item.Name, "Widget")
	}
	if item.QuantityRemaining != 8 {
		t.Errorf("QuantityRemaining = %d, want 8", item.QuantityRemaining)
	}
	if !item.UnitCost.Equal(dec("100")) {
		t.Errorf("UnitCost = %s, want 100 (restock must not reprice)", item.UnitCost)
	}
	if got := len(l.Items()); got != 1 {
		t.Errorf("item count = %d, want 1", got)
	}
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		itemName string
		quantity int
		unitCost decimal.Decimal
	}{
		{name: "empty name", itemName: "   ", quantity: 5, unitCost: dec("10")},
		{name: "zero quantity", itemName: "Widget", quantity: 0, unitCost: dec("10")},
		{name: "negative quantity", itemName: "Widget", quantity: -2, unitCost: dec("10")},
		{name: "zero cost", itemName: "Widget", quantity: 5, unitCost: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			if err := l.AddItem(ctx, tt.itemName, tt.quantity, tt.unitCost); err == nil {
				t.Fatal("AddItem succeeded, want validation error")
			}
			if len(l.Items()) != 0 {
				t.Error("failed AddItem must not mutate the inventory")
			}
			if l.LastError() == "" {
				t.Error("failed AddItem must record the error slot")
			}
		})
	}
}

func TestRecordSaleHappyPath(t *testing.T) {
	ctx := context.Background()
	l := New()
	if err := l.AddItem(ctx, "Widget", 10, dec("100")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	ok := l.RecordSale(ctx, SaleRequest{ItemName: "widget", Quantity: 4, Date: core.NewDate(2024, 6, 1)})
	if !ok {
		t.Fatalf("RecordSale failed: %s", l.LastError())
	}
	item, _ := l.Item("Widget")
	if item.QuantityRemaining != 6 {
		t.Errorf("QuantityRemaining = %d, want 6", item.QuantityRemaining)
	}

	sales := l.Sales()
	if len(sales) != 1 {
		t.Fatalf("sale log length = %d, want 1", len(sales))
	}
	sale := sales[0]
	if sale.ItemName != "Widget" {
		t.Errorf("sale ItemName = %q, want canonical %q", sale.ItemName, "Widget")
	}
	if !sale.UnitPrice.Equal(dec("100")) {
		t.Errorf("UnitPrice = %s, want item cost 100", sale.UnitPrice)
	}
	if !sale.Total().Equal(dec("400")) {
		t.Errorf("Total = %s, want 400", sale.Total())
	}
	if l.LastError() != "" {
		t.Errorf("LastError = %q, want cleared", l.LastError())
	}
}

func TestRecordSalePriceOverrideAndDefaultDate(t *testing.T) {
	ctx := context.Background()
	l := New()
	_ = l.AddItem(ctx, "Widget", 10, dec("100"))

	if !l.RecordSale(ctx, SaleRequest{ItemName: "Widget", Quantity: 1, UnitPriceOverride: dec("150")}) {
		t.Fatalf("RecordSale failed: %s", l.LastError())
	}
	sales := l.Sales()
	if !sales[0].UnitPrice.Equal(dec("150")) {
		t.Errorf("UnitPrice = %s, want override 150", sales[0].UnitPrice)
	}
	if !sales[0].Date.Equal(core.Today()) {
		t.Errorf("Date = %v, want today", sales[0].Date)
	}
}

func TestRecordSaleFailuresLeaveStateUntouched(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       SaleRequest
		wantInMsg string
	}{
		{
			name:      "unknown item",
			req:       SaleRequest{ItemName: "Gadget", Quantity: 1},
			wantInMsg: "not found",
		},
		{
			name:      "non-positive quantity",
			req:       SaleRequest{ItemName: "Widget", Quantity: 0},
			wantInMsg: "positive",
		},
		{
			name:      "insufficient stock",
			req:       SaleRequest{ItemName: "Widget", Quantity: 11},
			wantInMsg: "available 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			_ = l.AddItem(ctx, "Widget", 10, dec("100"))

			if l.RecordSale(ctx, tt.req) {
				t.Fatal("RecordSale succeeded, want failure")
			}
			item, _ := l.Item("Widget")
			if item.QuantityRemaining != 10 {
				t.Errorf("QuantityRemaining = %d, want 10 (no mutation on failure)", item.QuantityRemaining)
			}
			if len(l.Sales()) != 0 {
				t.Error("sale log must stay empty on failure")
			}
			if !strings.Contains(l.LastError(), tt.wantInMsg) {
				t.Errorf("LastError = %q, want it to contain %q", l.LastError(), tt.wantInMsg)
			}
		})
	}
}

func TestStockNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	l := New()
	_ = l.AddItem(ctx, "Widget", 5, dec("100"))

	// Sell more than available across a sequence of calls; the rejected ones
	// must not dent the stock.
	quantities := []int{2, 2, 2, 2, 2}
	for _, q := range quantities {
		l.RecordSale(ctx, SaleRequest{ItemName: "Widget", Quantity: q})
		item, _ := l.Item("Widget")
		if item.QuantityRemaining < 0 {
			t.Fatalf("QuantityRemaining went negative: %d", item.QuantityRemaining)
		}
	}
	item, _ := l.Item("Widget")
	if item.QuantityRemaining != 1 {
		t.Errorf("QuantityRemaining = %d, want 1 (two sales applied, rest rejected)", item.QuantityRemaining)
	}
	if len(l.Sales()) != 2 {
		t.Errorf("sale count = %d, want 2", len(l.Sales()))
	}
}

func TestNotifierReceivesEventsInOrder(t *testing.T) {
	ctx := context.Background()
	l := New()

	var events []ChangeEvent
	l.Subscribe(NotifierFunc(func(e ChangeEvent) {
		events = append(events, e)
	}))

	_ = l.AddItem(ctx, "Widget", 5, dec("100"))
	_ = l.AddItem(ctx, "widget", 5, dec("100"))
	l.RecordSale(ctx, SaleRequest{ItemName: "Widget", Quantity: 3})
	_ = l.AddItem(ctx, "", 1, dec("1")) // rejected, still notified

	wantKinds := []EventKind{EventItemAdded, EventItemRestock, EventSaleRecorded, EventRejected}
	if len(events) != len(wantKinds) {
		t.Fatalf("event count = %d, want %d", len(events), len(wantKinds))
	}
	for i, want := range wantKinds {
		if events[i].Kind != want {
			t.Errorf("event[%d].Kind = %q, want %q", i, events[i].Kind, want)
		}
	}
	if events[3].Succeeded() {
		t.Error("rejected event must not report success")
	}
	if events[3].Err == "" {
		t.Error("rejected event must carry the recorded error")
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	l := New()
	_ = l.AddItem(ctx, "Widget", 5, dec("100"))

	items := l.Items()
	items[0].QuantityRemaining = 0

	item, _ := l.Item("Widget")
	if item.QuantityRemaining != 5 {
		t.Error("mutating a snapshot must not touch ledger state")
	}
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	l := New()
	if err := l.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	items := l.Items()
	if len(items) != 6 {
		t.Fatalf("seeded item count = %d, want 6", len(items))
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			t.Errorf("seeded item %q invalid: %v", item.Name, err)
		}
	}
}
