package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type seedItem struct {
	name     string
	quantity int
	unitCost string
}

// Starting inventory for a fresh shop. Quantities and costs match the
// bootstrap data the app ships with.
var defaultInventory = []seedItem{
	{name: "Rice 5kg", quantity: 40, unitCost: "320.00"},
	{name: "Cooking Oil 1L", quantity: 35, unitCost: "180.00"},
	{name: "Sugar 1kg", quantity: 50, unitCost: "65.00"},
	{name: "Flour 2kg", quantity: 30, unitCost: "110.00"},
	{name: "Milk Powder 400g", quantity: 25, unitCost: "245.00"},
	{name: "Laundry Soap", quantity: 60, unitCost: "40.00"},
}

// SeedDefaults populates the starting set of items. Calling it on a ledger
// that already holds any of the names restocks them instead.
func (l *Ledger) SeedDefaults(ctx context.Context) error {
	for _, s := range defaultInventory {
		cost, err := decimal.NewFromString(s.unitCost)
		if err != nil {
			return fmt.Errorf("seed %q: %w", s.name, err)
		}
		if err := l.AddItem(ctx, s.name, s.quantity, cost); err != nil {
			return fmt.Errorf("seed %q: %w", s.name, err)
		}
	}
	return nil
}
