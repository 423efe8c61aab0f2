// Package ledger owns the in-memory inventory and the append-only sale log.
// All mutation goes through Ledger methods; callers only ever see copies of
// the collections.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bottega/internal/core"
	applog "bottega/internal/log"
)

// SaleRequest carries the parameters of a RecordSale call. A zero Date means
// today; UnitPriceOverride is used only when positive, otherwise the item's
// unit cost applies.
type SaleRequest struct {
	ItemName          string
	Quantity          int
	Date              core.Date
	UnitPriceOverride decimal.Decimal
}

// Ledger is the single owner of items and sales. The mutex guards the
// read-check-then-write sequence of each mutating call, so the ledger is safe
// for concurrent callers even though the application drives it from one actor.
type Ledger struct {
	mu        sync.Mutex
	items     []*core.Item
	index     map[string]int // lowercased name -> position in items
	sales     []core.Sale
	lastErr   string
	notifiers []Notifier
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		index: make(map[string]int),
	}
}

// Subscribe registers a notifier for subsequent change events.
func (l *Ledger) Subscribe(n Notifier) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notifiers = append(l.notifiers, n)
}

// AddItem creates a new item or, when an item with the same case-insensitive
// name exists, restocks it by quantity. The unit cost of an existing item is
// never changed; the cost argument only applies to newly created items.
// On validation failure nothing is mutated and the error is recorded in the
// last-error slot.
func (l *Ledger) AddItem(ctx context.Context, name string, quantity int, unitCost decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return l.reject(ctx, trimmed, core.ErrEmptyName)
	}
	if quantity <= 0 {
		return l.reject(ctx, trimmed, fmt.Errorf("add %q: %w", trimmed, core.ErrInvalidQuantity))
	}
	if !unitCost.IsPositive() {
		return l.reject(ctx, trimmed, fmt.Errorf("add %q: %w", trimmed, core.ErrInvalidPrice))
	}

	key := strings.ToLower(trimmed)
	if pos, ok := l.index[key]; ok {
		item := l.items[pos]
		item.QuantityRemaining += quantity
		l.lastErr = ""
		l.notify(ChangeEvent{Kind: EventItemRestock, ItemName: item.Name, Quantity: quantity})
		slog.InfoContext(ctx, "Item restocked",
			applog.FieldItemName, item.Name,
			"added_quantity", quantity,
			"quantity_remaining", item.QuantityRemaining)
		return nil
	}

	item := &core.Item{Name: trimmed, QuantityRemaining: quantity, UnitCost: unitCost}
	l.items = append(l.items, item)
	l.index[key] = len(l.items) - 1
	l.lastErr = ""
	l.notify(ChangeEvent{Kind: EventItemAdded, ItemName: item.Name, Quantity: quantity})
	slog.InfoContext(ctx, "Item added",
		applog.FieldItemName, item.Name,
		applog.FieldQuantity, quantity,
		applog.FieldUnitCost, unitCost.String())
	return nil
}

// RecordSale validates the request against current stock and, on success,
// decrements the item's quantity and appends an immutable sale. Failures
// never escape as errors: the outcome is the boolean return plus the
// last-error slot, so a caller can always render feedback.
func (l *Ledger) RecordSale(ctx context.Context, req SaleRequest) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := strings.TrimSpace(req.ItemName)
	pos, ok := l.index[strings.ToLower(name)]
	if !ok {
		l.reject(ctx, name, fmt.Errorf("sell %q: %w", name, core.ErrItemNotFound))
		return false
	}
	item := l.items[pos]

	if req.Quantity <= 0 {
		l.reject(ctx, item.Name, fmt.Errorf("sell %q: %w", item.Name, core.ErrInvalidQuantity))
		return false
	}
	if req.Quantity > item.QuantityRemaining {
		l.reject(ctx, item.Name, &core.InsufficientStockError{
			ItemName:  item.Name,
			Requested: req.Quantity,
			Available: item.QuantityRemaining,
		})
		return false
	}

	price := item.UnitCost
	if req.UnitPriceOverride.IsPositive() {
		price = req.UnitPriceOverride
	}
	date := req.Date
	if date.IsZero() {
		date = core.Today()
	} else {
		date = core.DateOf(date.Time)
	}

	sale := core.Sale{
		ID:        uuid.New(),
		ItemName:  item.Name,
		Quantity:  req.Quantity,
		UnitPrice: price,
		Date:      date,
	}
	item.QuantityRemaining -= req.Quantity
	l.sales = append(l.sales, sale)
	l.lastErr = ""
	l.notify(ChangeEvent{
		Kind:     EventSaleRecorded,
		ItemName: item.Name,
		Quantity: req.Quantity,
		SaleID:   sale.ID,
		Total:    sale.Total(),
		Date:     sale.Date,
	})
	slog.InfoContext(ctx, "Sale recorded",
		applog.FieldSaleID, sale.ID.String(),
		applog.FieldItemName, item.Name,
		applog.FieldQuantity, req.Quantity,
		applog.FieldUnitPrice, price.String(),
		applog.FieldSaleTotal, sale.Total().String(),
		"quantity_remaining", item.QuantityRemaining)
	return true
}

// Items returns a snapshot copy of the inventory in insertion order.
func (l *Ledger) Items() []core.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Item, len(l.items))
	for i, item := range l.items {
		out[i] = *item
	}
	return out
}

// Item looks up a single item by case-insensitive name.
func (l *Ledger) Item(name string) (core.Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pos, ok := l.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return core.Item{}, false
	}
	return *l.items[pos], true
}

// Sales returns a snapshot copy of the sale log in append order.
func (l *Ledger) Sales() []core.Sale {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Sale, len(l.sales))
	copy(out, l.sales)
	return out
}

// LastError returns the message recorded by the most recent failed mutating
// call, or the empty string after a successful one.
func (l *Ledger) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// reject records the failure, tells the notifiers, and returns err unchanged.
// Callers hold the lock.
func (l *Ledger) reject(ctx context.Context, itemName string, err error) error {
	l.lastErr = err.Error()
	l.notify(ChangeEvent{Kind: EventRejected, ItemName: itemName, Err: l.lastErr})
	slog.WarnContext(ctx, "Ledger mutation rejected",
		applog.FieldItemName, itemName,
		applog.FieldError, l.lastErr)
	return err
}

func (l *Ledger) notify(event ChangeEvent) {
	for _, n := range l.notifiers {
		n.LedgerChanged(event)
	}
}
