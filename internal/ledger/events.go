package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bottega/internal/core"
)

// EventKind identifies what a change event describes.
type EventKind string

const (
	EventItemAdded    EventKind = "item_added"
	EventItemRestock  EventKind = "item_restocked"
	EventSaleRecorded EventKind = "sale_recorded"
	// EventRejected is delivered when a mutating call fails validation. The
	// ledger's collections are unchanged; Err carries the recorded message.
	EventRejected EventKind = "rejected"
)

// ChangeEvent describes a single mutating call on the ledger, successful or
// not. Events are delivered synchronously, in call order, after the mutation
// (or its rejection) has been applied.
type ChangeEvent struct {
	Kind     EventKind
	ItemName string
	Quantity int

	// Set for sale_recorded events only.
	SaleID uuid.UUID
	Total  decimal.Decimal
	Date   core.Date

	Err string
}

// Succeeded reports whether the event describes an applied mutation.
func (e ChangeEvent) Succeeded() bool {
	return e.Kind != EventRejected
}

// Notifier receives change events from the ledger. Implementations must not
// call back into the ledger's mutating methods; they run under its lock.
type Notifier interface {
	LedgerChanged(event ChangeEvent)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ChangeEvent)

func (f NotifierFunc) LedgerChanged(event ChangeEvent) {
	f(event)
}
