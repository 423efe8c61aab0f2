// Package worker consumes ledger change events and keeps running per-day
// sales totals, giving operators a live tally without querying the service.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"bottega/internal/amqp"
	"bottega/internal/core"
	"bottega/internal/ledger"
)

// DayTotals is the accumulated sales figures for one calendar date.
type DayTotals struct {
	Date         core.Date
	Revenue      decimal.Decimal
	Transactions int
	Quantity     int
}

// ReportWorker aggregates sale_recorded messages by date. Other change kinds
// are acknowledged and ignored.
type ReportWorker struct {
	mu   sync.Mutex
	days map[string]*DayTotals
}

func New() *ReportWorker {
	return &ReportWorker{days: make(map[string]*DayTotals)}
}

// HandleChange processes one change message from the queue. Returning an
// error requeues the message, so malformed sale payloads are logged and
// dropped instead.
func (w *ReportWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	if msg.Kind != string(ledger.EventSaleRecorded) {
		slog.DebugContext(ctx, "Skipping non-sale change", "kind", msg.Kind, "item_name", msg.ItemName)
		return nil
	}

	date, err := msg.SaleDate()
	if err != nil {
		slog.ErrorContext(ctx, "Dropping sale with unparseable date", "error", err, "sale_id", msg.SaleID)
		return nil
	}
	total, err := decimal.NewFromString(msg.Total)
	if err != nil {
		slog.ErrorContext(ctx, "Dropping sale with unparseable total", "error", err, "sale_id", msg.SaleID)
		return nil
	}

	day := w.accumulate(date, total, msg.Quantity)
	slog.InfoContext(ctx, "Daily sales updated",
		"date", day.Date.String(),
		"revenue", day.Revenue.String(),
		"transactions", day.Transactions,
		"units_sold", day.Quantity)
	return nil
}

func (w *ReportWorker) accumulate(date core.Date, total decimal.Decimal, quantity int) DayTotals {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := date.String()
	day, ok := w.days[key]
	if !ok {
		day = &DayTotals{Date: date, Revenue: decimal.Zero}
		w.days[key] = day
	}
	day.Revenue = day.Revenue.Add(total)
	day.Transactions++
	day.Quantity += quantity
	return *day
}

// Totals returns the accumulated figures for a date.
func (w *ReportWorker) Totals(date core.Date) (DayTotals, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	day, ok := w.days[date.String()]
	if !ok {
		return DayTotals{}, false
	}
	return *day, true
}

// Summary formats one line per tracked day for shutdown logging. Line order
// follows map iteration and is unspecified.
func (w *ReportWorker) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.days) == 0 {
		return "no sales observed"
	}
	out := ""
	for _, day := range w.days {
		out += fmt.Sprintf("%s: %s across %d transactions\n", day.Date, day.Revenue, day.Transactions)
	}
	return out
}
