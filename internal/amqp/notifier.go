package amqp

import (
	"context"
	"log/slog"

	"bottega/internal/ledger"
)

// Publisher is the slice of Client the notifier needs; kept as an interface
// so tests can record publishes without a broker.
type Publisher interface {
	PublishChange(ctx context.Context, msg ChangeMessage) error
}

// Notifier forwards successful ledger mutations to the broker. Rejected
// events stay in-process: the broker stream is an audit of real changes.
// Publish failures are logged and dropped so the mutation still succeeds.
type Notifier struct {
	publisher Publisher
}

func NewNotifier(publisher Publisher) *Notifier {
	return &Notifier{publisher: publisher}
}

// LedgerChanged implements ledger.Notifier.
func (n *Notifier) LedgerChanged(event ledger.ChangeEvent) {
	if !event.Succeeded() {
		return
	}
	if n.publisher == nil {
		return
	}

	if err := n.publisher.PublishChange(context.Background(), NewChangeMessage(event)); err != nil {
		slog.Error("Failed to publish ledger change",
			"error", err,
			"kind", event.Kind,
			"item_name", event.ItemName)
	}
}
