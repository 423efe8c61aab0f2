package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"bottega/internal/core"
	"bottega/internal/ledger"
)

// ChangeMessage is the wire form of a successful ledger mutation. Amounts
// travel as decimal strings and the date as 2006-01-02 so consumers in any
// language can parse them without float trouble.
type ChangeMessage struct {
	Kind       string    `json:"kind"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	SaleID     string    `json:"sale_id,omitempty"`
	Total      string    `json:"total,omitempty"`
	Date       string    `json:"date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewChangeMessage converts a ledger event into its wire form.
func NewChangeMessage(event ledger.ChangeEvent) ChangeMessage {
	msg := ChangeMessage{
		Kind:       string(event.Kind),
		ItemName:   event.ItemName,
		Quantity:   event.Quantity,
		OccurredAt: time.Now().UTC(),
	}
	if event.Kind == ledger.EventSaleRecorded {
		msg.SaleID = event.SaleID.String()
		msg.Total = event.Total.String()
		msg.Date = event.Date.String()
	}
	return msg
}

// SaleDate parses the message's date field.
func (m ChangeMessage) SaleDate() (core.Date, error) {
	t, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse sale date %q: %w", m.Date, err)
	}
	return core.DateOf(t), nil
}

// ToJSON serializes the message.
func (m ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON deserializes a message body.
func ChangeMessageFromJSON(body []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal change message: %w", err)
	}
	return &msg, nil
}
