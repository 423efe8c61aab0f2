package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	// Date is a calendar date; the time-of-day component is always UTC midnight.
	Date struct {
		time.Time
	}

	// Item is a stock-keeping unit. Name casing is whatever was first inserted;
	// lookups are case-insensitive.
	Item struct {
		Name              string
		QuantityRemaining int
		UnitCost          decimal.Decimal
	}

	// Sale is an immutable record of a quantity of an item sold at a given
	// price on a given date. ItemName is a copy of the item's canonical name
	// at the time of sale, not a live reference.
	Sale struct {
		ID        uuid.UUID
		ItemName  string
		Quantity  int
		UnitPrice decimal.Decimal
		Date      Date
	}
)

var (
	ErrEmptyName       = errors.New("empty item name")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrItemNotFound    = errors.New("item not found")
)

// InsufficientStockError reports a sale request that exceeds the quantity
// currently on hand.
type InsufficientStockError struct {
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ItemName, e.Requested, e.Available)
}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its date component.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// Equal compares at date granularity only.
func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

// Before compares at date granularity only.
func (d Date) Before(other Date) bool {
	return DateOf(d.Time).Time.Before(DateOf(other.Time).Time)
}

// After compares at date granularity only.
func (d Date) After(other Date) bool {
	return DateOf(d.Time).Time.After(DateOf(other.Time).Time)
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.QuantityRemaining < 0 {
		return errors.New("quantity remaining cannot be negative")
	}
	if !i.UnitCost.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// BusinessWorth is the value of the remaining stock at unit cost.
func (i Item) BusinessWorth() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.QuantityRemaining)))
}

func (s Sale) Validate() error {
	if strings.TrimSpace(s.ItemName) == "" {
		return ErrEmptyName
	}
	if s.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !s.UnitPrice.IsPositive() {
		return ErrInvalidPrice
	}
	return s.Date.Validate()
}

// Total is the transacted amount: quantity times the actual unit price.
func (s Sale) Total() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
