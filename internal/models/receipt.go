package models

import (
	"errors"
	"fmt"
	"strings"

	"scanalyze/internal/currency"
)

var (
	ErrEmptyItemName   = errors.New("item name cannot be empty")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrNegativeQty     = errors.New("quantity cannot be negative")
	ErrInvalidCategory = errors.New("invalid category")
)

// ExpenseItem represents one distinct line item on a receipt.
// Quantity is the number of units purchased, fixed once the receipt is
// recorded.
type ExpenseItem struct {
	// Name is the item description as extracted from the receipt.
	Name string

	// UnitPrice is the price of a single unit, in minor units of the
	// receipt's currency.
	UnitPrice currency.Amount

	// Quantity is the number of units purchased.
	Quantity int

	// ExpiryDate is an optional expiry hint for perishables (ISO date),
	// empty when not extracted.
	ExpiryDate string
}

// Validate checks the invariants of a single line item.
func (i ExpenseItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyItemName
	}
	if i.UnitPrice.Minor < 0 {
		return fmt.Errorf("item %q: %w", i.Name, ErrNegativeAmount)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("item %q: %w", i.Name, ErrNegativeQty)
	}
	return nil
}

// GstBreakdownItem is one tax line from a receipt's GST breakdown.
type GstBreakdownItem struct {
	TaxType string
	Amount  currency.Amount
}

// GstInfo carries the GST identification extracted from a receipt.
// Present only on receipts that carry a GSTIN.
type GstInfo struct {
	GstNumber string
	GstAmount currency.Amount
	Breakdown []GstBreakdownItem
}

// Receipt represents a recorded purchase. It is immutable once stored:
// the split calculator and insights aggregation read but never mutate it.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// Category is the expense category assigned at extraction time.
	Category Category

	// Amount is the receipt total in minor units of Currency.
	Amount currency.Amount

	// Currency is the ISO 4217 code for all amounts on this receipt.
	Currency string

	// Items are the itemized lines, in receipt order. May be empty when
	// extraction found no individual items.
	Items []ExpenseItem

	// GstInfo is the tax identification block, nil when absent.
	GstInfo *GstInfo

	// CreatedAt is the Unix timestamp when the receipt was recorded.
	CreatedAt int64
}

// Validate checks the receipt's invariants. Unknown currency codes are
// rejected here rather than silently falling back.
func (r Receipt) Validate() error {
	if !r.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	if !currency.Valid(r.Currency) {
		return fmt.Errorf("%w: %q", currency.ErrUnknownCurrency, r.Currency)
	}
	if r.Amount.Minor < 0 {
		return ErrNegativeAmount
	}
	for _, item := range r.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ItemsTotal returns the sum of unit price times quantity over all items.
// It can differ from Amount when extraction missed lines or the receipt
// carries taxes outside the itemization.
func (r Receipt) ItemsTotal() currency.Amount {
	var total currency.Amount
	for _, item := range r.Items {
		total = total.Add(item.UnitPrice.Mul(item.Quantity))
	}
	return total
}
