// Package transaction defines the entry types shared by the SMS parser,
// the record store, and the aggregation engine.
package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes money coming in from money going out. Amounts are
// always non-negative; direction is carried here, never by sign.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Fallback categories assigned when a source provides none.
const (
	CategorySMS       = "SMS"
	CategoryIncome    = "Income"
	CategoryExpense   = "Expense"
	CategoryOther     = "Other"
	CategoryRecurring = "Recurring"
)

var ErrNegativeAmount = errors.New("transaction: amount must not be negative")

// Transaction is a single dated money movement.
type Transaction struct {
	ID         uuid.UUID       `json:"id"`
	Kind       Kind            `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Vendor     string          `json:"vendor"`
	Category   string          `json:"category"`
	Date       time.Time       `json:"date"`
	ReceiptRef string          `json:"receipt,omitempty"`
}

// Validate checks the data-model invariants that hold for every stored
// transaction.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// RecurringTemplate is a fixed monthly cost applied uniformly to every
// calendar month of the reporting view. It carries no date.
type RecurringTemplate struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	MonthlyAmount decimal.Decimal `json:"amount"`
}

// Validate checks the template invariants.
func (r RecurringTemplate) Validate() error {
	if r.MonthlyAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
