// Package summary implements the aggregation engine that merges manual
// entries, imported spreadsheet rows, and recurring templates into one
// monthly view of the budget.
package summary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alharthy/mizania/internal/domain/transaction"
	"github.com/alharthy/mizania/internal/store"
)

var oneHundred = decimal.NewFromInt(100)

// MonthlySummary is the derived aggregate the dashboard renders. Slots are
// indexed 0=January..11=December; bucketing ignores the year, so data from
// several years folds into the same twelve months.
type MonthlySummary struct {
	IncomeByMonth   [12]decimal.Decimal
	ExpensesByMonth [12]decimal.Decimal
	NetByMonth      [12]decimal.Decimal

	// ExpensesByCategory totals expenses only. Recurring templates
	// contribute MonthlyAmount x 12 regardless of calendar coverage.
	ExpensesByCategory map[string]decimal.Decimal

	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetBalance    decimal.Decimal

	// SavingsRate is net/income as a percentage, 0 when income is 0.
	SavingsRate decimal.Decimal

	// Skipped counts rows dropped for an unparsable date or amount. The
	// drop itself is silent; the count exists so callers and tests can
	// observe it.
	Skipped int

	IncomeEntries    int
	ExpenseEntries   int
	RecurringEntries int
}

// Overlay is a transient batch of imported rows merged into a single
// computation without ever being persisted.
type Overlay struct {
	Income   []store.Record
	Expenses []store.Record
}

// Aggregator computes summaries from the record store's current contents.
type Aggregator struct {
	store store.Store
}

// New creates an aggregator over the given store.
func New(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Build recomputes the summary from scratch. It is total over any input:
// empty collections produce an all-zero summary and malformed rows are
// dropped, never errors.
func (a *Aggregator) Build(ctx context.Context, overlay *Overlay) MonthlySummary {
	s := MonthlySummary{ExpensesByCategory: make(map[string]decimal.Decimal)}

	incomeRows := store.Load(ctx, a.store, store.CollectionIncome)
	expenseRows := store.Load(ctx, a.store, store.CollectionExpenses)
	recurring := store.Load(ctx, a.store, store.CollectionRecurring)
	if overlay != nil {
		incomeRows = append(append([]store.Record{}, overlay.Income...), incomeRows...)
		expenseRows = append(append([]store.Record{}, overlay.Expenses...), expenseRows...)
	}

	s.IncomeEntries = len(incomeRows)
	s.ExpenseEntries = len(expenseRows)
	s.RecurringEntries = len(recurring)

	for _, row := range incomeRows {
		month, amount, ok := resolve(row)
		if !ok {
			s.Skipped++
			continue
		}
		s.IncomeByMonth[month] = s.IncomeByMonth[month].Add(amount)
	}

	for _, row := range expenseRows {
		month, amount, ok := resolve(row)
		if !ok {
			s.Skipped++
			continue
		}
		s.ExpensesByMonth[month] = s.ExpensesByMonth[month].Add(amount)

		cat := row.Category
		if cat == "" {
			cat = transaction.CategoryOther
		}
		s.ExpensesByCategory[cat] = s.ExpensesByCategory[cat].Add(amount)
	}

	for _, item := range recurring {
		amount, ok := item.Decimal()
		if !ok {
			s.Skipped++
			continue
		}
		for i := range s.ExpensesByMonth {
			s.ExpensesByMonth[i] = s.ExpensesByMonth[i].Add(amount)
		}
		cat := item.Category
		if cat == "" {
			cat = transaction.CategoryRecurring
		}
		s.ExpensesByCategory[cat] = s.ExpensesByCategory[cat].Add(amount.Mul(decimal.NewFromInt(12)))
	}

	// Scalar totals are the sums of the monthly buckets, never separate
	// running totals, so any dropped row is consistently absent from both.
	for i := range s.IncomeByMonth {
		s.TotalIncome = s.TotalIncome.Add(s.IncomeByMonth[i])
		s.TotalExpenses = s.TotalExpenses.Add(s.ExpensesByMonth[i])
		s.NetByMonth[i] = s.IncomeByMonth[i].Sub(s.ExpensesByMonth[i])
	}
	s.NetBalance = s.TotalIncome.Sub(s.TotalExpenses)
	if s.TotalIncome.IsPositive() {
		s.SavingsRate = s.NetBalance.Div(s.TotalIncome).Mul(oneHundred)
	}

	return s
}

// resolve extracts the month bucket and amount from a row. A row with an
// unparsable date or a non-numeric amount resolves to ok=false and is
// excluded from every total.
func resolve(row store.Record) (month int, amount decimal.Decimal, ok bool) {
	t, ok := row.Time()
	if !ok {
		return 0, decimal.Zero, false
	}
	amount, ok = row.Decimal()
	if !ok {
		return 0, decimal.Zero, false
	}
	return int(t.Month()) - 1, amount, true
}
