package budget

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alharthy/mizania/internal/domain/sms"
	"github.com/alharthy/mizania/internal/domain/transaction"
	"github.com/alharthy/mizania/internal/store"
	"github.com/alharthy/mizania/pkg/storage"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	st := store.NewMemory()
	receipts, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewService(st, receipts, logger), st
}

func TestAddExpense(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("assigns id date and suggested category", func(t *testing.T) {
		saved, err := svc.AddExpense(ctx, transaction.Transaction{
			Amount: decimal.RequireFromString("12.500"),
			Vendor: "CARREFOUR MUSCAT",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.False(t, saved.Date.IsZero())
		assert.Equal(t, "Groceries", saved.Category)
		assert.Equal(t, transaction.KindExpense, saved.Kind)
	})

	t.Run("unknown vendor gets default category", func(t *testing.T) {
		saved, err := svc.AddExpense(ctx, transaction.Transaction{
			Amount: decimal.NewFromInt(5),
			Vendor: "MYSTERY SHOP",
		})
		require.NoError(t, err)
		assert.Equal(t, transaction.CategoryExpense, saved.Category)
	})

	t.Run("explicit category wins", func(t *testing.T) {
		saved, err := svc.AddExpense(ctx, transaction.Transaction{
			Amount:   decimal.NewFromInt(5),
			Vendor:   "CARREFOUR",
			Category: "Gifts",
		})
		require.NoError(t, err)
		assert.Equal(t, "Gifts", saved.Category)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := svc.AddExpense(ctx, transaction.Transaction{
			Amount: decimal.NewFromInt(-1),
		})
		assert.ErrorIs(t, err, transaction.ErrNegativeAmount)
	})

	t.Run("entries are persisted", func(t *testing.T) {
		assert.Len(t, svc.Expenses(ctx), 3)
	})
}

func TestCaptureSMS(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("expense message", func(t *testing.T) {
		tx, err := svc.CaptureSMS(ctx, "Debit of OMR 12.500 at CARREFOUR on 05/01/2025 14:20:00")
		require.NoError(t, err)
		assert.Equal(t, transaction.KindExpense, tx.Kind)
		assert.Equal(t, transaction.CategorySMS, tx.Category)
		assert.Len(t, svc.Expenses(ctx), 1)
		assert.Empty(t, svc.Income(ctx))
	})

	t.Run("income message", func(t *testing.T) {
		tx, err := svc.CaptureSMS(ctx, "Credited OMR 500.000 to SALARY on 2025/01/01")
		require.NoError(t, err)
		assert.Equal(t, transaction.KindIncome, tx.Kind)
		assert.Len(t, svc.Income(ctx), 1)
	})

	t.Run("unusable message saves nothing", func(t *testing.T) {
		_, err := svc.CaptureSMS(ctx, "Thank you for shopping")
		assert.ErrorIs(t, err, sms.ErrNoAmount)
		assert.Len(t, svc.Expenses(ctx), 1)
	})
}

func TestRecurringLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rent := transaction.RecurringTemplate{Name: "Rent", Category: "Housing", MonthlyAmount: decimal.NewFromInt(250)}
	net := transaction.RecurringTemplate{Name: "Internet", Category: "Telecom", MonthlyAmount: decimal.NewFromInt(25)}

	_, err := svc.AddRecurring(ctx, rent)
	require.NoError(t, err)
	_, err = svc.AddRecurring(ctx, net)
	require.NoError(t, err)

	t.Run("list preserves order", func(t *testing.T) {
		templates := svc.Recurring(ctx)
		require.Len(t, templates, 2)
		assert.Equal(t, "Rent", templates[0].Name)
		assert.Equal(t, "Internet", templates[1].Name)
	})

	t.Run("update by position", func(t *testing.T) {
		rent.MonthlyAmount = decimal.NewFromInt(300)
		require.NoError(t, svc.UpdateRecurring(ctx, 0, rent))
		templates := svc.Recurring(ctx)
		assert.True(t, templates[0].MonthlyAmount.Equal(decimal.NewFromInt(300)))
	})

	t.Run("delete by position", func(t *testing.T) {
		require.NoError(t, svc.DeleteRecurring(ctx, 0))
		templates := svc.Recurring(ctx)
		require.Len(t, templates, 1)
		assert.Equal(t, "Internet", templates[0].Name)
	})

	t.Run("out of range positions", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteRecurring(ctx, 5), ErrRecurringIndex)
		assert.ErrorIs(t, svc.UpdateRecurring(ctx, -1, net), ErrRecurringIndex)
	})
}

func TestSummaryIncludesAllSources(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, transaction.Transaction{
		Amount: decimal.NewFromInt(1000),
		Vendor: "EMPLOYER",
	})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, transaction.Transaction{
		Amount:   decimal.NewFromInt(100),
		Vendor:   "LULU",
		Category: "Groceries",
	})
	require.NoError(t, err)
	_, err = svc.AddRecurring(ctx, transaction.RecurringTemplate{
		Name: "Rent", Category: "Housing", MonthlyAmount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	s := svc.Summary(ctx, nil)

	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(1000)))
	// 100 manual plus 50 x 12 recurring
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(700)), "expenses %s", s.TotalExpenses)
	assert.True(t, s.ExpensesByCategory["Housing"].Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 1, s.IncomeEntries)
	assert.Equal(t, 1, s.ExpenseEntries)
	assert.Equal(t, 1, s.RecurringEntries)
}

func TestClearKeepsRecurring(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, transaction.Transaction{Amount: decimal.NewFromInt(5), Vendor: "LULU"})
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, transaction.Transaction{Amount: decimal.NewFromInt(10), Vendor: "EMPLOYER"})
	require.NoError(t, err)
	_, err = svc.AddRecurring(ctx, transaction.RecurringTemplate{Name: "Rent", MonthlyAmount: decimal.NewFromInt(50)})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	assert.Empty(t, svc.Expenses(ctx))
	assert.Empty(t, svc.Income(ctx))
	assert.Len(t, svc.Recurring(ctx), 1)
}

func TestExportRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, transaction.Transaction{
		Amount:   decimal.RequireFromString("12.500"),
		Vendor:   "LULU",
		Category: "Groceries",
	})
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, transaction.Transaction{
		Amount: decimal.NewFromInt(1000),
		Vendor: "EMPLOYER",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))

	overlay, err := svc.ImportWorkbook(ctx, &buf)
	require.NoError(t, err)
	require.Len(t, overlay.Expenses, 1)
	require.Len(t, overlay.Income, 1)
	assert.Equal(t, "LULU", overlay.Expenses[0].Vendor)
	d, ok := overlay.Expenses[0].Decimal()
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))
}

func TestAttachReceipt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ref, err := svc.AttachReceipt(ctx, "receipt.pdf", "application/pdf", bytes.NewBufferString("pdf bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	saved, err := svc.AddExpense(ctx, transaction.Transaction{
		Amount:     decimal.NewFromInt(5),
		Vendor:     "LULU",
		ReceiptRef: ref,
	})
	require.NoError(t, err)
	assert.Equal(t, ref, saved.ReceiptRef)
}
