// Package budget is the service layer of the tracker. It owns the wiring
// between the record store, the SMS parser, spreadsheet import/export and
// the monthly aggregation, so callers (the CLI, tests) talk to one type.
package budget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alharthy/mizania/internal/domain/categorization"
	"github.com/alharthy/mizania/internal/domain/sms"
	"github.com/alharthy/mizania/internal/domain/spreadsheet"
	"github.com/alharthy/mizania/internal/domain/summary"
	"github.com/alharthy/mizania/internal/domain/transaction"
	"github.com/alharthy/mizania/internal/store"
	"github.com/alharthy/mizania/pkg/storage"
	"github.com/google/uuid"
)

// ErrRecurringIndex is returned when a recurring template position does
// not exist.
var ErrRecurringIndex = errors.New("recurring template index out of range")

// Service handles budget business logic
type Service struct {
	store    store.Store
	parser   *sms.Parser
	agg      *summary.Aggregator
	importer *spreadsheet.Importer
	suggest  *categorization.Suggester
	receipts storage.Storage
	logger   *slog.Logger
}

// NewService creates a new budget service. The receipt store may be nil
// when receipt attachments are not needed.
func NewService(st store.Store, receipts storage.Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    st,
		parser:   sms.NewParser(),
		agg:      summary.New(st),
		importer: spreadsheet.NewImporter(),
		suggest:  categorization.NewSuggester(categorization.DefaultRules),
		receipts: receipts,
		logger:   logger,
	}
}

// AddExpense validates and persists a manual expense entry. When no
// category is given, one is suggested from the vendor name, falling back
// to the default expense category.
func (s *Service) AddExpense(ctx context.Context, tx transaction.Transaction) (transaction.Transaction, error) {
	tx.Kind = transaction.KindExpense
	if tx.Category == "" {
		if cat, ok := s.suggest.Suggest(tx.Vendor); ok {
			tx.Category = cat
		} else {
			tx.Category = transaction.CategoryExpense
		}
	}
	return s.addEntry(ctx, store.CollectionExpenses, tx)
}

// AddIncome validates and persists a manual income entry.
func (s *Service) AddIncome(ctx context.Context, tx transaction.Transaction) (transaction.Transaction, error) {
	tx.Kind = transaction.KindIncome
	if tx.Category == "" {
		tx.Category = transaction.CategoryIncome
	}
	return s.addEntry(ctx, store.CollectionIncome, tx)
}

func (s *Service) addEntry(ctx context.Context, collection string, tx transaction.Transaction) (transaction.Transaction, error) {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}
	if err := tx.Validate(); err != nil {
		return transaction.Transaction{}, err
	}

	if err := store.Append(ctx, s.store, collection, recordFrom(tx)); err != nil {
		return transaction.Transaction{}, fmt.Errorf("failed to save entry: %w", err)
	}

	s.logger.Info("entry added",
		slog.String("collection", collection),
		slog.String("vendor", tx.Vendor),
		slog.String("amount", tx.Amount.StringFixed(3)))
	return tx, nil
}

// CaptureSMS parses a bank notification and persists the resulting
// transaction under the fixed "SMS" category.
func (s *Service) CaptureSMS(ctx context.Context, message string) (transaction.Transaction, error) {
	tx, err := s.parser.Parse(message)
	if err != nil {
		return transaction.Transaction{}, err
	}
	tx.Category = transaction.CategorySMS

	collection := store.CollectionExpenses
	if tx.Kind == transaction.KindIncome {
		collection = store.CollectionIncome
	}
	if err := store.Append(ctx, s.store, collection, recordFrom(tx)); err != nil {
		return transaction.Transaction{}, fmt.Errorf("failed to save captured entry: %w", err)
	}

	s.logger.Info("sms captured",
		slog.String("kind", string(tx.Kind)),
		slog.String("vendor", tx.Vendor))
	return tx, nil
}

// AttachReceipt uploads a receipt file and returns the reference to
// store on a transaction.
func (s *Service) AttachReceipt(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if s.receipts == nil {
		return "", errors.New("receipt storage not configured")
	}
	info, err := s.receipts.Upload(ctx, filename, contentType, r)
	if err != nil {
		return "", fmt.Errorf("failed to store receipt: %w", err)
	}
	return info.ID.String(), nil
}

// Expenses lists all stored expense entries.
func (s *Service) Expenses(ctx context.Context) []store.Record {
	return store.Load(ctx, s.store, store.CollectionExpenses)
}

// Income lists all stored income entries.
func (s *Service) Income(ctx context.Context) []store.Record {
	return store.Load(ctx, s.store, store.CollectionIncome)
}

// Recurring lists the stored recurring templates.
func (s *Service) Recurring(ctx context.Context) []transaction.RecurringTemplate {
	records := store.Load(ctx, s.store, store.CollectionRecurring)
	templates := make([]transaction.RecurringTemplate, 0, len(records))
	for _, rec := range records {
		amount, _ := rec.Decimal()
		id, _ := uuid.Parse(rec.ID)
		templates = append(templates, transaction.RecurringTemplate{
			ID:            id,
			Name:          rec.Name,
			Category:      rec.Category,
			MonthlyAmount: amount,
		})
	}
	return templates
}

// AddRecurring appends a recurring template.
func (s *Service) AddRecurring(ctx context.Context, tpl transaction.RecurringTemplate) (transaction.RecurringTemplate, error) {
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	if err := tpl.Validate(); err != nil {
		return transaction.RecurringTemplate{}, err
	}
	if err := store.Append(ctx, s.store, store.CollectionRecurring, recordFromTemplate(tpl)); err != nil {
		return transaction.RecurringTemplate{}, fmt.Errorf("failed to save recurring template: %w", err)
	}
	return tpl, nil
}

// UpdateRecurring replaces the template at the given position.
func (s *Service) UpdateRecurring(ctx context.Context, pos int, tpl transaction.RecurringTemplate) error {
	if err := tpl.Validate(); err != nil {
		return err
	}
	records := store.Load(ctx, s.store, store.CollectionRecurring)
	if pos < 0 || pos >= len(records) {
		return ErrRecurringIndex
	}
	if tpl.ID == uuid.Nil {
		if id, parseErr := uuid.Parse(records[pos].ID); parseErr == nil {
			tpl.ID = id
		} else {
			tpl.ID = uuid.New()
		}
	}
	records[pos] = recordFromTemplate(tpl)
	return store.Save(ctx, s.store, store.CollectionRecurring, records)
}

// DeleteRecurring removes the template at the given position.
func (s *Service) DeleteRecurring(ctx context.Context, pos int) error {
	records := store.Load(ctx, s.store, store.CollectionRecurring)
	if pos < 0 || pos >= len(records) {
		return ErrRecurringIndex
	}
	records = append(records[:pos], records[pos+1:]...)
	return store.Save(ctx, s.store, store.CollectionRecurring, records)
}

// ImportWorkbook reads an xlsx workbook into an overlay. Imported rows
// are merged at aggregation time and never written to the store.
func (s *Service) ImportWorkbook(ctx context.Context, r io.Reader) (*summary.Overlay, error) {
	result, err := s.importer.ImportWorkbook(r)
	if err != nil {
		return nil, err
	}
	s.logger.Info("workbook imported",
		slog.Int("income_rows", len(result.Income)),
		slog.Int("expense_rows", len(result.Expenses)))
	return &summary.Overlay{Income: result.Income, Expenses: result.Expenses}, nil
}

// ImportCSV reads a single-table CSV into an overlay. The isIncome flag
// decides which side of the overlay the rows land on.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, isIncome bool) (*summary.Overlay, error) {
	rows, err := s.importer.ImportCSV(r, isIncome)
	if err != nil {
		return nil, err
	}
	overlay := &summary.Overlay{}
	if isIncome {
		overlay.Income = rows
	} else {
		overlay.Expenses = rows
	}
	return overlay, nil
}

// Export writes all stored entries and templates to an xlsx workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	expenses := store.Load(ctx, s.store, store.CollectionExpenses)
	income := store.Load(ctx, s.store, store.CollectionIncome)
	recurring := store.Load(ctx, s.store, store.CollectionRecurring)
	return spreadsheet.WriteWorkbook(w, expenses, income, recurring)
}

// Summary builds the monthly aggregation over stored entries plus the
// given overlay, which may be nil.
func (s *Service) Summary(ctx context.Context, overlay *summary.Overlay) summary.MonthlySummary {
	return s.agg.Build(ctx, overlay)
}

// Clear wipes income and expense entries. Recurring templates survive a
// clear on purpose so monthly plans do not have to be re-entered.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, store.CollectionExpenses); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	if err := s.store.Delete(ctx, store.CollectionIncome); err != nil {
		return fmt.Errorf("failed to clear income: %w", err)
	}
	s.logger.Info("entries cleared")
	return nil
}

// recordFrom converts a validated transaction to its stored form.
func recordFrom(tx transaction.Transaction) store.Record {
	rec := store.Record{
		ID:       tx.ID.String(),
		Date:     tx.Date.UTC().Format(time.RFC3339),
		Vendor:   tx.Vendor,
		Category: tx.Category,
		Receipt:  tx.ReceiptRef,
	}
	rec.SetAmount(tx.Amount)
	return rec
}

func recordFromTemplate(tpl transaction.RecurringTemplate) store.Record {
	rec := store.Record{
		ID:       tpl.ID.String(),
		Name:     tpl.Name,
		Category: tpl.Category,
	}
	rec.SetAmount(tpl.MonthlyAmount)
	return rec
}
