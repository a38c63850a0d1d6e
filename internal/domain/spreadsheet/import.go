// Package spreadsheet converts Excel workbooks and CSV files to and from
// the flat record shape used by the store. All column-alias handling
// lives here, at the boundary; records leaving this package have one
// canonical shape.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/alharthy/mizania/internal/domain/transaction"
	"github.com/alharthy/mizania/internal/store"
)

// Sheet names the import contract requires.
const (
	SheetIncome    = "Income"
	SheetExpenses  = "Expenses"
	SheetRecurring = "Recurring"
)

// ErrMissingSheets is returned when a workbook lacks the Income or
// Expenses sheet. Nothing is imported partially.
var ErrMissingSheets = errors.New("spreadsheet: workbook must contain 'Income' and 'Expenses' sheets")

// Column aliases, in resolution priority order.
var (
	dateAliases     = []string{"Date", "date", "DATE"}
	categoryAliases = []string{"Category", "category"}
	vendorAliases   = []string{"Vendor", "vendor", "Description"}
	amountAliases   = []string{"Amount (OMR)", "Amount", "amount"}
)

// importDateFormats cover the cell texts spreadsheets commonly carry.
var importDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"01-02-06",
	"1/2/06 15:04",
}

// ImportResult holds the rows of one parsed workbook. The rows form a
// transient overlay; they are never persisted.
type ImportResult struct {
	Income   []store.Record
	Expenses []store.Record
}

// Importer parses workbooks into canonical records.
type Importer struct {
	now func() time.Time
}

// NewImporter creates an importer using the wall clock for rows without
// a date.
func NewImporter() *Importer {
	return &Importer{now: time.Now}
}

// ImportWorkbook reads an XLSX workbook. Both required sheets must exist;
// a missing sheet fails the whole import with ErrMissingSheets.
func (im *Importer) ImportWorkbook(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: opening workbook: %w", err)
	}
	defer f.Close()

	incomeIdx, _ := f.GetSheetIndex(SheetIncome)
	expenseIdx, _ := f.GetSheetIndex(SheetExpenses)
	if incomeIdx < 0 || expenseIdx < 0 {
		return nil, ErrMissingSheets
	}

	income, err := im.importSheet(f, SheetIncome, true)
	if err != nil {
		return nil, err
	}
	expenses, err := im.importSheet(f, SheetExpenses, false)
	if err != nil {
		return nil, err
	}

	return &ImportResult{Income: income, Expenses: expenses}, nil
}

func (im *Importer) importSheet(f *excelize.File, sheet string, isIncome bool) ([]store.Record, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []store.Record{}, nil
	}

	cols := mapColumns(rows[0])
	records := make([]store.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, im.canonicalize(rawRow{
			date:     cols.value(row, cols.date),
			category: cols.value(row, cols.category),
			vendor:   cols.value(row, cols.vendor),
			amount:   cols.value(row, cols.amount),
		}, isIncome))
	}
	return records, nil
}

type rawRow struct {
	date, category, vendor, amount string
}

// canonicalize applies the source-specific defaults: a missing date
// becomes "now", a non-numeric amount becomes 0, and a missing category
// falls back to the sheet's kind. An unparsable date keeps its raw text
// so the aggregation engine can drop just that row.
func (im *Importer) canonicalize(raw rawRow, isIncome bool) store.Record {
	rec := store.Record{
		Vendor:   strings.TrimSpace(raw.vendor),
		Category: strings.TrimSpace(raw.category),
	}
	if rec.Category == "" {
		if isIncome {
			rec.Category = transaction.CategoryIncome
		} else {
			rec.Category = transaction.CategoryExpense
		}
	}

	switch dateStr := strings.TrimSpace(raw.date); {
	case dateStr == "":
		rec.Date = im.now().UTC().Format(time.RFC3339)
	default:
		if t, ok := parseImportDate(dateStr); ok {
			rec.Date = t.UTC().Format(time.RFC3339)
		} else {
			rec.Date = dateStr
		}
	}

	amount, err := decimal.NewFromString(normalizeAmount(raw.amount))
	if err != nil || amount.IsNegative() {
		amount = decimal.Zero
	}
	rec.SetAmount(amount)
	return rec
}

type columnMap struct {
	date, category, vendor, amount int
}

// mapColumns resolves header aliases once per sheet.
func mapColumns(headers []string) columnMap {
	cm := columnMap{date: -1, category: -1, vendor: -1, amount: -1}
	find := func(aliases []string) int {
		for _, alias := range aliases {
			for i, h := range headers {
				if strings.TrimSpace(h) == alias {
					return i
				}
			}
		}
		return -1
	}
	cm.date = find(dateAliases)
	cm.category = find(categoryAliases)
	cm.vendor = find(vendorAliases)
	cm.amount = find(amountAliases)
	return cm
}

func (cm columnMap) value(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseImportDate(s string) (time.Time, bool) {
	for _, layout := range importDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	return s
}
