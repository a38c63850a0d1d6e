package spreadsheet

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/alharthy/mizania/internal/store"
)

// DefaultExportName is the workbook filename the dashboard has always
// produced.
const DefaultExportName = "Budget_Export.xlsx"

// Fixed column sets per exported sheet.
var (
	expenseHeaders   = []string{"Date", "Vendor", "Category", "Amount", "Receipt"}
	incomeHeaders    = []string{"Date", "Source", "Category", "Amount"}
	recurringHeaders = []string{"Name", "Category", "Amount"}
)

// WriteWorkbook writes the three persisted collections as a single
// workbook with Expenses, Income, and Recurring sheets.
func WriteWorkbook(w io.Writer, expenses, income, recurring []store.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetExpenses); err != nil {
		return fmt.Errorf("spreadsheet: naming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetIncome); err != nil {
		return fmt.Errorf("spreadsheet: adding sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetRecurring); err != nil {
		return fmt.Errorf("spreadsheet: adding sheet: %w", err)
	}

	if err := fillSheet(f, SheetExpenses, expenseHeaders, expenses, expenseCells); err != nil {
		return err
	}
	if err := fillSheet(f, SheetIncome, incomeHeaders, income, incomeCells); err != nil {
		return err
	}
	if err := fillSheet(f, SheetRecurring, recurringHeaders, recurring, recurringCells); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("spreadsheet: writing workbook: %w", err)
	}
	return nil
}

func expenseCells(r store.Record) []any {
	return []any{r.Date, r.Vendor, r.Category, exportAmount(r), r.Receipt}
}

func incomeCells(r store.Record) []any {
	return []any{r.Date, r.Vendor, r.Category, exportAmount(r)}
}

func recurringCells(r store.Record) []any {
	return []any{r.Name, r.Category, exportAmount(r)}
}

func fillSheet(f *excelize.File, sheet string, headers []string, records []store.Record, cells func(store.Record) []any) error {
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("spreadsheet: writing header: %w", err)
		}
	}
	for i, rec := range records {
		for col, v := range cells(rec) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("spreadsheet: writing row %d: %w", i+2, err)
			}
		}
	}
	return nil
}

// exportAmount renders a record amount as a number, with 0 standing in
// for anything unparsable so the workbook always opens cleanly.
func exportAmount(r store.Record) float64 {
	d, ok := r.Decimal()
	if !ok {
		d = decimal.Zero
	}
	f, _ := d.Float64()
	return f
}
