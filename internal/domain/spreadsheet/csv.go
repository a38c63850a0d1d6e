package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/alharthy/mizania/internal/store"
)

// csvRow mirrors one CSV line. gocsv matches fields by header name, so
// each recognized alias gets its own field and the values are coalesced
// afterwards.
type csvRow struct {
	Date  string `csv:"Date"`
	DateL string `csv:"date"`
	DateU string `csv:"DATE"`

	Category  string `csv:"Category"`
	CategoryL string `csv:"category"`

	Vendor      string `csv:"Vendor"`
	VendorL     string `csv:"vendor"`
	Description string `csv:"Description"`

	AmountOMR string `csv:"Amount (OMR)"`
	Amount    string `csv:"Amount"`
	AmountL   string `csv:"amount"`
}

// ImportCSV reads a single-kind CSV file using the same column aliases
// as the workbook import and returns canonical overlay records.
func (im *Importer) ImportCSV(r io.Reader, isIncome bool) ([]store.Record, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("spreadsheet: parsing CSV: %w", err)
	}

	records := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		raw := rawRow{
			date:     coalesce(row.Date, row.DateL, row.DateU),
			category: coalesce(row.Category, row.CategoryL),
			vendor:   coalesce(row.Vendor, row.VendorL, row.Description),
			amount:   coalesce(row.AmountOMR, row.Amount, row.AmountL),
		}
		if raw.date == "" && raw.vendor == "" && raw.amount == "" {
			continue
		}
		records = append(records, im.canonicalize(raw, isIncome))
	}
	return records, nil
}

// coalesce returns the first non-empty value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
