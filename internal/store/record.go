package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the flat JSON shape persisted per entry. It is deliberately
// permissive: Date stays a string and Amount stays raw JSON, so one
// malformed row degrades only that row during aggregation instead of
// corrupting the whole collection.
type Record struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name,omitempty"`
	Date     string          `json:"date,omitempty"`
	Vendor   string          `json:"vendor,omitempty"`
	Category string          `json:"category,omitempty"`
	Amount   json.RawMessage `json:"amount,omitempty"`
	Receipt  string          `json:"receipt,omitempty"`
}

// dateFormats are tried in order when resolving a stored date. RFC3339 is
// what the tracker itself writes; the rest cover rows imported from
// spreadsheets that kept their original cell text.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
}

// Time resolves the record date. The second return is false when the
// value is absent or not parsable as any known format.
func (r Record) Time() (time.Time, bool) {
	s := strings.TrimSpace(r.Date)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Decimal resolves the record amount. JSON numbers and numeric strings
// both count; anything else is not a number.
func (r Record) Decimal() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(string(r.Amount))
	if raw == "" {
		return decimal.Zero, false
	}
	if len(raw) >= 2 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(r.Amount, &s); err != nil {
			return decimal.Zero, false
		}
		raw = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// SetAmount stores a decimal amount as a plain JSON number.
func (r *Record) SetAmount(d decimal.Decimal) {
	r.Amount = json.RawMessage(d.String())
}

func decodeRecords(data []byte) []Record {
	if len(data) == 0 {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return []Record{}
	}
	return records
}

func encodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(records)
}
