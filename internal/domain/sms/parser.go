// Package sms extracts structured transactions from pasted bank
// notification text. Bank SMS formats are loosely structured, so the
// parser runs a fixed pipeline of pattern stages and degrades every
// optional field to a safe default instead of failing: only a missing
// amount or an empty message rejects the whole text.
package sms

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"

	"github.com/alharthy/mizania/internal/domain/transaction"
	"github.com/alharthy/mizania/pkg/money"
)

var (
	// ErrEmptyMessage is returned when the text normalizes to nothing.
	ErrEmptyMessage = errors.New("sms: empty message")
	// ErrNoAmount is returned when no currency-tagged amount is present.
	// The amount is the only mandatory field.
	ErrNoAmount = errors.New("sms: no amount found")
)

// incomeKeywords mark a message as money coming in; anything else is an
// expense. The Arabic entries cover the bilingual notifications Omani
// banks send.
var incomeKeywords = []string{"credit", "credited", "deposit", "تم إضافة", "إيداع"}

// Parser converts raw SMS text into a transaction candidate. All patterns
// are compiled once; the zero value is not usable, call NewParser.
type Parser struct {
	income  *ahocorasick.Matcher
	amount  *regexp.Regexp
	vendors []*regexp.Regexp
	onDate  *regexp.Regexp
	ymdDate *regexp.Regexp
	dateCut *regexp.Regexp
	now     func() time.Time
}

// NewParser creates a parser with the default pattern set.
func NewParser() *Parser {
	keywords := make([][]byte, len(incomeKeywords))
	for i, w := range incomeKeywords {
		keywords[i] = []byte(strings.ToLower(w))
	}

	return &Parser{
		income: ahocorasick.NewMatcher(keywords),
		amount: regexp.MustCompile(`(?i)` + money.Code + `\s*([0-9]+(?:\.[0-9]+)?)`),
		// Label words need \b so "TALABAT" does not match the "at" rule.
		vendors: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bat\s+([A-Za-z0-9 &-]+)`),
			regexp.MustCompile(`(?i)\bPOS\s+([A-Za-z0-9 &-]+)`),
			regexp.MustCompile(`(?i)\bATM\s+([A-Za-z0-9 &-]+)`),
			regexp.MustCompile(`(?i)\b(?:to|for)\s+([A-Za-z0-9 &-]+)`),
		},
		onDate:  regexp.MustCompile(`(?i)on\s*\.?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*(\d{2}:\d{2}:\d{2})?`),
		ymdDate: regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2})`),
		dateCut: regexp.MustCompile(`(?i)\s+on\s.*$`),
		now:     time.Now,
	}
}

// Parse runs the extraction pipeline over a single message. The returned
// transaction has no Category; the caller assigns one for its source.
func (p *Parser) Parse(raw string) (transaction.Transaction, error) {
	clean := normalize(raw)
	if clean == "" {
		return transaction.Transaction{}, ErrEmptyMessage
	}

	amount, ok := p.extractAmount(clean)
	if !ok {
		return transaction.Transaction{}, ErrNoAmount
	}

	return transaction.Transaction{
		Kind:   p.classify(clean),
		Amount: amount,
		Vendor: p.extractVendor(clean),
		Date:   p.extractDate(clean),
	}, nil
}

// normalize collapses all whitespace runs, including line breaks, to
// single spaces and trims the ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// classify defaults to expense; any income keyword flips it.
func (p *Parser) classify(clean string) transaction.Kind {
	if len(p.income.Match([]byte(strings.ToLower(clean)))) > 0 {
		return transaction.KindIncome
	}
	return transaction.KindExpense
}

// extractAmount finds the first currency-tagged numeric token.
func (p *Parser) extractAmount(clean string) (decimal.Decimal, bool) {
	m := p.amount.FindStringSubmatch(clean)
	if m == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// extractVendor tries the label patterns in order and returns the first
// capture, with any trailing "on <date>" tail removed. No match yields
// an empty vendor, never a rejection.
func (p *Parser) extractVendor(clean string) string {
	for _, re := range p.vendors {
		if m := re.FindStringSubmatch(clean); m != nil {
			return strings.TrimSpace(p.dateCut.ReplaceAllString(m[1], ""))
		}
	}
	return ""
}

// extractDate tries the "on D/M/Y [time]" form, then a bare Y/M/D form,
// then falls back to the current time. An extracted date that does not
// form a real calendar day falls through to the next stage.
func (p *Parser) extractDate(clean string) time.Time {
	if m := p.onDate.FindStringSubmatch(clean); m != nil {
		if t, ok := buildDate(m[1], m[2]); ok {
			return t
		}
	}
	if m := p.ymdDate.FindStringSubmatch(clean); m != nil {
		if t, ok := buildDate(m[1], ""); ok {
			return t
		}
	}
	return p.now().UTC()
}

// buildDate assembles a timestamp from a separated date token and an
// optional HH:MM:SS token. A 4-digit first component means year-first
// ordering, otherwise day-first; 2-digit years resolve to the 2000s.
func buildDate(datePart, timePart string) (time.Time, bool) {
	sep := "/"
	if !strings.Contains(datePart, sep) {
		sep = "-"
	}
	parts := strings.Split(datePart, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	c, errC := strconv.Atoi(parts[2])
	if errA != nil || errB != nil || errC != nil {
		return time.Time{}, false
	}

	var year, month, day int
	if len(parts[0]) == 4 {
		year, month, day = a, b, c
	} else {
		day, month, year = a, b, c
	}
	if year < 100 {
		year += 2000
	}

	var hour, min, sec int
	if timePart != "" {
		clock, err := time.Parse("15:04:05", timePart)
		if err != nil {
			return time.Time{}, false
		}
		hour, min, sec = clock.Clock()
	}

	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC)
	// time.Date normalizes out-of-range components (Feb 31 becomes Mar 3);
	// a changed component means the token was not a real calendar date.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
