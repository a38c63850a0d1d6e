package money

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestDataGenerator produces realistic budget entries for tests using
// gofakeit. A fixed seed gives reproducible fixtures.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator with the given seed.
func NewTestDataGenerator(seed int64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed)}
}

// TestEntry is a generated budget entry.
type TestEntry struct {
	ID       uuid.UUID
	Date     time.Time
	Vendor   string
	Category string
	Amount   decimal.Decimal
}

var testCategories = []string{
	"Groceries", "Fuel", "Dining", "Utilities", "Housing", "Health", "Shopping",
}

// Amount returns a random non-negative OMR amount between min and max baisa.
func (g *TestDataGenerator) Amount(minBaisa, maxBaisa int64) decimal.Decimal {
	return FromBaisa(int64(g.faker.IntRange(int(minBaisa), int(maxBaisa))))
}

// Entry generates a single entry dated within the last year.
func (g *TestDataGenerator) Entry() TestEntry {
	return TestEntry{
		ID:       uuid.New(),
		Date:     g.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
		Vendor:   g.faker.Company(),
		Category: testCategories[g.faker.IntRange(0, len(testCategories)-1)],
		Amount:   g.Amount(100, 500000), // 0.100 to 500.000 OMR
	}
}

// Entries generates n entries.
func (g *TestDataGenerator) Entries(n int) []TestEntry {
	out := make([]TestEntry, n)
	for i := range out {
		out[i] = g.Entry()
	}
	return out
}
