package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTime(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
		ok   bool
	}{
		{"rfc3339", "2025-01-05T14:20:00Z", time.Date(2025, 1, 5, 14, 20, 0, 0, time.UTC), true},
		{"date only", "2025-01-05", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"slash date", "2025/01/05", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"day first", "05/01/2025", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday-ish", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Record{Date: tt.date}.Time()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %s", got)
			}
		})
	}
}

func TestRecordDecimal(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
		ok     bool
	}{
		{"number", "12.500", "12.5", true},
		{"integer", "7", "7", true},
		{"numeric string", `"3.300"`, "3.3", true},
		{"padded string", `" 4.5 "`, "4.5", true},
		{"missing", "", "", false},
		{"non numeric string", `"abc"`, "", false},
		{"null", "null", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Amount: json.RawMessage(tt.amount)}
			got, ok := r.Decimal()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
			}
		})
	}
}

func TestRecordSetAmountRoundTrip(t *testing.T) {
	var r Record
	r.SetAmount(decimal.RequireFromString("12.500"))
	got, ok := r.Decimal()
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.RequireFromString("12.5")))
}

func testStoreBehavior(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("missing collection reads nil", func(t *testing.T) {
		assert.Nil(t, st.Get(ctx, CollectionExpenses))
	})

	t.Run("load of missing collection is empty", func(t *testing.T) {
		assert.Empty(t, Load(ctx, st, CollectionExpenses))
	})

	t.Run("put then get round trips", func(t *testing.T) {
		require.NoError(t, st.Put(ctx, CollectionExpenses, []byte(`[{"vendor":"LULU","amount":5}]`)))
		records := Load(ctx, st, CollectionExpenses)
		require.Len(t, records, 1)
		assert.Equal(t, "LULU", records[0].Vendor)
	})

	t.Run("corrupt document loads as empty", func(t *testing.T) {
		require.NoError(t, st.Put(ctx, CollectionIncome, []byte(`{not json`)))
		assert.Empty(t, Load(ctx, st, CollectionIncome))
	})

	t.Run("append preserves existing rows", func(t *testing.T) {
		require.NoError(t, Append(ctx, st, CollectionExpenses, Record{Vendor: "SHELL"}))
		records := Load(ctx, st, CollectionExpenses)
		require.Len(t, records, 2)
		assert.Equal(t, "SHELL", records[1].Vendor)
	})

	t.Run("append onto corrupt document starts fresh", func(t *testing.T) {
		require.NoError(t, st.Put(ctx, CollectionRecurring, []byte(`oops`)))
		require.NoError(t, Append(ctx, st, CollectionRecurring, Record{Name: "Rent"}))
		records := Load(ctx, st, CollectionRecurring)
		require.Len(t, records, 1)
	})

	t.Run("delete removes the collection", func(t *testing.T) {
		require.NoError(t, st.Delete(ctx, CollectionExpenses))
		assert.Nil(t, st.Get(ctx, CollectionExpenses))
	})

	t.Run("delete of missing collection is fine", func(t *testing.T) {
		assert.NoError(t, st.Delete(ctx, "neverExisted"))
	})
}

func TestMemoryStore(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	testStoreBehavior(t, st)
}

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer st.Close()
	testStoreBehavior(t, st)
}

func TestSQLiteStore(t *testing.T) {
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "mizania.db"))
	require.NoError(t, err)
	defer st.Close()
	testStoreBehavior(t, st)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, Save(ctx, first, CollectionExpenses, []Record{{Vendor: "LULU"}}))
	require.NoError(t, first.Close())

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	records := Load(ctx, second, CollectionExpenses)
	require.Len(t, records, 1)
	assert.Equal(t, "LULU", records[0].Vendor)
}
