// Package store provides the local record store the budget core reads
// from and appends to. Collections are whole JSON documents identified by
// fixed names; reads never fail the caller; missing or corrupt data is
// treated as an empty collection.
package store

import "context"

// Collection names. These match the keys the dashboard has always used,
// so existing data files keep working.
const (
	CollectionExpenses  = "mobileExpenses"
	CollectionIncome    = "mobileIncome"
	CollectionRecurring = "recurringExpenses"
)

// Store is a key-value record store with wholesale collection writes.
// There are no cross-collection transactions.
type Store interface {
	// Get returns the raw JSON document for a collection, or nil when the
	// collection is missing. Backend read errors also yield nil; corrupt
	// data is recovered locally, never surfaced.
	Get(ctx context.Context, collection string) []byte

	// Put overwrites a collection wholesale.
	Put(ctx context.Context, collection string, data []byte) error

	// Delete removes a collection entirely.
	Delete(ctx context.Context, collection string) error

	Close() error
}

// Load reads and decodes a collection into records. Any failure, whether
// a missing collection or corrupt JSON, yields an empty slice.
func Load(ctx context.Context, s Store, collection string) []Record {
	return decodeRecords(s.Get(ctx, collection))
}

// Save encodes and overwrites a collection.
func Save(ctx context.Context, s Store, collection string, records []Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return s.Put(ctx, collection, data)
}

// Append loads a collection, appends the given records, and writes it
// back. Corrupt existing data is replaced rather than propagated.
func Append(ctx context.Context, s Store, collection string, records ...Record) error {
	existing := Load(ctx, s, collection)
	return Save(ctx, s, collection, append(existing, records...))
}
