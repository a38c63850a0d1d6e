package store

import "context"

// Memory is an in-memory Store used by tests and import previews.
type Memory struct {
	collections map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, collection string) []byte {
	return m.collections[collection]
}

func (m *Memory) Put(_ context.Context, collection string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.collections[collection] = cp
	return nil
}

func (m *Memory) Delete(_ context.Context, collection string) error {
	delete(m.collections, collection)
	return nil
}

func (m *Memory) Close() error { return nil }
