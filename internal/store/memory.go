package store

import (
	"context"
	"sync"
)

// Memory keeps tables in process memory. It is the default backend and the
// test double for everything built on top of the store.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, table, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.tables[table][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), item...), nil
}

func (m *Memory) Put(_ context.Context, table, key string, item []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tables[table] == nil {
		m.tables[table] = make(map[string][]byte)
	}
	m.tables[table][key] = append([]byte(nil), item...)
	return nil
}

func (m *Memory) Delete(_ context.Context, table, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[table][key]; !ok {
		return ErrNotFound
	}
	delete(m.tables[table], key)
	return nil
}

func (m *Memory) Scan(_ context.Context, table string, match func(item []byte) bool) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([][]byte, 0, len(m.tables[table]))
	for _, item := range m.tables[table] {
		if match != nil && !match(item) {
			continue
		}
		items = append(items, append([]byte(nil), item...))
	}
	return items, nil
}
