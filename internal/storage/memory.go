package storage

import "sync"

// MemoryStore is an in-process KV with the same quota semantics as
// SQLiteStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
	quota   int64
}

func NewMemory(quota int64) *MemoryStore {
	return &MemoryStore{entries: make(map[string]string), quota: quota}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		var used int64
		for k, v := range m.entries {
			if k != key {
				used += entrySize(k, v)
			}
		}
		if used+entrySize(key, value) > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.entries[key] = value
	return nil
}

func (m *MemoryStore) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
