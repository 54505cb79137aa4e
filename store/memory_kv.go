package store

import (
	"context"
	"sync"
)

// MemoryKV keeps everything in process memory. Used by tests and STORE_DRIVER=memory.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(key)
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cloneBytes(value)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Atomic holds the lock for the whole unit and applies the staged writes only
// when fn succeeds.
func (m *MemoryKV) Atomic(_ context.Context, fn func(KV) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := newStagedKV(func(_ context.Context, key string) ([]byte, bool, error) {
		return m.getLocked(key)
	})
	if err := fn(staged); err != nil {
		return err
	}
	staged.each(func(key string, w stagedWrite) {
		if w.deleted {
			delete(m.data, key)
			return
		}
		m.data[key] = w.value
	})
	return nil
}

func (m *MemoryKV) getLocked(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}
