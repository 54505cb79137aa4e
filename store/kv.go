// Package store persists the front-desk collections. Every collection is one
// JSON array stored under a fixed key of a pluggable key-value backend.
package store

import (
	"context"
)

// KV is the raw key-value contract the collections are built on.
type KV interface {
	// Get returns the value stored under key; found is false if nothing is stored.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
	// Atomic runs fn against a view whose writes are applied together or not at all.
	Atomic(ctx context.Context, fn func(KV) error) error
}

type readFunc func(ctx context.Context, key string) ([]byte, bool, error)

type stagedWrite struct {
	value   []byte
	deleted bool
}

// stagedKV buffers writes over a read function. Backends without native
// transactions use it to implement Atomic and then commit the buffer.
type stagedKV struct {
	read   readFunc
	writes map[string]stagedWrite
	order  []string
}

func newStagedKV(read readFunc) *stagedKV {
	return &stagedKV{read: read, writes: make(map[string]stagedWrite)}
}

func (s *stagedKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if w, ok := s.writes[key]; ok {
		if w.deleted {
			return nil, false, nil
		}
		return cloneBytes(w.value), true, nil
	}
	return s.read(ctx, key)
}

func (s *stagedKV) Set(_ context.Context, key string, value []byte) error {
	s.stage(key, stagedWrite{value: cloneBytes(value)})
	return nil
}

func (s *stagedKV) Delete(_ context.Context, key string) error {
	s.stage(key, stagedWrite{deleted: true})
	return nil
}

// Atomic on an already staged view just joins the outer unit.
func (s *stagedKV) Atomic(_ context.Context, fn func(KV) error) error {
	return fn(s)
}

func (s *stagedKV) stage(key string, w stagedWrite) {
	if _, seen := s.writes[key]; !seen {
		s.order = append(s.order, key)
	}
	s.writes[key] = w
}

// each visits staged writes in first-write order.
func (s *stagedKV) each(fn func(key string, w stagedWrite)) {
	for _, key := range s.order {
		fn(key, s.writes[key])
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
