package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Table is one collection: a JSON array of T stored under a single key.
// Every write rewrites the whole array.
type Table[T any, K comparable] struct {
	kv   KV
	key  string
	id   func(T) K
	seed func() []T
}

// List returns the records in insertion order. An uninitialised collection is
// empty, unless the table has a seed, in which case the seed is persisted and returned.
func (t Table[T, K]) List(ctx context.Context) ([]T, error) {
	raw, found, err := t.kv.Get(ctx, t.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", t.key, err)
	}
	if !found {
		if t.seed == nil {
			return []T{}, nil
		}
		items := t.seed()
		if err := t.write(ctx, items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (t Table[T, K]) Get(ctx context.Context, id K) (T, bool, error) {
	var zero T
	items, err := t.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if t.id(item) == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Upsert replaces the record with the same identity in place, or appends it.
func (t Table[T, K]) Upsert(ctx context.Context, rec T) error {
	items, err := t.List(ctx)
	if err != nil {
		return err
	}
	id := t.id(rec)
	replaced := false
	for i := range items {
		if t.id(items[i]) == id {
			items[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, rec)
	}
	return t.write(ctx, items)
}

func (t Table[T, K]) Delete(ctx context.Context, id K) error {
	items, err := t.List(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if t.id(item) != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return t.write(ctx, kept)
}

// Clear leaves an empty collection behind. A seeded table is not re-seeded afterwards.
func (t Table[T, K]) Clear(ctx context.Context) error {
	return t.write(ctx, []T{})
}

func (t Table[T, K]) write(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.key, err)
	}
	if err := t.kv.Set(ctx, t.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", t.key, err)
	}
	return nil
}
