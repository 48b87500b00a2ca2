// Package store persists whole collections as JSON arrays on a durable
// medium, falling back to process memory whenever the medium fails its probe.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"stampcard/internal/adapters/persistence/medium"
)

// probeKey is written then deleted to check the medium is usable
const probeKey = "__probe__"

// Store holds the durable medium and the in-memory fallback
type Store struct {
	medium medium.Medium

	mu       sync.Mutex
	fallback map[string][]byte
	locks    map[string]*sync.Mutex
	degraded bool
}

// New creates a store. A nil medium keeps everything in memory.
func New(m medium.Medium) *Store {
	return &Store{
		medium:   m,
		fallback: make(map[string][]byte),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Available probes the durable medium with a write and a delete.
// The result is never cached.
func (s *Store) Available(ctx context.Context) bool {
	if s.medium == nil {
		return false
	}
	err := s.medium.Put(ctx, probeKey, []byte(probeKey))
	if err == nil {
		err = s.medium.Delete(ctx, probeKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if !s.degraded {
			log.Printf("⚠️ Durable storage unavailable, using in-memory fallback: %v", err)
		}
		s.degraded = true
		return false
	}
	if s.degraded {
		log.Println("✅ Durable storage available again")
	}
	s.degraded = false
	return true
}

// Durable reports whether the store was built with a durable medium
func (s *Store) Durable() bool {
	return s.medium != nil
}

func (s *Store) read(ctx context.Context, key string) ([]byte, error) {
	if s.Available(ctx) {
		data, ok, err := s.medium.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			return nil, nil
		}
		return data, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fallback[key], nil
}

func (s *Store) write(ctx context.Context, key string, data []byte) {
	if s.Available(ctx) {
		err := s.medium.Put(ctx, key, data)
		if err == nil {
			return
		}
		log.Printf("❌ Failed to write %s, keeping it in memory: %v", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback[key] = data
}

// lock returns the per-collection mutex, held across read-modify-write cycles
func (s *Store) lock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Collection is a typed view over one logical key
type Collection[T any] struct {
	store *Store
	key   string
}

// NewCollection binds a typed collection to key
func NewCollection[T any](s *Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

// Key returns the logical storage key
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns every record in stored order. Missing, unreadable or
// unparsable data is empty.
func (c *Collection[T]) Load(ctx context.Context) []T {
	items, err := c.load(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to load %s: %v", c.key, err)
		return []T{}
	}
	return items
}

// load is Load that reports a failed medium read instead of hiding it
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.read(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("⚠️ Discarding unreadable collection %s: %v", c.key, err)
		return []T{}, nil
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Save replaces the whole collection
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	l := c.store.lock(c.key)
	l.Lock()
	defer l.Unlock()
	return c.save(ctx, items)
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	c.store.write(ctx, c.key, data)
	return nil
}

// Update runs a read-modify-write cycle under the collection lock.
// fn returns the new records and whether they should be written back.
// A failed read aborts the cycle without writing.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, bool)) error {
	l := c.store.lock(c.key)
	l.Lock()
	defer l.Unlock()

	current, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, changed := fn(current)
	if !changed {
		return nil
	}
	return c.save(ctx, items)
}
