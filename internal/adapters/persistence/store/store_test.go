package store

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeMedium struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut bool
	failGet bool
	puts    int
}

func newFakeMedium() *fakeMedium {
	return &fakeMedium{data: map[string][]byte{}}
}

func (m *fakeMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, false, errors.New("connection reset")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *fakeMedium) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failPut {
		return errors.New("quota exceeded")
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *fakeMedium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *fakeMedium) setFailing(fail bool) {
	m.mu.Lock()
	m.failPut = fail
	m.mu.Unlock()
}

type record struct {
	ID string `json:"id"`
	N  int    `json:"n"`
}

func TestLoadMissingIsEmpty(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[record](New(nil), "records")

	got := c.Load(ctx)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSaveLoadMemoryOnly(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	c := NewCollection[record](s, "records")

	if s.Durable() {
		t.Fatal("expected memory-only store")
	}
	if s.Available(ctx) {
		t.Fatal("expected memory-only store to report unavailable")
	}

	want := []record{{ID: "a", N: 1}, {ID: "b", N: 2}}
	if err := c.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := c.Load(ctx)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSaveWritesDurableMedium(t *testing.T) {
	ctx := context.Background()
	m := newFakeMedium()
	s := New(m)
	c := NewCollection[record](s, "records")

	if err := c.Save(ctx, []record{{ID: "a"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := m.data["records"]; !ok {
		t.Fatal("expected collection on durable medium")
	}
	if _, ok := m.data[probeKey]; ok {
		t.Fatal("expected probe key to be removed")
	}

	// A second store over the same medium sees the data
	again := NewCollection[record](New(m), "records")
	if got := again.Load(ctx); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected persisted record, got %v", got)
	}
}

func TestFallbackWhenProbeFails(t *testing.T) {
	ctx := context.Background()
	m := newFakeMedium()
	m.setFailing(true)
	s := New(m)
	c := NewCollection[record](s, "records")

	if s.Available(ctx) {
		t.Fatal("expected probe to fail")
	}
	if err := c.Save(ctx, []record{{ID: "mem"}}); err != nil {
		t.Fatalf("save should not fail on a broken medium: %v", err)
	}
	if got := c.Load(ctx); len(got) != 1 || got[0].ID != "mem" {
		t.Fatalf("expected fallback record, got %v", got)
	}
	if _, ok := m.data["records"]; ok {
		t.Fatal("expected nothing written to the failing medium")
	}
}

func TestProbeIsNotCached(t *testing.T) {
	ctx := context.Background()
	m := newFakeMedium()
	s := New(m)

	if !s.Available(ctx) {
		t.Fatal("expected medium available")
	}
	m.setFailing(true)
	if s.Available(ctx) {
		t.Fatal("expected probe to notice the failure")
	}
	m.setFailing(false)
	if !s.Available(ctx) {
		t.Fatal("expected probe to notice the recovery")
	}
}

func TestUnparsableDataLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	m := newFakeMedium()
	m.data["records"] = []byte("{not json")
	c := NewCollection[record](New(m), "records")

	if got := c.Load(ctx); len(got) != 0 {
		t.Fatalf("expected empty collection, got %v", got)
	}
}

func TestUpdateSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	m := newFakeMedium()
	c := NewCollection[record](New(m), "records")

	err := c.Update(ctx, func(items []record) ([]record, bool) {
		return items, false
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := m.data["records"]; ok {
		t.Fatal("expected no write for an unchanged update")
	}
}

func TestUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[record](New(newFakeMedium()), "counter")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Update(ctx, func(items []record) ([]record, bool) {
				if len(items) == 0 {
					return []record{{ID: "c", N: 1}}, true
				}
				items[0].N++
				return items, true
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got := c.Load(ctx)
	if len(got) != 1 || got[0].N != workers {
		t.Fatalf("expected counter %d, got %v", workers, got)
	}
}

func TestUpdateAbortsOnFailedRead(t *testing.T) {
	ctx := context.Background()
	m := newFakeMedium()
	c := NewCollection[record](New(m), "records")

	if err := c.Save(ctx, []record{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	m.mu.Lock()
	m.failGet = true
	m.mu.Unlock()

	called := false
	err := c.Update(ctx, func(items []record) ([]record, bool) {
		called = true
		return append(items, record{ID: "c"}), true
	})
	if err == nil {
		t.Fatal("expected update to fail when the read fails")
	}
	if called {
		t.Fatal("expected update function not to run on a failed read")
	}
	if got := c.Load(ctx); len(got) != 0 {
		t.Fatalf("expected failed read to load empty, got %d", len(got))
	}

	m.mu.Lock()
	m.failGet = false
	m.mu.Unlock()

	if got := c.Load(ctx); len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("expected stored collection untouched, got %+v", got)
	}
}
