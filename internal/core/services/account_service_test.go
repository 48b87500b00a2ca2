package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/pkg/pagination"
)

// countingMedium is an in-memory medium that counts reads
type countingMedium struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func (m *countingMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *countingMedium) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *countingMedium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *countingMedium) resetGets() {
	m.mu.Lock()
	m.gets = 0
	m.mu.Unlock()
}

func TestListRowsLoadsEachCollectionOnce(t *testing.T) {
	ctx := context.Background()
	m := &countingMedium{data: map[string][]byte{}}
	svc := newTestServicesOn(t, store.New(m), 10)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.events.now = func() time.Time { return base }

	var ids []string
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		ids = append(ids, mustCreateClient(t, svc, email).ID)
	}
	if _, err := svc.stamps.AddStamp(ctx, ids[0], 10); err != nil {
		t.Fatalf("add stamp: %v", err)
	}
	later := base.Add(time.Hour)
	svc.events.now = func() time.Time { return later }
	if _, err := svc.events.RecordPurchase(ctx, ids[0]); err != nil {
		t.Fatalf("record: %v", err)
	}

	m.resetGets()
	rows, total := svc.accounts.ListRows(ctx, pagination.NewParams(1, 20))

	// clients, stamps and events are read once each
	if m.gets != 3 {
		t.Fatalf("expected 3 medium reads, got %d", m.gets)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d of %d", len(rows), total)
	}

	first := rows[len(rows)-1]
	if first.ID != ids[0] {
		t.Fatalf("expected oldest client last, got %s", first.ID)
	}
	if first.Progress != 1 || first.Threshold != 10 {
		t.Fatalf("expected progress 1/10, got %d/%d", first.Progress, first.Threshold)
	}
	if !first.LastActivity.Equal(later) {
		t.Fatalf("expected last activity %v, got %v", later, first.LastActivity)
	}
	if rows[0].Progress != 0 || !rows[0].LastActivity.Equal(base) {
		t.Fatalf("unexpected row for newest client: %+v", rows[0])
	}
}

func TestListRowsPastLastPage(t *testing.T) {
	svc := newTestServices(t, 10)
	mustCreateClient(t, svc, "a@x.com")

	rows, total := svc.accounts.ListRows(context.Background(), pagination.NewParams(5, 20))
	if total != 1 || rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty page of 1 total, got %d rows of %d", len(rows), total)
	}
}
