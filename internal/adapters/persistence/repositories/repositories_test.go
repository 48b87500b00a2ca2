package repositories

import (
	"context"
	"testing"
	"time"

	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/core/domain"
)

func TestClientRepositoryDeleteKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository(store.New(nil))

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, &domain.Client{ID: id, Email: id + "@x.com"}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	found, err := repo.Delete(ctx, "b")
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	found, err = repo.Delete(ctx, "b")
	if err != nil || found {
		t.Fatalf("second delete: found=%v err=%v", found, err)
	}

	got := repo.List(ctx)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("expected [a c], got %v", ids(got))
	}
}

func TestEventRepositoryFiltersByClient(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(store.New(nil))

	for i, owner := range []string{"a", "b", "a"} {
		e := &domain.Event{ID: string(rune('1' + i)), ClientID: owner, Kind: domain.EventPurchase}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if got := repo.ListByClientID(ctx, "a"); len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("expected events 1 and 3 for a, got %d events", len(got))
	}

	removed, err := repo.DeleteByClientID(ctx, "a")
	if err != nil || removed != 2 {
		t.Fatalf("expected 2 removed, got %d (err=%v)", removed, err)
	}
	if got := repo.List(ctx); len(got) != 1 || got[0].ClientID != "b" {
		t.Fatalf("expected only b's event left, got %d events", len(got))
	}
}

func TestStampRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewStampRepository(store.New(nil))

	err := repo.Update(ctx, "a", func(current *domain.StampState) *domain.StampState {
		if current != nil {
			t.Fatal("expected no state yet")
		}
		return &domain.StampState{ClientID: "a", Progress: 1, Threshold: 3}
	})
	if err != nil {
		t.Fatalf("create state: %v", err)
	}

	err = repo.Update(ctx, "a", func(current *domain.StampState) *domain.StampState {
		next := *current
		next.Progress++
		return &next
	})
	if err != nil {
		t.Fatalf("update state: %v", err)
	}

	// nil leaves the stored state alone
	err = repo.Update(ctx, "a", func(*domain.StampState) *domain.StampState { return nil })
	if err != nil {
		t.Fatalf("noop update: %v", err)
	}

	st, ok := repo.GetByClientID(ctx, "a")
	if !ok || st.Progress != 2 || st.Threshold != 3 {
		t.Fatalf("expected progress 2 of 3, got %+v", st)
	}
	if got := repo.List(ctx); len(got) != 1 {
		t.Fatalf("expected one state per client, got %d", len(got))
	}
}

func TestPromotionRepositoryModify(t *testing.T) {
	ctx := context.Background()
	repo := NewPromotionRepository(store.New(nil))

	now := time.Now().UTC()
	for _, id := range []string{"p1", "p2"} {
		if err := repo.Create(ctx, &domain.Promotion{ID: id, Title: id, CreatedAt: now}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	updated, found, err := repo.Modify(ctx, "p1", func(p *domain.Promotion) {
		p.Title = "changed"
		p.ID = "ignored"
	})
	if err != nil || !found {
		t.Fatalf("modify: found=%v err=%v", found, err)
	}
	if updated.ID != "p1" || updated.Title != "changed" {
		t.Fatalf("expected p1 retitled, got %+v", updated)
	}

	if _, found, _ := repo.Modify(ctx, "nope", func(*domain.Promotion) {}); found {
		t.Fatal("expected unknown promotion to be reported")
	}

	got := repo.List(ctx)
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("expected insertion order kept, got %d items", len(got))
	}
}

func ids(clients []*domain.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.ID
	}
	return out
}
