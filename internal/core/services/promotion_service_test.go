package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"stampcard/internal/config"
	"stampcard/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func TestCreatePromotionDefaults(t *testing.T) {
	svc := newTestServices(t, 10)

	p, err := svc.promotions.Create(context.Background(), PromotionInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.Title != DefaultPromotionTitle || p.Status != domain.PromotionDraft || p.Placement != domain.PlacementCard {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.Priority != DefaultPromotionPriority || p.CTALabel != DefaultCTALabel || p.CTAHref != DefaultCTAHref {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Fatalf("expected empty tags, got %v", p.Tags)
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", p.CreatedAt, p.UpdatedAt)
	}
}

func TestCreatePromotionKeepsZeroPriority(t *testing.T) {
	svc := newTestServices(t, 10)

	p, err := svc.promotions.Create(context.Background(), PromotionInput{Priority: intPtr(0)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Priority != 0 {
		t.Fatalf("expected explicit priority 0, got %d", p.Priority)
	}
}

func TestCreatePromotionValidation(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)

	tests := []struct {
		name  string
		input PromotionInput
		want  error
	}{
		{"unknown status", PromotionInput{Status: "live"}, domain.ErrInvalidStatus},
		{"unknown placement", PromotionInput{Placement: "popup"}, domain.ErrInvalidPlacement},
		{"end before start", PromotionInput{StartAt: &later, EndAt: &now}, domain.ErrInvalidSchedule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t, 10)
			_, err := svc.promotions.Create(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPromotionVisibilityWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	scheduled := domain.Promotion{Status: domain.PromotionScheduled, StartAt: &start, EndAt: &end}
	tests := []struct {
		name  string
		promo domain.Promotion
		at    time.Time
		want  bool
	}{
		{"scheduled inside window", scheduled, now, true},
		{"scheduled at start", scheduled, start, true},
		{"scheduled at end", scheduled, end, true},
		{"scheduled after window", scheduled, now.Add(2 * time.Hour), false},
		{"scheduled before window", scheduled, now.Add(-2 * time.Hour), false},
		{"scheduled open ended", domain.Promotion{Status: domain.PromotionScheduled}, now, true},
		{"scheduled only start", domain.Promotion{Status: domain.PromotionScheduled, StartAt: &end}, now, false},
		{"published ignores dates", domain.Promotion{Status: domain.PromotionPublished, EndAt: &start}, now, true},
		{"draft never visible", domain.Promotion{Status: domain.PromotionDraft}, now, false},
		{"expired never visible", domain.Promotion{Status: domain.PromotionExpired, StartAt: &start, EndAt: &end}, now, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.promo.IsVisible(tt.at); got != tt.want {
				t.Fatalf("expected visible=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestVisibleDoesNotWriteBack(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	start := time.Now().Add(-2 * time.Hour)
	end := time.Now().Add(-time.Hour)
	p, err := svc.promotions.Create(ctx, PromotionInput{Status: domain.PromotionScheduled, StartAt: &start, EndAt: &end})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := svc.promotions.Visible(ctx, time.Now()); len(got) != 0 {
		t.Fatalf("expected nothing visible, got %d", len(got))
	}
	stored, _ := svc.promotions.Get(ctx, p.ID)
	if stored.Status != domain.PromotionScheduled {
		t.Fatalf("expected status to stay scheduled, got %s", stored.Status)
	}
}

func TestPromotionOrdering(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	for _, prio := range []int{10, 90, 50} {
		if _, err := svc.promotions.Create(ctx, PromotionInput{
			Status:   domain.PromotionPublished,
			Priority: intPtr(prio),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	want := []int{90, 50, 10}
	for name, got := range map[string][]*domain.Promotion{
		"list":    svc.promotions.List(ctx),
		"visible": svc.promotions.Visible(ctx, time.Now()),
	} {
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d promotions, got %d", name, len(want), len(got))
		}
		for i := range want {
			if got[i].Priority != want[i] {
				t.Fatalf("%s: expected priority %d at %d, got %d", name, want[i], i, got[i].Priority)
			}
		}
	}
}

func TestPromotionOrderingIsStable(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		p, err := svc.promotions.Create(ctx, PromotionInput{Title: title})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, p.ID)
	}

	got := svc.promotions.List(ctx)
	for i := range ids {
		if got[i].ID != ids[i] {
			t.Fatalf("expected insertion order for equal priorities, got %s at %d", got[i].Title, i)
		}
	}
}

func TestVisibleByPlacement(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	for _, pl := range []domain.PromotionPlacement{domain.PlacementHero, domain.PlacementCard, domain.PlacementCard} {
		if _, err := svc.promotions.Create(ctx, PromotionInput{Status: domain.PromotionPublished, Placement: pl}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if got := svc.promotions.VisibleByPlacement(ctx, time.Now(), domain.PlacementCard); len(got) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(got))
	}
	if got := svc.promotions.VisibleByPlacement(ctx, time.Now(), ""); len(got) != 3 {
		t.Fatalf("expected all 3, got %d", len(got))
	}
}

func TestSavePromotion(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	created, err := svc.promotions.Create(ctx, PromotionInput{Title: "Summer"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	later := created.UpdatedAt.Add(time.Minute)
	svc.promotions.now = func() time.Time { return later }

	replacement := *created
	replacement.Title = "Autumn"
	replacement.Status = domain.PromotionPublished
	replacement.CreatedAt = time.Time{}

	saved, found, err := svc.promotions.Save(ctx, replacement)
	if err != nil || !found {
		t.Fatalf("save: found=%v err=%v", found, err)
	}
	if saved.Title != "Autumn" || saved.Status != domain.PromotionPublished {
		t.Fatalf("expected replaced fields, got %+v", saved)
	}
	if !saved.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected createdAt kept, got %v", saved.CreatedAt)
	}
	if !saved.UpdatedAt.Equal(later.UTC()) {
		t.Fatalf("expected updatedAt %v, got %v", later, saved.UpdatedAt)
	}

	unknown := replacement
	unknown.ID = "missing"
	if _, found, err := svc.promotions.Save(ctx, unknown); err != nil || found {
		t.Fatalf("expected not found for unknown id, got found=%v err=%v", found, err)
	}
	if n := len(svc.promotions.List(ctx)); n != 1 {
		t.Fatalf("expected save of unknown id to add nothing, got %d", n)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	p, err := svc.promotions.Create(ctx, PromotionInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, found, err := svc.promotions.UpdateStatus(ctx, p.ID, domain.PromotionPublished)
	if err != nil || !found || updated.Status != domain.PromotionPublished {
		t.Fatalf("expected published, got %+v found=%v err=%v", updated, found, err)
	}
	if _, found, err := svc.promotions.UpdateStatus(ctx, "missing", domain.PromotionDraft); err != nil || found {
		t.Fatalf("expected not found, got found=%v err=%v", found, err)
	}
	if _, _, err := svc.promotions.UpdateStatus(ctx, p.ID, "live"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestRemovePromotion(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	p, err := svc.promotions.Create(ctx, PromotionInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.promotions.Remove(ctx, p.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.promotions.Remove(ctx, p.ID); err != nil {
		t.Fatalf("remove of absent id should not fail: %v", err)
	}
	if _, ok := svc.promotions.Get(ctx, p.ID); ok {
		t.Fatal("expected promotion gone")
	}
}

func TestSeedOnlyFillsEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, 10)

	seed := []config.PromotionSeed{
		{ID: "welcome", Title: "Welcome", Status: "published", Priority: intPtr(80), Placement: "hero"},
		{ID: "coffee", Title: "Coffee"},
		{ID: "last", Title: "Last", Priority: intPtr(0)},
	}

	added, err := svc.promotions.Seed(ctx, seed)
	if err != nil || added != 3 {
		t.Fatalf("expected 3 seeded, got %d (err=%v)", added, err)
	}
	coffee, ok := svc.promotions.Get(ctx, "coffee")
	if !ok || coffee.Status != domain.PromotionDraft || coffee.Placement != domain.PlacementCard {
		t.Fatalf("expected defaults on seeded promotion, got %+v", coffee)
	}
	if coffee.Priority != DefaultPromotionPriority {
		t.Fatalf("expected default priority %d without one in the seed, got %d", DefaultPromotionPriority, coffee.Priority)
	}
	if welcome, _ := svc.promotions.Get(ctx, "welcome"); welcome.Priority != 80 {
		t.Fatalf("expected seeded priority 80, got %d", welcome.Priority)
	}
	if last, _ := svc.promotions.Get(ctx, "last"); last.Priority != 0 {
		t.Fatalf("expected explicit priority 0 kept, got %d", last.Priority)
	}

	added, err = svc.promotions.Seed(ctx, seed)
	if err != nil || added != 0 {
		t.Fatalf("expected no reseed, got %d (err=%v)", added, err)
	}
}
