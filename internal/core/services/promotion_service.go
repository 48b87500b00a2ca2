package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"stampcard/internal/adapters/persistence/repositories"
	"stampcard/internal/config"
	"stampcard/internal/core/domain"

	"github.com/google/uuid"
)

// PromotionService is the promotion catalog
type PromotionService struct {
	promoRepo repositories.PromotionRepository
	now       func() time.Time
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promoRepo repositories.PromotionRepository) *PromotionService {
	return &PromotionService{
		promoRepo: promoRepo,
		now:       time.Now,
	}
}

// List returns every promotion, highest priority first
func (s *PromotionService) List(ctx context.Context) []*domain.Promotion {
	return sortByPriority(s.promoRepo.List(ctx))
}

// Get gets a promotion by ID
func (s *PromotionService) Get(ctx context.Context, id string) (*domain.Promotion, bool) {
	return s.promoRepo.GetByID(ctx, id)
}

// Create stores a new promotion, filling omitted fields with defaults
func (s *PromotionService) Create(ctx context.Context, input PromotionInput) (*domain.Promotion, error) {
	now := s.now().UTC()
	promo := &domain.Promotion{
		ID:             input.ID,
		Title:          strings.TrimSpace(input.Title),
		Subtitle:       input.Subtitle,
		Description:    input.Description,
		ImageURL:       input.ImageURL,
		CTALabel:       input.CTALabel,
		CTAHref:        input.CTAHref,
		Status:         input.Status,
		StartAt:        input.StartAt,
		EndAt:          input.EndAt,
		Priority:       DefaultPromotionPriority,
		Placement:      input.Placement,
		Tags:           input.Tags,
		TrackingParams: input.TrackingParams,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	if promo.Title == "" {
		promo.Title = DefaultPromotionTitle
	}
	if promo.CTALabel == "" {
		promo.CTALabel = DefaultCTALabel
	}
	if promo.CTAHref == "" {
		promo.CTAHref = DefaultCTAHref
	}
	if promo.Status == "" {
		promo.Status = domain.PromotionDraft
	}
	if promo.Placement == "" {
		promo.Placement = domain.PlacementCard
	}
	if input.Priority != nil {
		promo.Priority = *input.Priority
	}
	if promo.Tags == nil {
		promo.Tags = []string{}
	}

	if err := validatePromotion(promo); err != nil {
		return nil, err
	}
	if _, exists := s.promoRepo.GetByID(ctx, promo.ID); exists {
		return nil, domain.ErrInvalidInput
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}

	log.Printf("✅ Promotion created: %s (%s)", promo.ID, promo.Status)
	return promo, nil
}

// Save replaces a stored promotion by ID and reports whether it existed.
// CreatedAt is kept from the stored copy.
func (s *PromotionService) Save(ctx context.Context, promo domain.Promotion) (*domain.Promotion, bool, error) {
	if err := validatePromotion(&promo); err != nil {
		return nil, false, err
	}
	if promo.Tags == nil {
		promo.Tags = []string{}
	}
	now := s.now().UTC()
	return s.promoRepo.Modify(ctx, promo.ID, func(p *domain.Promotion) {
		createdAt := p.CreatedAt
		*p = promo
		p.CreatedAt = createdAt
		p.UpdatedAt = now
	})
}

// UpdateStatus sets a promotion's status and reports whether it existed
func (s *PromotionService) UpdateStatus(ctx context.Context, id string, status domain.PromotionStatus) (*domain.Promotion, bool, error) {
	if !status.Valid() {
		return nil, false, domain.ErrInvalidStatus
	}
	now := s.now().UTC()
	promo, found, err := s.promoRepo.Modify(ctx, id, func(p *domain.Promotion) {
		p.Status = status
		p.UpdatedAt = now
	})
	if err == nil && found {
		log.Printf("✅ Promotion %s is now %s", id, status)
	}
	return promo, found, err
}

// Remove deletes a promotion; an unknown ID is not an error
func (s *PromotionService) Remove(ctx context.Context, id string) error {
	_, err := s.promoRepo.Delete(ctx, id)
	return err
}

// Visible returns the promotions shown at now, highest priority first.
// Nothing is written back.
func (s *PromotionService) Visible(ctx context.Context, now time.Time) []*domain.Promotion {
	var out []*domain.Promotion
	for _, p := range s.List(ctx) {
		if p.IsVisible(now) {
			out = append(out, p)
		}
	}
	return out
}

// VisibleByPlacement is Visible restricted to one placement.
// An empty placement returns every visible promotion.
func (s *PromotionService) VisibleByPlacement(ctx context.Context, now time.Time, placement domain.PromotionPlacement) []*domain.Promotion {
	visible := s.Visible(ctx, now)
	if placement == "" {
		return visible
	}
	var out []*domain.Promotion
	for _, p := range visible {
		if p.Placement == placement {
			out = append(out, p)
		}
	}
	return out
}

// Seed inserts promotions into an empty catalog and returns how many were added
func (s *PromotionService) Seed(ctx context.Context, seeds []config.PromotionSeed) (int, error) {
	if len(seeds) == 0 || len(s.promoRepo.List(ctx)) > 0 {
		return 0, nil
	}
	added := 0
	for _, p := range seeds {
		if _, err := s.Create(ctx, PromotionInput{
			ID:             p.ID,
			Title:          p.Title,
			Subtitle:       p.Subtitle,
			Description:    p.Description,
			ImageURL:       p.ImageURL,
			CTALabel:       p.CTALabel,
			CTAHref:        p.CTAHref,
			Status:         domain.PromotionStatus(p.Status),
			StartAt:        p.StartAt,
			EndAt:          p.EndAt,
			Priority:       p.Priority,
			Placement:      domain.PromotionPlacement(p.Placement),
			Tags:           p.Tags,
			TrackingParams: p.TrackingParams,
		}); err != nil {
			return added, err
		}
		added++
	}
	log.Printf("✅ Seeded %d promotions", added)
	return added, nil
}

func validatePromotion(p *domain.Promotion) error {
	if p.ID == "" {
		return domain.ErrInvalidInput
	}
	if !p.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	if !p.Placement.Valid() {
		return domain.ErrInvalidPlacement
	}
	if p.StartAt != nil && p.EndAt != nil && p.EndAt.Before(*p.StartAt) {
		return domain.ErrInvalidSchedule
	}
	return nil
}

// sortByPriority orders by priority descending, keeping insertion order for ties
func sortByPriority(promos []*domain.Promotion) []*domain.Promotion {
	sort.SliceStable(promos, func(i, j int) bool {
		return promos[i].Priority > promos[j].Priority
	})
	return promos
}
