package domain

import (
	"strings"
	"time"
)

// Role represents a staff role unlocked by a PIN
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Client represents a registered loyalty program member
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventKind enumerates loyalty-relevant occurrences
type EventKind string

const (
	EventPurchase        EventKind = "purchase"
	EventStampAdded      EventKind = "stamp_added"
	EventRedemption      EventKind = "redemption"
	EventDiscountApplied EventKind = "discount_applied"
	EventClientCreated   EventKind = "client_created"
)

// Valid reports whether k is a known event kind
func (k EventKind) Valid() bool {
	switch k {
	case EventPurchase, EventStampAdded, EventRedemption, EventDiscountApplied, EventClientCreated:
		return true
	}
	return false
}

// Event is an immutable record appended to a client's history
type Event struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"clientId"`
	Timestamp time.Time      `json:"timestamp"`
	Kind      EventKind      `json:"kind"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// StampState tracks a client's progress towards the next redemption.
// Threshold is captured when the state is created.
type StampState struct {
	ClientID  string    `json:"clientId"`
	Progress  int       `json:"progress"`
	Threshold int       `json:"threshold"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StampResult is the outcome of awarding one stamp
type StampResult struct {
	Redeemed    bool `json:"redeemed"`
	NewProgress int  `json:"newProgress"`
}

// PromotionStatus is the scheduling state of a promotion
type PromotionStatus string

const (
	PromotionDraft     PromotionStatus = "draft"
	PromotionScheduled PromotionStatus = "scheduled"
	PromotionPublished PromotionStatus = "published"
	PromotionExpired   PromotionStatus = "expired"
)

// Valid reports whether s is a known promotion status
func (s PromotionStatus) Valid() bool {
	switch s {
	case PromotionDraft, PromotionScheduled, PromotionPublished, PromotionExpired:
		return true
	}
	return false
}

// PromotionPlacement is where a promotion is rendered
type PromotionPlacement string

const (
	PlacementHero   PromotionPlacement = "hero"
	PlacementBanner PromotionPlacement = "banner"
	PlacementCard   PromotionPlacement = "card"
)

// Valid reports whether p is a known placement
func (p PromotionPlacement) Valid() bool {
	switch p {
	case PlacementHero, PlacementBanner, PlacementCard:
		return true
	}
	return false
}

// Promotion is a schedulable, prioritized marketing item
type Promotion struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Subtitle       string             `json:"subtitle,omitempty"`
	Description    string             `json:"description,omitempty"`
	ImageURL       string             `json:"imageUrl,omitempty"`
	CTALabel       string             `json:"ctaLabel,omitempty"`
	CTAHref        string             `json:"ctaHref,omitempty"`
	Status         PromotionStatus    `json:"status"`
	StartAt        *time.Time         `json:"startAt,omitempty"`
	EndAt          *time.Time         `json:"endAt,omitempty"`
	Priority       int                `json:"priority"`
	Placement      PromotionPlacement `json:"placement"`
	Tags           []string           `json:"tags"`
	TrackingParams string             `json:"trackingParams,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// IsVisible reports whether the promotion should be shown at now.
// Scheduled promotions past their end are hidden but never rewritten as expired.
func (p *Promotion) IsVisible(now time.Time) bool {
	switch p.Status {
	case PromotionPublished:
		return true
	case PromotionScheduled:
		okStart := p.StartAt == nil || !now.Before(*p.StartAt)
		okEnd := p.EndAt == nil || !now.After(*p.EndAt)
		return okStart && okEnd
	default:
		return false
	}
}

// TrackedHref returns the call-to-action link with tracking params appended
func (p *Promotion) TrackedHref() string {
	if p.CTAHref == "" {
		return "/"
	}
	if p.TrackingParams == "" {
		return p.CTAHref
	}
	sep := "?"
	if strings.Contains(p.CTAHref, "?") {
		sep = "&"
	}
	return p.CTAHref + sep + strings.TrimPrefix(p.TrackingParams, "?")
}
