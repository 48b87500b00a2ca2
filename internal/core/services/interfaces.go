package services

import (
	"time"

	"stampcard/internal/core/domain"
)

// Input DTOs

// CreateClientInput for registering a client
type CreateClientInput struct {
	Name  string
	Email string
	Phone string
}

// ClientProfile carries the fields used when FindOrCreateByEmail has to create
type ClientProfile struct {
	Name  string
	Phone string
}

// PromotionInput for creating a promotion; empty fields take defaults
type PromotionInput struct {
	ID             string
	Title          string
	Subtitle       string
	Description    string
	ImageURL       string
	CTALabel       string
	CTAHref        string
	Status         domain.PromotionStatus
	StartAt        *time.Time
	EndAt          *time.Time
	Priority       *int
	Placement      domain.PromotionPlacement
	Tags           []string
	TrackingParams string
}

// Promotion defaults
const (
	DefaultPromotionTitle    = "Nueva promoción"
	DefaultPromotionPriority = 50
	DefaultCTALabel          = "Ver más"
	DefaultCTAHref           = "/"
)

// Output DTOs

// AccountView is what a client sees about themselves, newest events first
type AccountView struct {
	Client *domain.Client     `json:"client"`
	Stamps *domain.StampState `json:"stamps"`
	Events []*domain.Event    `json:"events"`
}

// ClientRow is one line of the staff client table
type ClientRow struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Progress     int       `json:"progress"`
	Threshold    int       `json:"threshold"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// Snapshot is a full export of every collection
type Snapshot struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Durable     bool                 `json:"durable"`
	Clients     []*domain.Client     `json:"clients"`
	Events      []*domain.Event      `json:"events"`
	Stamps      []*domain.StampState `json:"stamps"`
	Promotions  []*domain.Promotion  `json:"promotions"`
}

// ClientSheet is the staff view of one client: the latest events only
type ClientSheet struct {
	Client *domain.Client     `json:"client"`
	Stamps *domain.StampState `json:"stamps"`
	Recent []*domain.Event    `json:"recent"`
}

// StaffSession is issued on a successful PIN login
type StaffSession struct {
	Token     string      `json:"token"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
