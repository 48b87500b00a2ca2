package services

import (
	"errors"
	"log"
	"time"

	"stampcard/internal/config"
	"stampcard/internal/core/domain"
	"stampcard/internal/pkg/jwt"
	"stampcard/internal/pkg/password"
)

// StaffAuthService trades a staff PIN for a signed session
type StaffAuthService struct {
	cfg *config.Config
	now func() time.Time
}

// NewStaffAuthService creates a new staff auth service
func NewStaffAuthService(cfg *config.Config) *StaffAuthService {
	return &StaffAuthService{
		cfg: cfg,
		now: time.Now,
	}
}

// Login checks pin against the admin PIN first, then the staff PIN
func (s *StaffAuthService) Login(pin string) (*StaffSession, error) {
	var role domain.Role
	switch {
	case password.VerifyPIN(pin, s.cfg.Staff.AdminPIN):
		role = domain.RoleAdmin
	case password.VerifyPIN(pin, s.cfg.Staff.StaffPIN):
		role = domain.RoleStaff
	default:
		log.Println("⚠️ Staff login rejected: wrong PIN")
		return nil, domain.ErrInvalidPIN
	}

	ttl := time.Duration(s.cfg.JWT.SessionHours) * time.Hour
	token, expiresAt, err := jwt.GenerateStaffToken(string(role), s.cfg.JWT.Secret, ttl, s.now())
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Staff session opened: role=%s", role)
	return &StaffSession{
		Token:     token,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate checks a session token and returns its role
func (s *StaffAuthService) Validate(token string) (domain.Role, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	claims, err := jwt.ValidateStaffToken(token, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}

	role := domain.Role(claims.Role)
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return "", domain.ErrTokenInvalid
	}
	return role, nil
}
