package jwt

import (
	"errors"
	"testing"
	"time"
)

const secret = "test-secret"

func TestStaffTokenRoundTrip(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := GenerateStaffToken("admin", secret, time.Hour, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected expiry in one hour, got %v", expiresAt)
	}

	claims, err := ValidateStaffToken(token, secret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Role != "admin" || claims.Issuer != issuer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateStaffTokenErrors(t *testing.T) {
	expired, _, err := GenerateStaffToken("staff", secret, time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	valid, _, err := GenerateStaffToken("staff", secret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"expired", expired, secret, ErrTokenExpired},
		{"wrong secret", valid, "other", ErrTokenInvalid},
		{"garbage", "not-a-token", secret, ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateStaffToken(tt.token, tt.secret); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
