package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// TokenBytes is the entropy of a client token (24 hex chars)
	TokenBytes = 12
)

// Hash hashes a PIN using bcrypt
func Hash(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// IsHash reports whether s looks like a bcrypt hash
func IsHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// VerifyPIN compares a submitted PIN with a configured one.
// The configured value may be plain text or a bcrypt hash.
func VerifyPIN(pin, configured string) bool {
	if pin == "" || configured == "" {
		return false
	}
	if IsHash(configured) {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(pin)) == nil
	}
	return Equal(pin, configured)
}

// Equal compares two secrets in constant time
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// GenerateToken returns a hex-encoded token from a cryptographically strong source
func GenerateToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
