package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Store.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %s", cfg.Store.Driver)
	}
	if cfg.Program.Stamps.Threshold != 10 || !cfg.Program.Stamps.Active {
		t.Fatalf("expected active 10-stamp program, got %+v", cfg.Program.Stamps)
	}
	if !cfg.Program.Discount.Percentage.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected 5%% discount, got %s", cfg.Program.Discount.Percentage)
	}
	if cfg.GetAllowedOrigins() != "*" {
		t.Fatalf("expected open CORS in dev, got %s", cfg.GetAllowedOrigins())
	}
}

func TestLoadModePrefix(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_STORE_DRIVER", "memory")
	t.Setenv("DEV_STORE_DRIVER", "postgres")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("PUBLIC_ORIGIN", "https://cafe.example/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != DriverMemory || cfg.JWT.Secret != "prod-secret" {
		t.Fatalf("expected PROD_ values, got driver=%s secret=%s", cfg.Store.Driver, cfg.JWT.Secret)
	}
	if cfg.PublicOrigin != "https://cafe.example" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.PublicOrigin)
	}
	if cfg.GetAllowedOrigins() != "https://cafe.example" {
		t.Fatalf("expected CORS locked to public origin, got %s", cfg.GetAllowedOrigins())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"mode", map[string]string{"APP_MODE": "staging"}, "APP_MODE"},
		{"driver", map[string]string{"DEV_STORE_DRIVER": "redis"}, "STORE_DRIVER"},
		{"postgres url", map[string]string{"DEV_STORE_DRIVER": "postgres", "DEV_POSTGRES_URL": ""}, "POSTGRES_URL"},
		{"threshold", map[string]string{"STAMPS_THRESHOLD": "0"}, "STAMPS_THRESHOLD"},
		{"discount", map[string]string{"DISCOUNT_PERCENTAGE": "120"}, "DISCOUNT_PERCENTAGE"},
		{"same pins", map[string]string{"ADMIN_PIN": "1111", "STAFF_PIN": "1111"}, "must differ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "dev")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadPromotionSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promotions.yaml")
	content := `promotions:
  - id: welcome
    title: Bienvenida
    status: published
    priority: 80
    placement: hero
    tags: [new]
  - id: summer
    title: Verano
    status: scheduled
    startAt: 2025-06-01T00:00:00Z
    endAt: 2025-08-31T23:59:59Z
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	promos, err := LoadPromotionSeed(path)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if len(promos) != 2 {
		t.Fatalf("expected 2 promotions, got %d", len(promos))
	}
	if promos[0].Status != "published" || promos[0].Priority == nil || *promos[0].Priority != 80 || promos[0].Placement != "hero" {
		t.Fatalf("unexpected first promotion: %+v", promos[0])
	}
	if promos[1].Priority != nil {
		t.Fatalf("expected omitted priority to stay nil, got %d", *promos[1].Priority)
	}
	if promos[1].StartAt == nil || promos[1].EndAt == nil || promos[1].StartAt.Month() != 6 {
		t.Fatalf("expected schedule parsed, got %+v", promos[1])
	}
}

func TestLoadPromotionSeedEmptyPath(t *testing.T) {
	promos, err := LoadPromotionSeed("")
	if err != nil || promos != nil {
		t.Fatalf("expected nothing for empty path, got %v (err=%v)", promos, err)
	}
	if _, err := LoadPromotionSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
