package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	PublicOrigin   string
	AllowedOrigins string
	Store          StoreConfig
	JWT            JWTConfig
	Cookie         CookieConfig
	Staff          StaffConfig
	Program        ProgramConfig
	Seed           SeedConfig
	Snapshot       SnapshotConfig
}

type baseConfig struct {
	AppMode        string `env:"APP_MODE" envDefault:"dev"`
	Port           string `env:"PORT" envDefault:"3000"`
	PublicOrigin   string `env:"PUBLIC_ORIGIN"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
}

// StoreConfig selects and configures the durable medium (mode prefixed)
type StoreConfig struct {
	Driver      string         `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string         `env:"SQLITE_PATH" envDefault:"stampcard.db"`
	PostgresURL string         `env:"POSTGRES_URL"`
	MySQL       DatabaseConfig `envPrefix:"DB_"`
}

// DatabaseConfig holds MySQL configuration
type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"3306"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASS"`
	DBName   string `env:"NAME" envDefault:"stampcard"`
}

// JWTConfig holds staff session signing configuration (mode prefixed)
type JWTConfig struct {
	Secret       string `env:"JWT_SECRET" envDefault:"default_secret"`
	SessionHours int    `env:"STAFF_SESSION_HOURS" envDefault:"4"`
}

// CookieConfig holds staff session cookie configuration
type CookieConfig struct {
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite string `env:"COOKIE_SAMESITE" envDefault:"lax"`
	Domain   string `env:"COOKIE_DOMAIN"`
}

// StaffConfig holds the two staff PINs. Either may be a bcrypt hash.
type StaffConfig struct {
	AdminPIN string `env:"ADMIN_PIN" envDefault:"1234"`
	StaffPIN string `env:"STAFF_PIN" envDefault:"5678"`
}

// ProgramConfig describes the merchant and its loyalty programs
type ProgramConfig struct {
	MerchantName string          `env:"MERCHANT_NAME" envDefault:"Mi Comercio" json:"merchantName"`
	Slug         string          `env:"MERCHANT_SLUG" envDefault:"mi-comercio" json:"slug"`
	City         string          `env:"MERCHANT_CITY" envDefault:"Madrid" json:"city"`
	LogoURL      string          `env:"MERCHANT_LOGO_URL" envDefault:"/logo.jpg" json:"logoUrl"`
	Stamps       StampProgram    `json:"stamps"`
	Discount     DiscountProgram `json:"discount"`
	Contact      ContactInfo     `json:"contact"`
}

// StampProgram configures the buy-N-get-one program
type StampProgram struct {
	Active      bool   `env:"STAMPS_ACTIVE" envDefault:"true" json:"active"`
	Threshold   int    `env:"STAMPS_THRESHOLD" envDefault:"10" json:"threshold"`
	Title       string `env:"STAMPS_TITLE" envDefault:"Compra 10 y llévate 1 gratis" json:"title"`
	Description string `env:"STAMPS_DESCRIPTION" envDefault:"Por cada compra acumulas un sello. Al completar todos los sellos, obtienes una recompensa." json:"description"`
}

// DiscountProgram configures the member discount
type DiscountProgram struct {
	Active      bool            `env:"DISCOUNT_ACTIVE" envDefault:"true" json:"active"`
	Percentage  decimal.Decimal `env:"DISCOUNT_PERCENTAGE" envDefault:"5" json:"percentage"`
	Title       string          `env:"DISCOUNT_TITLE" envDefault:"5% de descuento para miembros" json:"title"`
	Description string          `env:"DISCOUNT_DESCRIPTION" envDefault:"Como miembro del programa, disfruta de un descuento exclusivo en todas tus compras." json:"description"`
}

// ContactInfo is optional merchant contact data
type ContactInfo struct {
	Phone   string `env:"CONTACT_PHONE" json:"phone,omitempty"`
	Email   string `env:"CONTACT_EMAIL" json:"email,omitempty"`
	Address string `env:"CONTACT_ADDRESS" json:"address,omitempty"`
	Hours   string `env:"CONTACT_HOURS" json:"hours,omitempty"`
}

// SeedConfig points at optional seed files
type SeedConfig struct {
	PromotionsFile string `env:"PROMO_SEED_FILE"`
}

// SnapshotConfig schedules collection snapshots; an empty Cron disables them
type SnapshotConfig struct {
	Cron string `env:"SNAPSHOT_CRON"`
	Dir  string `env:"SNAPSHOT_DIR" envDefault:"snapshots"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	var base baseConfig
	if err := env.Parse(&base); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(base.AppMode)
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	prefix := "DEV_"
	if appMode == "prod" {
		prefix = "PROD_"
	}

	cfg := &Config{
		AppMode:        appMode,
		Port:           base.Port,
		PublicOrigin:   strings.TrimRight(strings.TrimSpace(base.PublicOrigin), "/"),
		AllowedOrigins: base.AllowedOrigins,
	}

	sections := []struct {
		target any
		prefix string
	}{
		{&cfg.Store, prefix},
		{&cfg.JWT, prefix},
		{&cfg.Cookie, ""},
		{&cfg.Staff, ""},
		{&cfg.Program, ""},
		{&cfg.Seed, ""},
		{&cfg.Snapshot, ""},
	}
	for _, s := range sections {
		if err := env.ParseWithOptions(s.target, env.Options{Prefix: s.prefix}); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.IsProd() && cfg.JWT.Secret == "default_secret" {
		log.Println("⚠️ Warning: PROD_JWT_SECRET is not set, staff sessions use the default secret")
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORE: %s]", appMode, cfg.Store.Driver)
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("invalid STORE_DRIVER: '%s' (must be memory, sqlite, mysql or postgres)", c.Store.Driver)
	}
	if c.Store.Driver == DriverPostgres && c.Store.PostgresURL == "" {
		return fmt.Errorf("POSTGRES_URL is required for the postgres store driver")
	}
	if c.Program.Stamps.Threshold < 1 {
		return fmt.Errorf("invalid STAMPS_THRESHOLD: %d (must be at least 1)", c.Program.Stamps.Threshold)
	}
	if c.Program.Discount.Percentage.IsNegative() || c.Program.Discount.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("invalid DISCOUNT_PERCENTAGE: %s (must be between 0 and 100)", c.Program.Discount.Percentage)
	}
	if c.Staff.AdminPIN == "" || c.Staff.StaffPIN == "" {
		return fmt.Errorf("ADMIN_PIN and STAFF_PIN must not be empty")
	}
	if c.Staff.AdminPIN == c.Staff.StaffPIN {
		return fmt.Errorf("ADMIN_PIN and STAFF_PIN must differ")
	}
	if c.JWT.SessionHours < 1 {
		return fmt.Errorf("invalid STAFF_SESSION_HOURS: %d", c.JWT.SessionHours)
	}
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		if c.PublicOrigin != "" {
			return c.PublicOrigin
		}
		return "http://localhost:" + c.Port
	}
	return c.AllowedOrigins
}
