package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PromotionSeed is one promotion in PROMO_SEED_FILE.
// Omitted fields take the catalog defaults; a nil Priority means the default priority.
type PromotionSeed struct {
	ID             string     `yaml:"id"`
	Title          string     `yaml:"title"`
	Subtitle       string     `yaml:"subtitle"`
	Description    string     `yaml:"description"`
	ImageURL       string     `yaml:"imageUrl"`
	CTALabel       string     `yaml:"ctaLabel"`
	CTAHref        string     `yaml:"ctaHref"`
	Status         string     `yaml:"status"`
	StartAt        *time.Time `yaml:"startAt"`
	EndAt          *time.Time `yaml:"endAt"`
	Priority       *int       `yaml:"priority"`
	Placement      string     `yaml:"placement"`
	Tags           []string   `yaml:"tags"`
	TrackingParams string     `yaml:"trackingParams"`
}

// promotionSeedFile is the layout of PROMO_SEED_FILE
type promotionSeedFile struct {
	Promotions []PromotionSeed `yaml:"promotions"`
}

// LoadPromotionSeed reads the promotions listed in a YAML seed file.
// An empty path yields no promotions.
func LoadPromotionSeed(path string) ([]PromotionSeed, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read promotion seed: %w", err)
	}
	var file promotionSeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse promotion seed: %w", err)
	}
	return file.Promotions, nil
}
