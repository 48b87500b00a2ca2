package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"stampcard/internal/adapters/persistence/repositories"
	"stampcard/internal/adapters/persistence/store"
)

// ExportService dumps every collection into one document
type ExportService struct {
	store      *store.Store
	clientRepo repositories.ClientRepository
	eventRepo  repositories.EventRepository
	stampRepo  repositories.StampRepository
	promoRepo  repositories.PromotionRepository
	now        func() time.Time
}

// NewExportService creates a new export service
func NewExportService(
	s *store.Store,
	clientRepo repositories.ClientRepository,
	eventRepo repositories.EventRepository,
	stampRepo repositories.StampRepository,
	promoRepo repositories.PromotionRepository,
) *ExportService {
	return &ExportService{
		store:      s,
		clientRepo: clientRepo,
		eventRepo:  eventRepo,
		stampRepo:  stampRepo,
		promoRepo:  promoRepo,
		now:        time.Now,
	}
}

// Snapshot reads all collections in their stored order
func (s *ExportService) Snapshot(ctx context.Context) *Snapshot {
	return &Snapshot{
		GeneratedAt: s.now().UTC(),
		Durable:     s.store.Available(ctx),
		Clients:     s.clientRepo.List(ctx),
		Events:      s.eventRepo.List(ctx),
		Stamps:      s.stampRepo.List(ctx),
		Promotions:  s.promoRepo.List(ctx),
	}
}

// WriteSnapshot writes a snapshot to dir and returns the file path
func (s *ExportService) WriteSnapshot(ctx context.Context, dir string) (string, error) {
	snap := s.Snapshot(ctx)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	name := fmt.Sprintf("snapshot-%s.json", snap.GeneratedAt.Format("20060102T150405.000Z"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	log.Printf("✅ Snapshot written: %s (%d clients, %d events)", path, len(snap.Clients), len(snap.Events))
	return path, nil
}
