package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stampcard/internal/config"

	"github.com/robfig/cron/v3"
)

// snapshotTimeout bounds one scheduled snapshot
const snapshotTimeout = 2 * time.Minute

// CronService runs scheduled background jobs
type CronService struct {
	cron          *cron.Cron
	exportService *ExportService
	cfg           config.SnapshotConfig
	enabled       bool
}

// NewCronService creates a cron service. An empty schedule disables snapshots.
func NewCronService(exportService *ExportService, cfg config.SnapshotConfig) (*CronService, error) {
	s := &CronService{
		cron:          cron.New(),
		exportService: exportService,
		cfg:           cfg,
	}
	if cfg.Cron == "" {
		return s, nil
	}

	if _, err := s.cron.AddFunc(cfg.Cron, s.runSnapshot); err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_CRON %q: %w", cfg.Cron, err)
	}
	s.enabled = true
	return s, nil
}

// Enabled reports whether any job is scheduled
func (s *CronService) Enabled() bool {
	return s.enabled
}

// Start starts the scheduler
func (s *CronService) Start() {
	if !s.enabled {
		return
	}
	s.cron.Start()
	log.Printf("✅ Snapshot scheduler started [%s -> %s]", s.cfg.Cron, s.cfg.Dir)
}

// Stop stops the scheduler and waits for a running job
func (s *CronService) Stop() {
	if !s.enabled {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("🛑 Snapshot scheduler stopped")
}

func (s *CronService) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if _, err := s.exportService.WriteSnapshot(ctx, s.cfg.Dir); err != nil {
		log.Printf("❌ Scheduled snapshot failed: %v", err)
	}
}
