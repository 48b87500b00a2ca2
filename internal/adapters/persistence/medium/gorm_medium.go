package medium

import (
	"context"
	"errors"

	"stampcard/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormMedium implements Medium over the record_blobs table
type gormMedium struct {
	db *gorm.DB
}

// NewGormMedium creates a new GORM backed medium
func NewGormMedium(db *gorm.DB) Medium {
	return &gormMedium{db: db}
}

// Get gets a payload by key
func (m *gormMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob models.RecordBlob
	err := m.db.WithContext(ctx).
		Where(&models.RecordBlob{Key: key}).
		First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(blob.Payload), true, nil
}

// Put upserts a payload
func (m *gormMedium) Put(ctx context.Context, key string, value []byte) error {
	blob := &models.RecordBlob{
		Key:     key,
		Payload: string(value),
	}
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(blob).Error
}

// Delete hard deletes a payload
func (m *gormMedium) Delete(ctx context.Context, key string) error {
	return m.db.WithContext(ctx).
		Where(&models.RecordBlob{Key: key}).
		Delete(&models.RecordBlob{}).Error
}
