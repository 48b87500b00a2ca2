package models

import (
	"time"

	"gorm.io/gorm"
)

// RecordBlob represents record_blobs table.
// Each row holds one whole collection serialized as a JSON array.
type RecordBlob struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Payload   string    `gorm:"type:longtext;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RecordBlob) TableName() string {
	return "record_blobs"
}

// AutoMigrate runs auto migration for the record store tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&RecordBlob{},
	)
}
