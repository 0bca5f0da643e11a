package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/your-org/storefront/internal/infrastructure/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageEntry is one persisted key-value pair
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (StorageEntry) TableName() string {
	return "storefront_storage"
}

// Storage implements storage.Adapter on a PostgreSQL table
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a PostgreSQL-backed adapter
func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Get retrieves a value by key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	var entry StorageEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Set upserts a value
func (s *Storage) Set(ctx context.Context, key, value string) error {
	entry := StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
