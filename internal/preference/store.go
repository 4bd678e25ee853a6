// Package preference persists user interface preferences in SQLite.
package preference

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const keyDarkMode = "dark_mode"

// Setting is one persisted key/value pair.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Store reads and writes settings.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference db: %w", err)
	}
	return New(db)
}

// New migrates the settings table on an existing connection.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, fmt.Errorf("failed to migrate settings: %w", err)
	}
	return &Store{db: db}, nil
}

// DarkMode returns the persisted flag, false when never set.
func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	var setting Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", keyDarkMode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read dark mode: %w", err)
	}

	on, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return false, fmt.Errorf("invalid dark mode value %q: %w", setting.Value, err)
	}
	return on, nil
}

// SetDarkMode writes the flag through to the database.
func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	setting := Setting{Key: keyDarkMode, Value: strconv.FormatBool(on), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to write dark mode: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
