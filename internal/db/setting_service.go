package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/landing/internal/models"
)

// ErrSettingNotFound is returned when a key has never been written
var ErrSettingNotFound = errors.New("setting not found")

// SettingStore reads and writes key-value settings through a gorm connection.
// A nil conn falls back to the package-level DB at call time.
type SettingStore struct {
	conn *gorm.DB
}

// NewSettingStore returns a store bound to conn
func NewSettingStore(conn *gorm.DB) *SettingStore {
	return &SettingStore{conn: conn}
}

func (s *SettingStore) db() (*gorm.DB, error) {
	if s != nil && s.conn != nil {
		return s.conn, nil
	}
	if DB == nil {
		return nil, ErrNotInitialized
	}
	return DB, nil
}

// Get returns the stored value for key. The boolean is false when the key is absent.
func (s *SettingStore) Get(key string) (string, bool, error) {
	conn, err := s.db()
	if err != nil {
		return "", false, err
	}

	var setting models.Setting
	err = conn.Where(&models.Setting{Key: key}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Absent key is not an error
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %q: %w", key, err)
	}

	return setting.Value, true, nil
}

// Set writes value under key, replacing any previous value
func (s *SettingStore) Set(key, value string) error {
	conn, err := s.db()
	if err != nil {
		return err
	}

	setting := models.Setting{Key: key, Value: value}
	err = conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting an absent key returns ErrSettingNotFound.
func (s *SettingStore) Delete(key string) error {
	conn, err := s.db()
	if err != nil {
		return err
	}

	result := conn.Where(&models.Setting{Key: key}).Delete(&models.Setting{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// All returns every stored setting ordered by key
func (s *SettingStore) All() ([]models.Setting, error) {
	conn, err := s.db()
	if err != nil {
		return nil, err
	}

	var settings []models.Setting
	if err := conn.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}
