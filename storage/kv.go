// Package storage persists client state (the cart and the admin token) in a
// key/value table, the same way the browser client used localStorage.
package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yeremiapane/kitsu-storefront/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("key not found")

// Entry is a stored value with its write version.
type Entry struct {
	Value   string
	Version int64
}

// KeyValueStore is the persistence contract used by CartStore and TokenStore.
// Set always overwrites the whole value and increments the version.
type KeyValueStore interface {
	Get(key string) (Entry, error)
	Set(key, value string) (int64, error)
	Delete(key string) error
	// Version returns 0 for a missing key.
	Version(key string) (int64, error)
}

// GormStore keeps entries in the kv_entries table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string) (Entry, error) {
	var e models.KVEntry
	err := s.db.Where(&models.KVEntry{Key: key}).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", key, err)
	}
	return Entry{Value: e.Value, Version: e.Version}, nil
}

func (s *GormStore) Set(key, value string) (int64, error) {
	var version int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var e models.KVEntry
		err := tx.Where(&models.KVEntry{Key: key}).First(&e).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			e = models.KVEntry{Key: key, Value: value, Version: 1, CreatedAt: now, UpdatedAt: now}
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			e.Value = value
			e.Version++
			e.UpdatedAt = now
			if err := tx.Save(&e).Error; err != nil {
				return err
			}
		}
		version = e.Version
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("set %s: %w", key, err)
	}
	return version, nil
}

func (s *GormStore) Delete(key string) error {
	if err := s.db.Delete(&models.KVEntry{Key: key}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Version(key string) (int64, error) {
	e, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	return e.Version, err
}

// MemoryStore is an in-process KeyValueStore for tests and throwaway sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Get(key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *MemoryStore) Set(key, value string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[key]
	e.Value = value
	e.Version++
	m.entries[key] = e
	return e.Version, nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Version(key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key].Version, nil
}
