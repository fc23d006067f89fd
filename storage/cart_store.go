package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// CartStore reads and writes the whole cart under a single key as a JSON
// array of lines.
type CartStore struct {
	kv  KeyValueStore
	key string

	mu      sync.Mutex
	version int64
}

func NewCartStore(kv KeyValueStore, key string) *CartStore {
	return &CartStore{kv: kv, key: key}
}

// Load never fails: a missing key, unreadable JSON or a cart that breaks the
// invariants all come back as an empty cart.
func (s *CartStore) Load() models.Cart {
	log := utils.InfoLogger.WithField("key", s.key)

	entry, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			utils.ErrorLogger.WithField("key", s.key).WithError(err).Warn("Failed to read cart, starting empty")
		}
		s.setVersion(0)
		return models.Cart{}
	}
	s.setVersion(entry.Version)

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(entry.Value), &lines); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"key": s.key, "error": err}).Warn("Persisted cart is not valid JSON, starting empty")
		return models.Cart{}
	}

	cart := models.Cart{Lines: lines}
	if err := cart.Validate(); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"key": s.key, "error": err}).Warn("Persisted cart is malformed, starting empty")
		return models.Cart{}
	}

	log.WithField("lines", len(lines)).Debug("Cart loaded")
	return cart
}

// Save overwrites the stored cart.
func (s *CartStore) Save(cart models.Cart) error {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	version, err := s.kv.Set(s.key, string(data))
	if err != nil {
		return err
	}
	s.setVersion(version)
	return nil
}

// Version is the last version this store read or wrote.
func (s *CartStore) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// ChangedExternally reports whether another writer has touched the key since
// this store last read or wrote it.
func (s *CartStore) ChangedExternally() (bool, error) {
	current, err := s.kv.Version(s.key)
	if err != nil {
		return false, err
	}
	return current != s.Version(), nil
}

func (s *CartStore) setVersion(v int64) {
	s.mu.Lock()
	s.version = v
	s.mu.Unlock()
}
