package database

import (
	"fmt"

	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the key/value table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return fmt.Errorf("migrate kv_entries: %w", err)
	}

	var count int64
	db.Model(&models.KVEntry{}).Count(&count)
	utils.InfoLogger.WithField("keys", count).Debug("Store migrated")
	return nil
}
