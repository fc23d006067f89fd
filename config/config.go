// Package config loads the storefront settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/yeremiapane/kitsu-storefront/database"
	"github.com/yeremiapane/kitsu-storefront/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const envPrefix = "STOREFRONT"

// Config is populated from STOREFRONT_* variables.
type Config struct {
	// MenuURL serves the public menu listing.
	MenuURL string `envconfig:"MENU_URL" default:"https://kitsu-backend.onrender.com"`
	// APIURL serves orders, payments and order tracking.
	APIURL string `envconfig:"API_URL" default:"https://kitsu-backend.onrender.com"`
	// AdminURL serves token auth and the admin order endpoints.
	AdminURL string `envconfig:"ADMIN_URL" default:"https://kitsu-django-backend.onrender.com"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`
	StoreDSN    string `envconfig:"STORE_DSN" default:"storefront.db"`
	CartKey     string `envconfig:"CART_KEY" default:"kitsuCart"`
	TokenKey    string `envconfig:"TOKEN_KEY_NAME" default:"kitsuAdminToken"`
	// TokenSecret, when set, seals the admin token at rest.
	TokenSecret string `envconfig:"TOKEN_SECRET"`

	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	ListenAddr    string        `envconfig:"LISTEN_ADDR" default:":8080"`
	AllowedOrigin string        `envconfig:"ALLOWED_ORIGIN" default:"http://127.0.0.1:5500"`
	RateLimit     int           `envconfig:"RATE_LIMIT" default:"50"`
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"1s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf("No .env file loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"MENU_URL":  c.MenuURL,
		"API_URL":   c.APIURL,
		"ADMIN_URL": c.AdminURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s_%s must be an absolute URL, got %q", envPrefix, name, raw)
		}
	}

	switch strings.ToLower(c.StoreDriver) {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("%s_STORE_DRIVER must be sqlite or mysql, got %q", envPrefix, c.StoreDriver)
	}
	if c.StoreDSN == "" {
		return fmt.Errorf("%s_STORE_DSN is required", envPrefix)
	}
	if c.CartKey == "" || c.TokenKey == "" {
		return fmt.Errorf("storage keys must not be empty")
	}
	if c.CartKey == c.TokenKey {
		return fmt.Errorf("cart and token storage keys must differ")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s_HTTP_TIMEOUT must be positive", envPrefix)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%s_RATE_LIMIT must be positive", envPrefix)
	}
	if c.PollInterval <= 0 || c.WatchInterval <= 0 {
		return fmt.Errorf("poll and watch intervals must be positive")
	}
	return nil
}

// InitDB opens the key/value database and migrates it.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.StoreDriver) {
	case "mysql":
		dialector = mysql.Open(cfg.StoreDSN)
	default:
		dialector = sqlite.Open(cfg.StoreDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
