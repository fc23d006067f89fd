package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://kitsu-backend.onrender.com", cfg.MenuURL)
	assert.Equal(t, "https://kitsu-django-backend.onrender.com", cfg.AdminURL)
	assert.Equal(t, "kitsuCart", cfg.CartKey)
	assert.Equal(t, "kitsuAdminToken", cfg.TokenKey)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "http://localhost:8000")
	t.Setenv("STOREFRONT_TOKEN_KEY_NAME", "adminToken")
	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, "adminToken", cfg.TokenKey)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "relative url", env: map[string]string{"STOREFRONT_MENU_URL": "/api"}, wantErr: true},
		{name: "unknown driver", env: map[string]string{"STOREFRONT_STORE_DRIVER": "redis"}, wantErr: true},
		{name: "same keys", env: map[string]string{"STOREFRONT_CART_KEY": "k", "STOREFRONT_TOKEN_KEY_NAME": "k"}, wantErr: true},
		{name: "zero rate", env: map[string]string{"STOREFRONT_RATE_LIMIT": "0"}, wantErr: true},
		{name: "bad duration", env: map[string]string{"STOREFRONT_POLL_INTERVAL": "soon"}, wantErr: true},
		{name: "mysql", env: map[string]string{"STOREFRONT_STORE_DRIVER": "mysql", "STOREFRONT_STORE_DSN": "u:p@tcp(db:3306)/kitsu"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitDBSqlite(t *testing.T) {
	t.Setenv("STOREFRONT_STORE_DSN", filepath.Join(t.TempDir(), "store.db"))
	cfg, err := Load()
	require.NoError(t, err)

	db, err := InitDB(cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("kv_entries"))
}
