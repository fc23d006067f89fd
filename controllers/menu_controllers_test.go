package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/kitsu-storefront/catalog"
	"github.com/yeremiapane/kitsu-storefront/models"
)

func TestGetMenu(t *testing.T) {
	app := setupApp(t, true)

	w, env := app.do(t, http.MethodGet, "/menu", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)
	items := decodeItems(t, env)
	require.Len(t, items, 2)
	assert.Equal(t, models.Identifier("1"), items[0].ID)
	assert.Equal(t, "Gyoza", items[1].Name)
}

func TestRefreshMenuFailureKeepsCache(t *testing.T) {
	app := setupApp(t, true)
	app.backend.mu.Lock()
	app.backend.menuDown = true
	app.backend.mu.Unlock()

	w, env := app.do(t, http.MethodPost, "/menu/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.False(t, env.Status)
	assert.Equal(t, catalog.LoadErrorMessage, env.Message)

	w, env = app.do(t, http.MethodGet, "/menu", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, catalog.LoadErrorMessage, env.Message)
	assert.Len(t, decodeItems(t, env), 2, "previous catalog is still served")
}

func TestRefreshMenuLoadsCatalog(t *testing.T) {
	app := setupApp(t, false)

	_, env := app.do(t, http.MethodGet, "/menu", nil)
	assert.Empty(t, decodeItems(t, env))

	w, env := app.do(t, http.MethodPost, "/menu/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeItems(t, env), 2)
	assert.True(t, app.cache.Loaded())
}
