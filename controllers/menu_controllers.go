package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/kitsu-storefront/catalog"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

type MenuController struct {
	Catalog *catalog.Cache
	Timeout time.Duration
}

func NewMenuController(cache *catalog.Cache, timeout time.Duration) *MenuController {
	return &MenuController{Catalog: cache, Timeout: timeout}
}

// GetMenu lists the cached catalog. A failed load is reported in the message
// but the request still succeeds with whatever is cached.
func (mc *MenuController) GetMenu(c *gin.Context) {
	message := "List of menu items"
	if mc.Catalog.LastError() != nil {
		message = catalog.LoadErrorMessage
	}
	utils.RespondJSON(c, http.StatusOK, message, mc.Catalog.Items())
}

// RefreshMenu reloads the catalog from the backend.
func (mc *MenuController) RefreshMenu(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), mc.Timeout)
	defer cancel()

	items, err := mc.Catalog.Load(ctx)
	if err != nil {
		c.Error(err)
		utils.RespondError(c, http.StatusBadGateway, errors.New(catalog.LoadErrorMessage))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu refreshed", items)
}
