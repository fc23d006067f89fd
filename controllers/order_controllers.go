package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// OrderTracker is satisfied by services.OrderService.
type OrderTracker interface {
	GetOrderStatus(ctx context.Context, id models.Identifier) (*models.OrderTracking, error)
}

type OrderController struct {
	Orders  OrderTracker
	Timeout time.Duration
}

func NewOrderController(orders OrderTracker, timeout time.Duration) *OrderController {
	return &OrderController{Orders: orders, Timeout: timeout}
}

func (oc *OrderController) GetOrderStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), oc.Timeout)
	defer cancel()

	tracking, err := oc.Orders.GetOrderStatus(ctx, models.Identifier(c.Param("order_id")))
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			c.Error(err)
			utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status", tracking)
}
