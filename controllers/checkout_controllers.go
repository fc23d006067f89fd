package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/checkout"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/services"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

type CheckoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type CheckoutController struct {
	Handoff *checkout.Handoff
	Engine  *cart.Engine
	Timeout time.Duration
}

func NewCheckoutController(handoff *checkout.Handoff, engine *cart.Engine, timeout time.Duration) *CheckoutController {
	return &CheckoutController{Handoff: handoff, Engine: engine, Timeout: timeout}
}

// Checkout submits the current cart. The browser follows payment_url.
// Closing the tab dismisses the checkout without aborting the backend calls,
// so a placed order still clears the cart.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid checkout form"))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), cc.Timeout)
	defer cancel()
	stop := context.AfterFunc(c.Request.Context(), cc.Handoff.Dismiss)
	defer stop()

	receipt, err := cc.Handoff.Submit(ctx, models.CustomerInfo{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	}, cc.Engine.Snapshot())
	if err != nil {
		utils.RespondError(c, checkoutStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order placed", receipt)
}

func checkoutStatus(err error) int {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrInvalidCustomer):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
