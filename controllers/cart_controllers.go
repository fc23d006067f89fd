package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/kitsu-storefront/cart"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
	"github.com/yeremiapane/kitsu-storefront/view"
)

type CartController struct {
	Engine *cart.Engine
}

func NewCartController(engine *cart.Engine) *CartController {
	return &CartController{Engine: engine}
}

func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart", view.Project(cc.Engine.Snapshot()))
}

// Dispatch applies /cart/:action/:product_id. Unknown products answer 404
// with the cart unchanged.
func (cc *CartController) Dispatch(c *gin.Context) {
	action, err := cart.ParseAction(c.Param("action"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	id := models.Identifier(c.Param("product_id"))
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("product_id is required"))
		return
	}

	if err := cc.Engine.Dispatch(action, id); err != nil {
		if errors.Is(err, cart.ErrUnknownProduct) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart updated", view.Project(cc.Engine.Snapshot()))
}

func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.Engine.Clear(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", view.Project(cc.Engine.Snapshot()))
}
