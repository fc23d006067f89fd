package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/kitsu-storefront/view"
)

// Origins are checked by middlewares.WebSocketOriginMiddleware.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type CartSocketController struct {
	Hub *view.Hub
}

func NewCartSocketController(hub *view.Hub) *CartSocketController {
	return &CartSocketController{Hub: hub}
}

// Handle upgrades to a websocket that receives every cart render.
func (sc *CartSocketController) Handle(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sc.Hub.Register(ws)

	// Drain until the tab goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	sc.Hub.Unregister(ws)
}
