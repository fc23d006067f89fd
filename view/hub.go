package view

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

const EventCartUpdate = "cart_update"

// DefaultWriteWait bounds a single push to one tab. Render runs under the cart
// engine lock, so a tab that stops reading is dropped after this long.
const DefaultWriteWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub is a CartView that pushes every render to the connected browser tabs,
// so all tabs on the local server show the same cart.
type Hub struct {
	WriteWait time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    *CartViewModel
}

func NewHub() *Hub {
	return &Hub{
		WriteWait: DefaultWriteWait,
		clients:   make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a connection and sends it the current cart right away.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[conn] = struct{}{}
	if h.last != nil {
		h.send(conn, Message{Event: EventCartUpdate, Data: *h.last})
	}
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(conn)
}

func (h *Hub) Render(s models.Snapshot) {
	vm := Project(s)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = &vm
	for conn := range h.clients {
		h.send(conn, Message{Event: EventCartUpdate, Data: vm})
	}
}

// Clients is the number of connected tabs.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// send expects h.mu to be held. A failed write drops the client.
func (h *Hub) send(conn *websocket.Conn, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to encode hub message")
		return
	}
	conn.SetWriteDeadline(time.Now().Add(h.WriteWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		utils.ErrorLogger.WithError(err).Warn("Dropping websocket client")
		h.drop(conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}
