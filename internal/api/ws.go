package api

import (
	"context"
	"net/http"
	"sync"

	"storefront-service/internal/redisclient"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub relays change notifications from redis pub/sub to connected websocket
// clients. The admin order board and the storefront status badge both listen
// here instead of polling.
type Hub struct {
	redis  *redisclient.Client
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub(redis *redisclient.Client) *Hub {
	return &Hub{
		redis:   redis,
		logger:  util.GetLogger(),
		clients: make(map[*websocket.Conn]bool),
	}
}

// Run pumps redis events to every connected client until the context is
// cancelled.
func (h *Hub) Run(ctx context.Context) {
	sub := h.redis.SubscribeEvents(ctx)
	defer sub.Close()

	h.logger.Info("Websocket hub started")
	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info("Websocket hub stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				h.closeAll()
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

// Serve upgrades the request and registers the connection.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Drain reads so close frames are processed; clients never send data.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	delete(h.clients, conn)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
