package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ReloadMessage is sent to every client after a rebuild.
const ReloadMessage = "reload"

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live reload connections.
type Hub struct {
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	closed  bool
}

// NewHub returns an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{logger: logger, clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request and holds the connection until the
// client goes away. Client messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends msg to every client and returns how many received it.
// Clients that fail to receive are dropped.
func (h *Hub) Broadcast(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			h.logger.Debug("dropping reload client", zap.Error(err))
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		sent++
	}
	return sent
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, conn)
	}
}
