package remote

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MaxWSConnections is the maximum number of WebSocket clients a hub accepts.
const MaxWSConnections = 100

const wsWriteTimeout = time.Second

// Hub fans server messages out to WebSocket clients. Clients only listen;
// anything they send is read and dropped.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	onCount  func(float64)
	onSend   func()
}

// NewHub creates a hub accepting connections from the given origins. onCount,
// if non-nil, is called with the client count whenever it changes.
func NewHub(origins []string, onCount func(float64)) *Hub {
	h := &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		onCount: onCount,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || isAllowedOrigin(origins, origin) {
				return true
			}
			log.Printf("fizz: websocket connection rejected from origin %s", origin)
			return false
		},
	}
	return h
}

// isAllowedOrigin matches origin against patterns. A trailing * matches any
// suffix.
func isAllowedOrigin(patterns []string, origin string) bool {
	for _, p := range patterns {
		if p == "*" || p == origin {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, "*"); ok && strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends {"event": event, "data": data} to every client. Clients
// that fail to receive it are dropped.
func (h *Hub) Broadcast(event string, data interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
	h.countChanged()
	if h.onSend != nil {
		h.onSend()
	}
}

// HandleWebSocket upgrades the request and registers the client until its
// connection closes.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.ClientCount() >= MaxWSConnections {
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("fizz: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.countChanged()
	h.mu.Unlock()

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
		h.countChanged()
	}
}

// countChanged reports the client count. Callers hold h.mu.
func (h *Hub) countChanged() {
	if h.onCount != nil {
		h.onCount(float64(len(h.clients)))
	}
}
