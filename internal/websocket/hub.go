package websocket

import (
	"sync"

	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// Handler receives connection lifecycle and inbound message callbacks.
// HandleMessage is called from the connection's read goroutine, so
// per-connection ordering is preserved.
type Handler interface {
	HandleConnect(userID string)
	HandleMessage(userID string, data []byte)
	HandleDisconnect(userID string)
}

// Hub WebSocket 연결 관리 및 메시지 전달
//
// One hub per endpoint (battle, lobby). Each identity holds at most one
// live connection; a reconnect replaces the previous one without firing
// the disconnect callback.
type Hub struct {
	name string

	// 사용자별 연결 저장 (userID -> *Client)
	clients map[string]*Client
	mu      sync.RWMutex

	// 등록/해제 채널
	register   chan *Client
	unregister chan *Client

	handler Handler
}

// NewHub Hub 생성
func NewHub(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetHandler wires the message router. Must be called before Run.
func (h *Hub) SetHandler(handler Handler) {
	h.handler = handler
}

// Run Hub 실행
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// registerClient 클라이언트 등록 (기존 연결은 교체)
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()

	if oldClient, exists := h.clients[client.userID]; exists {
		close(oldClient.send)
		logger.Info("Replaced existing WebSocket connection",
			"hub", h.name,
			"userId", client.userID,
		)
	}

	h.clients[client.userID] = client
	total := len(h.clients)
	h.mu.Unlock()

	logger.Info("WebSocket client registered",
		"hub", h.name,
		"userId", client.userID,
		"totalClients", total,
	)

	if h.handler != nil {
		h.handler.HandleConnect(client.userID)
	}
}

// unregisterClient 클라이언트 해제
//
// The disconnect callback only fires when the departing connection is
// still the identity's current one; a replaced connection leaving must
// not forfeit the session that replaced it.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()

	current, exists := h.clients[client.userID]
	wasCurrent := exists && current == client
	if wasCurrent {
		delete(h.clients, client.userID)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !wasCurrent {
		return
	}

	logger.Info("WebSocket client unregistered",
		"hub", h.name,
		"userId", client.userID,
		"totalClients", total,
	)

	if h.handler != nil {
		h.handler.HandleDisconnect(client.userID)
	}
}

// Send queues an event for one identity. Events for identities without
// a live connection, or whose send buffer is full, are dropped.
func (h *Hub) Send(userID string, event interface{}) {
	h.mu.RLock()
	client, exists := h.clients[userID]
	h.mu.RUnlock()

	if !exists {
		logger.Debug("Dropping event for offline user",
			"hub", h.name,
			"userId", userID,
		)
		return
	}

	select {
	case client.send <- event:
	default:
		logger.Warn("Client send channel full, dropping event",
			"hub", h.name,
			"userId", userID,
		)
	}
}

// IsOnline 해당 사용자의 연결 여부
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

// OnlineUsers returns the identities currently connected to this hub.
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		users = append(users, userID)
	}
	return users
}

// ClientCount 현재 연결 수
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
