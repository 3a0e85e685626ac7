package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; submissions carry full
	// source files, so this is generous.
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 프로덕션에서는 특정 origin만 허용
		return true
	},
}

// Client WebSocket 클라이언트
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan interface{}
	userID string
}

// NewClient 클라이언트 생성
func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan interface{}, 256),
		userID: userID,
	}
}

// readPump 클라이언트 메시지를 핸들러로 전달 (핑/퐁 유지)
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error",
					"hub", c.hub.name,
					"userId", c.userID,
					"error", err,
				)
			}
			break
		}

		c.dispatch(data)
	}
}

// dispatch hands one inbound frame to the handler. A panic while
// handling a message never takes down the process; the connection is
// closed so it goes through the normal disconnect cleanup.
func (c *Client) dispatch(data []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while handling WebSocket message",
				"hub", c.hub.name,
				"userId", c.userID,
				"panic", r,
			)
			c.conn.Close()
		}
	}()

	if c.hub.handler != nil {
		c.hub.handler.HandleMessage(c.userID, data)
	}
}

// writePump Hub로부터 이벤트를 받아 클라이언트에게 전송
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub가 채널을 닫음
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				logger.Error("Failed to marshal event",
					"hub", c.hub.name,
					"userId", c.userID,
					"error", err,
				)
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Error("Failed to write message",
					"hub", c.hub.name,
					"userId", c.userID,
					"error", err,
				)
				return
			}

		case <-ticker.C:
			// Ping 전송
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs WebSocket 연결 업그레이드 및 클라이언트 시작
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := NewClient(hub, conn, userID)
	client.hub.register <- client

	// 고루틴 시작
	go client.writePump()
	go client.readPump()
}
