package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shrey0196/beatcoders-dev/internal/websocket"
)

// WebSocketHandler WebSocket 연결 처리
//
// Battle identities may carry a per-connection suffix ("shrey_1234") or a
// "guest" prefix; the rating layer resolves them to durable accounts.
type WebSocketHandler struct {
	battleHub *websocket.Hub
	lobbyHub  *websocket.Hub
}

// NewWebSocketHandler WebSocketHandler 생성
func NewWebSocketHandler(battleHub, lobbyHub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		battleHub: battleHub,
		lobbyHub:  lobbyHub,
	}
}

// HandleBattle 배틀 소켓 연결 (/ws/battle/:userId)
func (h *WebSocketHandler) HandleBattle(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "userId is required",
		})
		return
	}

	websocket.ServeWs(h.battleHub, c.Writer, c.Request, userID)
}

// HandleLobby 로비 소켓 연결 (/ws/lobby/:userId)
func (h *WebSocketHandler) HandleLobby(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "userId is required",
		})
		return
	}

	websocket.ServeWs(h.lobbyHub, c.Writer, c.Request, userID)
}
