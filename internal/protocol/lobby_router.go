package protocol

import (
	"encoding/json"

	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/internal/service"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// LobbyRouter dispatches lobby socket messages (challenge flow).
type LobbyRouter struct {
	lobby *service.LobbyService
}

func NewLobbyRouter(lobby *service.LobbyService) *LobbyRouter {
	return &LobbyRouter{lobby: lobby}
}

func (r *LobbyRouter) HandleConnect(userID string) {
	logger.Info("Player connected to lobby", "userId", userID)
}

// HandleMessage 로비 소켓 메시지 분기
func (r *LobbyRouter) HandleMessage(userID string, data []byte) {
	var msg models.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Warn("Malformed lobby message dropped", "userId", userID, "error", err)
		return
	}

	switch msg.Type {
	case models.MsgSendChallenge:
		if msg.TargetID == "" {
			logger.Warn("SEND_CHALLENGE without target_id", "userId", userID)
			return
		}
		// Lobby identities are plain usernames, so the display name is
		// the identity itself.
		if err := r.lobby.Invite(userID, userID, msg.TargetID); err != nil {
			logger.Debug("Challenge not delivered",
				"from", userID,
				"to", msg.TargetID,
				"error", err,
			)
		}

	case models.MsgAcceptChallenge:
		if msg.ChallengerID == "" {
			logger.Warn("ACCEPT_CHALLENGE without challenger_id", "userId", userID)
			return
		}
		if err := r.lobby.Accept(userID, msg.ChallengerID); err != nil {
			logger.Error("Failed to accept challenge",
				"accepter", userID,
				"challenger", msg.ChallengerID,
				"error", err,
			)
		}

	default:
		logger.Warn("Unknown lobby message type", "userId", userID, "type", msg.Type)
	}
}

func (r *LobbyRouter) HandleDisconnect(userID string) {
	logger.Info("Player disconnected from lobby", "userId", userID)
}
