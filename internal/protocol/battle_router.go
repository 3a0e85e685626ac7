package protocol

import (
	"context"
	"encoding/json"

	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/internal/service"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// BattleRouter dispatches battle socket messages. One instance serves
// every battle connection; per-connection ordering comes from the hub
// calling HandleMessage on the connection's read goroutine.
type BattleRouter struct {
	queue   *service.QueueService
	battle  *service.BattleService
	ratings *service.RatingService
}

func NewBattleRouter(
	queue *service.QueueService,
	battle *service.BattleService,
	ratings *service.RatingService,
) *BattleRouter {
	return &BattleRouter{
		queue:   queue,
		battle:  battle,
		ratings: ratings,
	}
}

// HandleConnect 접속 시 레이팅 적재
func (r *BattleRouter) HandleConnect(userID string) {
	rating := r.ratings.Load(userID)
	logger.Info("Player connected to battle", "userId", userID, "rating", rating)
}

// HandleMessage 배틀 소켓 메시지 분기
func (r *BattleRouter) HandleMessage(userID string, data []byte) {
	var msg models.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Warn("Malformed battle message dropped", "userId", userID, "error", err)
		return
	}

	switch msg.Type {
	case models.MsgJoinQueue:
		r.handleJoinQueue(userID)

	case models.MsgCreatePrivateMatch:
		if msg.MatchID == "" {
			logger.Warn("CREATE_PRIVATE_MATCH without match_id", "userId", userID)
			return
		}
		if err := r.battle.CreateOpenInvite(msg.MatchID, userID); err != nil {
			logger.Warn("Failed to create open invite",
				"userId", userID,
				"matchId", msg.MatchID,
				"error", err,
			)
		}

	case models.MsgJoinMatch:
		if msg.MatchID == "" {
			logger.Warn("JOIN_MATCH without match_id", "userId", userID)
			return
		}
		if err := r.battle.JoinOpenMatch(userID, msg.MatchID); err != nil {
			logger.Warn("Failed to join match",
				"userId", userID,
				"matchId", msg.MatchID,
				"error", err,
			)
		}

	case models.MsgSubmitCode:
		// Judging blocks this connection's read loop, which keeps a
		// player's submissions strictly ordered.
		r.battle.SubmitCode(context.Background(), userID, msg.Code)

	default:
		logger.Warn("Unknown battle message type", "userId", userID, "type", msg.Type)
	}
}

// handleJoinQueue 큐 참가 후 즉시 페어링 시도
func (r *BattleRouter) handleJoinQueue(userID string) {
	if r.battle.InMatch(userID) {
		logger.Debug("Queue join while in a match ignored", "userId", userID)
		return
	}

	if !r.queue.Enqueue(userID) {
		return
	}

	p1, p2, ok := r.queue.TryPair()
	if !ok {
		return
	}

	if _, err := r.battle.CreateMatch(p1, p2); err != nil {
		logger.Error("Failed to create match for queued pair",
			"player1", p1,
			"player2", p2,
			"error", err,
		)
	}
}

// HandleDisconnect 접속 종료: 큐 제거, 매치 몰수, 세션 레이팅 정리
func (r *BattleRouter) HandleDisconnect(userID string) {
	r.queue.Dequeue(userID)
	r.battle.HandleDisconnect(userID)
	r.ratings.Forget(userID)

	logger.Info("Player disconnected from battle", "userId", userID)
}
