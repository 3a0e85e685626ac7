package service

import (
	"github.com/google/uuid"
	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// LobbyService handles direct challenges between players who are
// connected to the lobby. Accepted challenges are handed off to the
// battle service as private matches.
type LobbyService struct {
	notifier Notifier
	battle   *BattleService
}

func NewLobbyService(notifier Notifier, battle *BattleService) *LobbyService {
	return &LobbyService{
		notifier: notifier,
		battle:   battle,
	}
}

// Invite 온라인 상대에게 도전장 전달
func (s *LobbyService) Invite(fromID, fromName, targetID string) error {
	if !s.notifier.IsOnline(targetID) {
		return ErrUserNotFound
	}

	s.notifier.Send(targetID, models.ChallengeReceivedEvent{
		Type:     models.EvtChallengeReceived,
		FromID:   fromID,
		FromName: fromName,
	})

	logger.Info("Challenge sent", "from", fromID, "to", targetID)
	return nil
}

// Accept creates a private match for the pair and tells both players
// which match to connect to. The match stays pending until both hold a
// battle connection.
func (s *LobbyService) Accept(accepterID, challengerID string) error {
	matchID := uuid.New().String()

	if err := s.battle.CreatePrivateMatch(matchID, challengerID, accepterID); err != nil {
		return err
	}

	s.notifier.Send(challengerID, models.MatchStartEvent{
		Type:     models.EvtMatchStart,
		MatchID:  matchID,
		Opponent: accepterID,
	})
	s.notifier.Send(accepterID, models.MatchStartEvent{
		Type:     models.EvtMatchStart,
		MatchID:  matchID,
		Opponent: challengerID,
	})

	logger.Info("Challenge accepted",
		"matchId", matchID,
		"challenger", challengerID,
		"accepter", accepterID,
	)
	return nil
}
