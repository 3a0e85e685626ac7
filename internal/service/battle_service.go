package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/pkg/judge"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// Notifier delivers outbound events to connected players. Delivery is
// fire-and-forget: events for offline identities are dropped.
type Notifier interface {
	Send(userID string, event interface{})
	IsOnline(userID string) bool
}

// CodeJudge 제출 코드를 테스트 케이스에 대해 실행하는 외부 채점기
type CodeJudge interface {
	RunTests(ctx context.Context, code string, cases []judge.TestCase) []judge.CaseResult
}

// Damage tuning: 10 points per passed test case, flat bonus on a full solve.
const (
	damagePerTest  = 10
	fullSolveBonus = 50
	startingHealth = 100
)

// BattleService owns the state of every live match. All match state is
// mutated under a single mutex; the judge runs outside of it.
type BattleService struct {
	problems *ProblemRegistry
	judge    CodeJudge
	ratings  *RatingService
	elo      *EloService
	notifier Notifier

	mu          sync.Mutex
	matches     map[string]*models.Match
	playerMatch map[string]string // userID -> matchID
}

func NewBattleService(
	problems *ProblemRegistry,
	codeJudge CodeJudge,
	ratings *RatingService,
	elo *EloService,
	notifier Notifier,
) *BattleService {
	return &BattleService{
		problems:    problems,
		judge:       codeJudge,
		ratings:     ratings,
		elo:         elo,
		notifier:    notifier,
		matches:     make(map[string]*models.Match),
		playerMatch: make(map[string]string),
	}
}

// CreateMatch 큐 매칭용: 두 플레이어로 매치 생성 후 시작 시도
func (s *BattleService) CreateMatch(p1, p2 string) (string, error) {
	matchID := uuid.New().String()

	if err := s.initMatch(matchID, [2]models.PlayerSlot{
		models.FilledSlot(p1),
		models.FilledSlot(p2),
	}); err != nil {
		return "", err
	}

	s.TryActivate(matchID)
	return matchID, nil
}

// CreatePrivateMatch 도전 수락용: 미리 정한 매치 ID로 생성
func (s *BattleService) CreatePrivateMatch(matchID, p1, p2 string) error {
	if err := s.initMatch(matchID, [2]models.PlayerSlot{
		models.FilledSlot(p1),
		models.FilledSlot(p2),
	}); err != nil {
		return err
	}

	s.TryActivate(matchID)
	return nil
}

// CreateOpenInvite reserves a match with one filled slot and one open slot
// for out-of-band invite links.
func (s *BattleService) CreateOpenInvite(matchID, inviter string) error {
	if err := s.initMatch(matchID, [2]models.PlayerSlot{
		models.FilledSlot(inviter),
		models.OpenSlot(),
	}); err != nil {
		return err
	}

	s.markConnected(matchID, inviter)
	return nil
}

// initMatch 매치 상태 초기화: 문제 랜덤 선택, 체력 100, pending
func (s *BattleService) initMatch(matchID string, slots [2]models.PlayerSlot) error {
	problem := s.problems.Random()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[matchID]; exists {
		return ErrMatchExists
	}

	m := &models.Match{
		ID:        matchID,
		Players:   slots,
		Health:    make(map[string]int, 2),
		ProblemID: problem.ID,
		Status:    models.MatchStatusPending,
		Connected: make(map[string]bool, 2),
		CreatedAt: time.Now(),
	}

	for _, slot := range slots {
		if slot.Open {
			continue
		}
		m.Health[slot.UserID] = startingHealth
		s.playerMatch[slot.UserID] = matchID
	}

	s.matches[matchID] = m

	logger.Info("Match initialized",
		"matchId", matchID,
		"players", m.PlayerIDs(),
		"problem", problem.ID,
	)

	return nil
}

// JoinOpenMatch fills the open slot of a reserved match, or marks an
// existing player as connected. Anyone else is rejected.
func (s *BattleService) JoinOpenMatch(userID, matchID string) error {
	s.mu.Lock()

	m, ok := s.matches[matchID]
	if !ok {
		s.mu.Unlock()
		return ErrMatchNotFound
	}

	if m.IsPlayer(userID) {
		m.Connected[userID] = true
		s.mu.Unlock()
		s.TryActivate(matchID)
		return nil
	}

	idx, hasOpen := m.OpenSlotIndex()
	if !hasOpen {
		s.mu.Unlock()
		return ErrNotAPlayer
	}

	m.Players[idx] = models.FilledSlot(userID)
	m.Health[userID] = startingHealth
	m.Connected[userID] = true
	s.playerMatch[userID] = matchID
	s.mu.Unlock()

	logger.Info("Open slot filled", "matchId", matchID, "userId", userID)

	s.TryActivate(matchID)
	return nil
}

// markConnected 플레이어를 매치에 접속한 것으로 표시
func (s *BattleService) markConnected(matchID, userID string) {
	s.mu.Lock()
	if m, ok := s.matches[matchID]; ok && m.IsPlayer(userID) {
		m.Connected[userID] = true
	}
	s.mu.Unlock()
}

// TryActivate transitions a pending match to active once both slots are
// filled and both players hold a live battle connection, then sends each
// player their MATCH_FOUND event.
func (s *BattleService) TryActivate(matchID string) {
	s.mu.Lock()

	m, ok := s.matches[matchID]
	if !ok || m.Status != models.MatchStatusPending {
		s.mu.Unlock()
		return
	}

	if _, hasOpen := m.OpenSlotIndex(); hasOpen {
		s.mu.Unlock()
		return
	}

	players := m.PlayerIDs()
	for _, p := range players {
		if !s.notifier.IsOnline(p) {
			s.mu.Unlock()
			return
		}
	}

	m.Status = models.MatchStatusActive
	problemID := m.ProblemID
	s.mu.Unlock()

	problem, ok := s.problems.Get(problemID)
	if !ok {
		s.abortMatch(matchID, problemID)
		return
	}

	logger.Info("Match started", "matchId", matchID, "players", players)

	for i, p := range players {
		opponent := players[1-i]
		s.notifier.Send(p, models.MatchFoundEvent{
			Type:           models.EvtMatchFound,
			MatchID:        matchID,
			Opponent:       opponent,
			Problem:        problem.Summary(),
			Health:         startingHealth,
			OpponentHealth: startingHealth,
		})
	}
}

// SubmitCode judges a submission and applies its damage. The match lock
// is released while the sandbox runs; damage and the win check are applied
// atomically afterwards.
func (s *BattleService) SubmitCode(ctx context.Context, userID, code string) {
	s.mu.Lock()

	matchID, ok := s.playerMatch[userID]
	if !ok {
		s.mu.Unlock()
		logger.Debug("Submission outside of a match ignored", "userId", userID)
		return
	}

	m := s.matches[matchID]
	if m == nil || m.Status != models.MatchStatusActive {
		s.mu.Unlock()
		logger.Debug("Submission for inactive match ignored", "userId", userID, "matchId", matchID)
		return
	}

	problemID := m.ProblemID
	problem, ok := s.problems.Get(problemID)
	if !ok {
		s.mu.Unlock()
		s.abortMatch(matchID, problemID)
		return
	}

	cases := problem.AllTestCases()
	s.mu.Unlock()

	// Judging can take seconds; no lock held here.
	results := s.judge.RunTests(ctx, code, cases)

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	total := len(cases)

	damage := 0
	if passed > 0 {
		damage = passed * damagePerTest
		if passed == total {
			damage += fullSolveBonus
		}
	}

	// Private feedback to the submitter, always, even on partial judge failure.
	s.notifier.Send(userID, models.SubmitResultEvent{
		Type:        models.EvtSubmitResult,
		Passed:      passed,
		Total:       total,
		DamageDealt: damage,
		Results:     results,
	})

	if damage == 0 {
		return
	}

	s.mu.Lock()

	m, ok = s.matches[matchID]
	if !ok || m.Status != models.MatchStatusActive {
		// Match ended while the submission was being judged.
		s.mu.Unlock()
		return
	}

	opponentID, ok := m.OpponentOf(userID)
	if !ok {
		s.mu.Unlock()
		return
	}

	newHealth := m.Health[opponentID] - damage
	if newHealth < 0 {
		newHealth = 0
	}
	m.Health[opponentID] = newHealth

	lethal := newHealth == 0
	var winnerRating, loserRating int
	if lethal {
		// Terminal transition happens under the lock so concurrent lethal
		// submissions produce exactly one game over. Ratings are
		// snapshotted here too: once the lock drops, a disconnect could
		// clear the session cache before the Elo exchange runs.
		m.Status = models.MatchStatusCompleted
		delete(s.matches, matchID)
		for _, p := range m.PlayerIDs() {
			delete(s.playerMatch, p)
		}
		winnerRating = s.ratings.GetRating(userID)
		loserRating = s.ratings.GetRating(opponentID)
	}
	s.mu.Unlock()

	attack := models.AttackEvent{
		Type:      models.EvtAttack,
		Attacker:  userID,
		Damage:    damage,
		Target:    opponentID,
		NewHealth: newHealth,
	}
	s.notifier.Send(userID, attack)
	s.notifier.Send(opponentID, attack)

	logger.Info("Attack landed",
		"matchId", matchID,
		"attacker", userID,
		"damage", damage,
		"targetHealth", newHealth,
	)

	if lethal {
		s.finishMatch(matchID, userID, opponentID, winnerRating, loserRating)
	}
}

// finishMatch applies the Elo exchange and notifies both players. Ratings
// are persisted exactly once per player; guests are skipped by the
// rating service.
func (s *BattleService) finishMatch(matchID, winner, loser string, winnerRating, loserRating int) {
	winnerChange := s.elo.Change(winnerRating, loserRating, true)
	loserChange := s.elo.Change(loserRating, winnerRating, false)

	winnerNew := winnerRating + winnerChange
	loserNew := loserRating + loserChange

	s.ratings.SetRating(winner, winnerNew)
	s.ratings.SetRating(loser, loserNew)

	s.notifier.Send(winner, models.GameOverEvent{
		Type:         models.EvtGameOver,
		Winner:       winner,
		Result:       "VICTORY",
		RatingChange: &winnerChange,
		NewRating:    &winnerNew,
	})
	s.notifier.Send(loser, models.GameOverEvent{
		Type:         models.EvtGameOver,
		Winner:       winner,
		Result:       "DEFEAT",
		RatingChange: &loserChange,
		NewRating:    &loserNew,
	})

	logger.Info("Match completed",
		"matchId", matchID,
		"winner", winner,
		"winnerRating", winnerNew,
		"loserRating", loserNew,
	)
}

// HandleDisconnect forfeits the disconnecting player's match. The
// remaining player wins without any rating consequence.
func (s *BattleService) HandleDisconnect(userID string) {
	s.mu.Lock()

	matchID, ok := s.playerMatch[userID]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.playerMatch, userID)

	m := s.matches[matchID]
	if m == nil {
		s.mu.Unlock()
		return
	}

	m.Status = models.MatchStatusCompleted
	remaining, hasOpponent := m.OpponentOf(userID)
	if hasOpponent {
		delete(s.playerMatch, remaining)
	}
	delete(s.matches, matchID)
	s.mu.Unlock()

	logger.Info("Match forfeited by disconnect",
		"matchId", matchID,
		"userId", userID,
	)

	if hasOpponent {
		s.notifier.Send(remaining, models.GameOverEvent{
			Type:   models.EvtGameOver,
			Winner: remaining,
			Reason: "Opponent disconnected",
		})
	}
}

// abortMatch tears down a match whose problem is missing from the
// registry. Both players get a generic failure notice.
func (s *BattleService) abortMatch(matchID, problemID string) {
	s.mu.Lock()

	m, ok := s.matches[matchID]
	if !ok {
		s.mu.Unlock()
		return
	}

	players := m.PlayerIDs()
	for _, p := range players {
		delete(s.playerMatch, p)
	}
	delete(s.matches, matchID)
	s.mu.Unlock()

	logger.Error("Match aborted: problem missing from registry",
		"matchId", matchID,
		"problem", problemID,
	)

	for _, p := range players {
		s.notifier.Send(p, models.GameOverEvent{
			Type:   models.EvtGameOver,
			Reason: "Match aborted due to an internal error",
		})
	}
}

// InMatch reports whether the identity is currently part of a live match.
func (s *BattleService) InMatch(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.playerMatch[userID]
	return ok
}

// ActiveMatches returns the number of live matches.
func (s *BattleService) ActiveMatches() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.matches)
}
