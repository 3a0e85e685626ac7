package service

import "math"

// EloService Elo 레이팅 계산 서비스
type EloService struct {
	kFactor float64
}

// NewEloService Elo 서비스 생성 (K-factor 30)
func NewEloService() *EloService {
	return &EloService{
		kFactor: 30,
	}
}

// Change returns the rating delta for one player of a finished match.
// won is true for the winner; draws do not exist in battle mode.
func (s *EloService) Change(ownRating, opponentRating int, won bool) int {
	expected := s.expectedScore(float64(ownRating), float64(opponentRating))

	actual := 0.0
	if won {
		actual = 1.0
	}

	return int(math.Round(s.kFactor * (actual - expected)))
}

// expectedScore Elo에 기반한 기대 승률 계산
func (s *EloService) expectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}
