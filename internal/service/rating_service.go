package service

import (
	"strings"
	"sync"

	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// RatingStore 영속 레이팅 저장소 (users 테이블)
type RatingStore interface {
	GetEloRating(username string) (int, bool, error)
	UpdateEloRating(username string, rating int) error
}

// RatingService caches each connected player's rating for the duration of
// their session. The durable store is touched at exactly two points: load
// at connect, save at match completion.
//
// Guest identities (ids with the "guest" prefix) play with the default
// rating and are never persisted.
type RatingService struct {
	store RatingStore

	mu      sync.RWMutex
	ratings map[string]int
}

func NewRatingService(store RatingStore) *RatingService {
	return &RatingService{
		store:   store,
		ratings: make(map[string]int),
	}
}

// Load 접속 시점에 레이팅을 저장소에서 읽어 세션 캐시에 적재
func (s *RatingService) Load(identity string) int {
	rating := models.DefaultRating

	if !IsGuest(identity) {
		r, found, err := s.lookup(identity)
		if err != nil {
			logger.Error("Failed to load rating", "identity", identity, "error", err)
		} else if found {
			rating = r
		}
	}

	s.mu.Lock()
	s.ratings[identity] = rating
	s.mu.Unlock()

	return rating
}

// GetRating 세션 캐시에서 레이팅 조회 (미접속이면 기본값)
func (s *RatingService) GetRating(identity string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rating, ok := s.ratings[identity]; ok {
		return rating
	}
	return models.DefaultRating
}

// SetRating updates the session cache and persists the new rating, once,
// unless the identity is a guest.
func (s *RatingService) SetRating(identity string, rating int) {
	s.mu.Lock()
	s.ratings[identity] = rating
	s.mu.Unlock()

	if IsGuest(identity) {
		logger.Info("Skipping rating persist for guest", "identity", identity)
		return
	}

	account := s.accountFor(identity)
	if err := s.store.UpdateEloRating(account, rating); err != nil {
		logger.Error("Failed to persist rating",
			"identity", identity,
			"account", account,
			"rating", rating,
			"error", err,
		)
		return
	}

	logger.Info("Rating persisted", "account", account, "rating", rating)
}

// Forget 접속 종료 시 세션 캐시에서 제거
func (s *RatingService) Forget(identity string) {
	s.mu.Lock()
	delete(s.ratings, identity)
	s.mu.Unlock()
}

// accountFor returns the durable account name for an identity, keeping the
// raw identity when the stripped form does not exist in the store.
func (s *RatingService) accountFor(identity string) string {
	account := resolveAccount(identity)
	if _, found, err := s.store.GetEloRating(account); err == nil && !found {
		return identity
	}
	return account
}

// lookup resolves the identity to a durable account and reads its rating,
// falling back to the raw identity when the stripped account is unknown.
func (s *RatingService) lookup(identity string) (int, bool, error) {
	rating, found, err := s.store.GetEloRating(resolveAccount(identity))
	if err != nil || found {
		return rating, found, err
	}
	return s.store.GetEloRating(identity)
}

// IsGuest reports whether the identity is an unregistered guest session.
// Guests play normally but their rating only lives in memory.
func IsGuest(identity string) bool {
	return strings.HasPrefix(identity, "guest")
}

// resolveAccount strips the per-connection suffix from a battle identity
// (e.g. "shrey_1234" -> "shrey") to find the durable account name.
func resolveAccount(identity string) string {
	if idx := strings.LastIndex(identity, "_"); idx > 0 {
		return identity[:idx]
	}
	return identity
}
