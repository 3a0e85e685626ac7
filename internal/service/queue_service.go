package service

import (
	"sync"

	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// QueueService 선입선출 매치메이킹 큐
//
// Ordering is strict FIFO: the two longest-waiting players are always
// paired first. Rating proximity is deliberately not considered.
type QueueService struct {
	mu    sync.Mutex
	queue []string
}

func NewQueueService() *QueueService {
	return &QueueService{}
}

// Enqueue adds the player to the back of the queue. Re-joining while
// already queued is a no-op.
func (s *QueueService) Enqueue(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, queued := range s.queue {
		if queued == userID {
			logger.Debug("Duplicate queue join ignored", "userId", userID)
			return false
		}
	}

	s.queue = append(s.queue, userID)
	logger.Info("Player joined queue", "userId", userID, "queueSize", len(s.queue))
	return true
}

// TryPair pops the two players at the head of the queue. It returns
// false when fewer than two players are waiting.
func (s *QueueService) TryPair() (p1, p2 string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) < 2 {
		return "", "", false
	}

	p1, p2 = s.queue[0], s.queue[1]
	s.queue = s.queue[2:]

	logger.Info("Players paired from queue", "player1", p1, "player2", p2)
	return p1, p2, true
}

// Dequeue removes the player from the queue wherever they are. Safe to
// call for players who are not queued.
func (s *QueueService) Dequeue(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, queued := range s.queue {
		if queued == userID {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			logger.Info("Player left queue", "userId", userID, "queueSize", len(s.queue))
			return
		}
	}
}

// Len 현재 대기 인원
func (s *QueueService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue)
}
