package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusActive    MatchStatus = "active"
	MatchStatusCompleted MatchStatus = "completed"
)

// PlayerSlot is one of the two player positions in a match. A slot is
// either filled with a user identity or reserved as an open invite slot.
type PlayerSlot struct {
	UserID string
	Open   bool
}

// FilledSlot 사용자로 채워진 슬롯
func FilledSlot(userID string) PlayerSlot {
	return PlayerSlot{UserID: userID}
}

// OpenSlot 초대 링크용 예약 슬롯
func OpenSlot() PlayerSlot {
	return PlayerSlot{Open: true}
}

// Match 진행 중인 1v1 배틀의 전체 상태
type Match struct {
	ID        string
	Players   [2]PlayerSlot
	Health    map[string]int // 플레이어별 체력, 0..100
	ProblemID string
	Status    MatchStatus
	Connected map[string]bool // 배틀 소켓에 접속한 플레이어
	CreatedAt time.Time
}

// IsPlayer reports whether the identity occupies one of the two slots.
func (m *Match) IsPlayer(userID string) bool {
	for _, slot := range m.Players {
		if !slot.Open && slot.UserID == userID {
			return true
		}
	}
	return false
}

// OpponentOf returns the other player's identity. The second return is
// false when the opponent slot is still an open invite slot.
func (m *Match) OpponentOf(userID string) (string, bool) {
	for _, slot := range m.Players {
		if slot.Open || slot.UserID == userID {
			continue
		}
		return slot.UserID, true
	}
	return "", false
}

// OpenSlotIndex returns the index of the open slot, if any.
func (m *Match) OpenSlotIndex() (int, bool) {
	for i, slot := range m.Players {
		if slot.Open {
			return i, true
		}
	}
	return -1, false
}

// PlayerIDs returns the identities of the filled slots.
func (m *Match) PlayerIDs() []string {
	ids := make([]string, 0, 2)
	for _, slot := range m.Players {
		if !slot.Open {
			ids = append(ids, slot.UserID)
		}
	}
	return ids
}
