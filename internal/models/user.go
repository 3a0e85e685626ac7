package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultRating 신규 사용자의 초기 Elo 레이팅
const DefaultRating = 1200

type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // JSON에서 숨김
	EloRating    int       `json:"eloRating" db:"elo_rating"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// LeaderboardEntry 리더보드 한 줄
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
}

// ActiveUser 현재 접속 중인 사용자 상태
type ActiveUser struct {
	UserID string `json:"user_id"`
	Status string `json:"status"` // "online" 또는 "battling"
	Rating int    `json:"rating"`
}

// HashPassword 비밀번호 해싱
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword 비밀번호 검증
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
