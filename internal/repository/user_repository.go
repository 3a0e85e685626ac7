package repository

import (
	"database/sql"
	"fmt"

	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/pkg/database"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 새 사용자 생성 (초기 레이팅 1200)
func (r *UserRepository) Create(username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, elo_rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, elo_rating, created_at, updated_at
	`

	user := &models.User{}
	err := r.db.QueryRow(query, username, email, passwordHash, models.DefaultRating).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.EloRating,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindByEmail 이메일로 사용자 찾기
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	return r.findOne(`
		SELECT id, username, email, password_hash, elo_rating, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

// FindByUsername 사용자명으로 찾기
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	return r.findOne(`
		SELECT id, username, email, password_hash, elo_rating, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username)
}

// FindByID ID로 사용자 찾기
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	return r.findOne(`
		SELECT id, username, email, password_hash, elo_rating, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) findOne(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.EloRating,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // 사용자 없음
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetEloRating 사용자명으로 레이팅 조회
func (r *UserRepository) GetEloRating(username string) (int, bool, error) {
	query := `SELECT elo_rating FROM users WHERE username = $1`

	var rating int
	err := r.db.QueryRow(query, username).Scan(&rating)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get rating: %w", err)
	}

	return rating, true, nil
}

// UpdateEloRating 레이팅 갱신 (멱등)
func (r *UserRepository) UpdateEloRating(username string, rating int) error {
	query := `
		UPDATE users
		SET elo_rating = $1, updated_at = NOW()
		WHERE username = $2
	`

	_, err := r.db.Exec(query, rating, username)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	return nil
}

// TopByRating 레이팅 상위 N명 조회
func (r *UserRepository) TopByRating(limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT username, elo_rating
		FROM users
		ORDER BY elo_rating DESC, created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0, limit)
	rank := 1
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.Username, &entry.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entry.Rank = rank
		rank++
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard rows: %w", err)
	}

	return entries, nil
}
