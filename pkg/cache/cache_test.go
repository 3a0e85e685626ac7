package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCache 테스트용 캐시 설정
// 주의: 실제 Redis 서버가 필요합니다 (localhost:6379)
func setupCache(t *testing.T, ttl time.Duration) *Cache {
	c, err := New("redis://localhost:6379/15", "test:cache:", ttl)
	require.NoError(t, err)

	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		t.Skipf("Redis server not available: %v", err)
	}

	return c
}

type leaderboardRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
}

func TestCache_SetGetJSON(t *testing.T) {
	c := setupCache(t, time.Minute)
	defer c.Close()

	ctx := context.Background()
	key := "leaderboard"
	defer c.Delete(ctx, key)

	want := []leaderboardRow{
		{Rank: 1, Username: "shrey", Rating: 1315},
		{Rank: 2, Username: "dev", Rating: 1240},
	}

	require.NoError(t, c.SetJSON(ctx, key, want))

	var got []leaderboardRow
	require.NoError(t, c.GetJSON(ctx, key, &got))
	assert.Equal(t, want, got)
}

func TestCache_Miss(t *testing.T) {
	c := setupCache(t, time.Minute)
	defer c.Close()

	var got []leaderboardRow
	err := c.GetJSON(context.Background(), "does-not-exist", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := setupCache(t, time.Second)
	defer c.Close()

	ctx := context.Background()
	key := "expiring"
	defer c.Delete(ctx, key)

	require.NoError(t, c.SetJSON(ctx, key, leaderboardRow{Rank: 1, Username: "a", Rating: 1200}))

	var row leaderboardRow
	require.NoError(t, c.GetJSON(ctx, key, &row))

	time.Sleep(1100 * time.Millisecond)

	err := c.GetJSON(ctx, key, &row)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
