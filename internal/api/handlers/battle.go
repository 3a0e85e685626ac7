package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/internal/service"
	"github.com/shrey0196/beatcoders-dev/internal/websocket"
	"github.com/shrey0196/beatcoders-dev/pkg/cache"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

const leaderboardCacheKey = "top"

// BattleHandler 배틀 관련 REST 엔드포인트 (접속자 목록, 리더보드)
type BattleHandler struct {
	lobbyHub    *websocket.Hub
	battle      *service.BattleService
	ratings     *service.RatingService
	userService *service.UserService
	cache       *cache.Cache
	limit       int
}

func NewBattleHandler(
	lobbyHub *websocket.Hub,
	battle *service.BattleService,
	ratings *service.RatingService,
	userService *service.UserService,
	leaderboardCache *cache.Cache,
	leaderboardLimit int,
) *BattleHandler {
	return &BattleHandler{
		lobbyHub:    lobbyHub,
		battle:      battle,
		ratings:     ratings,
		userService: userService,
		cache:       leaderboardCache,
		limit:       leaderboardLimit,
	}
}

// ActiveUsers 현재 로비 접속자 목록과 상태
func (h *BattleHandler) ActiveUsers(c *gin.Context) {
	users := h.lobbyHub.OnlineUsers()

	active := make([]models.ActiveUser, 0, len(users))
	for _, userID := range users {
		status := "online"
		if h.battle.InMatch(userID) {
			status = "battling"
		}

		active = append(active, models.ActiveUser{
			UserID: userID,
			Status: status,
			Rating: h.ratings.GetRating(userID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": active,
		"total": len(active),
	})
}

// Leaderboard 상위 레이팅 목록 (Redis 캐시, 미스 시 DB 조회)
func (h *BattleHandler) Leaderboard(c *gin.Context) {
	ctx := c.Request.Context()

	var entries []models.LeaderboardEntry
	if h.cache != nil {
		err := h.cache.GetJSON(ctx, leaderboardCacheKey, &entries)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"leaderboard": entries,
				"total":       len(entries),
				"cached":      true,
			})
			return
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Leaderboard cache read failed", "error", err)
		}
	}

	entries, err := h.userService.Leaderboard(h.limit)
	if err != nil {
		logger.Error("Failed to load leaderboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get leaderboard",
		})
		return
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, leaderboardCacheKey, entries); err != nil {
			logger.Warn("Leaderboard cache write failed", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"total":       len(entries),
		"cached":      false,
	})
}
