package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shrey0196/beatcoders-dev/internal/api/handlers"
	"github.com/shrey0196/beatcoders-dev/internal/api/middleware"
	"github.com/shrey0196/beatcoders-dev/internal/config"
	"github.com/shrey0196/beatcoders-dev/internal/protocol"
	"github.com/shrey0196/beatcoders-dev/internal/repository"
	"github.com/shrey0196/beatcoders-dev/internal/service"
	"github.com/shrey0196/beatcoders-dev/internal/websocket"
	"github.com/shrey0196/beatcoders-dev/pkg/cache"
	"github.com/shrey0196/beatcoders-dev/pkg/database"
	"github.com/shrey0196/beatcoders-dev/pkg/judge"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// SetupRouter API 라우터 설정
func SetupRouter(cfg *config.Config, db *database.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 전역 미들웨어
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Judge 클라이언트 초기화 (HTTP 샌드박스)
	judgeClient := judge.NewClient(cfg.JudgeURL, cfg.JudgeTimeout)

	// Leaderboard 캐시 초기화 (Redis 불가 시 캐시 없이 동작)
	leaderboardCache, err := cache.New(cfg.RedisURL, "leaderboard", cfg.LeaderboardTTL)
	if err != nil {
		logger.Warn("Leaderboard cache disabled", "error", err)
		leaderboardCache = nil
	}

	// Repository 초기화
	userRepo := repository.NewUserRepository(db)

	// Service 초기화
	eloService := service.NewEloService()
	userService := service.NewUserService(userRepo)
	ratingService := service.NewRatingService(userRepo)
	problemRegistry := service.NewProblemRegistry()
	queueService := service.NewQueueService()

	// WebSocket Hub 초기화 (엔드포인트별 하나씩)
	battleHub := websocket.NewHub("battle")
	lobbyHub := websocket.NewHub("lobby")

	battleService := service.NewBattleService(
		problemRegistry,
		judgeClient,
		ratingService,
		eloService,
		battleHub,
	)
	lobbyService := service.NewLobbyService(lobbyHub, battleService)

	// 메시지 라우터 연결 후 Hub 시작
	battleHub.SetHandler(protocol.NewBattleRouter(queueService, battleService, ratingService))
	lobbyHub.SetHandler(protocol.NewLobbyRouter(lobbyService))
	go battleHub.Run()
	go lobbyHub.Run()

	// Handler 초기화
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	battleHandler := handlers.NewBattleHandler(
		lobbyHub,
		battleService,
		ratingService,
		userService,
		leaderboardCache,
		cfg.LeaderboardLimit,
	)
	wsHandler := handlers.NewWebSocketHandler(battleHub, lobbyHub)

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// WebSocket endpoints (경로 파라미터로 식별)
	router.GET("/ws/battle/:userId", wsHandler.HandleBattle)
	router.GET("/ws/lobby/:userId", wsHandler.HandleLobby)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
		}

		// Battle routes
		battle := v1.Group("/battle")
		battle.Use(middleware.GeneralAPIRateLimit())
		{
			battle.GET("/active_users", battleHandler.ActiveUsers)
		}

		// Leaderboard
		v1.GET("/leaderboard", middleware.LeaderboardRateLimit(), battleHandler.Leaderboard)

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.Auth(cfg))
		{
			users.GET("/me", userHandler.GetCurrentUser)
		}
	}

	return router
}
