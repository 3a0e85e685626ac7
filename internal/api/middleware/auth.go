package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shrey0196/beatcoders-dev/internal/config"
	jwtutil "github.com/shrey0196/beatcoders-dev/pkg/jwt"
)

// Auth REST 전용 JWT 인증 미들웨어
//
// The websocket endpoints stay outside this guard; battle identities
// (guest prefix, connection suffix) are resolved by the rating layer.
func Auth(cfg *config.Config) gin.HandlerFunc {
	jwtManager := jwtutil.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "Bearer token required")
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			if errors.Is(err, jwtutil.ErrExpiredToken) {
				unauthorized(c, "Token expired")
				return
			}
			unauthorized(c, "Invalid token")
			return
		}

		// 이후 핸들러에서 사용할 사용자 정보
		c.Set("userId", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// bearerToken "Bearer <token>" 헤더에서 토큰 추출
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": msg,
	})
}
