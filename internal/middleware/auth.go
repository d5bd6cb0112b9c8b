package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/servetrainer/backend/internal/config"
)

// PlayerIDKey is the gin context key holding the authenticated player's id.
const PlayerIDKey = "player_id"

func parseBearerToken(c *gin.Context, secret string) (int, error) {
	authz := c.GetHeader("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return 0, fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(strings.TrimPrefix(authz, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, fmt.Errorf("missing subject claim")
	}
	return int(sub), nil
}

// AuthRequired rejects requests without a valid player token.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, err := parseBearerToken(c, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Set(PlayerIDKey, playerID)
		c.Next()
	}
}

// AuthOptional attaches the player id when a valid token is present but
// lets anonymous requests through. Used by the solve endpoints so history
// can be attributed without requiring an account.
func AuthOptional(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if playerID, err := parseBearerToken(c, cfg.JWTSecret); err == nil {
			c.Set(PlayerIDKey, playerID)
		}
		c.Next()
	}
}
