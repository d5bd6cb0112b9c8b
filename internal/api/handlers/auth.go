package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"
	"github.com/servetrainer/backend/internal/config"
	"github.com/servetrainer/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func issueToken(cfg *config.Config, playerID int) (string, error) {
	claims := jwt.MapClaims{
		"sub": playerID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(cfg.SessionTimeoutMin) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// Register creates a player account and returns a session token
func Register(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email       string `json:"email" binding:"required"`
			Password    string `json:"password" binding:"required"`
			DisplayName string `json:"display_name,omitempty"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !emailPattern.MatchString(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[AUTH] Failed to hash password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		displayName := strings.TrimSpace(req.DisplayName)
		if len(displayName) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name too long"})
			return
		}

		var playerID int
		err = db.QueryRowx(`INSERT INTO players (email, password_hash, display_name, created_at)
			VALUES ($1,$2,$3,NOW()) RETURNING id`, email, string(hash), displayName).Scan(&playerID)
		if err != nil {
			// Unique violation on email is the common case here
			log.Printf("[AUTH] Failed to create player %s: %v", email, err)
			c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
			return
		}

		token, err := issueToken(cfg, playerID)
		if err != nil {
			log.Printf("[AUTH] Failed to issue token for player %d: %v", playerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"token": token, "player_id": playerID})
	}
}

// Login verifies credentials and returns a session token
func Login(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		var player models.Player
		if err := db.Get(&player, `SELECT * FROM players WHERE email=$1`, email); err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Printf("[AUTH] Login lookup failed for %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if _, err := db.Exec(`UPDATE players SET last_active=NOW() WHERE id=$1`, player.ID); err != nil {
			log.Printf("[DB] Failed to update last_active for player %d: %v", player.ID, err)
		}

		token, err := issueToken(cfg, player.ID)
		if err != nil {
			log.Printf("[AUTH] Failed to issue token for player %d: %v", player.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "player_id": player.ID, "display_name": player.DisplayName})
	}
}
