package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/servetrainer/backend/internal/middleware"
	"github.com/servetrainer/backend/internal/models"
	"github.com/servetrainer/backend/internal/serve"
)

func authedPlayerID(c *gin.Context) (int, bool) {
	id, exists := c.Get(middleware.PlayerIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	pid, ok := id.(int)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	return pid, true
}

type presetBody struct {
	Name         string  `json:"name" binding:"required"`
	SpeedMPH     float64 `json:"speed_mph"`
	HeightFeet   float64 `json:"height_feet"`
	HeightInches float64 `json:"height_inches"`
	TargetZone   string  `json:"target_zone"`
	StepInM      float64 `json:"step_in_m"`
	ClearanceCM  float64 `json:"clearance_cm"`
}

func (b *presetBody) validate(c *gin.Context) bool {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" || len(b.Name) > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset name"})
		return false
	}
	if !serve.TargetZone(b.TargetZone).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_zone must be WIDE or T"})
		return false
	}
	return true
}

// ListPresets returns the authenticated player's saved presets
func ListPresets(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := authedPlayerID(c)
		if !ok {
			return
		}

		presets := []models.ServePreset{}
		err := db.Select(&presets, `SELECT * FROM serve_presets WHERE player_id=$1 ORDER BY updated_at DESC`, playerID)
		if err != nil {
			log.Printf("[DB] Failed to list presets for player %d: %v", playerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load presets"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"presets": presets})
	}
}

// CreatePreset saves a new named parameter set
func CreatePreset(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := authedPlayerID(c)
		if !ok {
			return
		}

		var body presetBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if !body.validate(c) {
			return
		}

		var presetID int
		err := db.QueryRowx(`INSERT INTO serve_presets
			(player_id, name, speed_mph, height_feet, height_inches, target_zone, step_in_m, clearance_cm, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW()) RETURNING id`,
			playerID, body.Name, body.SpeedMPH, body.HeightFeet, body.HeightInches,
			body.TargetZone, body.StepInM, body.ClearanceCM).Scan(&presetID)
		if err != nil {
			log.Printf("[DB] Failed to create preset %q for player %d: %v", body.Name, playerID, err)
			c.JSON(http.StatusConflict, gin.H{"error": "Preset name already in use"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": presetID})
	}
}

// UpdatePreset overwrites an existing preset owned by the player
func UpdatePreset(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := authedPlayerID(c)
		if !ok {
			return
		}
		presetID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset id"})
			return
		}

		var body presetBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if !body.validate(c) {
			return
		}

		res, err := db.Exec(`UPDATE serve_presets SET
			name=$1, speed_mph=$2, height_feet=$3, height_inches=$4,
			target_zone=$5, step_in_m=$6, clearance_cm=$7, updated_at=NOW()
			WHERE id=$8 AND player_id=$9`,
			body.Name, body.SpeedMPH, body.HeightFeet, body.HeightInches,
			body.TargetZone, body.StepInM, body.ClearanceCM, presetID, playerID)
		if err != nil {
			log.Printf("[DB] Failed to update preset %d for player %d: %v", presetID, playerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preset"})
			return
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

// DeletePreset removes a preset owned by the player
func DeletePreset(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := authedPlayerID(c)
		if !ok {
			return
		}
		presetID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset id"})
			return
		}

		res, err := db.Exec(`DELETE FROM serve_presets WHERE id=$1 AND player_id=$2`, presetID, playerID)
		if err != nil {
			log.Printf("[DB] Failed to delete preset %d for player %d: %v", presetID, playerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete preset"})
			return
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

// GetSolveHistory returns the player's recent solves, newest first
func GetSolveHistory(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := authedPlayerID(c)
		if !ok {
			return
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		records := []models.SolveRecord{}
		err := db.Select(&records, `SELECT * FROM solve_history
			WHERE player_id=$1 ORDER BY created_at DESC LIMIT $2`, playerID, limit)
		if err != nil && err != sql.ErrNoRows {
			log.Printf("[DB] Failed to load history for player %d: %v", playerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"history": records})
	}
}
