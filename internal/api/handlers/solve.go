package handlers

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/servetrainer/backend/internal/config"
	"github.com/servetrainer/backend/internal/middleware"
	"github.com/servetrainer/backend/internal/serve"
)

// solveCacheKey derives a stable cache key from the full parameter record.
func solveCacheKey(req serve.Request) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%.4f|%.4f|%.4f|%s|%.4f|%.4f",
		req.SpeedMPH, req.HeightFeet, req.HeightInches, req.Target, req.StepInM, req.ClearanceCM)))
	return "solve:" + hex.EncodeToString(h[:16])
}

func bindSolveRequest(c *gin.Context) (serve.Request, bool) {
	var req serve.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return req, false
	}
	if !req.Target.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target must be WIDE or T"})
		return req, false
	}
	return req, true
}

// checkSolveRateLimit applies a per-IP limit using Redis SetNX. Redis being
// down never blocks a solve.
func checkSolveRateLimit(c *gin.Context, rdb *redis.Client, cfg *config.Config) bool {
	if rdb == nil || cfg.SolveRateLimitSeconds <= 0 {
		return true
	}
	ctx := context.Background()
	key := fmt.Sprintf("solve_rate:%s", c.ClientIP())
	ok, err := rdb.SetNX(ctx, key, "1", time.Duration(cfg.SolveRateLimitSeconds)*time.Second).Result()
	if err != nil {
		return true
	}
	if !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Solve rate limit exceeded"})
		return false
	}
	return true
}

// recordSolve appends the computed serve to solve_history. Best-effort:
// failures are logged and never surfaced to the caller.
func recordSolve(c *gin.Context, db *sqlx.DB, req serve.Request, sol serve.Solution) {
	if db == nil {
		return
	}
	playerID := sql.NullInt64{}
	if id, exists := c.Get(middleware.PlayerIDKey); exists {
		if pid, ok := id.(int); ok {
			playerID = sql.NullInt64{Int64: int64(pid), Valid: true}
		}
	}
	_, err := db.Exec(`INSERT INTO solve_history
		(player_id, speed_mph, height_feet, height_inches, target_zone, step_in_m, clearance_cm,
		 elevation_rad, azimuth_rad, clearance_m, landing_m, depth_m, clamped, margin_satisfied, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW())`,
		playerID, req.SpeedMPH, req.HeightFeet, req.HeightInches, string(req.Target), req.StepInM, req.ClearanceCM,
		sol.ElevationRad, sol.AzimuthRad, sol.ClearanceM, sol.LandingDistanceM, sol.DepthPastNetM,
		sol.ClampedToServiceLine, sol.MarginSatisfied)
	if err != nil {
		log.Printf("[DB] Failed to record solve: %v", err)
	}
}

// SolveServe computes the serve angles for one parameter record.
// Results are cached in Redis keyed by the parameter hash.
func SolveServe(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindSolveRequest(c)
		if !ok {
			return
		}
		if !checkSolveRateLimit(c, rdb, cfg) {
			return
		}

		ctx := context.Background()
		key := solveCacheKey(req)
		if rdb != nil {
			if cached, err := rdb.Get(ctx, key).Result(); err == nil {
				var sol serve.Solution
				if err := json.Unmarshal([]byte(cached), &sol); err == nil {
					recordSolve(c, db, req, sol)
					c.JSON(http.StatusOK, sol)
					return
				}
			}
		}

		sol := serve.Solve(req)

		if rdb != nil {
			if data, err := json.Marshal(sol); err == nil {
				rdb.Set(ctx, key, data, time.Duration(cfg.SolveCacheTTLSeconds)*time.Second)
			}
		}

		recordSolve(c, db, req, sol)
		c.JSON(http.StatusOK, sol)
	}
}

// TrajectoryPreview solves the serve and returns sampled flight-path
// points for rendering, from contact to the landing point.
func TrajectoryPreview(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			serve.Request
			Points int `json:"points"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if !body.Target.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target must be WIDE or T"})
			return
		}

		points := body.Points
		if points <= 0 {
			points = 160
		}
		if points > cfg.MaxTrajectoryPoints {
			points = cfg.MaxTrajectoryPoints
		}

		sol := serve.Solve(body.Request)
		v, h0 := serve.NormalizedLaunch(body.Request)
		samples := serve.SampleTrajectory(v, sol.ElevationRad, h0, sol.LandingDistanceM, points)

		c.JSON(http.StatusOK, gin.H{
			"solution": sol,
			"samples":  samples,
		})
	}
}
