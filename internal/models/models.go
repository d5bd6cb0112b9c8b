package models

import (
	"database/sql"
	"time"
)

// Player represents a registered user of the serve trainer.
type Player struct {
	ID           int          `db:"id" json:"id"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	DisplayName  string       `db:"display_name" json:"display_name"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	LastActive   sql.NullTime `db:"last_active" json:"last_active,omitempty"`
}

// ServePreset is a saved set of serve parameters a player can recall.
type ServePreset struct {
	ID           int       `db:"id" json:"id"`
	PlayerID     int       `db:"player_id" json:"player_id"`
	Name         string    `db:"name" json:"name"`
	SpeedMPH     float64   `db:"speed_mph" json:"speed_mph"`
	HeightFeet   float64   `db:"height_feet" json:"height_feet"`
	HeightInches float64   `db:"height_inches" json:"height_inches"`
	TargetZone   string    `db:"target_zone" json:"target_zone"`
	StepInM      float64   `db:"step_in_m" json:"step_in_m"`
	ClearanceCM  float64   `db:"clearance_cm" json:"clearance_cm"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SolveRecord is one computed serve, kept for a player's history view.
type SolveRecord struct {
	ID              int           `db:"id" json:"id"`
	PlayerID        sql.NullInt64 `db:"player_id" json:"player_id,omitempty"`
	SpeedMPH        float64       `db:"speed_mph" json:"speed_mph"`
	HeightFeet      float64       `db:"height_feet" json:"height_feet"`
	HeightInches    float64       `db:"height_inches" json:"height_inches"`
	TargetZone      string        `db:"target_zone" json:"target_zone"`
	StepInM         float64       `db:"step_in_m" json:"step_in_m"`
	ClearanceCM     float64       `db:"clearance_cm" json:"clearance_cm"`
	ElevationRad    float64       `db:"elevation_rad" json:"elevation_rad"`
	AzimuthRad      float64       `db:"azimuth_rad" json:"azimuth_rad"`
	ClearanceM      float64       `db:"clearance_m" json:"clearance_m"`
	LandingM        float64       `db:"landing_m" json:"landing_m"`
	DepthM          float64       `db:"depth_m" json:"depth_m"`
	Clamped         bool          `db:"clamped" json:"clamped"`
	MarginSatisfied bool          `db:"margin_satisfied" json:"margin_satisfied"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}
