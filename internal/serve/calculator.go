package serve

import "math"

// TargetZone selects the landing zone of the serve.
type TargetZone string

const (
	ZoneWide TargetZone = "WIDE" // out wide, near the sideline
	ZoneT    TargetZone = "T"    // down the middle, near the center line
)

// Valid reports whether z is one of the two known zones.
func (z TargetZone) Valid() bool {
	return z == ZoneWide || z == ZoneT
}

// Request is the user-facing parameter record for one serve computation.
// Speed is in mph, contact height in feet+inches, clearance in centimeters;
// Solve normalizes everything to SI before doing any physics.
type Request struct {
	SpeedMPH     float64    `json:"speed_mph"`
	HeightFeet   float64    `json:"height_feet"`
	HeightInches float64    `json:"height_inches"`
	Target       TargetZone `json:"target"`
	StepInM      float64    `json:"step_in_m"`
	ClearanceCM  float64    `json:"clearance_cm"`
}

// Solution is the computed serve. Angles in radians, distances in meters.
// There is no error path: out-of-range inputs are floored or clamped and
// the two boolean flags report how the numbers should be read.
type Solution struct {
	ElevationRad         float64 `json:"elevation_rad"`
	AzimuthRad           float64 `json:"azimuth_rad"`
	ClearanceM           float64 `json:"clearance_m"`
	LandingDistanceM     float64 `json:"landing_distance_m"`
	DepthPastNetM        float64 `json:"depth_past_net_m"`
	ClampedToServiceLine bool    `json:"clamped_to_service_line"`
	MarginSatisfied      bool    `json:"margin_satisfied"`
}

// clampState is the terminal state of the angle reconciliation: either the
// candidate angle stood, or it was pulled back to the legal maximum.
type clampState int

const (
	unconstrained clampState = iota
	clampedToLimit
)

type angleOutcome struct {
	state clampState
	theta float64
}

// reconcileAngle clamps the candidate elevation against the steepest angle
// that still lands inside the service box.
func reconcileAngle(candidate, limit float64) angleOutcome {
	if candidate > limit {
		return angleOutcome{state: clampedToLimit, theta: limit}
	}
	return angleOutcome{state: unconstrained, theta: candidate}
}

// Solve computes the elevation and azimuth angles for one serve.
//
// Two angles are solved independently: one hitting the preferred landing
// depth for the target zone, one clearing the net by the requested margin.
// The larger of the two is the candidate, clamped against the
// service-line-limited maximum. Clearance, landing distance and depth are
// then recomputed at the final angle, so a clamped serve reports whatever
// clearance it actually achieves.
func Solve(req Request) Solution {
	v, h0 := NormalizedLaunch(req)
	margin := math.Max(req.ClearanceCM/100, 0)
	netDistance := netDistanceFor(req)

	depth, offset := wideTargetDepth, wideTargetOffset
	if req.Target == ZoneT {
		depth, offset = tTargetDepth, tTargetOffset
	}

	thetaDepth, _ := angleForDepth(v, h0, netDistance, depth)
	thetaMargin, marginBracketed := angleForClearance(v, h0, netDistance, margin)
	thetaMax, _ := angleForDepth(v, h0, netDistance, ServiceDepth-serviceSafety)

	outcome := reconcileAngle(math.Max(thetaDepth, thetaMargin), thetaMax)
	if !marginBracketed {
		// The requested clearance is unreachable at any angle. Pin the
		// serve at the legal maximum; the recomputed clearance below and
		// the flags tell the caller how far short it falls.
		outcome = angleOutcome{state: clampedToLimit, theta: thetaMax}
	}

	landing := LandingDistance(v, outcome.theta, h0)
	clearance := Height(v, outcome.theta, h0, netDistance) - NetHeight

	// Cap the horizontal reference so the azimuth stays representative
	// even when the trajectory overshoots the box.
	reach := math.Min(landing, netDistance+ServiceDepth-serviceSafety)

	return Solution{
		ElevationRad:         outcome.theta,
		AzimuthRad:           math.Atan2(offset, reach),
		ClearanceM:           clearance,
		LandingDistanceM:     landing,
		DepthPastNetM:        landing - netDistance,
		ClampedToServiceLine: outcome.state == clampedToLimit,
		MarginSatisfied:      clearance >= margin-marginEpsilon,
	}
}
