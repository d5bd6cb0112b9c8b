package serve

import "math"

// Court geometry and physics constants for a regulation tennis court.
// All distances in meters, speeds in meters per second, angles in radians.

const (
	Gravity = 9.81 // m/s^2

	// BaselineToNet is the horizontal distance from the baseline to the net.
	BaselineToNet = 11.89

	// ServiceDepth is the distance from the net to the service line. A legal
	// serve must land at most this far past the net.
	ServiceDepth = 6.40

	// NetHeight is the net height at the center strap.
	NetHeight = 0.914

	// CourtHalfWidth is half the singles court width.
	CourtHalfWidth = 4.115

	// serviceSafety keeps the legal-maximum angle a touch inside the
	// service line so rounding never puts the landing point on the line.
	serviceSafety = 0.05

	// Input floors. Values below these are raised, not rejected; the root
	// searches become ill-conditioned for slower or lower contact points.
	MinSpeed  = 5.0 // m/s
	MinHeight = 1.2 // m

	// MaxStepIn bounds how far past the baseline the contact point may be.
	// Step-in at or beyond BaselineToNet would break the geometry entirely.
	MaxStepIn = 1.2

	// Preferred landing depths past the net for each target zone. Deep
	// placement targets, not physical constraints.
	wideTargetDepth = 5.8
	tTargetDepth    = 5.4

	// Lateral aim offsets from the center line for each target zone.
	tTargetOffset  = 0.5
	sidelineSafety = 0.5

	// marginEpsilon absorbs bisection residue when checking whether the
	// requested net clearance was achieved.
	marginEpsilon = 1e-6
)

// wideTargetOffset aims near the sideline but never inside the safety band.
var wideTargetOffset = math.Min(3.85, CourtHalfWidth-sidelineSafety)

// Unit conversions for the user-facing input record.
const (
	metersPerSecondPerMPH = 0.44704
	metersPerFoot         = 0.3048
	metersPerInch         = 0.0254
)
