package serve

import "math"

// NormalizedLaunch converts a request's user-facing units to SI and applies
// the physical floors: speed in m/s (≥ MinSpeed) and contact height in
// meters (≥ MinHeight). Rendering code samples trajectories with exactly
// the values the solver used.
func NormalizedLaunch(req Request) (v, h0 float64) {
	v = math.Max(req.SpeedMPH*metersPerSecondPerMPH, MinSpeed)
	h0 = math.Max(req.HeightFeet*metersPerFoot+req.HeightInches*metersPerInch, MinHeight)
	return v, h0
}

// netDistanceFor returns the contact-to-net distance after clamping the
// step-in to its safe range.
func netDistanceFor(req Request) float64 {
	stepIn := req.StepInM
	if stepIn < 0 {
		stepIn = 0
	}
	if stepIn > MaxStepIn {
		stepIn = MaxStepIn
	}
	return BaselineToNet - stepIn
}
