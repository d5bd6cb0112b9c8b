package serve

import "math"

// Height returns the ball height after traveling x meters horizontally,
// for launch speed v (m/s), elevation angle theta (radians, may be
// negative) and contact height h0 (m). Gravity only: no drag, no spin.
// Every other computation in this package derives its geometry from here.
func Height(v, theta, h0, x float64) float64 {
	c := math.Cos(theta)
	return h0 + x*math.Tan(theta) - Gravity*x*x/(2*v*v*c*c)
}

const (
	// maxFlightDistance bounds the landing search. No serve in the
	// supported speed/height domain carries anywhere near this far.
	maxFlightDistance = 50.0

	landingIterations = 64
)

// LandingDistance returns the horizontal distance at which the trajectory
// first returns to ground level. Bisection over [0, maxFlightDistance];
// the trajectory starts above zero and is unimodal over the operating
// angle range, so narrowing toward the positive side converges on the
// first zero crossing. An angle so steep the ball drops immediately
// converges to ~0, which callers treat as a degenerate serve.
func LandingDistance(v, theta, h0 float64) float64 {
	lo, hi := 0.0, maxFlightDistance
	for i := 0; i < landingIterations; i++ {
		mid := 0.5 * (lo + hi)
		if Height(v, theta, h0, mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// Sample is one point of a sampled trajectory, for rendering only.
type Sample struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// SampleTrajectory evaluates the flight path at n evenly spaced points
// from x=0 to maxX inclusive. Purely for display; nothing in the solver
// pipeline consumes samples.
func SampleTrajectory(v, theta, h0, maxX float64, n int) []Sample {
	if n < 2 {
		n = 2
	}
	samples := make([]Sample, n)
	step := maxX / float64(n-1)
	for i := 0; i < n; i++ {
		x := float64(i) * step
		z := Height(v, theta, h0, x)
		if z < 0 {
			z = 0
		}
		samples[i] = Sample{X: x, Z: z}
	}
	return samples
}
