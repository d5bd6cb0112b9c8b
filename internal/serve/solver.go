package serve

import "math"

// Root-finding for elevation angles. Both angle solvers share one
// bisection-with-expanding-bracket routine parameterized by a residual
// function; the residual must be monotonically increasing in theta over
// the search range (landing distance and height-at-net both are, for the
// supported speed/height domain).

const (
	bracketLow  = -20 * math.Pi / 180
	bracketHigh = 35 * math.Pi / 180
	bracketStep = 5 * math.Pi / 180

	maxBracketExpansions = 40
	angleIterations      = 80
)

// solveAngle returns the theta at which residual crosses zero. The initial
// bracket [bracketLow, bracketHigh] is widened symmetrically until the
// residual changes sign across it, then bisected for a fixed iteration
// budget. The second return value reports whether a sign change was found;
// when it is false the returned angle is the bracket endpoint with the
// smaller residual magnitude, a best-effort answer rather than a root.
func solveAngle(residual func(theta float64) float64) (float64, bool) {
	lo, hi := bracketLow, bracketHigh
	flo, fhi := residual(lo), residual(hi)

	for i := 0; i < maxBracketExpansions && flo*fhi > 0; i++ {
		lo -= bracketStep
		hi += bracketStep
		flo, fhi = residual(lo), residual(hi)
	}

	if flo*fhi > 0 {
		if math.Abs(flo) < math.Abs(fhi) {
			return lo, false
		}
		return hi, false
	}

	for i := 0; i < angleIterations; i++ {
		mid := 0.5 * (lo + hi)
		if sameSign(residual(mid), flo) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), true
}

func sameSign(a, b float64) bool {
	return (a < 0) == (b < 0)
}

// angleForDepth returns the elevation angle whose landing point is depth
// meters past the net, and whether a true root was bracketed.
func angleForDepth(v, h0, netDistance, depth float64) (float64, bool) {
	target := netDistance + depth
	return solveAngle(func(theta float64) float64 {
		return LandingDistance(v, theta, h0) - target
	})
}

// angleForClearance returns the elevation angle that passes exactly margin
// meters above the net, and whether a true root was bracketed. A false
// second return means no angle at all reaches the requested height over
// the net: the margin is physically infeasible at this speed and height.
func angleForClearance(v, h0, netDistance, margin float64) (float64, bool) {
	target := NetHeight + margin
	return solveAngle(func(theta float64) float64 {
		return Height(v, theta, h0, netDistance) - target
	})
}
