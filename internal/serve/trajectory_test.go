package serve

import (
	"math"
	"testing"
)

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

func TestHeightAtZeroEqualsContactHeight(t *testing.T) {
	speeds := []float64{15, 22.35, 30, 45}
	angles := []float64{-15, -5, 0, 4, 12, 30}
	heights := []float64{1.2, 1.651, 2.0, 2.5}

	for _, v := range speeds {
		for _, deg := range angles {
			for _, h0 := range heights {
				z := Height(v, degrees(deg), h0, 0)
				if z != h0 {
					t.Errorf("Height(v=%.1f, theta=%.0f°, h0=%.2f, x=0) = %v, want exactly %v", v, deg, h0, z, h0)
				}
			}
		}
	}
}

func TestLandingRoundTrip(t *testing.T) {
	speeds := []float64{15, 20, 25}
	angles := []float64{-15, -5, 0, 5, 15, 30}
	heights := []float64{1.5, 2.0, 2.5}

	for _, v := range speeds {
		for _, deg := range angles {
			for _, h0 := range heights {
				theta := degrees(deg)
				landing := LandingDistance(v, theta, h0)
				if landing > maxFlightDistance-0.1 {
					// Bracket-limited flight; round trip is undefined here.
					continue
				}
				z := Height(v, theta, h0, landing)
				if math.Abs(z) > 1e-3 {
					t.Errorf("Height at landing point not zero: v=%.1f theta=%.0f° h0=%.2f landing=%.4f z=%.6f", v, deg, h0, landing, z)
				}
			}
		}
	}
}

func TestLandingMonotonicInAngle(t *testing.T) {
	const v, h0 = 20.0, 2.0
	prev := -1.0
	for deg := -20.0; deg <= 35.0; deg += 2.5 {
		landing := LandingDistance(v, degrees(deg), h0)
		if landing <= prev {
			t.Errorf("Landing distance not strictly increasing at theta=%.1f°: prev=%.4f cur=%.4f", deg, prev, landing)
		}
		prev = landing
	}
}

func TestSteepDownwardAngleLandsImmediately(t *testing.T) {
	// A serve angled sharply into the ground converges toward x=0.
	landing := LandingDistance(20, degrees(-80), 1.5)
	if landing > 1.5 {
		t.Errorf("Steep downward serve should land almost immediately, got %.3f m", landing)
	}
}

func TestSampleTrajectory(t *testing.T) {
	const v, h0 = 22.35, 1.651
	theta := degrees(5)
	landing := LandingDistance(v, theta, h0)

	samples := SampleTrajectory(v, theta, h0, landing, 160)
	if len(samples) != 160 {
		t.Fatalf("Expected 160 samples, got %d", len(samples))
	}
	if samples[0].X != 0 || samples[0].Z != h0 {
		t.Errorf("First sample should be (0, h0): got (%.4f, %.4f)", samples[0].X, samples[0].Z)
	}
	if math.Abs(samples[len(samples)-1].X-landing) > 1e-9 {
		t.Errorf("Last sample x should equal maxX: got %.6f want %.6f", samples[len(samples)-1].X, landing)
	}
	for i, s := range samples {
		if s.Z < 0 {
			t.Errorf("Sample %d has negative height %.4f", i, s.Z)
		}
	}
}

func TestSampleTrajectoryMinimumPoints(t *testing.T) {
	samples := SampleTrajectory(20, degrees(5), 1.8, 15, 1)
	if len(samples) != 2 {
		t.Errorf("Sample count below 2 should be raised to 2, got %d", len(samples))
	}
}
