package serve

import (
	"math"
	"testing"
)

func TestSolveWideFirstServe(t *testing.T) {
	// 50 mph, contact at 5'5", half-step in, 20 cm clearance asked.
	sol := Solve(Request{
		SpeedMPH:     50,
		HeightFeet:   5,
		HeightInches: 5,
		Target:       ZoneWide,
		StepInM:      0.5,
		ClearanceCM:  20,
	})

	elevDeg := sol.ElevationRad * 180 / math.Pi
	if elevDeg < 3 || elevDeg > 12 {
		t.Errorf("Elevation out of plausible serve range: %.2f°", elevDeg)
	}
	if sol.ClearanceM < 0.2-marginEpsilon {
		t.Errorf("Clearance below requested margin: %.4f m", sol.ClearanceM)
	}
	if math.Abs(sol.DepthPastNetM-wideTargetDepth) > 0.05 {
		t.Errorf("Landing depth %.3f m, want ≈ %.1f m past net", sol.DepthPastNetM, wideTargetDepth)
	}
	if sol.ClampedToServiceLine {
		t.Error("Serve should not need clamping at 50 mph")
	}
	if !sol.MarginSatisfied {
		t.Error("Requested margin should be satisfied at 50 mph")
	}
	if sol.AzimuthRad <= 0 {
		t.Errorf("Wide serve azimuth should be positive, got %.4f", sol.AzimuthRad)
	}
}

func TestFasterServeNeedsFlatterAngle(t *testing.T) {
	slow := Solve(Request{SpeedMPH: 50, HeightFeet: 5, HeightInches: 5, Target: ZoneT, ClearanceCM: 10})
	fast := Solve(Request{SpeedMPH: 120, HeightFeet: 5, HeightInches: 5, Target: ZoneT, ClearanceCM: 10})

	if fast.ElevationRad >= slow.ElevationRad {
		t.Errorf("120 mph serve should be flatter than 50 mph: fast=%.3f° slow=%.3f°",
			fast.ElevationRad*180/math.Pi, slow.ElevationRad*180/math.Pi)
	}
}

func TestClampIdempotence(t *testing.T) {
	req := Request{SpeedMPH: 50, HeightFeet: 5, HeightInches: 5, Target: ZoneWide, StepInM: 0.5, ClearanceCM: 20}
	sol := Solve(req)
	if sol.ClampedToServiceLine {
		t.Fatal("Expected an unclamped baseline case")
	}

	// The reconciler must return the candidate angle untouched.
	v := math.Max(req.SpeedMPH*metersPerSecondPerMPH, MinSpeed)
	h0 := math.Max(req.HeightFeet*metersPerFoot+req.HeightInches*metersPerInch, MinHeight)
	netDistance := BaselineToNet - req.StepInM
	thetaDepth, _ := angleForDepth(v, h0, netDistance, wideTargetDepth)
	thetaMargin, _ := angleForClearance(v, h0, netDistance, 0.2)

	if candidate := math.Max(thetaDepth, thetaMargin); sol.ElevationRad != candidate {
		t.Errorf("Unclamped elevation should equal candidate exactly: got %v want %v", sol.ElevationRad, candidate)
	}
}

func TestInfeasibleMarginReportsFlags(t *testing.T) {
	// A meter of clearance at 20 mph is physically impossible; the best
	// legal serve must be returned with both flags telling the truth.
	sol := Solve(Request{SpeedMPH: 20, HeightFeet: 5, HeightInches: 5, Target: ZoneT, ClearanceCM: 100})

	if sol.MarginSatisfied {
		t.Error("MarginSatisfied should be false for an impossible clearance")
	}
	if !sol.ClampedToServiceLine {
		t.Error("ClampedToServiceLine should be true for an impossible clearance")
	}
}

func TestLandingNeverBeyondServiceLine(t *testing.T) {
	for _, mph := range []float64{40, 60, 80, 100, 120, 140} {
		for _, margin := range []float64{0, 10, 30, 50} {
			for _, zone := range []TargetZone{ZoneWide, ZoneT} {
				sol := Solve(Request{SpeedMPH: mph, HeightFeet: 6, HeightInches: 0, Target: zone, ClearanceCM: margin})
				if sol.DepthPastNetM > ServiceDepth-serviceSafety+0.01 {
					t.Errorf("Illegal landing depth %.3f m at mph=%.0f margin=%.0f zone=%s (clamped=%v)",
						sol.DepthPastNetM, mph, margin, zone, sol.ClampedToServiceLine)
				}
			}
		}
	}
}

func TestInputSanitization(t *testing.T) {
	base := Request{SpeedMPH: 0, HeightFeet: 0, HeightInches: 0, Target: ZoneT}

	// Speed and height below the physical floors are raised, not rejected.
	floored := Solve(base)
	negative := Solve(Request{SpeedMPH: -30, HeightFeet: -2, Target: ZoneT})
	if floored != negative {
		t.Error("Sub-floor inputs should all collapse to the same floored solution")
	}

	// Step-in is clamped to [0, MaxStepIn].
	deep := Solve(Request{SpeedMPH: 70, HeightFeet: 6, Target: ZoneWide, StepInM: 5})
	max := Solve(Request{SpeedMPH: 70, HeightFeet: 6, Target: ZoneWide, StepInM: MaxStepIn})
	if deep != max {
		t.Error("Step-in beyond MaxStepIn should clamp to MaxStepIn")
	}
	back := Solve(Request{SpeedMPH: 70, HeightFeet: 6, Target: ZoneWide, StepInM: -1})
	zero := Solve(Request{SpeedMPH: 70, HeightFeet: 6, Target: ZoneWide, StepInM: 0})
	if back != zero {
		t.Error("Negative step-in should clamp to zero")
	}
}

func TestAzimuthWiderForWideServe(t *testing.T) {
	wide := Solve(Request{SpeedMPH: 80, HeightFeet: 6, Target: ZoneWide, ClearanceCM: 15})
	tee := Solve(Request{SpeedMPH: 80, HeightFeet: 6, Target: ZoneT, ClearanceCM: 15})

	if wide.AzimuthRad <= tee.AzimuthRad {
		t.Errorf("Wide serve should aim further from center: wide=%.4f t=%.4f", wide.AzimuthRad, tee.AzimuthRad)
	}
}

func TestTargetZoneValid(t *testing.T) {
	if !ZoneWide.Valid() || !ZoneT.Valid() {
		t.Error("Known zones should be valid")
	}
	if TargetZone("BODY").Valid() {
		t.Error("Unknown zone should be invalid")
	}
}
