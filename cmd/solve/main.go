package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/servetrainer/backend/internal/serve"
)

// Offline solver: computes one serve from flags and prints it in
// presentation units (degrees and centimeters), no server required.
func main() {
	speed := flag.Float64("speed", 90, "serve speed in mph")
	heightFeet := flag.Float64("height-feet", 6, "contact height, feet component")
	heightInches := flag.Float64("height-inches", 0, "contact height, inches component")
	target := flag.String("target", "T", "target zone: WIDE or T")
	stepIn := flag.Float64("step-in", 0, "step-in distance past the baseline in meters")
	clearance := flag.Float64("clearance", 15, "desired net clearance in centimeters")
	flag.Parse()

	zone := serve.TargetZone(*target)
	if !zone.Valid() {
		log.Fatalf("Unknown target zone %q (want WIDE or T)", *target)
	}

	sol := serve.Solve(serve.Request{
		SpeedMPH:     *speed,
		HeightFeet:   *heightFeet,
		HeightInches: *heightInches,
		Target:       zone,
		StepInM:      *stepIn,
		ClearanceCM:  *clearance,
	})

	toDeg := 180 / math.Pi
	fmt.Printf("Elevation:     %+.2f°\n", sol.ElevationRad*toDeg)
	fmt.Printf("Azimuth:       %+.2f°\n", sol.AzimuthRad*toDeg)
	fmt.Printf("Net clearance: %.1f cm\n", sol.ClearanceM*100)
	fmt.Printf("Landing:       %.2f m from contact (%.2f m past net)\n", sol.LandingDistanceM, sol.DepthPastNetM)
	if sol.ClampedToServiceLine {
		fmt.Println("Note: angle clamped to keep the serve inside the service box")
	}
	if !sol.MarginSatisfied {
		fmt.Println("Note: requested clearance is not achievable with these parameters")
	}
}
