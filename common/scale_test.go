package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestScaleRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		screen cp.Vector
	}{
		{"origin", cp.Vector{}},
		{"muzzle", cp.Vector{X: 50, Y: 550}},
		{"window_corner", cp.Vector{X: 800, Y: 600}},
		{"negative", cp.Vector{X: -13.5, Y: -0.25}},
		{"fractional", cp.Vector{X: 123.456, Y: 789.012}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sim := ToSim(c.screen)
			again := ToSim(ToScreen(sim))
			if math.Abs(again.X-sim.X) > 1e-9 || math.Abs(again.Y-sim.Y) > 1e-9 {
				t.Fatalf("round trip drifted: %v -> %v", sim, again)
			}
		})
	}
}

func TestScaleFactor(t *testing.T) {
	got := ToSim(cp.Vector{X: 30, Y: 600})
	if got.X != 1 || got.Y != 20 {
		t.Fatalf("ToSim = %v, want (1, 20)", got)
	}
	if l := ToScreenLength(0.35); math.Abs(l-10.5) > 1e-9 {
		t.Fatalf("ToScreenLength(0.35) = %f, want 10.5", l)
	}
	if l := ToSimLength(60); l != 2 {
		t.Fatalf("ToSimLength(60) = %f, want 2", l)
	}
}
