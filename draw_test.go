package main

import (
	"image/color"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs/render"
)

func TestPolygonPath(t *testing.T) {
	tests := []struct {
		name  string
		verts []cp.Vector
		ok    bool
	}{
		{"empty", nil, false},
		{"segment", []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}}, false},
		{"triangle", []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}, true},
		{"quad", []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, ok := polygonPath(render.Primitive{Kind: render.PrimitivePolygon, Vertices: tc.verts})
			if ok != tc.ok || (path != nil) != tc.ok {
				t.Fatalf("polygonPath ok=%v path=%v, want ok=%v", ok, path, tc.ok)
			}
		})
	}
}

func TestPolygonOptionsKeepAlpha(t *testing.T) {
	op := polygonOptions(render.Primitive{Color: color.NRGBA{R: 0xff, G: 0x80, A: 0x40}})

	if !op.AntiAlias {
		t.Fatalf("expected antialiased fill")
	}
	if got, want := op.ColorScale.A(), float32(0x40)/0xff; math.Abs(float64(got-want)) > 1e-3 {
		t.Fatalf("alpha scale = %v, want %v", got, want)
	}
	if got, want := op.ColorScale.R(), float32(0x40)/0xff; math.Abs(float64(got-want)) > 1e-3 {
		t.Fatalf("premultiplied red scale = %v, want %v", got, want)
	}
}
