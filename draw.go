package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ragdollcannon/ecs/render"
)

func drawPrimitive(screen *ebiten.Image, p render.Primitive) {
	switch p.Kind {
	case render.PrimitivePolygon:
		fillPolygon(screen, p)
	case render.PrimitiveCircle:
		vector.FillCircle(screen, float32(p.Center.X), float32(p.Center.Y), float32(p.Radius), p.Color, true)
	}
}

func fillPolygon(screen *ebiten.Image, p render.Primitive) {
	path, ok := polygonPath(p)
	if !ok {
		return
	}
	vector.FillPath(screen, path, nil, polygonOptions(p))
}

// polygonPath returns a closed path through the primitive's vertices. ok is
// false for fewer than three vertices.
func polygonPath(p render.Primitive) (*vector.Path, bool) {
	if len(p.Vertices) < 3 {
		return nil, false
	}
	path := &vector.Path{}
	path.MoveTo(float32(p.Vertices[0].X), float32(p.Vertices[0].Y))
	for _, v := range p.Vertices[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()
	return path, true
}

func polygonOptions(p render.Primitive) *vector.DrawPathOptions {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(p.Color)
	return op
}
