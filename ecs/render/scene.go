package render

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/common"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
)

// Scene returns one primitive per body in ascending entity order. Positions
// and sizes are converted to screen pixels.
func Scene(w *ecs.World, palette Palette) []Primitive {
	if w == nil {
		return nil
	}

	entities := w.Query(component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind())
	out := make([]Primitive, 0, len(entities))
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		p, ok := bodyPrimitive(t, pb.Geometry)
		if !ok {
			continue
		}
		p.Color = bodyColor(w, e, pb, palette)
		out = append(out, p)
	}
	return out
}

func bodyPrimitive(t *component.Transform, geom component.Shape) (Primitive, bool) {
	center := cp.Vector{X: t.X, Y: t.Y}
	switch geom.Kind {
	case component.ShapeBox:
		corners := [4]cp.Vector{
			{X: -geom.HalfW, Y: -geom.HalfH},
			{X: geom.HalfW, Y: -geom.HalfH},
			{X: geom.HalfW, Y: geom.HalfH},
			{X: -geom.HalfW, Y: geom.HalfH},
		}
		rot := cp.ForAngle(t.Rotation)
		verts := make([]cp.Vector, len(corners))
		for i, c := range corners {
			verts[i] = common.ToScreen(center.Add(c.Rotate(rot)))
		}
		return Primitive{Kind: PrimitivePolygon, Vertices: verts}, true
	case component.ShapeCircle:
		return Primitive{
			Kind:   PrimitiveCircle,
			Center: common.ToScreen(center),
			Radius: common.ToScreenLength(geom.Radius),
		}, true
	default:
		return Primitive{}, false
	}
}

func bodyColor(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, palette Palette) color.Color {
	if ecs.Has(w, e, component.RagdollMemberComponent.Kind()) {
		return palette.Ragdoll
	}
	if r, ok := ecs.Get(w, e, component.RenderableComponent.Kind()); ok {
		switch r.Role {
		case component.RoleTriggerBox:
			return palette.TriggerBox
		case component.RoleTriggerCircle:
			return palette.TriggerCircle
		case component.RoleObstacleWall:
			return palette.ObstacleWall
		}
	}
	if pb.Dynamic() {
		return palette.Dynamic
	}
	return palette.Static
}

// Cannon returns the barrel as a polygon anchored at the muzzle and rotated
// toward cursor. All values are screen pixels.
func Cannon(c *component.Cannon, cursor cp.Vector, palette Palette) Primitive {
	muzzle := cp.Vector{X: c.MuzzleX, Y: c.MuzzleY}
	aim := cursor.Sub(muzzle)
	angle := math.Atan2(aim.Y, aim.X)
	rot := cp.ForAngle(angle)

	hw := c.BarrelWidth / 2
	corners := [4]cp.Vector{
		{X: 0, Y: -hw},
		{X: c.BarrelLength, Y: -hw},
		{X: c.BarrelLength, Y: hw},
		{X: 0, Y: hw},
	}
	verts := make([]cp.Vector, len(corners))
	for i, v := range corners {
		verts[i] = muzzle.Add(v.Rotate(rot))
	}
	return Primitive{Kind: PrimitivePolygon, Vertices: verts, Color: palette.Cannon}
}
