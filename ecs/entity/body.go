package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
)

// BodySpec describes a single rigid body in simulation units.
type BodySpec struct {
	Position    cp.Vector
	Rotation    float64
	Geometry    component.Shape
	Static      bool
	Density     float64
	Friction    float64
	Restitution float64
	Velocity    cp.Vector
	Role        component.RenderRole
}

// BuildBody creates a body entity. The physics system realises it in the
// engine before its next step.
func BuildBody(w *ecs.World, spec BodySpec) ecs.Entity {
	e := ecs.CreateEntity(w)
	mustAdd(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.Position.X,
		Y:        spec.Position.Y,
		Rotation: spec.Rotation,
	}), "transform")
	mustAdd(ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Geometry:        spec.Geometry,
		Static:          spec.Static,
		Density:         spec.Density,
		Friction:        spec.Friction,
		Elasticity:      spec.Restitution,
		InitialVelocity: spec.Velocity,
	}), "physics body")
	mustAdd(ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{Role: spec.Role}), "renderable")
	return e
}

// BuildStaticBox creates an immovable box centred at pos with full size.
func BuildStaticBox(w *ecs.World, pos, size cp.Vector, fixture FixtureSpec) ecs.Entity {
	return BuildBody(w, BodySpec{
		Position:    pos,
		Geometry:    component.Box(size.X, size.Y),
		Static:      true,
		Density:     fixture.Density,
		Friction:    fixture.Friction,
		Restitution: fixture.Restitution,
	})
}

// BuildDynamicBox creates a gravity-driven box centred at pos with full size.
func BuildDynamicBox(w *ecs.World, pos, size cp.Vector, fixture FixtureSpec) ecs.Entity {
	return BuildBody(w, BodySpec{
		Position:    pos,
		Geometry:    component.Box(size.X, size.Y),
		Density:     fixture.Density,
		Friction:    fixture.Friction,
		Restitution: fixture.Restitution,
	})
}

// FixtureSpec holds the material properties shared by scene bodies.
type FixtureSpec struct {
	Density     float64
	Friction    float64
	Restitution float64
}

func mustAdd(err error, what string) {
	if err != nil {
		panic("entity: add " + what + ": " + err.Error())
	}
}

// BuildCircle creates a circle body centred at pos.
func BuildCircle(w *ecs.World, pos cp.Vector, radius float64, static bool, fixture FixtureSpec) ecs.Entity {
	return BuildBody(w, BodySpec{
		Position:    pos,
		Geometry:    component.Circle(radius),
		Static:      static,
		Density:     fixture.Density,
		Friction:    fixture.Friction,
		Restitution: fixture.Restitution,
	})
}
