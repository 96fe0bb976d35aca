package entity

import (
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/prefabs"
)

// BuildCannon creates the launcher entity together with the input component
// the frame loop writes pointer state into.
func BuildCannon(w *ecs.World, spec prefabs.CannonSpec) ecs.Entity {
	e := ecs.CreateEntity(w)
	c := &component.Cannon{}
	ApplyCannonSpec(c, spec)
	mustAdd(ecs.Add(w, e, component.CannonComponent.Kind(), c), "cannon")
	mustAdd(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}), "input")
	return e
}

// ApplyCannonSpec copies tunables into c, leaving any charge in flight intact.
func ApplyCannonSpec(c *component.Cannon, spec prefabs.CannonSpec) {
	c.MuzzleX = spec.MuzzleX
	c.MuzzleY = spec.MuzzleY
	c.BarrelLength = spec.BarrelLength
	c.BarrelWidth = spec.BarrelWidth
	c.BasePower = spec.BasePower
	c.MaxPower = spec.MaxPower
	c.ChargeRate = spec.ChargeRate
}
