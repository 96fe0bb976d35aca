package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/prefabs"
)

// Ragdoll is the handle returned by BuildRagdoll.
type Ragdoll struct {
	Group  ecs.Entity
	Parts  [component.RagdollPartCount]ecs.Entity
	Joints [component.RagdollJointCount]ecs.Entity
}

// Torso returns the part every joint is anchored to.
func (r Ragdoll) Torso() ecs.Entity {
	return r.Parts[component.PartTorso]
}

// BuildRagdoll assembles a torso, head, two arms and two legs around pos.
// Every part starts dynamic with velocity vel, and every joint has the torso
// as its first body. Y grows downward, so the head sits at a smaller Y.
func BuildRagdoll(w *ecs.World, spec prefabs.RagdollSpec, pos, vel cp.Vector) Ragdoll {
	tw, th := spec.Torso.Width, spec.Torso.Height
	lw, lh := spec.Limb.Width, spec.Limb.Height
	hr := spec.HeadRadius

	var r Ragdoll
	r.Group = ecs.CreateEntity(w)

	part := func(slot component.RagdollPart, offset cp.Vector, geom component.Shape) {
		e := BuildBody(w, BodySpec{
			Position: pos.Add(offset),
			Geometry: geom,
			Density:  spec.Density,
			Friction: spec.Friction,
			Velocity: vel,
		})
		mustAdd(ecs.Add(w, e, component.RagdollMemberComponent.Kind(), &component.RagdollMember{
			Group: uint64(r.Group),
			Part:  slot,
		}), "ragdoll member")
		r.Parts[slot] = e
	}

	part(component.PartTorso, cp.Vector{}, component.Box(tw, th))
	part(component.PartHead, cp.Vector{Y: -th/2 - hr}, component.Circle(hr))
	part(component.PartLeftArm, cp.Vector{X: -(tw/2 + lw/2), Y: -th / 4}, component.Box(lw, lh))
	part(component.PartRightArm, cp.Vector{X: tw/2 + lw/2, Y: -th / 4}, component.Box(lw, lh))
	part(component.PartLeftLeg, cp.Vector{X: -tw / 4, Y: th/2 + lh/2}, component.Box(lw, lh))
	part(component.PartRightLeg, cp.Vector{X: tw / 4, Y: th/2 + lh/2}, component.Box(lw, lh))

	torso := uint64(r.Torso())
	joint := func(slot int, j component.Joint) {
		j.A = torso
		e := ecs.CreateEntity(w)
		mustAdd(ecs.Add(w, e, component.JointComponent.Kind(), &j), "joint")
		r.Joints[slot] = e
	}
	revolute := func(slot int, other component.RagdollPart, anchor cp.Vector) {
		joint(slot, component.Joint{
			Kind:   component.JointRevolute,
			B:      uint64(r.Parts[other]),
			Anchor: pos.Add(anchor),
		})
	}

	revolute(component.JointNeck, component.PartHead, cp.Vector{Y: -th / 2})
	joint(component.JointNeckLimit, component.Joint{
		Kind:     component.JointRotaryLimit,
		B:        uint64(r.Parts[component.PartHead]),
		MinAngle: -spec.NeckLimit,
		MaxAngle: spec.NeckLimit,
	})
	revolute(component.JointLeftShoulder, component.PartLeftArm, cp.Vector{X: -tw / 2, Y: -th / 4})
	revolute(component.JointRightShoulder, component.PartRightArm, cp.Vector{X: tw / 2, Y: -th / 4})
	revolute(component.JointLeftHip, component.PartLeftLeg, cp.Vector{X: -tw / 4, Y: th / 2})
	revolute(component.JointRightHip, component.PartRightLeg, cp.Vector{X: tw / 4, Y: th / 2})

	group := &component.Ragdoll{}
	for i, p := range r.Parts {
		group.Parts[i] = uint64(p)
	}
	for i, j := range r.Joints {
		group.Joints[i] = uint64(j)
	}
	mustAdd(ecs.Add(w, r.Group, component.RagdollComponent.Kind(), group), "ragdoll")

	return r
}

// Ragdolls returns the handle of every ragdoll in the world, oldest first.
func Ragdolls(w *ecs.World) []Ragdoll {
	var out []Ragdoll
	ecs.ForEach(w, component.RagdollComponent.Kind(), func(e ecs.Entity, c *component.Ragdoll) {
		r := Ragdoll{Group: e}
		for i, p := range c.Parts {
			r.Parts[i] = ecs.Entity(p)
		}
		for i, j := range c.Joints {
			r.Joints[i] = ecs.Entity(j)
		}
		out = append(out, r)
	})
	return out
}
