package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/ecs/entity"
	"github.com/milk9111/ragdollcannon/prefabs"
)

var testFixture = entity.FixtureSpec{Density: 1, Friction: 0.5, Restitution: 0.1}

func testPhysics() *PhysicsSystem {
	return NewPhysicsSystem(PhysicsConfig{
		Gravity:            cp.Vector{Y: 9.8},
		Step:               1.0 / 60.0,
		VelocityIterations: 8,
		PositionIterations: 3,
	})
}

func testRig() prefabs.RagdollSpec {
	return prefabs.RagdollSpec{
		Torso:      prefabs.SizeSpec{Width: 0.6, Height: 1.2},
		Limb:       prefabs.SizeSpec{Width: 0.3, Height: 0.6},
		HeadRadius: 0.35,
		Density:    1,
		Friction:   0.2,
		NeckLimit:  math.Pi / 4,
	}
}

func TestPhysicsSyncRagdoll(t *testing.T) {
	w := ecs.NewWorld()
	ps := testPhysics()
	r := entity.BuildRagdoll(w, testRig(), cp.Vector{X: 5, Y: 5}, cp.Vector{X: 2})

	ps.Sync(w)

	if ps.BodyCount() != int(component.RagdollPartCount) {
		t.Fatalf("expected %d bodies, got %d", component.RagdollPartCount, ps.BodyCount())
	}
	if ps.JointCount() != component.RagdollJointCount {
		t.Fatalf("expected %d joints, got %d", component.RagdollJointCount, ps.JointCount())
	}
	for slot, p := range r.Parts {
		pb, _ := ecs.Get(w, p, component.PhysicsBodyComponent.Kind())
		if pb.Body == nil {
			t.Fatalf("part %d not realised", slot)
		}
		if pb.Body.GetType() != cp.BODY_DYNAMIC {
			t.Fatalf("part %d should be dynamic", slot)
		}
		if !(pb.Body.Mass() > 0) {
			t.Fatalf("part %d has mass %v", slot, pb.Body.Mass())
		}
		if v := pb.Body.Velocity(); v.X != 2 || v.Y != 0 {
			t.Fatalf("part %d velocity %v, want (2,0)", slot, v)
		}
	}

	// a second sync must not duplicate anything
	ps.Sync(w)
	if ps.BodyCount() != int(component.RagdollPartCount) || ps.JointCount() != component.RagdollJointCount {
		t.Fatalf("resync duplicated bodies or joints: %d/%d", ps.BodyCount(), ps.JointCount())
	}
}

func TestPhysicsAdvance(t *testing.T) {
	w := ecs.NewWorld()
	ps := testPhysics()
	ground := entity.BuildStaticBox(w, cp.Vector{X: 10, Y: 20}, cp.Vector{X: 20, Y: 1}, testFixture)
	box := entity.BuildDynamicBox(w, cp.Vector{X: 10, Y: 2}, cp.Vector{X: 1, Y: 1}, testFixture)

	for i := 0; i < 30; i++ {
		ps.Advance(w, 1.0/60.0, 8, 3)
	}

	gt, _ := ecs.Get(w, ground, component.TransformComponent.Kind())
	if gt.X != 10 || gt.Y != 20 {
		t.Fatalf("static body moved to (%v,%v)", gt.X, gt.Y)
	}
	bt, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	if !(bt.Y > 2) {
		t.Fatalf("dynamic box should fall toward +Y, at %v", bt.Y)
	}
	if ps.Space().Iterations != 11 {
		t.Fatalf("iterations = %d, want 11", ps.Space().Iterations)
	}
}

type contactRecorder struct {
	pairs [][2]ecs.Entity
}

func (c *contactRecorder) BeginContact(_ *ecs.World, a, b ecs.Entity) {
	c.pairs = append(c.pairs, [2]ecs.Entity{a, b})
}

func TestPhysicsReportsTriggerContacts(t *testing.T) {
	w := ecs.NewWorld()
	ps := testPhysics()
	rec := &contactRecorder{}
	ps.AddObserver(rec)

	trigger := entity.BuildStaticBox(w, cp.Vector{X: 5, Y: 5}, cp.Vector{X: 2, Y: 2}, testFixture)
	if err := ecs.Add(w, trigger, component.TriggerTagComponent.Kind(), &component.TriggerTag{}); err != nil {
		t.Fatalf("add trigger tag: %v", err)
	}
	box := entity.BuildDynamicBox(w, cp.Vector{X: 5, Y: 3}, cp.Vector{X: 1, Y: 1}, testFixture)

	for i := 0; i < 120 && len(rec.pairs) == 0; i++ {
		ps.Update(w)
	}

	if len(rec.pairs) == 0 {
		t.Fatalf("expected a contact between the falling box and the trigger")
	}
	p := rec.pairs[0]
	if !(p[0] == trigger && p[1] == box) && !(p[0] == box && p[1] == trigger) {
		t.Fatalf("unexpected contact pair %v", p)
	}
}

func TestPhysicsIgnoresBodyBodyContacts(t *testing.T) {
	w := ecs.NewWorld()
	ps := testPhysics()
	rec := &contactRecorder{}
	ps.AddObserver(rec)

	entity.BuildStaticBox(w, cp.Vector{X: 5, Y: 5}, cp.Vector{X: 4, Y: 1}, testFixture)
	box := entity.BuildDynamicBox(w, cp.Vector{X: 5, Y: 3}, cp.Vector{X: 1, Y: 1}, testFixture)

	for i := 0; i < 120; i++ {
		ps.Update(w)
	}

	bt, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	if bt.Y > 4.6 {
		t.Fatalf("box should rest on the ground, at y=%v", bt.Y)
	}
	if len(rec.pairs) != 0 {
		t.Fatalf("contacts between non-trigger bodies were reported: %v", rec.pairs)
	}
}

func TestRagdollPivotsHoldDuringSimulation(t *testing.T) {
	w := ecs.NewWorld()
	ps := testPhysics()
	entity.BuildStaticBox(w, cp.Vector{X: 10, Y: 20}, cp.Vector{X: 40, Y: 1}, testFixture)
	r := entity.BuildRagdoll(w, testRig(), cp.Vector{X: 5, Y: 10}, cp.Vector{X: 4, Y: -3})
	ps.Sync(w)

	type pivot struct {
		a, b           *cp.Body
		localA, localB cp.Vector
	}
	var pivots []pivot
	for _, je := range r.Joints {
		j, _ := ecs.Get(w, je, component.JointComponent.Kind())
		if j.Kind != component.JointRevolute {
			continue
		}
		pa, _ := ecs.Get(w, ecs.Entity(j.A), component.PhysicsBodyComponent.Kind())
		pb, _ := ecs.Get(w, ecs.Entity(j.B), component.PhysicsBodyComponent.Kind())
		pivots = append(pivots, pivot{
			a:      pa.Body,
			b:      pb.Body,
			localA: pa.Body.WorldToLocal(j.Anchor),
			localB: pb.Body.WorldToLocal(j.Anchor),
		})
	}
	if len(pivots) != 5 {
		t.Fatalf("expected 5 pivots, got %d", len(pivots))
	}

	for i := 0; i < 300; i++ {
		ps.Update(w)
	}

	for i, p := range pivots {
		gap := p.a.LocalToWorld(p.localA).Distance(p.b.LocalToWorld(p.localB))
		if gap > 0.02 {
			t.Fatalf("pivot %d drifted apart by %v", i, gap)
		}
	}
}
