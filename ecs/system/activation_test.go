package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/ecs/entity"
)

func addTrigger(t *testing.T, w *ecs.World, e ecs.Entity) ecs.Entity {
	t.Helper()
	if err := ecs.Add(w, e, component.TriggerTagComponent.Kind(), &component.TriggerTag{}); err != nil {
		t.Fatalf("add trigger tag: %v", err)
	}
	return e
}

func physicsBody(t *testing.T, w *ecs.World, e ecs.Entity) *component.PhysicsBody {
	t.Helper()
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		t.Fatalf("entity %v has no realised body", e)
	}
	return pb
}

func TestActivationDeduplicatesAndPromotes(t *testing.T) {
	w := ecs.NewWorld()
	ps := testPhysics()
	trigger := addTrigger(t, w, entity.BuildStaticBox(w, cp.Vector{X: 5, Y: 5}, cp.Vector{X: 2, Y: 2}, testFixture))
	mover := entity.BuildDynamicBox(w, cp.Vector{X: 5, Y: 3}, cp.Vector{X: 1, Y: 1}, testFixture)
	ps.Sync(w)

	a := NewActivationSystem()
	for i := 0; i < 3; i++ {
		a.BeginContact(w, trigger, mover)
		a.BeginContact(w, mover, trigger)
	}
	if got := a.Pending(); len(got) != 1 || got[0] != trigger {
		t.Fatalf("pending = %v, want [%v]", got, trigger)
	}

	promoted := a.DrainAndApply(w)
	if len(promoted) != 1 || promoted[0] != trigger {
		t.Fatalf("promoted = %v, want [%v]", promoted, trigger)
	}
	if len(a.Pending()) != 0 {
		t.Fatalf("pending set should be empty after drain")
	}

	pb := physicsBody(t, w, trigger)
	if pb.Body.GetType() != cp.BODY_DYNAMIC {
		t.Fatalf("trigger should be dynamic after drain")
	}
	if !(pb.Body.Mass() > 0) {
		t.Fatalf("promoted body has mass %v", pb.Body.Mass())
	}
	if pb.Static {
		t.Fatalf("component should no longer be flagged static")
	}

	events := w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventActivate {
		t.Fatalf("expected one activate event, got %v", events)
	}
	if ev, ok := events[0].Data.(ActivationEvent); !ok || ev.Entity != trigger || !(ev.Mass > 0) {
		t.Fatalf("unexpected activation event %+v", events[0].Data)
	}

	if again := a.DrainAndApply(w); len(again) != 0 {
		t.Fatalf("second drain promoted %v", again)
	}
	if err := VerifyDynamicMass(w); err != nil {
		t.Fatalf("VerifyDynamicMass: %v", err)
	}
}

func TestActivationIgnoresNonCandidates(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, w *ecs.World, ps *PhysicsSystem) (ecs.Entity, ecs.Entity)
	}{
		{
			name: "dynamic_dynamic",
			setup: func(t *testing.T, w *ecs.World, ps *PhysicsSystem) (ecs.Entity, ecs.Entity) {
				a := addTrigger(t, w, entity.BuildDynamicBox(w, cp.Vector{X: 1, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture))
				b := entity.BuildDynamicBox(w, cp.Vector{X: 3, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture)
				return a, b
			},
		},
		{
			name: "trigger_static",
			setup: func(t *testing.T, w *ecs.World, ps *PhysicsSystem) (ecs.Entity, ecs.Entity) {
				a := addTrigger(t, w, entity.BuildStaticBox(w, cp.Vector{X: 1, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture))
				b := entity.BuildStaticBox(w, cp.Vector{X: 3, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture)
				return a, b
			},
		},
		{
			name: "untagged_static",
			setup: func(t *testing.T, w *ecs.World, ps *PhysicsSystem) (ecs.Entity, ecs.Entity) {
				a := entity.BuildStaticBox(w, cp.Vector{X: 1, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture)
				b := entity.BuildDynamicBox(w, cp.Vector{X: 3, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture)
				return a, b
			},
		},
		{
			name: "already_promoted",
			setup: func(t *testing.T, w *ecs.World, ps *PhysicsSystem) (ecs.Entity, ecs.Entity) {
				a := addTrigger(t, w, entity.BuildStaticBox(w, cp.Vector{X: 1, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture))
				b := entity.BuildDynamicBox(w, cp.Vector{X: 3, Y: 1}, cp.Vector{X: 1, Y: 1}, testFixture)
				ps.Sync(w)
				Promote(physicsBody(t, w, a))
				return a, b
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := testPhysics()
			a, b := tc.setup(t, w, ps)
			ps.Sync(w)

			act := NewActivationSystem()
			act.BeginContact(w, a, b)
			act.BeginContact(w, b, a)
			if got := act.Pending(); len(got) != 0 {
				t.Fatalf("unexpected pending %v", got)
			}
			if got := act.DrainAndApply(w); len(got) != 0 {
				t.Fatalf("unexpected promotion %v", got)
			}
		})
	}
}

func TestActivationDuringSimulation(t *testing.T) {
	w := ecs.NewWorld()
	ps := testPhysics()
	act := NewActivationSystem()
	act.Debug = true
	ps.AddObserver(act)

	entity.BuildStaticBox(w, cp.Vector{X: 5, Y: 20}, cp.Vector{X: 20, Y: 1}, testFixture)
	trigger := addTrigger(t, w, entity.BuildStaticBox(w, cp.Vector{X: 5, Y: 5}, cp.Vector{X: 2, Y: 2}, testFixture))
	entity.BuildDynamicBox(w, cp.Vector{X: 5, Y: 3}, cp.Vector{X: 1, Y: 1}, testFixture)

	sched := ecs.NewScheduler(ps, act)
	promotions := 0
	for i := 0; i < 240; i++ {
		sched.Update(w)
		for _, ev := range w.Events().Drain() {
			if ev.Type == ecs.EventActivate {
				promotions++
			}
		}
	}

	if promotions != 1 {
		t.Fatalf("expected exactly one promotion, got %d", promotions)
	}
	pb := physicsBody(t, w, trigger)
	if pb.Body.GetType() != cp.BODY_DYNAMIC || !(pb.Body.Mass() > 0) {
		t.Fatalf("trigger not promoted correctly: type=%v mass=%v", pb.Body.GetType(), pb.Body.Mass())
	}
	tt, _ := ecs.Get(w, trigger, component.TransformComponent.Kind())
	if !(tt.Y > 5) {
		t.Fatalf("promoted trigger should fall under gravity, at y=%v", tt.Y)
	}
}

func TestPromoteRecomputesZeroMass(t *testing.T) {
	space := cp.NewSpace()
	body := space.AddBody(cp.NewStaticBody())
	shape := space.AddShape(cp.NewBox(body, 2, 2, 0))
	shape.SetDensity(1)

	pb := &component.PhysicsBody{Body: body, Shape: shape, Static: true}
	Promote(pb)

	if body.GetType() != cp.BODY_DYNAMIC {
		t.Fatalf("expected dynamic body")
	}
	if got := body.Mass(); math.Abs(got-4) > 1e-9 {
		t.Fatalf("mass = %v, want 4", got)
	}
}
