package system

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
)

// ActivationEvent is pushed on the world event queue for every promotion.
type ActivationEvent struct {
	Entity ecs.Entity
	Mass   float64
}

// ActivationSystem wakes trigger obstacles. During a physics step it collects
// static trigger bodies touched by a dynamic body; its Update drains that set
// and promotes each member to dynamic exactly once.
type ActivationSystem struct {
	pending map[ecs.Entity]struct{}
	order   []ecs.Entity

	// Debug enables the post-drain zero-mass invariant check.
	Debug bool
}

func NewActivationSystem() *ActivationSystem {
	return &ActivationSystem{pending: make(map[ecs.Entity]struct{})}
}

// BeginContact implements ContactObserver.
func (a *ActivationSystem) BeginContact(w *ecs.World, e1, e2 ecs.Entity) {
	if a == nil || w == nil {
		return
	}
	if candidate, ok := activationCandidate(w, e1, e2); ok {
		a.enqueue(candidate)
		return
	}
	if candidate, ok := activationCandidate(w, e2, e1); ok {
		a.enqueue(candidate)
	}
}

// activationCandidate reports trigger when it is a static trigger body and
// other is dynamic.
func activationCandidate(w *ecs.World, trigger, other ecs.Entity) (ecs.Entity, bool) {
	if !ecs.Has(w, trigger, component.TriggerTagComponent.Kind()) {
		return 0, false
	}
	tb, ok := ecs.Get(w, trigger, component.PhysicsBodyComponent.Kind())
	if !ok || tb.Body == nil || tb.Body.GetType() != cp.BODY_STATIC {
		return 0, false
	}
	ob, ok := ecs.Get(w, other, component.PhysicsBodyComponent.Kind())
	if !ok || ob.Body == nil || ob.Body.GetType() != cp.BODY_DYNAMIC {
		return 0, false
	}
	return trigger, true
}

func (a *ActivationSystem) enqueue(e ecs.Entity) {
	if a.pending == nil {
		a.pending = make(map[ecs.Entity]struct{})
	}
	if _, dup := a.pending[e]; dup {
		return
	}
	a.pending[e] = struct{}{}
	a.order = append(a.order, e)
}

// Pending returns the bodies waiting for promotion, in first-contact order.
func (a *ActivationSystem) Pending() []ecs.Entity {
	return append([]ecs.Entity(nil), a.order...)
}

// Update drains the activation set. It must run after the physics step and
// before the next one.
func (a *ActivationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	a.DrainAndApply(w)
	if a.Debug {
		if err := VerifyDynamicMass(w); err != nil {
			panic("activation system: " + err.Error())
		}
	}
}

// DrainAndApply promotes every pending body and empties the set. It returns
// the promoted entities.
func (a *ActivationSystem) DrainAndApply(w *ecs.World) []ecs.Entity {
	if len(a.order) == 0 {
		return nil
	}
	drained := a.order
	a.order = nil
	clear(a.pending)

	promoted := make([]ecs.Entity, 0, len(drained))
	for _, e := range drained {
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || pb.Body == nil {
			continue
		}
		Promote(pb)
		promoted = append(promoted, e)
		w.Events().Push(ecs.Event{Type: ecs.EventActivate, Data: ActivationEvent{Entity: e, Mass: pb.Body.Mass()}})
		log.Printf("ActivationSystem: promoted entity %v (mass %.2f)", e, pb.Body.Mass())
	}
	return promoted
}

// Promote switches a body to dynamic. A body created static carries no mass,
// so a zero mass after the type change forces a recompute from its shapes.
func Promote(pb *component.PhysicsBody) {
	if pb == nil || pb.Body == nil {
		return
	}
	pb.Body.SetType(cp.BODY_DYNAMIC)
	if pb.Body.Mass() == 0 {
		pb.Body.AccumulateMassFromShapes()
	}
	pb.Static = false
}

// VerifyDynamicMass returns an error naming the first dynamic body whose mass
// is not positive.
func VerifyDynamicMass(w *ecs.World) error {
	var err error
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		if err != nil || pb.Body == nil || pb.Body.GetType() != cp.BODY_DYNAMIC {
			return
		}
		if m := pb.Body.Mass(); !(m > 0) {
			err = fmt.Errorf("dynamic entity %v has mass %v", e, m)
		}
	})
	return err
}
