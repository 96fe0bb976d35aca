package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeTrigger
)

// ContactObserver is notified synchronously, from inside Advance, when a
// trigger shape begins touching another body or trigger shape. Contacts
// between two non-trigger bodies are not reported. The space is locked while
// it runs, so observers must only record what they saw.
type ContactObserver interface {
	BeginContact(w *ecs.World, a, b ecs.Entity)
}

// PhysicsConfig is the fixed-step configuration of the simulation.
type PhysicsConfig struct {
	Gravity            cp.Vector
	Step               float64
	VelocityIterations int
	PositionIterations int
}

// PhysicsSystem owns the Chipmunk space. Entities carrying PhysicsBody and
// Transform become engine bodies, entities carrying Joint become constraints.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	cfg           PhysicsConfig

	bodies        map[ecs.Entity]*cp.Body
	shapeToEntity map[*cp.Shape]ecs.Entity
	joints        map[ecs.Entity]*cp.Constraint
	observers     []ContactObserver

	// stepping is the world being advanced, nil outside Advance.
	stepping *ecs.World
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	if cfg.Step <= 0 {
		cfg.Step = 1.0 / 60.0
	}
	if cfg.VelocityIterations <= 0 {
		cfg.VelocityIterations = 8
	}
	space := cp.NewSpace()
	space.Iterations = uint(cfg.VelocityIterations + cfg.PositionIterations)
	space.SetGravity(cfg.Gravity)
	ps := &PhysicsSystem{
		space:         space,
		cfg:           cfg,
		bodies:        make(map[ecs.Entity]*cp.Body),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
		joints:        make(map[ecs.Entity]*cp.Constraint),
	}
	ps.ensureHandlers()
	return ps
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Config() PhysicsConfig {
	return ps.cfg
}

// AddObserver registers o for contact-begin notifications.
func (ps *PhysicsSystem) AddObserver(o ContactObserver) {
	if ps == nil || o == nil {
		return
	}
	ps.observers = append(ps.observers, o)
}

// BodyCount returns the number of realised bodies.
func (ps *PhysicsSystem) BodyCount() int {
	return len(ps.bodies)
}

// JointCount returns the number of realised constraints.
func (ps *PhysicsSystem) JointCount() int {
	return len(ps.joints)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.Advance(w, ps.cfg.Step, ps.cfg.VelocityIterations, ps.cfg.PositionIterations)
}

// Sync realises bodies and joints added since the last call without stepping.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.syncBodies(w)
	ps.syncJoints(w)
}

// Advance runs one fixed simulation step. Contact-begin notifications for the
// step reach every observer before it returns.
func (ps *PhysicsSystem) Advance(w *ecs.World, dt float64, velocityIterations, positionIterations int) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.Sync(w)

	iterations := velocityIterations + positionIterations
	if iterations <= 0 {
		iterations = 1
	}
	ps.space.Iterations = uint(iterations)

	ps.stepping = w
	ps.space.Step(dt)
	ps.stepping = nil

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.stepping == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapeToEntity[shapeA]
		b, okB := sys.shapeToEntity[shapeB]
		if !okA || !okB {
			return true
		}
		for _, o := range sys.observers {
			o.BeginContact(sys.stepping, a, b)
		}
		return true
	}

	triggerBody := ps.space.NewCollisionHandler(collisionTypeTrigger, collisionTypeBody)
	triggerBody.UserData = ps
	triggerBody.BeginFunc = begin

	triggerTrigger := ps.space.NewCollisionHandler(collisionTypeTrigger, collisionTypeTrigger)
	triggerTrigger.UserData = ps
	triggerTrigger.BeginFunc = begin

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body != nil {
			return
		}
		trigger := ecs.Has(w, e, component.TriggerTagComponent.Kind())
		body, shape := ps.createBody(t, pb, trigger)
		if body == nil {
			log.Printf("PhysicsSystem: entity %v has unsupported shape %v", e, pb.Geometry.Kind)
			return
		}
		pb.Body = body
		pb.Shape = shape
		ps.bodies[e] = body
		ps.shapeToEntity[shape] = e
	})
}

func (ps *PhysicsSystem) createBody(t *component.Transform, pb *component.PhysicsBody, trigger bool) (*cp.Body, *cp.Shape) {
	geom := pb.Geometry
	if geom.Kind != component.ShapeBox && geom.Kind != component.ShapeCircle {
		return nil, nil
	}

	var body *cp.Body
	if pb.Static {
		body = cp.NewStaticBody()
	} else {
		mass := pb.Density * geom.Area()
		var moment float64
		switch geom.Kind {
		case component.ShapeBox:
			moment = cp.MomentForBox(mass, geom.HalfW*2, geom.HalfH*2)
		case component.ShapeCircle:
			moment = cp.MomentForCircle(mass, 0, geom.Radius, cp.Vector{})
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)
	ps.space.AddBody(body)

	var shape *cp.Shape
	switch geom.Kind {
	case component.ShapeBox:
		shape = cp.NewBox(body, geom.HalfW*2, geom.HalfH*2, 0)
	case component.ShapeCircle:
		shape = cp.NewCircle(body, geom.Radius, cp.Vector{})
	}
	shape.SetFriction(pb.Friction)
	shape.SetElasticity(pb.Elasticity)
	if trigger {
		shape.SetCollisionType(collisionTypeTrigger)
	} else {
		shape.SetCollisionType(collisionTypeBody)
	}
	ps.space.AddShape(shape)

	// Static bodies keep the shape's mass info unused until they are promoted.
	shape.SetDensity(pb.Density)

	if !pb.Static {
		body.SetVelocityVector(pb.InitialVelocity)
	}
	return body, shape
}

func (ps *PhysicsSystem) syncJoints(w *ecs.World) {
	ecs.ForEach(w, component.JointComponent.Kind(), func(e ecs.Entity, j *component.Joint) {
		if j.Constraint != nil {
			return
		}
		a := ps.bodies[ecs.Entity(j.A)]
		b := ps.bodies[ecs.Entity(j.B)]
		if a == nil || b == nil {
			log.Printf("PhysicsSystem: joint %v references unrealised bodies %d/%d", e, j.A, j.B)
			return
		}

		var c *cp.Constraint
		switch j.Kind {
		case component.JointRevolute:
			c = cp.NewPivotJoint(a, b, j.Anchor)
		case component.JointRotaryLimit:
			c = cp.NewRotaryLimitJoint(a, b, j.MinAngle, j.MaxAngle)
		default:
			log.Printf("PhysicsSystem: joint %v has unknown kind %d", e, j.Kind)
			return
		}
		c.SetCollideBodies(false)
		ps.space.AddConstraint(c)

		j.Constraint = c
		ps.joints[e] = c
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Body.GetType() == cp.BODY_STATIC {
			return
		}
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = pb.Body.Angle()
	})
}
