package component

import "github.com/jakecoffman/cp"

// PhysicsBody describes a rigid body and, once the physics system has
// realised it, holds the Chipmunk2D runtime handles.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Geometry   Shape
	Static     bool
	Density    float64
	Friction   float64
	Elasticity float64

	// InitialVelocity is applied once when the body is created.
	InitialVelocity cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Dynamic reports whether the engine currently integrates this body.
func (p *PhysicsBody) Dynamic() bool {
	if p == nil {
		return false
	}
	if p.Body != nil {
		return p.Body.GetType() == cp.BODY_DYNAMIC
	}
	return !p.Static
}
