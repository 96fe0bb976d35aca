package component

import "github.com/jakecoffman/cp"

type JointKind int

const (
	// JointRevolute pins two bodies together at a world anchor, leaving
	// one rotational degree of freedom.
	JointRevolute JointKind = iota + 1
	// JointRotaryLimit bounds the relative angle of two bodies.
	JointRotaryLimit
)

// Joint binds two body entities (ecs.Entity is uint64).
type Joint struct {
	Kind JointKind
	A    uint64
	B    uint64

	Anchor   cp.Vector
	MinAngle float64
	MaxAngle float64

	Constraint *cp.Constraint
}

var JointComponent = NewComponent[Joint]()
