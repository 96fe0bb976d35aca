package component

import (
	"fmt"
	"math"
)

// ShapeKind tags the Shape variant.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota + 1
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is the collision geometry of a body, centred on the body position.
// Box uses HalfW/HalfH, Circle uses Radius.
type Shape struct {
	Kind   ShapeKind
	HalfW  float64
	HalfH  float64
	Radius float64
}

// Box returns a box shape from full width and height.
func Box(width, height float64) Shape {
	return Shape{Kind: ShapeBox, HalfW: width / 2, HalfH: height / 2}
}

func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Area returns the shape's area, or 0 for an unknown kind.
func (s Shape) Area() float64 {
	switch s.Kind {
	case ShapeBox:
		return 4 * s.HalfW * s.HalfH
	case ShapeCircle:
		return math.Pi * s.Radius * s.Radius
	default:
		return 0
	}
}
