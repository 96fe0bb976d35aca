package render

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

type PrimitiveKind int

const (
	PrimitivePolygon PrimitiveKind = iota + 1
	PrimitiveCircle
)

// Primitive is a filled shape in screen pixels. Polygons use Vertices in
// order; circles use Center and Radius.
type Primitive struct {
	Kind     PrimitiveKind
	Vertices []cp.Vector
	Center   cp.Vector
	Radius   float64
	Color    color.Color
}
