package component

// Transform is a body's pose in simulation units (Y grows downward).
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
