package common

import "github.com/jakecoffman/cp"

// PixelsPerMeter converts between simulation units and screen pixels.
const PixelsPerMeter = 30.0

// ToSim converts a screen-space point or velocity to simulation space.
func ToSim(v cp.Vector) cp.Vector {
	return cp.Vector{X: v.X / PixelsPerMeter, Y: v.Y / PixelsPerMeter}
}

// ToScreen converts a simulation-space point or velocity to screen space.
func ToScreen(v cp.Vector) cp.Vector {
	return cp.Vector{X: v.X * PixelsPerMeter, Y: v.Y * PixelsPerMeter}
}

// ToSimLength scales a scalar length into simulation units.
func ToSimLength(px float64) float64 {
	return px / PixelsPerMeter
}

// ToScreenLength scales a scalar length into pixels.
func ToScreenLength(m float64) float64 {
	return m * PixelsPerMeter
}
