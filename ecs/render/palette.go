package render

import (
	"image/color"

	"github.com/milk9111/ragdollcannon/prefabs"
	"golang.org/x/image/colornames"
)

// Palette assigns colours by body identity.
type Palette struct {
	Background    color.Color
	TriggerBox    color.Color
	TriggerCircle color.Color
	ObstacleWall  color.Color
	Ragdoll       color.Color
	Dynamic       color.Color
	Static        color.Color
	Cannon        color.Color
}

func DefaultPalette() Palette {
	return Palette{
		Background:    colornames.Black,
		TriggerBox:    colornames.Yellow,
		TriggerCircle: colornames.Red,
		ObstacleWall:  color.RGBA{R: 150, G: 150, B: 150, A: 255},
		Ragdoll:       colornames.Cyan,
		Dynamic:       colornames.Orange,
		Static:        colornames.Green,
		Cannon:        colornames.White,
	}
}

// PaletteFromSpec overrides the default palette with any colours set in spec.
func PaletteFromSpec(spec prefabs.PaletteSpec) Palette {
	p := DefaultPalette()
	override := func(dst *color.Color, c *prefabs.YAMLColor) {
		if c != nil && c.Color != nil {
			*dst = c.Color
		}
	}
	override(&p.Background, spec.Background)
	override(&p.TriggerBox, spec.TriggerBox)
	override(&p.TriggerCircle, spec.TriggerCircle)
	override(&p.ObstacleWall, spec.ObstacleWall)
	override(&p.Ragdoll, spec.Ragdoll)
	override(&p.Dynamic, spec.Dynamic)
	override(&p.Static, spec.Static)
	override(&p.Cannon, spec.Cannon)
	return p
}
