// pkg/render/color.go
package render

import (
	"image/color"

	"go-creep-defense/internal/config"
)

// Palette holds every color the world renderer needs.
type Palette struct {
	Background  color.RGBA
	Text        color.RGBA
	Base        color.RGBA
	Spawn       color.RGBA
	Creep       color.RGBA
	SlowedCreep color.RGBA
	Projectile  color.RGBA
	Range       color.RGBA
	TowerStroke color.RGBA
	Towers      []color.RGBA
	StrokeWidth float32
}

// DefaultPalette собирает палитру из config.
func DefaultPalette() Palette {
	return Palette{
		Background:  config.BackgroundColor,
		Text:        config.TextLightColor,
		Base:        config.BaseColor,
		Spawn:       config.SpawnColor,
		Creep:       config.CreepColor,
		SlowedCreep: config.SlowedCreepColor,
		Projectile:  config.ProjectileColor,
		Range:       config.RangeColor,
		TowerStroke: config.TowerStrokeColor,
		Towers:      config.TowerColors,
		StrokeWidth: config.StrokeWidth,
	}
}

// TowerColor picks a stable color for the i-th turret kind.
func (p Palette) TowerColor(i int) color.RGBA {
	if len(p.Towers) == 0 {
		return p.TowerStroke
	}
	return p.Towers[i%len(p.Towers)]
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}
