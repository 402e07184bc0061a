// internal/ui/base_health_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	HealthCols          = 5
	HealthCircleRadius  = 8.0
	HealthCircleSpacing = 4.0
	// maxHealthCircles ограничивает сетку; при большем здоровье кружок = несколько единиц.
	maxHealthCircles = 20
)

var (
	healthHighColor  = color.RGBA{50, 100, 255, 255}
	healthLowColor   = color.RGBA{220, 60, 60, 255}
	healthEmptyColor = color.RGBA{0, 0, 0, 255}
)

// BaseHealthIndicator отображает здоровье базы сеткой кружков.
type BaseHealthIndicator struct {
	X, Y float32
}

func NewBaseHealthIndicator(x, y float32) *BaseHealthIndicator {
	return &BaseHealthIndicator{X: x, Y: y}
}

// healthCells возвращает число кружков и сколько из них заполнено.
func healthCells(health, maxHealth int) (cells, filled int) {
	if maxHealth <= 0 {
		return 0, 0
	}
	cells = maxHealth
	per := 1
	if cells > maxHealthCircles {
		per = (maxHealth + maxHealthCircles - 1) / maxHealthCircles
		cells = (maxHealth + per - 1) / per
	}
	filled = (health + per - 1) / per
	if filled > cells {
		filled = cells
	}
	if filled < 0 {
		filled = 0
	}
	return cells, filled
}

// Draw рисует индикатор здоровья базы.
func (i *BaseHealthIndicator) Draw(screen *ebiten.Image, face font.Face, health, maxHealth int) {
	cells, filled := healthCells(health, maxHealth)
	half := cells / 2
	step := float32(HealthCircleRadius*2 + HealthCircleSpacing)

	for j := 0; j < cells; j++ {
		cx := i.X + float32(j%HealthCols)*step + HealthCircleRadius
		cy := i.Y + float32(j/HealthCols)*step + HealthCircleRadius

		clr := healthEmptyColor
		if j < filled {
			// Больше половины - «избыток» синий, остальное красное
			if filled > half && j < filled-half {
				clr = healthHighColor
			} else {
				clr = healthLowColor
			}
		}
		vector.DrawFilledCircle(screen, cx, cy, HealthCircleRadius, clr, true)
		vector.StrokeCircle(screen, cx, cy, HealthCircleRadius, 1, color.White, true)
	}

	if face == nil {
		return
	}
	label := strconv.Itoa(health) + "/" + strconv.Itoa(maxHealth)
	bounds := text.BoundString(face, label)
	gridWidth := int(HealthCols * step)
	text.Draw(screen, label, face, int(i.X)+(gridWidth-bounds.Dx())/2, int(i.Y)-8, color.White)
}
