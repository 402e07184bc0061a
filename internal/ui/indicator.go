// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"strconv"
	"time"

	"go-creep-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// PhaseColors - цвет индикатора для каждой фазы матча.
var PhaseColors = map[state.Phase]color.RGBA{
	state.MainMenu: {128, 128, 128, 255},
	state.Playing:  {50, 205, 50, 255},
	state.Paused:   {255, 215, 0, 255},
	state.Won:      {90, 160, 255, 255},
	state.Lost:     {220, 60, 60, 255},
}

// StateIndicator - кружок, показывающий фазу матча. Смена фазы вызывает пульсацию.
type StateIndicator struct {
	X, Y           float32
	Radius         float32
	LastChangeTime time.Time
	phase          state.Phase
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// Draw отрисовывает индикатор и подпись фазы справа от него.
func (i *StateIndicator) Draw(screen *ebiten.Image, face font.Face, phase state.Phase) {
	if phase != i.phase {
		i.phase = phase
		i.LastChangeTime = time.Now()
	}
	elapsed := time.Since(i.LastChangeTime).Seconds()
	radius := i.Radius * clickPulse(elapsed)

	vector.DrawFilledCircle(screen, i.X, i.Y, radius, PhaseColors[phase], true)
	vector.StrokeCircle(screen, i.X, i.Y, radius, 1, color.White, true)
	if face != nil {
		text.Draw(screen, phase.String(), face, int(i.X+i.Radius*2), int(i.Y+i.Radius/2), color.White)
	}
}

// IsClicked проверяет, был ли клик внутри индикатора
func (i *StateIndicator) IsClicked(x, y int) bool {
	dx := float64(float32(x) - i.X)
	dy := float64(float32(y) - i.Y)
	return math.Hypot(dx, dy) <= float64(i.Radius)
}

// CoinIndicator shows the wallet.
type CoinIndicator struct {
	X, Y  int
	Color color.Color
}

func NewCoinIndicator(x, y int) *CoinIndicator {
	return &CoinIndicator{X: x, Y: y, Color: color.RGBA{255, 215, 0, 255}}
}

func (c *CoinIndicator) Draw(screen *ebiten.Image, face font.Face, coins int) {
	vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), 8, c.Color, true)
	if face != nil {
		text.Draw(screen, strconv.Itoa(coins), face, c.X+14, c.Y+6, c.Color)
	}
}
