// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpeedButton переключает множитель скорости симуляции (x1, x2, x4).
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	StateColors   []color.RGBA
	Multipliers   []int
	CurrentState  int
}

func NewSpeedButton(x, y, size float32) *SpeedButton {
	return &SpeedButton{
		X:    x,
		Y:    y,
		Size: size,
		StateColors: []color.RGBA{
			{50, 205, 50, 255},
			{255, 215, 0, 255},
			{220, 60, 60, 255},
		},
		Multipliers: []int{1, 2, 4},
	}
}

// Multiplier - сколько шагов симуляции делать за кадр.
func (b *SpeedButton) Multiplier() int {
	return b.Multipliers[b.CurrentState]
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	size := b.Size * clickPulse(time.Since(b.LastClickTime).Seconds())
	clr := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := size * 1.2
	width := size
	offset := width * 0.8

	left := triangle(b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2)
	fillPath(screen, left, clr)
	strokePath(screen, left, 1, color.White)

	right := triangle(b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2)
	fillPath(screen, right, clr)
	strokePath(screen, right, 1, color.White)
}

func (b *SpeedButton) IsClicked(x, y int) bool {
	// Форма сложная - попадание считаем по кругу
	return math.Hypot(float64(float32(x)-b.X), float64(float32(y)-b.Y)) <= float64(b.Size*1.5)
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.Multipliers)
	b.LastClickTime = time.Now()
}
