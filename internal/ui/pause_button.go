// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseButton - кнопка паузы: две полосы во время игры, треугольник на паузе.
type PauseButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	IsPaused      bool
	PauseColor    color.Color
	PlayColor     color.Color
}

func NewPauseButton(x, y, size float32, pauseColor, playColor color.Color) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
	}
}

func (b *PauseButton) Draw(screen *ebiten.Image) {
	size := b.Size * clickPulse(time.Since(b.LastClickTime).Seconds())

	if b.IsPaused {
		tri := triangle(b.X-size, b.Y-size*1.2, b.X-size, b.Y+size*1.2, b.X+size, b.Y)
		fillPath(screen, tri, b.PlayColor)
		strokePath(screen, tri, 1, color.White)
		return
	}

	width := size * 0.6
	height := size * 2.0
	spacing := size * 0.4
	for _, left := range []float32{b.X - width - spacing/2, b.X + spacing/2} {
		vector.DrawFilledRect(screen, left, b.Y-height/2, width, height, b.PauseColor, false)
		vector.StrokeRect(screen, left, b.Y-height/2, width, height, 1, color.White, false)
	}
}

func (b *PauseButton) IsClicked(x, y int) bool {
	return math.Hypot(float64(float32(x)-b.X), float64(float32(y)-b.Y)) <= float64(b.Size*1.5)
}

// SetPaused синхронизирует кнопку с фазой матча и запускает пульсацию при смене.
func (b *PauseButton) SetPaused(paused bool) {
	if paused != b.IsPaused {
		b.LastClickTime = time.Now()
	}
	b.IsPaused = paused
}
