// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button - кнопка выбора типа башни на панели.
type Button struct {
	Rect        image.Rectangle
	Text        string
	ID          string
	Color       color.RGBA
	TextColor   color.Color
	HoverColor  color.Color
	StrokeColor color.Color
}

// NewButton создает новую кнопку.
func NewButton(rect image.Rectangle, id, label string, clr color.RGBA) *Button {
	return &Button{
		Rect:        rect,
		Text:        label,
		ID:          id,
		Color:       clr,
		TextColor:   color.White,
		HoverColor:  color.RGBA{80, 80, 90, 255},
		StrokeColor: color.RGBA{120, 120, 130, 255},
	}
}

// Contains reports whether the point (x, y) is inside the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw отрисовывает кнопку; выбранная обводится цветом башни.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, hovered, selected bool) {
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())

	bg := color.Color(color.RGBA{40, 40, 50, 255})
	if hovered {
		bg = b.HoverColor
	}
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)

	stroke := b.StrokeColor
	width := float32(2)
	if selected {
		stroke = b.Color
		width = 3
	}
	vector.StrokeRect(screen, x, y, w, h, width, stroke, false)
	vector.DrawFilledCircle(screen, x+h/2, y+h/2, h/4, b.Color, true)

	if face == nil {
		return
	}
	bounds := text.BoundString(face, b.Text)
	textX := b.Rect.Min.X + b.Rect.Dy()
	textY := b.Rect.Min.Y + (b.Rect.Dy()+bounds.Dy())/2
	text.Draw(screen, b.Text, face, textX, textY, b.TextColor)
}
