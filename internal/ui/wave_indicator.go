// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strconv"
	"strings"

	"go-creep-defense/internal/component"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y             int
	Color            color.RGBA
	FinalColor       color.RGBA
	OutlineColor     color.Color
	OutlineThickness int
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y int) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Color:            color.RGBA{50, 100, 255, 255},
		FinalColor:       color.RGBA{220, 60, 60, 255},
		OutlineColor:     color.White,
		OutlineThickness: 1,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw отрисовывает номер волны и, под ним, её фазу и число живых крипов.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, wave, total int, phase component.WavePhase, creeps int) {
	if wave <= 0 || face == nil {
		return
	}

	label := toRoman(wave)
	textColor := i.Color
	if wave == total {
		textColor = i.FinalColor // последняя волна
	}

	// Центрируем текст
	bounds := text.BoundString(face, label)
	textX := i.X - bounds.Dx()/2
	textY := i.Y

	for y := -i.OutlineThickness; y <= i.OutlineThickness; y++ {
		for x := -i.OutlineThickness; x <= i.OutlineThickness; x++ {
			if x == 0 && y == 0 {
				continue
			}
			text.Draw(screen, label, face, textX+x, textY+y, i.OutlineColor)
		}
	}
	text.Draw(screen, label, face, textX, textY, textColor)

	status := phase.String() + " / " + strconv.Itoa(creeps)
	sb := text.BoundString(face, status)
	text.Draw(screen, status, face, i.X-sb.Dx()/2, textY+bounds.Dy()+6, color.White)
}
