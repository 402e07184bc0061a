// internal/ui/shapes.go
package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var fillImg *ebiten.Image

// fillSource - белый пиксель под DrawTriangles, создаётся при первом использовании.
func fillSource() *ebiten.Image {
	if fillImg == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		fillImg = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return fillImg
}

func fillPath(screen *ebiten.Image, path *vector.Path, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	paintVertices(vs, clr)
	screen.DrawTriangles(vs, is, fillSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func strokePath(screen *ebiten.Image, path *vector.Path, width float32, clr color.Color) {
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})
	paintVertices(vs, clr)
	screen.DrawTriangles(vs, is, fillSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func paintVertices(vs []ebiten.Vertex, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
}

func triangle(x1, y1, x2, y2, x3, y3 float32) *vector.Path {
	var path vector.Path
	path.MoveTo(x1, y1)
	path.LineTo(x2, y2)
	path.LineTo(x3, y3)
	path.Close()
	return &path
}

// clickPulse - короткое «вспухание» виджета после клика.
func clickPulse(elapsed float64) float32 {
	return float32(1.0 + 0.3*math.Exp(-elapsed*8))
}
