// pkg/render/world_renderer.go
package render

import (
	"image/color"
	"math"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/component"
	"go-creep-defense/internal/config"
	"go-creep-defense/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	healthBarWidth  = 16.0
	healthBarHeight = 3.0
)

// WorldRenderer рисует снимок матча: точки спавна, базу, башни, крипов, снаряды.
// Мир центрируется на экране, одна единица мира - scale пикселей.
type WorldRenderer struct {
	palette      Palette
	scale        float64
	originX      float64
	originY      float64
	fontFace     font.Face
	towerColors  map[string]color.RGBA
	screenWidth  int
	screenHeight int
}

func NewWorldRenderer(palette Palette, face font.Face, scale float64, screenWidth, screenHeight int, turretKinds []string) *WorldRenderer {
	colors := make(map[string]color.RGBA, len(turretKinds))
	for i, kind := range turretKinds {
		colors[kind] = palette.TowerColor(i)
	}
	return &WorldRenderer{
		palette:      palette,
		scale:        scale,
		originX:      float64(screenWidth) / 2,
		originY:      float64(screenHeight) / 2,
		fontFace:     face,
		towerColors:  colors,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// ToScreen переводит мировые координаты в пиксели.
func (r *WorldRenderer) ToScreen(v geom.Vec) (float32, float32) {
	return float32(r.originX + v.X*r.scale), float32(r.originY + v.Y*r.scale)
}

// ToWorld переводит позицию курсора в мировые координаты.
func (r *WorldRenderer) ToWorld(x, y int) geom.Vec {
	return geom.V((float64(x)-r.originX)/r.scale, (float64(y)-r.originY)/r.scale)
}

// TowerColor returns the color assigned to a turret kind.
func (r *WorldRenderer) TowerColor(kind string) color.RGBA {
	if c, ok := r.towerColors[kind]; ok {
		return c
	}
	return r.palette.TowerStroke
}

// Draw renders snap. When the player is placing a turret, a ghost is drawn at
// cursor, tinted by whether placement there is allowed.
func (r *WorldRenderer) Draw(screen *ebiten.Image, snap app.Snapshot, cursor geom.Vec, canPlace bool) {
	screen.Fill(r.palette.Background)

	for _, sp := range snap.SpawnPoints {
		x, y := r.ToScreen(sp.Pos)
		vector.StrokeCircle(screen, x, y, config.CreepDrawRadius+4, r.palette.StrokeWidth, r.palette.Spawn, true)
		if r.fontFace != nil {
			text.Draw(screen, sp.Name, r.fontFace, int(x)+12, int(y)+config.TextOffsetY, r.palette.Text)
		}
	}

	bx, by := r.ToScreen(snap.Base)
	baseRadius := float32(snap.BaseRadius * r.scale)
	if baseRadius < config.BaseDrawRadius {
		baseRadius = config.BaseDrawRadius
	}
	vector.DrawFilledCircle(screen, bx, by, baseRadius, DarkenColor(r.palette.Base), true)
	vector.StrokeCircle(screen, bx, by, baseRadius, r.palette.StrokeWidth, r.palette.Base, true)

	for _, t := range snap.Turrets {
		r.drawTurret(screen, t)
	}
	for _, c := range snap.Creeps {
		r.drawCreep(screen, c)
	}
	for _, b := range snap.Beams {
		x0, y0 := r.ToScreen(b.From)
		x1, y1 := r.ToScreen(b.To)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, r.palette.Projectile, true)
	}
	for _, p := range snap.Projectiles {
		x, y := r.ToScreen(p.Pos)
		vector.DrawFilledCircle(screen, x, y, config.ProjectileDrawRadius, r.palette.Projectile, true)
	}

	if snap.Placing && snap.Selected != "" {
		r.drawGhost(screen, snap.Selected, cursor, canPlace)
	}
}

func (r *WorldRenderer) drawTurret(screen *ebiten.Image, t app.TurretView) {
	x, y := r.ToScreen(t.Pos)
	body := r.TowerColor(t.Kind)
	if t.Mode == component.TurretIdle {
		body = DarkenColor(body)
	} else {
		vector.StrokeCircle(screen, x, y, float32(t.Range*r.scale), 1, r.palette.Range, true)
	}
	vector.DrawFilledCircle(screen, x, y, config.TurretDrawRadius+r.palette.StrokeWidth, r.palette.TowerStroke, true)
	vector.DrawFilledCircle(screen, x, y, config.TurretDrawRadius, body, true)

	// Ствол
	barrel := config.TurretDrawRadius * 1.6
	ex := x + float32(math.Cos(t.Angle)*barrel)
	ey := y + float32(math.Sin(t.Angle)*barrel)
	vector.StrokeLine(screen, x, y, ex, ey, 3, r.palette.TowerStroke, true)
}

func (r *WorldRenderer) drawCreep(screen *ebiten.Image, c app.CreepView) {
	x, y := r.ToScreen(c.Pos)
	clr := r.palette.Creep
	if c.Slowed {
		clr = r.palette.SlowedCreep
	}
	vector.DrawFilledCircle(screen, x, y, config.CreepDrawRadius, clr, true)
	if c.Flash {
		vector.StrokeCircle(screen, x, y, config.CreepDrawRadius, r.palette.StrokeWidth, r.palette.TowerStroke, true)
	}

	if c.MaxHealth <= 0 || c.Health >= c.MaxHealth {
		return
	}
	frac := float32(c.Health) / float32(c.MaxHealth)
	left := x - healthBarWidth/2
	top := y - config.CreepDrawRadius - healthBarHeight - 2
	vector.DrawFilledRect(screen, left, top, healthBarWidth, healthBarHeight, DarkenColor(r.palette.Creep), false)
	vector.DrawFilledRect(screen, left, top, healthBarWidth*frac, healthBarHeight, r.palette.Base, false)
}

func (r *WorldRenderer) drawGhost(screen *ebiten.Image, kind string, cursor geom.Vec, canPlace bool) {
	x, y := r.ToScreen(cursor)
	clr := r.TowerColor(kind)
	clr.A = 128
	if !canPlace {
		clr = color.RGBA{255, 0, 0, 128}
	}
	vector.DrawFilledCircle(screen, x, y, config.TurretDrawRadius, clr, true)
	vector.StrokeCircle(screen, x, y, config.TurretDrawRadius, r.palette.StrokeWidth, r.palette.TowerStroke, true)
}
