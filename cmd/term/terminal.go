// cmd/term/terminal.go
package main

import (
	"fmt"
	"math"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/component"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/interfaces"
	"go-creep-defense/internal/state"
	"go-creep-defense/pkg/geom"

	"github.com/gdamore/tcell/v2"
)

const (
	hudRows    = 2 // строка статуса сверху
	helpRows   = 1 // подсказка снизу
	cursorStep = 1.0
)

var (
	styleDefault    = tcell.StyleDefault
	styleBase       = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSpawn      = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleCreep      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSlowed     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursorOK   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
	styleCursorBad  = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	towerStyles     = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
		tcell.StyleDefault.Foreground(tcell.ColorOrange),
		tcell.StyleDefault.Foreground(tcell.ColorPurple),
	}
)

// viewport переводит мировые координаты в ячейки терминала.
// Ячейка примерно вдвое выше, чем шире, поэтому по X масштаб удвоен.
type viewport struct {
	originX, originY float64
	scaleX, scaleY   float64
}

func newViewport(width, height int, extent float64) viewport {
	rows := float64(height - hudRows - helpRows)
	sy := math.Min(rows/(2*extent), float64(width-2)/(4*extent))
	if sy <= 0 {
		sy = 0.1
	}
	return viewport{
		originX: float64(width) / 2,
		originY: float64(hudRows) + rows/2,
		scaleX:  2 * sy,
		scaleY:  sy,
	}
}

func (v viewport) toCell(p geom.Vec) (int, int) {
	return int(math.Round(v.originX + p.X*v.scaleX)), int(math.Round(v.originY + p.Y*v.scaleY))
}

// levelExtent - полуразмер квадрата, в который помещаются база и все точки спавна.
func levelExtent(level defs.Level) float64 {
	extent := math.Max(math.Abs(level.Base.X), math.Abs(level.Base.Y)) + level.BaseRadius
	for _, sp := range level.SpawnPoints {
		extent = math.Max(extent, math.Max(math.Abs(sp.Pos.X), math.Abs(sp.Pos.Y)))
	}
	return extent + 1
}

// Terminal - текстовый фронтенд матча.
type Terminal struct {
	screen tcell.Screen
	game   interfaces.Game
	turret []defs.TurretDefinition
	extent float64

	width, height int
	view          viewport
	cursor        geom.Vec
}

func NewTerminal(screen tcell.Screen, game interfaces.Game, lib *defs.Library) *Terminal {
	t := &Terminal{
		screen: screen,
		game:   game,
		turret: lib.Turrets,
		extent: levelExtent(lib.Level),
		cursor: lib.Level.Base.Add(geom.V(lib.Level.BaseRadius+2, 0)),
	}
	t.handleResize()
	return t
}

func (t *Terminal) handleResize() {
	t.width, t.height = t.screen.Size()
	t.view = newViewport(t.width, t.height, t.extent)
}

// handleKey applies one key press. It returns false when the player quits.
func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	snap := t.game.Snapshot()
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if snap.Placing {
			t.game.ExitPlacementMode()
		} else {
			t.game.QuitToMenu()
		}
	case tcell.KeyUp:
		t.cursor.Y -= cursorStep
	case tcell.KeyDown:
		t.cursor.Y += cursorStep
	case tcell.KeyLeft:
		t.cursor.X -= cursorStep
	case tcell.KeyRight:
		t.cursor.X += cursorStep
	case tcell.KeyEnter:
		switch {
		case snap.Phase == state.MainMenu || snap.Phase.Terminal():
			t.game.StartNewGame()
		case snap.Placing:
			t.game.TryPlaceTurret(t.cursor)
		}
	case tcell.KeyRune:
		return t.handleRune(ev.Rune(), snap)
	}
	return true
}

func (t *Terminal) handleRune(r rune, snap app.Snapshot) bool {
	switch {
	case r == 'q':
		return false
	case r == 'p':
		t.game.TogglePause()
	case r == 'r':
		if snap.Phase != state.MainMenu {
			t.game.RestartGame()
		}
	case r == 'n':
		t.game.StartNextWave()
	case r == ' ':
		if snap.Placing {
			t.game.TryPlaceTurret(t.cursor)
		}
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i < len(t.turret) {
			t.game.SelectTurretTypeByID(t.turret[i].ID)
		}
	}
	return true
}

func (t *Terminal) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < hudRows || x >= t.width || y >= t.height-helpRows {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Terminal) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= t.width {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *Terminal) towerStyle(kind string) tcell.Style {
	for i, def := range t.turret {
		if def.ID == kind {
			return towerStyles[i%len(towerStyles)]
		}
	}
	return styleDefault
}

func (t *Terminal) draw() {
	snap := t.game.Snapshot()
	t.screen.Clear()

	// База - заполненный круг
	bx, by := t.view.toCell(snap.Base)
	rx := int(math.Ceil(snap.BaseRadius * t.view.scaleX))
	ry := int(math.Ceil(snap.BaseRadius * t.view.scaleY))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			wx := float64(dx) / t.view.scaleX
			wy := float64(dy) / t.view.scaleY
			if wx*wx+wy*wy <= snap.BaseRadius*snap.BaseRadius {
				t.put(bx+dx, by+dy, '#', styleBase)
			}
		}
	}
	t.put(bx, by, 'B', styleBase.Reverse(true))

	for _, sp := range snap.SpawnPoints {
		x, y := t.view.toCell(sp.Pos)
		t.put(x, y, 'S', styleSpawn)
	}
	for _, tv := range snap.Turrets {
		x, y := t.view.toCell(tv.Pos)
		r := '?'
		if tv.Kind != "" {
			r = []rune(tv.Kind)[0]
		}
		style := t.towerStyle(tv.Kind)
		if tv.Mode == component.TurretFiring {
			style = style.Reverse(true)
		}
		t.put(x, y, r, style)
	}
	for _, c := range snap.Creeps {
		x, y := t.view.toCell(c.Pos)
		style := styleCreep
		if c.Slowed {
			style = styleSlowed
		}
		r := 'o'
		if c.Health < c.MaxHealth {
			r = '.'
		}
		if c.Flash {
			style = style.Reverse(true)
		}
		t.put(x, y, r, style)
	}
	for _, p := range snap.Projectiles {
		x, y := t.view.toCell(p.Pos)
		t.put(x, y, '*', styleProjectile)
	}

	cx, cy := t.view.toCell(t.cursor)
	cursorStyle := styleCursorOK
	if snap.Placing && !t.game.CanPlaceTurret(t.cursor) {
		cursorStyle = styleCursorBad
	}
	t.put(cx, cy, '+', cursorStyle)

	t.print(0, 0, statusLine(snap), styleHUD)
	t.print(0, 1, paletteLine(t.turret, snap), styleHUD)
	t.print(0, t.height-1, helpLine(snap.Phase), styleHelp)
	t.screen.Show()
}

func statusLine(snap app.Snapshot) string {
	return fmt.Sprintf("%s | wave %d/%d %s creeps:%d | base %d/%d | coins %d | t=%.1fs",
		snap.Phase, snap.Wave, snap.TotalWaves, snap.WavePhase, snap.WaveCreeps,
		snap.BaseHealth, snap.BaseMaxHealth, snap.Coins, snap.Time)
}

func paletteLine(turrets []defs.TurretDefinition, snap app.Snapshot) string {
	line := ""
	for i, def := range turrets {
		if i >= 9 {
			break
		}
		mark := " "
		if snap.Placing && snap.Selected == def.ID {
			mark = ">"
		}
		line += fmt.Sprintf("%s[%d] %s (%d)  ", mark, i+1, def.Name, def.Cost)
	}
	return line
}

func helpLine(phase state.Phase) string {
	switch phase {
	case state.MainMenu:
		return "Enter: start  q: quit"
	case state.Won, state.Lost:
		return "Enter/r: play again  Esc: menu  q: quit"
	default:
		return "arrows: move  1-9: turret  space: place  Esc: cancel  n: next wave  p: pause  r: restart  q: quit"
	}
}
