// cmd/game/hud.go
package main

import (
	"fmt"
	"image"
	"image/color"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/interfaces"
	"go-creep-defense/internal/state"
	"go-creep-defense/internal/ui"
	"go-creep-defense/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

const (
	buttonWidth   = 170
	buttonHeight  = 36
	buttonSpacing = 8
	panelMargin   = 16
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// HUD - ввод и интерфейс поверх карты.
type HUD struct {
	game      interfaces.Game
	renderer  *render.WorldRenderer
	fontFace  font.Face
	titleFace font.Face

	buttons []*ui.Button
	pause   *ui.PauseButton
	speed   *ui.SpeedButton
	health  *ui.BaseHealthIndicator
	coins   *ui.CoinIndicator
	wave    *ui.WaveIndicator
	phase   *ui.StateIndicator
}

func NewHUD(game *app.Game) (*HUD, error) {
	face, err := render.LoadFace(14)
	if err != nil {
		return nil, err
	}
	titleFace, err := render.LoadFace(32)
	if err != nil {
		return nil, err
	}

	palette := render.DefaultPalette()
	kinds := make([]string, 0, len(game.Library.Turrets))
	for _, def := range game.Library.Turrets {
		kinds = append(kinds, def.ID)
	}
	renderer := render.NewWorldRenderer(palette, face, config.WorldScale, config.ScreenWidth, config.ScreenHeight, kinds)

	h := &HUD{
		game:      game,
		renderer:  renderer,
		fontFace:  face,
		titleFace: titleFace,
		pause:     ui.NewPauseButton(config.ScreenWidth-90, 40, 14, config.TextLightColor, config.BaseColor),
		speed:     ui.NewSpeedButton(config.ScreenWidth-40, 40, 14),
		health:    ui.NewBaseHealthIndicator(panelMargin, 40),
		coins:     ui.NewCoinIndicator(panelMargin+8, 170),
		wave:      ui.NewWaveIndicator(config.ScreenWidth/2, 48),
		phase:     ui.NewStateIndicator(panelMargin+8, config.ScreenHeight-24, 8),
	}

	top := config.ScreenHeight - panelMargin - 24 - len(game.Library.Turrets)*(buttonHeight+buttonSpacing)
	for i, def := range game.Library.Turrets {
		y := top + i*(buttonHeight+buttonSpacing)
		rect := image.Rect(panelMargin, y, panelMargin+buttonWidth, y+buttonHeight)
		label := fmt.Sprintf("%d %s (%d)", i+1, def.Name, def.Cost)
		h.buttons = append(h.buttons, ui.NewButton(rect, def.ID, label, renderer.TowerColor(def.ID)))
	}
	return h, nil
}

// HandleInput обрабатывает клавиатуру и мышь за текущий кадр.
func (h *HUD) HandleInput() {
	snap := h.game.Snapshot()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if snap.Phase == state.Playing {
			h.game.StartNextWave()
		} else if snap.Phase == state.MainMenu || snap.Phase.Terminal() {
			h.game.StartNewGame()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyF9):
		h.game.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if snap.Phase != state.MainMenu {
			h.game.RestartGame()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		h.speed.ToggleState()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if snap.Placing {
			h.game.ExitPlacementMode()
		} else {
			h.game.QuitToMenu()
		}
	}

	for i, key := range digitKeys {
		if i < len(h.buttons) && inpututil.IsKeyJustPressed(key) {
			h.game.SelectTurretTypeByID(h.buttons[i].ID)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		h.game.ExitPlacementMode()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.handleClick(snap)
	}
	h.pause.SetPaused(h.game.Snapshot().Phase == state.Paused)
}

func (h *HUD) handleClick(snap app.Snapshot) {
	x, y := ebiten.CursorPosition()
	if h.pause.IsClicked(x, y) {
		h.game.TogglePause()
		return
	}
	if h.speed.IsClicked(x, y) {
		h.speed.ToggleState()
		return
	}
	for _, b := range h.buttons {
		if b.Contains(x, y) {
			h.game.SelectTurretTypeByID(b.ID)
			return
		}
	}
	if snap.Placing {
		h.game.TryPlaceTurret(h.renderer.ToWorld(x, y))
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	snap := h.game.Snapshot()
	x, y := ebiten.CursorPosition()
	cursor := h.renderer.ToWorld(x, y)

	h.renderer.Draw(screen, snap, cursor, snap.Placing && h.game.CanPlaceTurret(cursor))

	h.health.Draw(screen, h.fontFace, snap.BaseHealth, snap.BaseMaxHealth)
	h.coins.Draw(screen, h.fontFace, snap.Coins)
	h.wave.Draw(screen, h.titleFace, snap.Wave, snap.TotalWaves, snap.WavePhase, snap.WaveCreeps)
	h.phase.Draw(screen, h.fontFace, snap.Phase)
	h.pause.Draw(screen)
	h.speed.Draw(screen)
	for _, b := range h.buttons {
		b.Draw(screen, h.fontFace, b.Contains(x, y), snap.Placing && snap.Selected == b.ID)
	}

	switch snap.Phase {
	case state.MainMenu:
		h.drawBanner(screen, "Creep Defense", "Enter to start")
	case state.Paused:
		h.drawBanner(screen, "Paused", "P to resume")
	case state.Won:
		h.drawBanner(screen, "Victory", "R to play again")
	case state.Lost:
		h.drawBanner(screen, "Base destroyed", "R to try again")
	}
}

func (h *HUD) drawBanner(screen *ebiten.Image, title, hint string) {
	tb := text.BoundString(h.titleFace, title)
	text.Draw(screen, title, h.titleFace, (config.ScreenWidth-tb.Dx())/2, config.ScreenHeight/2-20, color.White)
	hb := text.BoundString(h.fontFace, hint)
	text.Draw(screen, hint, h.fontFace, (config.ScreenWidth-hb.Dx())/2, config.ScreenHeight/2+16, config.TextLightColor)
}
