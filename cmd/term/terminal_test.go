package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/state"
	"go-creep-defense/pkg/geom"

	"github.com/gdamore/tcell/v2"
)

func newTestTerminal(t *testing.T) (*Terminal, *app.Game, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 30)

	lib := defs.DefaultLibrary()
	game, err := app.NewGame(lib, app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), app.WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	return NewTerminal(screen, game, lib), game, screen
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func char(r rune) *tcell.EventKey     { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestViewport_KeepsLevelOnScreen(t *testing.T) {
	const width, height = 80, 24
	v := newViewport(width, height, 10)

	if x, _ := v.toCell(geom.V(0, 0)); x != width/2 {
		t.Errorf("origin column = %d, want %d", x, width/2)
	}
	for _, p := range []geom.Vec{geom.V(-10, -10), geom.V(10, 10), geom.V(-10, 10), geom.V(10, -10)} {
		x, y := v.toCell(p)
		if x < 0 || x >= width || y < hudRows || y >= height {
			t.Errorf("%v maps to (%d, %d), outside the map area", p, x, y)
		}
	}
	if v.scaleX != 2*v.scaleY {
		t.Errorf("scaleX = %v, want twice scaleY %v", v.scaleX, v.scaleY)
	}
}

func TestLevelExtent(t *testing.T) {
	level := defs.Level{
		Base:       geom.V(0, 0),
		BaseRadius: 2,
		SpawnPoints: []defs.SpawnPoint{
			{Name: "a", Pos: geom.V(0, -24)},
			{Name: "b", Pos: geom.V(18, 5)},
		},
	}
	if got := levelExtent(level); got != 25 {
		t.Errorf("levelExtent = %v, want 25", got)
	}
}

func TestTerminal_StartSelectPlace(t *testing.T) {
	term, game, screen := newTestTerminal(t)

	term.handleKey(key(tcell.KeyEnter))
	if game.Phase() != state.Playing {
		t.Fatalf("phase = %v after Enter, want Playing", game.Phase())
	}

	term.handleKey(char('1'))
	snap := game.Snapshot()
	if !snap.Placing || snap.Selected != "Cannon" {
		t.Fatalf("placing=%v selected=%q, want Cannon selected", snap.Placing, snap.Selected)
	}

	term.handleKey(char(' '))
	snap = game.Snapshot()
	if len(snap.Turrets) != 1 {
		t.Fatalf("turrets = %d, want 1", len(snap.Turrets))
	}
	if snap.Coins != 15 {
		t.Errorf("coins = %d, want 15", snap.Coins)
	}

	placed := snap.Turrets[0].Pos
	term.handleKey(key(tcell.KeyRight))
	term.draw()

	x, y := term.view.toCell(placed)
	if r, _, _, _ := screen.GetContent(x, y); r != 'C' {
		t.Errorf("turret cell = %q, want 'C'", r)
	}
	if status := rowText(screen, 0, 100); !strings.HasPrefix(status, "Playing") {
		t.Errorf("status line = %q", status)
	}
	if palette := rowText(screen, 1, 100); !strings.Contains(palette, ">[1] Cannon") {
		t.Errorf("palette line = %q, want Cannon marked", palette)
	}
}

func TestTerminal_EscapeLeavesPlacementThenMenu(t *testing.T) {
	term, game, _ := newTestTerminal(t)
	term.handleKey(key(tcell.KeyEnter))
	term.handleKey(char('2'))

	term.handleKey(key(tcell.KeyEscape))
	if game.Snapshot().Placing {
		t.Fatal("Esc did not leave placement mode")
	}
	if game.Phase() != state.Playing {
		t.Fatalf("phase = %v, first Esc must keep the match", game.Phase())
	}

	term.handleKey(key(tcell.KeyEscape))
	if game.Phase() != state.MainMenu {
		t.Errorf("phase = %v after second Esc, want MainMenu", game.Phase())
	}
}

func TestTerminal_PauseAndQuit(t *testing.T) {
	term, game, _ := newTestTerminal(t)
	term.handleKey(key(tcell.KeyEnter))

	if !term.handleKey(char('p')) || game.Phase() != state.Paused {
		t.Fatalf("phase = %v after p, want Paused", game.Phase())
	}
	term.handleKey(char('p'))
	if game.Phase() != state.Playing {
		t.Fatalf("phase = %v after second p, want Playing", game.Phase())
	}
	if term.handleKey(char('q')) {
		t.Error("q did not quit")
	}
	if term.handleKey(key(tcell.KeyCtrlC)) {
		t.Error("Ctrl-C did not quit")
	}
}
