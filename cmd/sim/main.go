// cmd/sim/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/event"
	"go-creep-defense/internal/state"

	"golang.org/x/sync/errgroup"
)

// Headless-прогон матча фиксированным шагом: удобно для баланса и отладки контента.
func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("sim failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	contentPath := fs.String("content", "", "path to a content JSON file (default: built-in content)")
	seed := fs.Int64("seed", 0, "PRNG seed; 0 keeps the content seed")
	duration := fs.Float64("duration", 600, "maximum simulated seconds")
	place := fs.String("place", "", `turrets to place at start, e.g. "Cannon@3,2;Laser@-3,0"`)
	jsonLogs := fs.Bool("json", false, "log as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)

	placements, err := parsePlacements(*place)
	if err != nil {
		return err
	}

	lib := defs.DefaultLibrary()
	if *contentPath != "" {
		if lib, err = defs.LoadLibrary(*contentPath); err != nil {
			return fmt.Errorf("load content: %w", err)
		}
	}
	opts := []app.Option{app.WithLogger(logger)}
	if *seed != 0 {
		opts = append(opts, app.WithSeed(*seed))
	}
	game, err := app.NewGame(lib, opts...)
	if err != nil {
		return err
	}
	watchEvents(game.EventDispatcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	grp, ctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return simulate(ctx, game, placements, *duration, logger)
	})
	return grp.Wait()
}

// simulate гоняет матч до победы, поражения, лимита времени или отмены ctx.
func simulate(ctx context.Context, game *app.Game, placements []placement, duration float64, logger *slog.Logger) error {
	game.StartNewGame()
	for _, p := range placements {
		if !game.SelectTurretTypeByID(p.Kind) || !game.TryPlaceTurret(p.Pos) {
			logger.Warn("turret not placed", "turret", p.Kind, "pos", p.Pos)
		}
	}
	game.ExitPlacementMode()

	ticks := 0
	for game.ECS.GameTime < duration && !game.Phase().Terminal() {
		if ticks%600 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		game.Update(config.FixedTimestep)
		ticks++
	}

	snap := game.Snapshot()
	logger.Info("simulation finished",
		"phase", snap.Phase.String(),
		"time", snap.Time,
		"wave", snap.Wave,
		"base_health", snap.BaseHealth,
		"coins", snap.Coins,
		"turrets", len(snap.Turrets),
	)
	if snap.Phase == state.Playing {
		logger.Warn("duration reached before the match ended")
	}
	return nil
}

func watchEvents(d *event.Dispatcher, logger *slog.Logger) {
	log := event.ListenerFunc(func(e event.Event) {
		logger.Info("event", "type", string(e.Type), "data", fmt.Sprintf("%+v", e.Data))
	})
	for _, t := range []event.EventType{
		event.WaveStarted,
		event.WaveCompleted,
		event.AllWavesCompleted,
		event.BaseHealthChanged,
		event.TurretPlaced,
		event.GameStateChanged,
		event.PoolGrown,
	} {
		d.Subscribe(t, log)
	}
}
