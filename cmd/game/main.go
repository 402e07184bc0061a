// cmd/game/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/defs"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// AppGame связывает ebiten с матчем: считает дельту кадра, обрабатывает ввод, рисует.
type AppGame struct {
	ctx            context.Context
	game           *app.Game
	hud            *HUD
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	if a.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now

	a.hud.HandleInput()
	for i := 0; i < a.hud.speed.Multiplier(); i++ {
		a.game.Update(deltaTime)
	}
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.hud.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func loadLibrary(path string) (*defs.Library, error) {
	if path == "" {
		return defs.DefaultLibrary(), nil
	}
	return defs.LoadLibrary(path)
}

func run() error {
	contentPath := flag.String("content", "", "path to a content JSON file (default: built-in content)")
	seed := flag.Int64("seed", 0, "PRNG seed; 0 keeps the content seed")
	pprofAddr := flag.String("pprof", "localhost:6060", "pprof listen address; empty disables it")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	lib, err := loadLibrary(*contentPath)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	opts := []app.Option{app.WithLogger(logger)}
	if *seed != 0 {
		opts = append(opts, app.WithSeed(*seed))
	}
	game, err := app.NewGame(lib, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	grp, ctx := errgroup.WithContext(ctx)

	if *pprofAddr != "" {
		srv := &http.Server{Addr: *pprofAddr}
		grp.Go(func() error {
			logger.Info("pprof listening", "addr", *pprofAddr)
			// Профилировщик не должен ронять игру
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("pprof stopped", "error", err)
			}
			return nil
		})
		grp.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	hud, err := NewHUD(game)
	if err != nil {
		return err
	}
	appGame := &AppGame{
		ctx:            ctx,
		game:           game,
		hud:            hud,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Creep Defense")

	runErr := ebiten.RunGame(appGame)
	stop()
	if err := grp.Wait(); err != nil {
		logger.Error("background task failed", "error", err)
	}
	return runErr
}

func main() {
	if err := run(); err != nil {
		slog.Error("game exited", "error", err)
		os.Exit(1)
	}
}
