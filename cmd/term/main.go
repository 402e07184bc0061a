// cmd/term/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/config"
	"go-creep-defense/internal/defs"
	"go-creep-defense/internal/event"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

var errQuit = errors.New("quit")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "creep-defense: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	contentPath := flag.String("content", "", "path to a content JSON file (default: built-in content)")
	seed := flag.Int64("seed", 0, "PRNG seed; 0 keeps the content seed")
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken by the game)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lib := defs.DefaultLibrary()
	if *contentPath != "" {
		var err error
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

	snd, err := newSound(*mute)
	if err != nil {
		// Не критично, играем без звука
		logger.Warn("audio initialization failed", "error", err)
	}
	defer snd.close()
	subscribeSounds(game.EventDispatcher, snd)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := NewTerminal(screen, game, lib)
	err = term.Run(ctx)
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func subscribeSounds(d *event.Dispatcher, snd *sound) {
	d.Subscribe(event.CreepKilled, event.ListenerFunc(func(e event.Event) {
		if data, ok := e.Data.(event.CreepKilledData); ok && !data.ReachedBase {
			snd.kill()
		}
	}))
	d.Subscribe(event.CreepReachedBase, event.ListenerFunc(func(event.Event) { snd.baseHit() }))
	d.Subscribe(event.WaveCompleted, event.ListenerFunc(func(event.Event) { snd.waveDone() }))
}

// Run drives the match until the player quits or ctx is cancelled. Input is
// polled on its own goroutine; the game itself is only touched from the frame loop.
func (t *Terminal) Run(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 100)

	grp.Go(func() error {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return nil // экран закрыт
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	grp.Go(func() error {
		defer t.screen.Fini()
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		last := time.Now()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-events:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if !t.handleKey(ev) {
						return errQuit
					}
				case *tcell.EventResize:
					t.screen.Sync()
					t.handleResize()
				}
			case now := <-ticker.C:
				dt := now.Sub(last).Seconds()
				if dt > config.MaxDeltaTime {
					dt = config.MaxDeltaTime
				}
				last = now
				t.game.Update(dt)
				t.draw()
			}
		}
	})
	return grp.Wait()
}
