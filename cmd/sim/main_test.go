package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go-creep-defense/internal/app"
	"go-creep-defense/internal/defs"
	"go-creep-defense/pkg/geom"
)

func TestParsePlacements(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []placement
		wantErr bool
	}{
		{name: "empty", in: ""},
		{name: "single", in: "Cannon@3,2", want: []placement{{"Cannon", geom.V(3, 2)}}},
		{
			name: "several with spaces",
			in:   " Cannon@3,2 ; Laser@-3.5, 0 ;",
			want: []placement{{"Cannon", geom.V(3, 2)}, {"Laser", geom.V(-3.5, 0)}},
		},
		{name: "missing at", in: "Cannon3,2", wantErr: true},
		{name: "missing comma", in: "Cannon@3", wantErr: true},
		{name: "bad number", in: "Cannon@x,2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlacements(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSimulate_StopsAtDuration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	game, err := app.NewGame(defs.DefaultLibrary(), app.WithLogger(logger), app.WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	if err := simulate(context.Background(), game, nil, 2, logger); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if game.ECS.GameTime < 2 {
		t.Errorf("GameTime = %v, want >= 2", game.ECS.GameTime)
	}
	if game.ECS.GameTime > 2.1 {
		t.Errorf("GameTime = %v, ran past the limit", game.ECS.GameTime)
	}
}

func TestSimulate_CancelledContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	game, err := app.NewGame(defs.DefaultLibrary(), app.WithLogger(logger), app.WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := simulate(ctx, game, nil, 600, logger); err == nil {
		t.Error("simulate ignored a cancelled context")
	}
}
