// cmd/sim/placements.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"go-creep-defense/pkg/geom"
)

type placement struct {
	Kind string
	Pos  geom.Vec
}

// parsePlacements разбирает "Kind@x,y;Kind@x,y". Пустая строка - без башен.
func parsePlacements(list string) ([]placement, error) {
	var out []placement
	for _, item := range strings.Split(list, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kind, coords, ok := strings.Cut(item, "@")
		if !ok || kind == "" {
			return nil, fmt.Errorf("placement %q: want Kind@x,y", item)
		}
		xs, ys, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("placement %q: want Kind@x,y", item)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("placement %q: x: %w", item, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("placement %q: y: %w", item, err)
		}
		out = append(out, placement{Kind: strings.TrimSpace(kind), Pos: geom.V(x, y)})
	}
	return out, nil
}
