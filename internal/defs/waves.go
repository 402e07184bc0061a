package defs

import "fmt"

// SpawnBatch - одна пачка крипов внутри волны.
type SpawnBatch struct {
	CreepID       string  `json:"creep"`
	Count         int     `json:"count"`
	Delay         float64 `json:"delay"`                    // пауза перед пачкой
	SpawnInterval float64 `json:"spawn_interval,omitempty"` // 0 - берём интервал волны
}

// WaveDefinition описывает параметры для одной волны врагов.
type WaveDefinition struct {
	Number        int          `json:"number"`
	SpawnInterval float64      `json:"spawn_interval"`
	Batches       []SpawnBatch `json:"batches"`
}

// Interval returns the pause between two creeps of batch b.
func (w *WaveDefinition) Interval(b SpawnBatch) float64 {
	if b.SpawnInterval > 0 {
		return b.SpawnInterval
	}
	return w.SpawnInterval
}

// TotalCreeps returns how many creeps the wave spawns over all batches.
func (w *WaveDefinition) TotalCreeps() int {
	total := 0
	for _, b := range w.Batches {
		total += b.Count
	}
	return total
}

func (w *WaveDefinition) validate(index int, creeps map[string]*CreepDefinition) []error {
	subject := fmt.Sprintf("wave %d", index+1)
	var errs []error
	if len(w.Batches) == 0 {
		errs = append(errs, configErr(subject, "has no batches"))
	}
	if w.SpawnInterval < 0 {
		errs = append(errs, configErr(subject, "spawn_interval must not be negative"))
	}
	for i, b := range w.Batches {
		bs := fmt.Sprintf("%s batch %d", subject, i+1)
		if _, ok := creeps[b.CreepID]; !ok {
			errs = append(errs, configErr(bs, "unknown creep %q", b.CreepID))
		}
		if b.Count <= 0 {
			errs = append(errs, configErr(bs, "count must be positive, got %d", b.Count))
		}
		if b.Delay < 0 || b.SpawnInterval < 0 {
			errs = append(errs, configErr(bs, "delays must not be negative"))
		}
	}
	return errs
}
