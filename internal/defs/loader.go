// internal/defs/loader.go
package defs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed content/default.json
var defaultContent []byte

// Library is the immutable content set a match is built from.
type Library struct {
	Config  GameConfig         `json:"config"`
	Level   Level              `json:"level"`
	Creeps  []CreepDefinition  `json:"creeps"`
	Turrets []TurretDefinition `json:"turrets"`
	Waves   []WaveDefinition   `json:"waves"`

	creepByID  map[string]*CreepDefinition
	turretByID map[string]*TurretDefinition
}

// LoadLibrary reads a content file and validates it.
func LoadLibrary(path string) (*Library, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return ParseLibrary(file)
}

// ParseLibrary decodes JSON content, fills defaults and validates it.
func ParseLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content: %w", err)
	}
	if err := lib.Init(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// DefaultLibrary returns the content bundled with the binary.
func DefaultLibrary() *Library {
	lib, err := ParseLibrary(defaultContent)
	if err != nil {
		panic(fmt.Sprintf("bundled content is invalid: %v", err))
	}
	return lib
}

// Init fills defaults, builds the lookup indexes and validates the library.
// Libraries assembled in code must call it before use.
func (l *Library) Init() error {
	for i := range l.Creeps {
		l.Creeps[i].applyDefaults()
	}
	for i := range l.Turrets {
		l.Turrets[i].applyDefaults()
	}
	l.creepByID = make(map[string]*CreepDefinition, len(l.Creeps))
	for i := range l.Creeps {
		l.creepByID[l.Creeps[i].ID] = &l.Creeps[i]
	}
	l.turretByID = make(map[string]*TurretDefinition, len(l.Turrets))
	for i := range l.Turrets {
		l.turretByID[l.Turrets[i].ID] = &l.Turrets[i]
	}
	return l.Validate()
}

// Validate reports every configuration problem at once.
func (l *Library) Validate() error {
	var errs []error
	errs = append(errs, l.Config.validate()...)
	errs = append(errs, l.Level.validate()...)

	if len(l.Creeps) == 0 {
		errs = append(errs, configErr("library", "no creep definitions"))
	}
	seen := map[string]bool{}
	for i := range l.Creeps {
		d := &l.Creeps[i]
		if seen[d.ID] {
			errs = append(errs, configErr("creep "+quote(d.ID), "duplicate id"))
		}
		seen[d.ID] = true
		errs = append(errs, d.validate()...)
	}

	seen = map[string]bool{}
	for i := range l.Turrets {
		d := &l.Turrets[i]
		if seen[d.ID] {
			errs = append(errs, configErr("turret "+quote(d.ID), "duplicate id"))
		}
		seen[d.ID] = true
		errs = append(errs, d.validate()...)
	}

	if len(l.Waves) == 0 {
		errs = append(errs, configErr("library", "wave list is empty"))
	}
	for i := range l.Waves {
		errs = append(errs, l.Waves[i].validate(i, l.creepByID)...)
	}
	return errors.Join(errs...)
}

// Creep looks up a creep definition by ID.
func (l *Library) Creep(id string) (*CreepDefinition, bool) {
	d, ok := l.creepByID[id]
	return d, ok
}

// Turret looks up a turret definition by ID.
func (l *Library) Turret(id string) (*TurretDefinition, bool) {
	d, ok := l.turretByID[id]
	return d, ok
}

// ProjectileKinds returns the distinct projectile pool kinds used by turrets.
func (l *Library) ProjectileKinds() []string {
	var kinds []string
	seen := map[string]bool{}
	for i := range l.Turrets {
		k := l.Turrets[i].Projectile
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds
}
