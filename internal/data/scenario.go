package data

import (
	"fmt"
	"os"

	"github.com/micron/skirmish/internal/component"
	"gopkg.in/yaml.v3"
)

// UnitSpawn places Count units of a template, scattered Spread units around (X, Y).
type UnitSpawn struct {
	Unit   string  `yaml:"unit"`
	Owner  string  `yaml:"owner"` // player, cpu
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

// PatchSpawn places one ore patch.
type PatchSpawn struct {
	OreType  string  `yaml:"ore_type"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Size     float64 `yaml:"size"`
	MaxHP    int32   `yaml:"max_hp"`
	Density  int     `yaml:"density"`
	Richness float64 `yaml:"richness"`
}

// StructureSpawn places one passive structure.
type StructureSpawn struct {
	Owner  string  `yaml:"owner"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	MaxHP  int32   `yaml:"max_hp"`
}

// Scenario is the initial population of a simulation run.
type Scenario struct {
	Name       string           `yaml:"name"`
	Units      []UnitSpawn      `yaml:"units"`
	Patches    []PatchSpawn     `yaml:"patches"`
	Structures []StructureSpawn `yaml:"structures"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw)
}

// ParseScenario parses a scenario from YAML bytes.
func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i := range sc.Units {
		u := &sc.Units[i]
		if u.Count <= 0 {
			u.Count = 1
		}
		if _, ok := component.ParseOwner(u.Owner); !ok {
			return nil, fmt.Errorf("units[%d]: unknown owner %q", i, u.Owner)
		}
	}
	for i, p := range sc.Patches {
		if p.Density < 1 || p.Density > 100 {
			return nil, fmt.Errorf("patches[%d]: density %d out of range 1..100", i, p.Density)
		}
		if p.MaxHP <= 0 || p.Size <= 0 {
			return nil, fmt.Errorf("patches[%d]: max_hp and size must be positive", i)
		}
	}
	for i, s := range sc.Structures {
		if _, ok := component.ParseOwner(s.Owner); !ok {
			return nil, fmt.Errorf("structures[%d]: unknown owner %q", i, s.Owner)
		}
	}
	return &sc, nil
}
