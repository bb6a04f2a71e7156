package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UnitTemplate holds static stats for a unit type loaded from YAML.
type UnitTemplate struct {
	Name     string  `yaml:"name"`
	Role     string  `yaml:"role"` // combat, miner, gatherer
	MaxHP    int32   `yaml:"max_hp"`
	Speed    float64 `yaml:"speed"`
	Rate     float64 `yaml:"rate"`  // damage / mining / collect per second
	Range    float64 `yaml:"range"` // engagement range
	Mass     float64 `yaml:"mass"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Capacity float64 `yaml:"capacity"`
}

type unitListFile struct {
	Units []UnitTemplate `yaml:"units"`
}

// UnitTable holds all unit templates indexed by name.
type UnitTable struct {
	templates map[string]*UnitTemplate
}

// LoadUnitTable loads unit templates from a YAML file.
func LoadUnitTable(path string) (*UnitTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit_list: %w", err)
	}
	return ParseUnitTable(raw)
}

// ParseUnitTable parses unit templates from YAML bytes.
func ParseUnitTable(raw []byte) (*UnitTable, error) {
	var f unitListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse unit_list: %w", err)
	}
	t := &UnitTable{templates: make(map[string]*UnitTemplate, len(f.Units))}
	for i := range f.Units {
		u := &f.Units[i]
		if err := u.validate(); err != nil {
			return nil, fmt.Errorf("unit %q: %w", u.Name, err)
		}
		if _, dup := t.templates[u.Name]; dup {
			return nil, fmt.Errorf("unit %q: duplicate name", u.Name)
		}
		t.templates[u.Name] = u
	}
	return t, nil
}

func (u *UnitTemplate) validate() error {
	switch {
	case u.Name == "":
		return fmt.Errorf("missing name")
	case u.Role != "combat" && u.Role != "miner" && u.Role != "gatherer":
		return fmt.Errorf("unknown role %q", u.Role)
	case u.MaxHP <= 0:
		return fmt.Errorf("max_hp must be positive")
	case u.Width <= 0 || u.Height <= 0:
		return fmt.Errorf("width and height must be positive")
	case u.Speed < 0 || u.Rate < 0 || u.Range < 0 || u.Capacity < 0:
		return fmt.Errorf("speed, rate, range and capacity must not be negative")
	}
	if u.Mass < 1 {
		u.Mass = 1
	}
	return nil
}

// Get returns a unit template by name, or nil if not found.
func (t *UnitTable) Get(name string) *UnitTemplate {
	return t.templates[name]
}

// Count returns the number of loaded templates.
func (t *UnitTable) Count() int {
	return len(t.templates)
}
