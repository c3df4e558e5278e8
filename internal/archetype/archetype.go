// Package archetype loads the data-driven templates applied when a bot
// or structure entity is instantiated (spec §4.5 "initialise the bot
// archetype", supplemented from the original source's
// engine/src/entity_archetypes.rs per SPEC_FULL.md §13).
package archetype

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Archetype is the named set of starting component values installed
// together when an entity of a given role is created.
type Archetype struct {
	Name          string `yaml:"name"`
	Hp            int32  `yaml:"hp"`
	EnergyMax     int32  `yaml:"energy_max"`
	EnergyRegen   int32  `yaml:"energy_regen"`
	CarryMax      int32  `yaml:"carry_max"`
	MeleeStrength int32  `yaml:"melee_strength"`
}

// Catalogue is the loaded set of archetypes, keyed by name.
type Catalogue struct {
	byName map[string]Archetype
}

// BasicBot is the archetype a freshly spawned bot receives when no
// catalogue entry overrides it, matching the spec §8 scenario 4 numbers
// (energy 50 after ten regen ticks of 5 starting from 0).
var BasicBot = Archetype{
	Name:          "basic_bot",
	Hp:            50,
	EnergyMax:     100,
	EnergyRegen:   5,
	CarryMax:      50,
	MeleeStrength: 5,
}

// Load reads archetype definitions from a YAML file. A missing file is
// not an error — the caller falls back to BasicBot and any other builtin
// defaults.
func Load(path string) (*Catalogue, error) {
	cat := &Catalogue{byName: map[string]Archetype{BasicBot.Name: BasicBot}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cat, nil
		}
		return nil, fmt.Errorf("read archetypes %s: %w", path, err)
	}
	var list []Archetype
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse archetypes %s: %w", path, err)
	}
	for _, a := range list {
		cat.byName[a.Name] = a
	}
	return cat, nil
}

// Get returns the named archetype, or BasicBot if it is not registered.
func (c *Catalogue) Get(name string) Archetype {
	if a, ok := c.byName[name]; ok {
		return a
	}
	return BasicBot
}
