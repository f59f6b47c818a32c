package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the tunable generation heuristics. The contracts (budget
// conservation, determinism) are fixed in code; the exact percentages live
// here so they can be rebalanced without touching the generators.
type Policy struct {
	Encounter EncounterPolicy `yaml:"encounter" envPrefix:"ENCOUNTER_"`
	Loot      LootPolicy      `yaml:"loot" envPrefix:"LOOT_"`
}

type EncounterPolicy struct {
	// Supported level band; room difficulty clamps into it.
	MinLevel int `yaml:"min_level" env:"MIN_LEVEL"`
	MaxLevel int `yaml:"max_level" env:"MAX_LEVEL"`
	// Linear enemy-count growth per point of difficulty above a
	// template's baseline.
	CountScalePerLevel float64 `yaml:"count_scale_per_level" env:"COUNT_SCALE_PER_LEVEL"`
}

type LootPolicy struct {
	// Fraction of the level budget spent on coins, drawn uniformly from
	// [CoinFractionMin, CoinFractionMax] per parcel.
	CoinFractionMin float64 `yaml:"coin_fraction_min" env:"COIN_FRACTION_MIN"`
	CoinFractionMax float64 `yaml:"coin_fraction_max" env:"COIN_FRACTION_MAX"`
	// Hard cap on items per parcel; the fill also stops when the budget
	// drops below the cheapest eligible item.
	MaxItems int `yaml:"max_items" env:"MAX_ITEMS"`
}

// Default returns the balance the regression fixtures were recorded against.
func Default() Policy {
	return Policy{
		Encounter: EncounterPolicy{
			MinLevel:           1,
			MaxLevel:           20,
			CountScalePerLevel: 0.10,
		},
		Loot: LootPolicy{
			CoinFractionMin: 0.10,
			CoinFractionMax: 0.30,
			MaxItems:        4,
		},
	}
}

func (p *Policy) ApplyDefaults() {
	d := Default()
	if p.Encounter.MinLevel == 0 {
		p.Encounter.MinLevel = d.Encounter.MinLevel
	}
	if p.Encounter.MaxLevel == 0 {
		p.Encounter.MaxLevel = d.Encounter.MaxLevel
	}
	if p.Encounter.CountScalePerLevel == 0 {
		p.Encounter.CountScalePerLevel = d.Encounter.CountScalePerLevel
	}
	if p.Loot.CoinFractionMin == 0 {
		p.Loot.CoinFractionMin = d.Loot.CoinFractionMin
	}
	if p.Loot.CoinFractionMax == 0 {
		p.Loot.CoinFractionMax = d.Loot.CoinFractionMax
	}
	if p.Loot.MaxItems == 0 {
		p.Loot.MaxItems = d.Loot.MaxItems
	}
}

func (p Policy) Validate() error {
	if p.Encounter.MinLevel < 1 || p.Encounter.MaxLevel < p.Encounter.MinLevel {
		return fmt.Errorf("encounter level band %d..%d is invalid", p.Encounter.MinLevel, p.Encounter.MaxLevel)
	}
	if p.Loot.CoinFractionMin < 0 || p.Loot.CoinFractionMax > 1 ||
		p.Loot.CoinFractionMax < p.Loot.CoinFractionMin {
		return fmt.Errorf("coin fraction range %.2f..%.2f is invalid", p.Loot.CoinFractionMin, p.Loot.CoinFractionMax)
	}
	if p.Loot.MaxItems < 0 {
		return fmt.Errorf("max_items must be >= 0")
	}
	return nil
}

// Load reads a YAML policy file, fills gaps with defaults and applies
// environment overrides. A missing file is fine; defaults apply.
func Load(path string) (Policy, error) {
	var p Policy

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return Policy{}, err
		default:
			if err := yaml.Unmarshal(b, &p); err != nil {
				return Policy{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	p.ApplyDefaults()
	if err := applyEnv(&p); err != nil {
		return Policy{}, err
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
