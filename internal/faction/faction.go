package faction

// Modifiers holds per-biome and per-slot weight multipliers for one faction.
// A missing entry means 1.0.
type Modifiers struct {
	Biomes map[string]float64 `json:"biomes"`
	Slots  map[string]float64 `json:"slots"`
}

// Faction groups monsters that share thematic weight adjustments.
type Faction struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	WeightModifiers Modifiers `json:"weight_modifiers"`
}

// Set indexes factions by id for multiplier lookups. Lookup-only; never
// iterated during selection.
type Set map[string]Faction

// EffectiveWeight multiplies base by the biome and slot multipliers of every
// listed faction. Unknown factions and missing entries contribute 1.0. A
// product that collapses to zero or below falls back to the base weight so a
// bad multiplier cannot silently exclude a template. Pure; draws nothing.
func (s Set) EffectiveWeight(base float64, factionIDs []string, biome, slot string) float64 {
	if len(factionIDs) == 0 || len(s) == 0 {
		return base
	}

	w := base
	for _, id := range factionIDs {
		f, ok := s[id]
		if !ok {
			continue
		}
		if m, ok := f.WeightModifiers.Biomes[biome]; ok {
			w *= m
		}
		if m, ok := f.WeightModifiers.Slots[slot]; ok {
			w *= m
		}
	}
	if w <= 0 {
		return base
	}
	return w
}
