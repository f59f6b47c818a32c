package encounter

import (
	"errors"
	"math"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/config"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/loot"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/pick"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/rng"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/tables"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/telemetry"
)

// Composer builds one encounter per call. Stateless apart from the RNG
// cursor it shares with the rest of the generation run; the same cursor
// position always composes the same encounter.
type Composer struct {
	Tables   *tables.Tables
	Policy   config.Policy
	RNG      *rng.Source
	Recorder *telemetry.Recorder
}

// Compose resolves the slot's difficulty, rolls an encounter type and
// builds the encounter. Selection exhaustion anywhere degrades to an empty
// encounter; only genuine defects (invalid weights, failed loot budget
// lookups) surface as errors.
func (c Composer) Compose(slot, biome string, baseLevel, offset int) (Encounter, error) {
	difficulty := clamp(baseLevel+offset, c.Policy.Encounter.MinLevel, c.Policy.Encounter.MaxLevel)

	encType := c.rollType(slot, biome)
	c.Recorder.Record(telemetry.EventTypeRolled, slot, encType)

	switch encType {
	case TypeCombat:
		return c.combat(slot, biome, difficulty)
	case TypePuzzle, TypeSocial, TypeExploration:
		return c.noncombat(slot, biome, difficulty, encType)
	default:
		return c.empty(slot, biome, difficulty), nil
	}
}

// rollType picks a type table matching the slot and biome, then rolls its
// die against the row bands. No tables at all means plain combat.
func (c Composer) rollType(slot, biome string) string {
	if len(c.Tables.TypeTables) == 0 {
		return TypeCombat
	}

	candidates := make([]tables.TypeTable, 0, len(c.Tables.TypeTables))
	for _, tt := range c.Tables.TypeTables {
		if tables.Matches(tt.Biomes, biome) && tables.Matches(tt.Slots, slot) {
			candidates = append(candidates, tt)
		}
	}
	if len(candidates) == 0 {
		candidates = c.Tables.TypeTables
	}

	table := candidates[c.RNG.IntBetween(0, len(candidates)-1)]
	die := table.Die
	if die < 1 {
		die = 20
	}
	roll := c.RNG.IntBetween(1, die)

	for _, row := range table.Rows {
		lo := row.Min
		if lo == 0 {
			lo = 1
		}
		hi := row.Max
		if hi < lo {
			hi = lo
		}
		if lo <= roll && roll <= hi {
			return row.Type
		}
	}
	return TypeCombat
}

func (c Composer) combat(slot, biome string, difficulty int) (Encounter, error) {
	keep := func(tpl tables.Template) bool {
		return tables.Matches(tpl.Biomes, biome) &&
			tables.Matches(tpl.Slots, slot) &&
			tpl.LevelEligible(difficulty)
	}
	weight := func(tpl tables.Template) float64 {
		base := tpl.Weight
		if base == 0 {
			base = 1
		}
		// The primary faction drives the biome/slot adjustment.
		primary := tpl.Factions
		if len(primary) > 1 {
			primary = primary[:1]
		}
		return c.Tables.Factions.EffectiveWeight(base, primary, biome, slot)
	}

	tpl, err := pick.One(c.RNG, c.Tables.Templates, keep, weight)
	if errors.Is(err, pick.ErrNoEligibleCandidates) {
		c.Recorder.Record(telemetry.EventEmptyFallback, slot, "")
		return c.empty(slot, biome, difficulty), nil
	}
	if err != nil {
		return Encounter{}, err
	}
	c.Recorder.Record(telemetry.EventTemplateSelected, slot, tpl.ID)

	enemies := c.resolveEnemies(tpl, difficulty)
	env := c.selectEnvironment(biome, tpl.EnvironmentTags, "")
	enc := Encounter{
		Difficulty:  difficulty,
		Type:        TypeCombat,
		Slot:        slot,
		Biome:       biome,
		Enemies:     enemies,
		Environment: env,
		Tags:        mergeTags(tpl.Tags, env.Tags),
		Meta:        Meta{TemplateID: tpl.ID, Notes: tpl.Notes},
	}

	if rolls := tpl.Rolls(); rolls > 0 {
		attached, err := c.rollLoot(difficulty, rolls, slot)
		if err != nil {
			return Encounter{}, err
		}
		enc.Loot = attached
	}
	return enc, nil
}

// resolveEnemies instantiates the template's enemy group: a count draw per
// entry, scaled linearly when the room runs above the template's baseline
// level. A drawn count of zero drops the line entirely.
func (c Composer) resolveEnemies(tpl tables.Template, difficulty int) []Enemy {
	group, _ := c.Tables.GroupByID(tpl.EnemyGroupID) // validated at load

	out := []Enemy{}
	for _, entry := range group.Enemies {
		lo := entry.Count.Min
		hi := entry.Count.Max
		if hi < lo {
			hi = lo
		}
		count := c.RNG.IntBetween(lo, hi)
		if count <= 0 {
			continue
		}

		baseline := tpl.MinLevel
		if baseline == 0 {
			baseline = 1
		}
		if delta := difficulty - baseline; delta > 0 {
			scale := 1 + c.Policy.Encounter.CountScalePerLevel*float64(delta)
			count = int(math.Round(float64(count) * scale))
			if count < 1 {
				count = 1
			}
		}

		monster, _ := c.Tables.MonsterByID(entry.MonsterID) // validated at load
		factionID := monster.Faction
		if factionID == "" {
			factionID = group.Faction
		}
		out = append(out, Enemy{
			MonsterID: entry.MonsterID,
			Name:      monster.Name,
			Count:     count,
			CR:        monster.CR,
			Faction:   factionID,
			Tags:      monster.Tags,
		})
	}
	return out
}

func (c Composer) noncombat(slot, biome string, difficulty int, encType string) (Encounter, error) {
	entries := c.Tables.Noncombat(encType)
	if len(entries) == 0 {
		c.Recorder.Record(telemetry.EventEmptyFallback, slot, "")
		return c.empty(slot, biome, difficulty), nil
	}

	keep := func(e tables.NoncombatEntry) bool {
		return tables.Matches(e.Biomes, biome) &&
			tables.Matches(e.Slots, slot) &&
			e.LevelEligible(difficulty)
	}
	weight := func(e tables.NoncombatEntry) float64 {
		if e.Weight == 0 {
			return 1
		}
		return e.Weight
	}

	entry, err := pick.One(c.RNG, entries, keep, weight)
	if errors.Is(err, pick.ErrNoEligibleCandidates) {
		c.Recorder.Record(telemetry.EventEmptyFallback, slot, "")
		return c.empty(slot, biome, difficulty), nil
	}
	if err != nil {
		return Encounter{}, err
	}
	c.Recorder.Record(telemetry.EventNoncombatPicked, slot, entry.ID)

	env := c.selectEnvironment(biome, entry.EnvironmentTags, entry.EnvironmentPresetID)
	enc := Encounter{
		Difficulty:  difficulty,
		Type:        encType,
		Slot:        slot,
		Biome:       biome,
		Enemies:     []Enemy{},
		Environment: env,
		Tags:        mergeTags(entry.Tags, env.Tags),
		Meta:        Meta{NoncombatID: entry.ID, Notes: entry.Notes},
	}

	if entry.AwardLoot {
		attached, err := c.rollLoot(difficulty, entry.Rolls(), slot)
		if err != nil {
			return Encounter{}, err
		}
		enc.Loot = attached
	}
	return enc, nil
}

// selectEnvironment prefers an explicitly referenced preset, otherwise
// draws one matching the biome with at least one overlapping tag. No
// presets in the data set yields a blank environment.
func (c Composer) selectEnvironment(biome string, wantTags []string, specificID string) Environment {
	if len(c.Tables.Environments) == 0 {
		return blankEnvironment()
	}

	if specificID != "" {
		if preset, ok := c.Tables.PresetByID(specificID); ok {
			return presetEnvironment(preset)
		}
	}

	candidates := make([]tables.EnvironmentPreset, 0, len(c.Tables.Environments))
	for _, preset := range c.Tables.Environments {
		if !tables.Matches(preset.Biomes, biome) {
			continue
		}
		if len(wantTags) > 0 && !tagsOverlap(wantTags, preset.Tags) {
			continue
		}
		candidates = append(candidates, preset)
	}
	if len(candidates) == 0 {
		candidates = c.Tables.Environments
	}

	return presetEnvironment(candidates[c.RNG.IntBetween(0, len(candidates)-1)])
}

func (c Composer) rollLoot(difficulty, rolls int, slot string) (*loot.Result, error) {
	gen := loot.Generator{Tables: c.Tables, Policy: c.Policy.Loot, RNG: c.RNG}
	attached, err := gen.Attach(difficulty, rolls)
	if err != nil {
		return nil, err
	}
	for range attached.Parcels {
		c.Recorder.Record(telemetry.EventParcelRolled, slot, "")
	}
	return attached, nil
}

func (c Composer) empty(slot, biome string, difficulty int) Encounter {
	return Encounter{
		Difficulty:  difficulty,
		Type:        TypeEmpty,
		Slot:        slot,
		Biome:       biome,
		Enemies:     []Enemy{},
		Environment: blankEnvironment(),
		Tags:        []string{},
	}
}

func blankEnvironment() Environment {
	return Environment{Tags: []string{}, MechanicalEffects: map[string]any{}}
}

func presetEnvironment(p tables.EnvironmentPreset) Environment {
	env := Environment{
		PresetID:          p.ID,
		Description:       p.Description,
		Tags:              p.Tags,
		MechanicalEffects: p.MechanicalEffects,
	}
	if env.Tags == nil {
		env.Tags = []string{}
	}
	if env.MechanicalEffects == nil {
		env.MechanicalEffects = map[string]any{}
	}
	return env
}

// mergeTags deduplicates while keeping a fixed order: template tags first,
// then environment tags. Draw order elsewhere must never depend on an
// unordered merge.
func mergeTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := []string{}
	for _, t := range append(append([]string{}, a...), b...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func tagsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
