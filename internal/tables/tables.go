package tables

import (
	"sort"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/faction"
)

// Monster is a static bestiary entry. Loaded once, never mutated.
type Monster struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	CR      float64  `json:"cr"`
	Faction string   `json:"faction"`
	Tags    []string `json:"tags"`
}

// CountRange bounds how many of one monster an enemy group spawns.
type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GroupEntry is one (monster, count range) pair inside an enemy group.
type GroupEntry struct {
	MonsterID string     `json:"monster_id"`
	Count     CountRange `json:"count"`
}

// EnemyGroup is a named, pre-composed set of monsters so encounters do not
// re-derive compositions per roll.
type EnemyGroup struct {
	ID      string       `json:"id"`
	Faction string       `json:"faction"`
	Enemies []GroupEntry `json:"enemies"`
}

// Template is a combat encounter template. Empty Biomes or Slots means "any"
// (matching the JSON convention of the data files). LootRolls is nil when
// the file omits it; Rolls() applies the default of 1.
type Template struct {
	ID              string   `json:"id"`
	Biomes          []string `json:"biomes"`
	Slots           []string `json:"slots"`
	MinLevel        int      `json:"min_level"`
	MaxLevel        int      `json:"max_level"`
	Weight          float64  `json:"weight"`
	EnemyGroupID    string   `json:"enemy_group_id"`
	Factions        []string `json:"factions"`
	Tags            []string `json:"tags"`
	EnvironmentTags []string `json:"environment_tags"`
	LootRolls       *int     `json:"loot_rolls"`
	Notes           string   `json:"notes"`
}

func (t Template) Rolls() int {
	if t.LootRolls == nil {
		return 1
	}
	return *t.LootRolls
}

// LevelEligible reports whether level falls inside the template's band.
// A missing min defaults to 1, a missing max to 99 (open-ended).
func (t Template) LevelEligible(level int) bool {
	return levelInBand(level, t.MinLevel, t.MaxLevel)
}

func levelInBand(level, lo, hi int) bool {
	if lo == 0 {
		lo = 1
	}
	if hi == 0 {
		hi = 99
	}
	return lo <= level && level <= hi
}

// Matches reports set membership with the data files' "any" convention: an
// empty list or an "any" entry admits every value.
func Matches(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if s == "any" || s == v {
			return true
		}
	}
	return false
}

// TypeRow maps a die-roll band to an encounter type.
type TypeRow struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Type string `json:"type"`
}

// TypeTable decides which kind of encounter a slot produces via one die roll.
type TypeTable struct {
	ID     string    `json:"id"`
	Biomes []string  `json:"biomes"`
	Slots  []string  `json:"slots"`
	Die    int       `json:"die"`
	Rows   []TypeRow `json:"rows"`
}

// NoncombatEntry is a puzzle, social or exploration encounter entry.
type NoncombatEntry struct {
	ID                  string   `json:"id"`
	Biomes              []string `json:"biomes"`
	Slots               []string `json:"slots"`
	MinLevel            int      `json:"min_level"`
	MaxLevel            int      `json:"max_level"`
	Weight              float64  `json:"weight"`
	Tags                []string `json:"tags"`
	EnvironmentTags     []string `json:"environment_tags"`
	EnvironmentPresetID string   `json:"environment_preset_id"`
	AwardLoot           bool     `json:"award_loot"`
	LootRolls           *int     `json:"loot_rolls"`
	Notes               string   `json:"notes"`
}

func (n NoncombatEntry) Rolls() int {
	if n.LootRolls == nil {
		return 1
	}
	return *n.LootRolls
}

func (n NoncombatEntry) LevelEligible(level int) bool {
	return levelInBand(level, n.MinLevel, n.MaxLevel)
}

// EnvironmentPreset describes the physical setting attached to encounters.
type EnvironmentPreset struct {
	ID                string         `json:"id"`
	Description       string         `json:"description"`
	Biomes            []string       `json:"biomes"`
	Tags              []string       `json:"tags"`
	MechanicalEffects map[string]any `json:"mechanical_effects"`
}

// SlotDef carries the per-slot difficulty delta from the progression file.
type SlotDef struct {
	DifficultyDelta int    `json:"difficulty_delta"`
	Description     string `json:"description"`
}

// Progression defines the room order and per-slot difficulty deltas.
type Progression struct {
	DefaultOrder []string           `json:"default_order"`
	Slots        map[string]SlotDef `json:"slots"`
}

// LootItem is a magic or mundane item row with level gating.
type LootItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rarity   string  `json:"rarity"`
	MinLevel int     `json:"min_level"`
	MaxLevel int     `json:"max_level"`
	GPValue  float64 `json:"gp_value"`
	Weight   float64 `json:"weight"`
}

// EligibleAt reports whether the item's level gate admits level. Missing
// gates default to the full 1..20 band.
func (it LootItem) EligibleAt(level int) bool {
	lo := it.MinLevel
	if lo == 0 {
		lo = 1
	}
	hi := it.MaxLevel
	if hi == 0 {
		hi = 20
	}
	return lo <= level && level <= hi
}

// CoinRate is one denomination with its gold-piece exchange value.
type CoinRate struct {
	Denomination string
	GPValue      float64
}

// LootData mirrors loot_data.json.
type LootData struct {
	CoinValuesGP   map[string]float64 `json:"coin_values_gp"`
	LevelBudgetsGP map[string]float64 `json:"level_budgets_gp"`
	MagicItems     []LootItem         `json:"magic_items"`
	MundaneGoods   []LootItem         `json:"mundane_goods"`
}

// SortedCoinRates returns denominations ordered by value descending, ties
// broken by name, so coin apportionment consumes draws in a stable order.
func (d LootData) SortedCoinRates() []CoinRate {
	rates := make([]CoinRate, 0, len(d.CoinValuesGP))
	for denom, v := range d.CoinValuesGP {
		rates = append(rates, CoinRate{Denomination: denom, GPValue: v})
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].GPValue != rates[j].GPValue {
			return rates[i].GPValue > rates[j].GPValue
		}
		return rates[i].Denomination < rates[j].Denomination
	})
	return rates
}

// Tables is the full, immutable data set one generation call reads from.
// Slices keep file order (selection draws depend on it); the id maps exist
// for lookups only.
type Tables struct {
	Monsters     []Monster
	EnemyGroups  []EnemyGroup
	Templates    []Template
	TypeTables   []TypeTable
	Puzzles      []NoncombatEntry
	Socials      []NoncombatEntry
	Explorations []NoncombatEntry
	Environments []EnvironmentPreset
	Progression  Progression
	Factions     faction.Set
	Loot         LootData

	monsterByID map[string]Monster
	groupByID   map[string]EnemyGroup
	presetByID  map[string]EnvironmentPreset
}

func (t *Tables) index() {
	t.monsterByID = make(map[string]Monster, len(t.Monsters))
	for _, m := range t.Monsters {
		t.monsterByID[m.ID] = m
	}
	t.groupByID = make(map[string]EnemyGroup, len(t.EnemyGroups))
	for _, g := range t.EnemyGroups {
		t.groupByID[g.ID] = g
	}
	t.presetByID = make(map[string]EnvironmentPreset, len(t.Environments))
	for _, p := range t.Environments {
		t.presetByID[p.ID] = p
	}
}

func (t *Tables) MonsterByID(id string) (Monster, bool) {
	m, ok := t.monsterByID[id]
	return m, ok
}

func (t *Tables) GroupByID(id string) (EnemyGroup, bool) {
	g, ok := t.groupByID[id]
	return g, ok
}

func (t *Tables) PresetByID(id string) (EnvironmentPreset, bool) {
	p, ok := t.presetByID[id]
	return p, ok
}

// Noncombat returns the entry list backing an encounter type, or nil for
// types without a table.
func (t *Tables) Noncombat(encType string) []NoncombatEntry {
	switch encType {
	case "puzzle":
		return t.Puzzles
	case "social":
		return t.Socials
	case "exploration":
		return t.Explorations
	}
	return nil
}

// Biomes collects every biome named anywhere in the data set, sorted, for
// validating caller input before generation starts.
func (t *Tables) Biomes() []string {
	seen := map[string]bool{}
	add := func(bs []string) {
		for _, b := range bs {
			if b != "" && b != "any" {
				seen[b] = true
			}
		}
	}
	for _, tpl := range t.Templates {
		add(tpl.Biomes)
	}
	for _, tt := range t.TypeTables {
		add(tt.Biomes)
	}
	for _, e := range t.Environments {
		add(e.Biomes)
	}
	for _, lists := range [][]NoncombatEntry{t.Puzzles, t.Socials, t.Explorations} {
		for _, e := range lists {
			add(e.Biomes)
		}
	}
	out := make([]string, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// KnownBiome reports whether any table mentions the biome.
func (t *Tables) KnownBiome(biome string) bool {
	for _, b := range t.Biomes() {
		if b == biome {
			return true
		}
	}
	return false
}

// SlotOrder returns the progression's room order, falling back to the
// canonical five-room order when the file omits it.
func (t *Tables) SlotOrder() []string {
	if len(t.Progression.DefaultOrder) > 0 {
		return t.Progression.DefaultOrder
	}
	return []string{"entrance", "puzzle", "setback", "climax", "aftermath"}
}

// KnownSlot reports whether the slot appears in the progression order.
func (t *Tables) KnownSlot(slot string) bool {
	for _, s := range t.SlotOrder() {
		if s == slot {
			return true
		}
	}
	return false
}

// defaultDeltas are the canonical five-room difficulty offsets, used when
// the progression file does not restate them.
var defaultDeltas = map[string]int{
	"entrance":  0,
	"puzzle":    0,
	"setback":   1,
	"climax":    2,
	"aftermath": -1,
}

// DifficultyDelta returns the slot's difficulty offset.
func (t *Tables) DifficultyDelta(slot string) int {
	if def, ok := t.Progression.Slots[slot]; ok {
		return def.DifficultyDelta
	}
	return defaultDeltas[slot]
}
