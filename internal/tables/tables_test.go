package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureFiles = map[string]string{
	"monsters.json": `{"monsters": [
		{"id": "gob", "name": "Gob", "cr": 0.25, "faction": "tribe", "tags": ["humanoid"]},
		{"id": "boss", "name": "Boss", "cr": 1, "faction": "tribe", "tags": ["leader"]}
	]}`,
	"enemy_groups.json": `{"groups": [
		{"id": "gang", "faction": "tribe", "enemies": [
			{"monster_id": "gob", "count": {"min": 2, "max": 4}},
			{"monster_id": "boss", "count": {"min": 0, "max": 1}}
		]}
	]}`,
	"encounter_tables.json": `{"encounter_tables": [
		{"id": "tpl_gang", "enemy_group_id": "gang", "weight": 1,
		 "biomes": ["any"], "slots": ["any"], "min_level": 1, "max_level": 20,
		 "factions": ["tribe"]}
	]}`,
	"encounter_types.json": `{"tables": [
		{"id": "all_combat", "biomes": ["any"], "slots": ["any"], "die": 1,
		 "rows": [{"min": 1, "max": 1, "type": "combat"}]}
	]}`,
	"five_room_progression.json": `{
		"default_order": ["entrance", "puzzle", "setback", "climax", "aftermath"],
		"slots": {
			"entrance": {"difficulty_delta": 0},
			"puzzle": {"difficulty_delta": 0},
			"setback": {"difficulty_delta": 1},
			"climax": {"difficulty_delta": 2},
			"aftermath": {"difficulty_delta": -1}
		}
	}`,
	"loot_data.json": `{
		"coin_values_gp": {"gp": 1, "sp": 0.1, "cp": 0.01, "pp": 10},
		"level_budgets_gp": {"1": 25, "5": 250},
		"magic_items": [
			{"id": "potion", "name": "Potion", "rarity": "common", "min_level": 1, "max_level": 20, "gp_value": 50, "weight": 5}
		],
		"mundane_goods": [
			{"id": "gem", "name": "Gem", "min_level": 1, "max_level": 20, "gp_value": 10, "weight": 3}
		]
	}`,
}

// writeFixture lays down a loadable data directory, with overrides replacing
// or (empty string) removing individual files.
func writeFixture(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtureFiles {
		if repl, ok := overrides[name]; ok {
			if repl == "" {
				continue
			}
			content = repl
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	for name, content := range overrides {
		if _, base := fixtureFiles[name]; base || content == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadFixture(t *testing.T) {
	tab, err := Load(writeFixture(t, nil))
	require.NoError(t, err)

	assert.Len(t, tab.Monsters, 2)
	assert.Len(t, tab.Templates, 1)

	m, ok := tab.MonsterByID("gob")
	require.True(t, ok)
	assert.Equal(t, "Gob", m.Name)

	g, ok := tab.GroupByID("gang")
	require.True(t, ok)
	assert.Len(t, g.Enemies, 2)

	budget, ok := tab.BudgetForLevel(5)
	require.True(t, ok)
	assert.Equal(t, 250.0, budget)

	_, ok = tab.BudgetForLevel(3)
	assert.False(t, ok)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	_, err := Load(writeFixture(t, map[string]string{"monsters.json": ""}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monsters.json")
}

func TestLoadMissingOptionalFilesIsFine(t *testing.T) {
	tab, err := Load(writeFixture(t, nil))
	require.NoError(t, err)

	assert.Empty(t, tab.Puzzles)
	assert.Empty(t, tab.Environments)
	assert.Empty(t, tab.Factions)
}

func TestLoadRejectsDanglingMonsterRef(t *testing.T) {
	_, err := Load(writeFixture(t, map[string]string{
		"enemy_groups.json": `{"groups": [
			{"id": "gang", "enemies": [{"monster_id": "ghost", "count": {"min": 1, "max": 1}}]}
		]}`,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown monster "ghost"`)
}

func TestLoadRejectsDanglingGroupRef(t *testing.T) {
	_, err := Load(writeFixture(t, map[string]string{
		"encounter_tables.json": `{"encounter_tables": [
			{"id": "tpl", "enemy_group_id": "nobody", "weight": 1}
		]}`,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown enemy group "nobody"`)
}

func TestLoadRejectsDanglingPresetRef(t *testing.T) {
	_, err := Load(writeFixture(t, map[string]string{
		"puzzle_tables.json": `{"entries": [
			{"id": "riddle", "weight": 1, "environment_preset_id": "nowhere"}
		]}`,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment preset "nowhere"`)
}

func TestLoadRejectsNegativeWeight(t *testing.T) {
	_, err := Load(writeFixture(t, map[string]string{
		"encounter_tables.json": `{"encounter_tables": [
			{"id": "tpl", "enemy_group_id": "gang", "weight": -2}
		]}`,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight must be >= 0")
}

func TestMatchesAnyConvention(t *testing.T) {
	assert.True(t, Matches(nil, "dungeon"))
	assert.True(t, Matches([]string{}, "dungeon"))
	assert.True(t, Matches([]string{"any"}, "dungeon"))
	assert.True(t, Matches([]string{"forest", "dungeon"}, "dungeon"))
	assert.False(t, Matches([]string{"forest"}, "dungeon"))
}

func TestSortedCoinRatesStableOrder(t *testing.T) {
	d := LootData{CoinValuesGP: map[string]float64{
		"cp": 0.01, "pp": 10, "sp": 0.1, "gp": 1, "alt_gp": 1,
	}}

	var denoms []string
	for _, r := range d.SortedCoinRates() {
		denoms = append(denoms, r.Denomination)
	}
	assert.Equal(t, []string{"pp", "alt_gp", "gp", "sp", "cp"}, denoms)
}

func TestSlotOrderAndDeltas(t *testing.T) {
	tab, err := Load(writeFixture(t, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"entrance", "puzzle", "setback", "climax", "aftermath"}, tab.SlotOrder())
	assert.Equal(t, 2, tab.DifficultyDelta("climax"))
	assert.Equal(t, -1, tab.DifficultyDelta("aftermath"))
	assert.True(t, tab.KnownSlot("setback"))
	assert.False(t, tab.KnownSlot("antechamber"))
}

func TestDifficultyDeltaDefaultsWithoutProgression(t *testing.T) {
	tab := &Tables{}
	assert.Equal(t, 0, tab.DifficultyDelta("entrance"))
	assert.Equal(t, 1, tab.DifficultyDelta("setback"))
	assert.Equal(t, 2, tab.DifficultyDelta("climax"))
	assert.Equal(t, -1, tab.DifficultyDelta("aftermath"))
	assert.Equal(t, []string{"entrance", "puzzle", "setback", "climax", "aftermath"}, tab.SlotOrder())
}

func TestTemplateDefaults(t *testing.T) {
	tpl := Template{}
	assert.Equal(t, 1, tpl.Rolls())
	assert.True(t, tpl.LevelEligible(1))
	assert.True(t, tpl.LevelEligible(50))

	two := 2
	tpl = Template{LootRolls: &two, MinLevel: 3, MaxLevel: 5}
	assert.Equal(t, 2, tpl.Rolls())
	assert.False(t, tpl.LevelEligible(2))
	assert.True(t, tpl.LevelEligible(4))
	assert.False(t, tpl.LevelEligible(6))
}

func TestBiomesCollectsFromAllTables(t *testing.T) {
	tab, err := Load(writeFixture(t, map[string]string{
		"encounter_tables.json": `{"encounter_tables": [
			{"id": "tpl", "enemy_group_id": "gang", "weight": 1, "biomes": ["dungeon", "any"]}
		]}`,
		"environment_presets.json": `{"presets": [
			{"id": "glade", "description": "a glade", "biomes": ["forest"], "tags": ["open"]}
		]}`,
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"dungeon", "forest"}, tab.Biomes())
	assert.True(t, tab.KnownBiome("forest"))
	assert.False(t, tab.KnownBiome("any"))
	assert.False(t, tab.KnownBiome("tundra"))
}

func TestLoadShippedData(t *testing.T) {
	tab, err := Load(filepath.Join("..", "..", "data"))
	require.NoError(t, err)

	assert.NotEmpty(t, tab.Monsters)
	assert.NotEmpty(t, tab.Templates)
	assert.NotEmpty(t, tab.Factions)
	for level := 1; level <= 20; level++ {
		_, ok := tab.BudgetForLevel(level)
		assert.True(t, ok, "level %d has no budget", level)
	}
}
