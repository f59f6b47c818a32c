package tables

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/faction"
)

// File names are fixed; content is the author's. The required/optional split
// mirrors what generation can degrade around: missing optional files leave
// empty tables, missing required files abort the load.
const (
	fileEncounterTypes  = "encounter_types.json"
	fileProgression     = "five_room_progression.json"
	fileEncounterTables = "encounter_tables.json"
	fileEnemyGroups     = "enemy_groups.json"
	fileMonsters        = "monsters.json"
	fileFactions        = "factions.json"
	fileEnvironments    = "environment_presets.json"
	filePuzzles         = "puzzle_tables.json"
	fileSocials         = "social_tables.json"
	fileExplorations    = "exploration_tables.json"
	fileLootData        = "loot_data.json"
)

func loadJSON(path string, required bool, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Load reads every data file from dir into typed tables, builds the id
// indexes and cross-checks references. Any malformed file or dangling id is
// a fatal configuration error; generation never runs against partial data.
func Load(dir string) (*Tables, error) {
	t := &Tables{}

	var monsters struct {
		Monsters []Monster `json:"monsters"`
	}
	if err := loadJSON(filepath.Join(dir, fileMonsters), true, &monsters); err != nil {
		return nil, err
	}
	t.Monsters = monsters.Monsters

	var groups struct {
		Groups []EnemyGroup `json:"groups"`
	}
	if err := loadJSON(filepath.Join(dir, fileEnemyGroups), true, &groups); err != nil {
		return nil, err
	}
	t.EnemyGroups = groups.Groups

	var templates struct {
		EncounterTables []Template `json:"encounter_tables"`
	}
	if err := loadJSON(filepath.Join(dir, fileEncounterTables), true, &templates); err != nil {
		return nil, err
	}
	t.Templates = templates.EncounterTables

	var types struct {
		Tables []TypeTable `json:"tables"`
	}
	if err := loadJSON(filepath.Join(dir, fileEncounterTypes), true, &types); err != nil {
		return nil, err
	}
	t.TypeTables = types.Tables

	if err := loadJSON(filepath.Join(dir, fileProgression), true, &t.Progression); err != nil {
		return nil, err
	}

	var factions struct {
		Factions []faction.Faction `json:"factions"`
	}
	if err := loadJSON(filepath.Join(dir, fileFactions), false, &factions); err != nil {
		return nil, err
	}
	t.Factions = make(faction.Set, len(factions.Factions))
	for _, f := range factions.Factions {
		t.Factions[f.ID] = f
	}

	var envs struct {
		Presets []EnvironmentPreset `json:"presets"`
	}
	if err := loadJSON(filepath.Join(dir, fileEnvironments), false, &envs); err != nil {
		return nil, err
	}
	t.Environments = envs.Presets

	for _, nc := range []struct {
		file string
		dst  *[]NoncombatEntry
	}{
		{filePuzzles, &t.Puzzles},
		{fileSocials, &t.Socials},
		{fileExplorations, &t.Explorations},
	} {
		var wrap struct {
			Entries []NoncombatEntry `json:"entries"`
		}
		if err := loadJSON(filepath.Join(dir, nc.file), false, &wrap); err != nil {
			return nil, err
		}
		*nc.dst = wrap.Entries
	}

	if err := loadJSON(filepath.Join(dir, fileLootData), true, &t.Loot); err != nil {
		return nil, err
	}

	t.index()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
