package dungeon

import (
	"fmt"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/config"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/encounter"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/rng"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/tables"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/telemetry"
)

const (
	SchemaFiveRoom = "dungeon.5room.v1"
	SchemaSingle   = "encounter.v1"
)

// Room is one slot of the progression with its composed encounter.
type Room struct {
	Slot      string              `json:"slot"`
	RoomIndex int                 `json:"room_index"`
	Encounter encounter.Encounter `json:"encounter"`
}

// Dungeon is the dungeon.5room.v1 payload handed to serialization.
type Dungeon struct {
	Schema    string `json:"schema"`
	Seed      int64  `json:"seed"`
	Biome     string `json:"biome"`
	BaseLevel int    `json:"base_level"`
	Rooms     []Room `json:"rooms"`
}

// EncounterResult is the encounter.v1 wrapper for single-slot generation.
type EncounterResult struct {
	Schema    string              `json:"schema"`
	Seed      int64               `json:"seed"`
	Encounter encounter.Encounter `json:"encounter"`
}

// Assembler walks the slot progression against immutable tables. Each
// Assemble call constructs its own RNG source from the caller's seed, so
// one Assembler may serve many concurrent calls.
type Assembler struct {
	Tables   *tables.Tables
	Policy   config.Policy
	Recorder *telemetry.Recorder
}

// AssembleFiveRoom composes every slot of the progression in its fixed
// order against one shared RNG stream. The order is part of the contract:
// reordering slots changes every later draw.
func (a Assembler) AssembleFiveRoom(baseLevel int, biome string, seed int64) (Dungeon, error) {
	composer := a.composer(rng.New(seed))

	order := a.Tables.SlotOrder()
	rooms := make([]Room, 0, len(order))
	for i, slot := range order {
		enc, err := composer.Compose(slot, biome, baseLevel, a.Tables.DifficultyDelta(slot))
		if err != nil {
			return Dungeon{}, fmt.Errorf("room %d (%s): %w", i+1, slot, err)
		}
		rooms = append(rooms, Room{Slot: slot, RoomIndex: i + 1, Encounter: enc})
	}

	return Dungeon{
		Schema:    SchemaFiveRoom,
		Seed:      seed,
		Biome:     biome,
		BaseLevel: baseLevel,
		Rooms:     rooms,
	}, nil
}

// SingleEncounter composes one slot exactly as the five-room pass would,
// including the slot's difficulty offset, wrapped in encounter.v1.
func (a Assembler) SingleEncounter(slot string, baseLevel int, biome string, seed int64) (EncounterResult, error) {
	composer := a.composer(rng.New(seed))

	enc, err := composer.Compose(slot, biome, baseLevel, a.Tables.DifficultyDelta(slot))
	if err != nil {
		return EncounterResult{}, fmt.Errorf("slot %s: %w", slot, err)
	}
	return EncounterResult{Schema: SchemaSingle, Seed: seed, Encounter: enc}, nil
}

func (a Assembler) composer(r *rng.Source) encounter.Composer {
	return encounter.Composer{
		Tables:   a.Tables,
		Policy:   a.Policy,
		RNG:      r,
		Recorder: a.Recorder,
	}
}
