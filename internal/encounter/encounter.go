package encounter

import "github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/loot"

// Encounter types. Which one a slot produces is decided by the encounter
// type tables; Empty is the fallback when nothing eligible exists.
const (
	TypeCombat      = "combat"
	TypePuzzle      = "puzzle"
	TypeSocial      = "social"
	TypeExploration = "exploration"
	TypeEmpty       = "empty"
)

// Enemy is one resolved monster line inside a combat encounter.
type Enemy struct {
	MonsterID string   `json:"monster_id"`
	Name      string   `json:"name"`
	Count     int      `json:"count"`
	CR        float64  `json:"cr"`
	Faction   string   `json:"faction"`
	Tags      []string `json:"tags"`
}

// Environment is the resolved physical setting of an encounter.
type Environment struct {
	PresetID          string         `json:"preset_id,omitempty"`
	Description       string         `json:"description"`
	Tags              []string       `json:"tags"`
	MechanicalEffects map[string]any `json:"mechanical_effects"`
}

// Meta records which table entry produced the encounter, for traceability
// and regression tests.
type Meta struct {
	TemplateID  string `json:"template_id,omitempty"`
	NoncombatID string `json:"noncombat_id,omitempty"`
	Notes       string `json:"notes"`
}

// Encounter is one generated room's content. Ephemeral: composed, handed to
// the assembler, serialized, never persisted.
type Encounter struct {
	Difficulty  int          `json:"difficulty"`
	Type        string       `json:"type"`
	Slot        string       `json:"slot"`
	Biome       string       `json:"biome"`
	Enemies     []Enemy      `json:"enemies"`
	Environment Environment  `json:"environment"`
	Tags        []string     `json:"tags"`
	Loot        *loot.Result `json:"loot"`
	Meta        Meta         `json:"meta"`
}
