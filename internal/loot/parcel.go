package loot

import "math"

// Schema stamps standalone loot payloads.
const Schema = "loot.v1"

// Item is one awarded magic or mundane item.
type Item struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Rarity  string  `json:"rarity,omitempty"`
	GPValue float64 `json:"gp_value"`
}

// Parcel is one discrete unit of loot: a coin bundle plus items.
// TotalValueGP is derived and must equal the coin gp-equivalent plus all
// item values, rounded to two decimals.
type Parcel struct {
	Coins        map[string]int `json:"coins"`
	MagicItems   []Item         `json:"magic_items"`
	MundaneItems []Item         `json:"mundane_items"`
	TotalValueGP float64        `json:"total_value_gp"`
}

// Result is the loot.v1 payload handed to serialization.
type Result struct {
	Schema         string   `json:"schema"`
	Seed           int64    `json:"seed"`
	EncounterLevel int      `json:"encounter_level"`
	Rolls          int      `json:"rolls"`
	Parcels        []Parcel `json:"parcels"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
