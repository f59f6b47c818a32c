package loot

import (
	"fmt"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/config"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/pick"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/rng"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/tables"
)

// Generator rolls loot parcels against level budgets. It draws exclusively
// through the shared Source it is handed, so a dungeon run and a standalone
// loot run replay identically for the same seed.
type Generator struct {
	Tables *tables.Tables
	Policy config.LootPolicy
	RNG    *rng.Source
}

// Parcel rolls a single parcel for level. The coin bundle takes a drawn
// fraction of the budget; whatever is left funds items. A level with no
// eligible items still yields a valid coins-only parcel.
func (g Generator) Parcel(level int) (Parcel, error) {
	budget, ok := g.Tables.BudgetForLevel(level)
	if !ok {
		return Parcel{}, fmt.Errorf("level %d not found in level budgets", level)
	}

	frac := g.Policy.CoinFractionMin +
		g.RNG.Float()*(g.Policy.CoinFractionMax-g.Policy.CoinFractionMin)
	coins, coinValue := g.rollCoins(budget * frac)

	magic, mundane, itemValue, err := g.fillItems(level, budget-coinValue)
	if err != nil {
		return Parcel{}, err
	}

	return Parcel{
		Coins:        coins,
		MagicItems:   magic,
		MundaneItems: mundane,
		TotalValueGP: round2(coinValue + itemValue),
	}, nil
}

// Parcels rolls n parcels on the same cursor, no reseeding between rolls.
func (g Generator) Parcels(level, rolls int) ([]Parcel, error) {
	if rolls < 1 {
		rolls = 1
	}
	out := make([]Parcel, 0, rolls)
	for i := 0; i < rolls; i++ {
		p, err := g.Parcel(level)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// rollCoins apportions the coin sub-budget across denominations from the
// most valuable down, drawing a quantity in [0, affordable] per tier. The
// spent value never exceeds the sub-budget.
func (g Generator) rollCoins(coinBudget float64) (map[string]int, float64) {
	coins := map[string]int{}
	remaining := coinBudget
	spent := 0.0

	for _, rate := range g.Tables.Loot.SortedCoinRates() {
		if remaining <= 0 {
			break
		}
		maxQty := int(remaining / rate.GPValue)
		if maxQty <= 0 {
			continue
		}
		qty := g.RNG.IntBetween(0, maxQty)
		if qty > 0 {
			coins[rate.Denomination] = qty
			remaining -= float64(qty) * rate.GPValue
			spent += float64(qty) * rate.GPValue
		}
	}
	return coins, spent
}

type pooledItem struct {
	item  tables.LootItem
	magic bool
}

// fillItems draws the level-eligible item pool in weighted order without
// replacement, then accepts items in that order while they fit the
// remaining budget (skip-and-continue) up to the policy item cap.
func (g Generator) fillItems(level int, remaining float64) ([]Item, []Item, float64, error) {
	magic := []Item{}
	mundane := []Item{}

	pool := make([]pooledItem, 0, len(g.Tables.Loot.MagicItems)+len(g.Tables.Loot.MundaneGoods))
	for _, it := range g.Tables.Loot.MagicItems {
		if it.EligibleAt(level) {
			pool = append(pool, pooledItem{item: it, magic: true})
		}
	}
	for _, it := range g.Tables.Loot.MundaneGoods {
		if it.EligibleAt(level) {
			pool = append(pool, pooledItem{item: it})
		}
	}
	if len(pool) == 0 || g.Policy.MaxItems == 0 {
		return magic, mundane, 0, nil
	}

	order, err := pick.Many(g.RNG, pool, func(p pooledItem) float64 {
		return p.item.Weight
	}, len(pool), false)
	if err != nil {
		return nil, nil, 0, err
	}

	spent := 0.0
	for _, cand := range order {
		if len(magic)+len(mundane) >= g.Policy.MaxItems {
			break
		}
		if cand.item.GPValue > remaining {
			continue
		}
		awarded := Item{
			ID:      cand.item.ID,
			Name:    cand.item.Name,
			GPValue: cand.item.GPValue,
		}
		if cand.magic {
			awarded.Rarity = cand.item.Rarity
			if awarded.Rarity == "" {
				awarded.Rarity = "common"
			}
			magic = append(magic, awarded)
		} else {
			mundane = append(mundane, awarded)
		}
		remaining -= cand.item.GPValue
		spent += cand.item.GPValue
	}
	return magic, mundane, spent, nil
}

// Generate is the standalone entry point behind the loot CLI: it owns a
// fresh Source for the call and wraps the parcels in a loot.v1 payload.
func Generate(level, rolls int, seed int64, t *tables.Tables, pol config.Policy) (Result, error) {
	if rolls < 1 {
		rolls = 1
	}
	g := Generator{Tables: t, Policy: pol.Loot, RNG: rng.New(seed)}
	parcels, err := g.Parcels(level, rolls)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Schema:         Schema,
		Seed:           seed,
		EncounterLevel: level,
		Rolls:          rolls,
		Parcels:        parcels,
	}, nil
}

// Attach rolls parcels on an existing cursor for embedding inside an
// encounter, stamping the owning generation's seed.
func (g Generator) Attach(level, rolls int) (*Result, error) {
	if rolls < 1 {
		rolls = 1
	}
	parcels, err := g.Parcels(level, rolls)
	if err != nil {
		return nil, err
	}
	return &Result{
		Schema:         Schema,
		Seed:           g.RNG.Seed(),
		EncounterLevel: level,
		Rolls:          rolls,
		Parcels:        parcels,
	}, nil
}
