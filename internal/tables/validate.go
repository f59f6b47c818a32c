package tables

import "fmt"

// Validate cross-checks id references and basic shape so the generators can
// assume clean data. It never substitutes placeholders; a dangling id here
// is an authoring bug that must surface immediately.
func (t *Tables) Validate() error {
	if len(t.Monsters) == 0 {
		return fmt.Errorf("monsters table is empty")
	}
	if len(t.Templates) == 0 {
		return fmt.Errorf("encounter tables define no templates")
	}

	for _, m := range t.Monsters {
		if m.ID == "" {
			return fmt.Errorf("monster %q has no id", m.Name)
		}
		if m.CR < 0 {
			return fmt.Errorf("monster %s: cr must be >= 0", m.ID)
		}
	}

	for _, g := range t.EnemyGroups {
		if g.ID == "" {
			return fmt.Errorf("enemy group has no id")
		}
		for _, e := range g.Enemies {
			if _, ok := t.monsterByID[e.MonsterID]; !ok {
				return fmt.Errorf("enemy group %s references unknown monster %q", g.ID, e.MonsterID)
			}
			if e.Count.Min < 0 || (e.Count.Max != 0 && e.Count.Max < e.Count.Min) {
				return fmt.Errorf("enemy group %s: bad count range for %s", g.ID, e.MonsterID)
			}
		}
	}

	for _, tpl := range t.Templates {
		if tpl.ID == "" {
			return fmt.Errorf("encounter template has no id")
		}
		if tpl.Weight < 0 {
			return fmt.Errorf("encounter template %s: weight must be >= 0", tpl.ID)
		}
		if tpl.EnemyGroupID == "" {
			return fmt.Errorf("encounter template %s: missing enemy_group_id", tpl.ID)
		}
		if _, ok := t.groupByID[tpl.EnemyGroupID]; !ok {
			return fmt.Errorf("encounter template %s references unknown enemy group %q", tpl.ID, tpl.EnemyGroupID)
		}
	}

	for _, tt := range t.TypeTables {
		if tt.Die < 1 {
			return fmt.Errorf("encounter type table %s: die must be >= 1", tt.ID)
		}
	}

	for _, lists := range []struct {
		name    string
		entries []NoncombatEntry
	}{
		{"puzzle", t.Puzzles},
		{"social", t.Socials},
		{"exploration", t.Explorations},
	} {
		for _, e := range lists.entries {
			if e.ID == "" {
				return fmt.Errorf("%s table entry has no id", lists.name)
			}
			if e.Weight < 0 {
				return fmt.Errorf("%s entry %s: weight must be >= 0", lists.name, e.ID)
			}
			if e.EnvironmentPresetID != "" {
				if _, ok := t.presetByID[e.EnvironmentPresetID]; !ok {
					return fmt.Errorf("%s entry %s references unknown environment preset %q",
						lists.name, e.ID, e.EnvironmentPresetID)
				}
			}
		}
	}

	if len(t.Loot.CoinValuesGP) == 0 {
		return fmt.Errorf("loot data defines no coin values")
	}
	for denom, v := range t.Loot.CoinValuesGP {
		if v <= 0 {
			return fmt.Errorf("coin %s: gp value must be > 0", denom)
		}
	}
	if len(t.Loot.LevelBudgetsGP) == 0 {
		return fmt.Errorf("loot data defines no level budgets")
	}
	for lvl, b := range t.Loot.LevelBudgetsGP {
		if b < 0 {
			return fmt.Errorf("level %s: budget must be >= 0", lvl)
		}
	}
	for _, it := range append(append([]LootItem{}, t.Loot.MagicItems...), t.Loot.MundaneGoods...) {
		if it.ID == "" {
			return fmt.Errorf("loot item %q has no id", it.Name)
		}
		if it.GPValue < 0 || it.Weight < 0 {
			return fmt.Errorf("loot item %s: gp_value and weight must be >= 0", it.ID)
		}
	}

	return nil
}

// BudgetForLevel looks up the gold budget for a level.
func (t *Tables) BudgetForLevel(level int) (float64, bool) {
	b, ok := t.Loot.LevelBudgetsGP[fmt.Sprintf("%d", level)]
	return b, ok
}
