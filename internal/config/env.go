package config

import "github.com/caarlos0/env/v11"

// applyEnv overlays DUNGEONEER_* environment variables on top of the loaded
// policy, e.g. DUNGEONEER_LOOT_MAX_ITEMS=6.
func applyEnv(p *Policy) error {
	return env.ParseWithOptions(p, env.Options{Prefix: "DUNGEONEER_"})
}
