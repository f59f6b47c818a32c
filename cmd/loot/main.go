package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/config"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/logging"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/loot"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/rng"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/tables"
)

func main() {
	var (
		level      int
		rolls      int
		seed       int64
		dataDir    string
		configPath string
		output     string
	)
	flag.IntVar(&level, "level", 0, "Encounter level for the parcels (required)")
	flag.IntVar(&rolls, "rolls", 1, "Number of loot parcels to generate")
	flag.Int64Var(&seed, "seed", 0, "Random seed for deterministic output (0 picks one)")
	flag.StringVar(&dataDir, "data-dir", "data", "Directory containing the JSON data tables")
	flag.StringVar(&configPath, "config", "dungeoneer_config.yml", "Generation policy file")
	flag.StringVar(&output, "output", "", "Path to write JSON output (default: stdout)")
	flag.Parse()

	log := logging.New()

	pol, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	t, err := tables.Load(dataDir)
	if err != nil {
		log.Fatalf("load tables: %v", err)
	}

	if _, ok := t.BudgetForLevel(level); !ok {
		log.Fatalf("level %d has no budget in loot data", level)
	}
	if rolls < 1 {
		log.Fatalf("rolls must be >= 1, got %d", rolls)
	}

	if seed == 0 {
		seed, err = rng.NewSeed()
		if err != nil {
			log.Fatalf("generate seed: %v", err)
		}
		log.Infof("using seed %d", seed)
	}

	result, err := loot.Generate(level, rolls, seed, t, pol)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if err := writeJSON(result, output); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

func writeJSON(payload any, path string) error {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
