package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/config"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/dungeon"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/logging"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/rng"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/tables"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/telemetry"
)

func main() {
	var (
		level      int
		biome      string
		seed       int64
		slot       string
		dataDir    string
		configPath string
		output     string
	)
	flag.IntVar(&level, "level", 0, "Base level for the dungeon or encounter (1-20, required)")
	flag.StringVar(&biome, "biome", "", "Biome key, e.g. dungeon or temperate_forest (required)")
	flag.Int64Var(&seed, "seed", 0, "Random seed for deterministic output (0 picks one)")
	flag.StringVar(&slot, "slot", "", "Generate a single encounter for this slot instead of a full dungeon")
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

	// Caller input is checked up front; the generators assume clean input
	// and only clamp their own internal difficulty math.
	if level < pol.Encounter.MinLevel || level > pol.Encounter.MaxLevel {
		log.Fatalf("level must be between %d and %d, got %d", pol.Encounter.MinLevel, pol.Encounter.MaxLevel, level)
	}
	if biome == "" || !t.KnownBiome(biome) {
		log.Fatalf("unknown biome %q (known: %v)", biome, t.Biomes())
	}
	if slot != "" && !t.KnownSlot(slot) {
		log.Fatalf("unknown slot %q (known: %v)", slot, t.SlotOrder())
	}

	if seed == 0 {
		seed, err = rng.NewSeed()
		if err != nil {
			log.Fatalf("generate seed: %v", err)
		}
		log.Infof("using seed %d", seed)
	}

	rec := telemetry.NewRecorder()
	asm := dungeon.Assembler{Tables: t, Policy: pol, Recorder: rec}

	var payload any
	if slot != "" {
		payload, err = asm.SingleEncounter(slot, level, biome, seed)
	} else {
		payload, err = asm.AssembleFiveRoom(level, biome, seed)
	}
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	log.WithField("stats", rec.Stats()).Debug("generation telemetry")

	if err := writeJSON(payload, output); err != nil {
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
