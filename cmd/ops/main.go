package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/ops"
	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/tables"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "snapshot":
		if err := cmdSnapshot(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "snapshot failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "check":
		if err := cmdCheck(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "check failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdSnapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to the table data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("snapshots", "tables-"+ts+".tar.gz")
	}

	if err := ops.SnapshotTables(*dataDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input snapshot archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.RestoreTables(*archive, *target)
}

// cmdCheck runs the full load-and-validate pass over a data directory and
// reports what it found, so table edits can be linted before a release.
func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to the table data directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := tables.Load(*dataDir)
	if err != nil {
		return err
	}

	fmt.Printf("monsters: %d\n", len(t.Monsters))
	fmt.Printf("enemy groups: %d\n", len(t.EnemyGroups))
	fmt.Printf("encounter templates: %d\n", len(t.Templates))
	fmt.Printf("type tables: %d\n", len(t.TypeTables))
	fmt.Printf("puzzles/socials/explorations: %d/%d/%d\n", len(t.Puzzles), len(t.Socials), len(t.Explorations))
	fmt.Printf("environment presets: %d\n", len(t.Environments))
	fmt.Printf("factions: %d\n", len(t.Factions))
	fmt.Printf("biomes: %v\n", t.Biomes())
	fmt.Printf("slots: %v\n", t.SlotOrder())
	return nil
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to the table data directory")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "tables-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "tables-drill-restore-"+ts)

	if err := ops.SnapshotTables(*dataDir, archive); err != nil {
		return err
	}
	if err := ops.RestoreTables(archive, restoreDir); err != nil {
		return err
	}

	srcDigest, err := ops.TablesDigest(*dataDir)
	if err != nil {
		return err
	}
	restoreDigest, err := ops.TablesDigest(restoreDir)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	// The restored copy must also survive a full validation pass.
	if _, err := tables.Load(restoreDir); err != nil {
		return fmt.Errorf("restored tables fail validation: %w", err)
	}

	fmt.Println("snapshot:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("digest:", srcDigest)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  dungeoneer-ops snapshot --data-dir data --out snapshots/tables.tar.gz")
	fmt.Println("  dungeoneer-ops restore  --archive snapshots/tables.tar.gz --target-dir data-restored")
	fmt.Println("  dungeoneer-ops check    --data-dir data")
	fmt.Println("  dungeoneer-ops drill    --data-dir data --work-dir /tmp")
}
