package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadPartialFileFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yml")
	require.NoError(t, os.WriteFile(path, []byte("loot:\n  max_items: 2\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Loot.MaxItems)
	assert.Equal(t, Default().Encounter, p.Encounter)
	assert.Equal(t, Default().Loot.CoinFractionMin, p.Loot.CoinFractionMin)
}

func TestLoadFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yml")
	require.NoError(t, os.WriteFile(path, []byte(`encounter:
  min_level: 2
  max_level: 15
  count_scale_per_level: 0.25
loot:
  coin_fraction_min: 0.2
  coin_fraction_max: 0.4
  max_items: 6
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Encounter.MinLevel)
	assert.Equal(t, 15, p.Encounter.MaxLevel)
	assert.Equal(t, 0.25, p.Encounter.CountScalePerLevel)
	assert.Equal(t, 0.2, p.Loot.CoinFractionMin)
	assert.Equal(t, 0.4, p.Loot.CoinFractionMax)
	assert.Equal(t, 6, p.Loot.MaxItems)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DUNGEONEER_ENCOUNTER_MAX_LEVEL", "12")
	t.Setenv("DUNGEONEER_LOOT_MAX_ITEMS", "3")

	p, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12, p.Encounter.MaxLevel)
	assert.Equal(t, 3, p.Loot.MaxItems)
	assert.Equal(t, Default().Encounter.MinLevel, p.Encounter.MinLevel)
}

func TestLoadRejectsBadLevelBand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yml")
	require.NoError(t, os.WriteFile(path, []byte("encounter:\n  min_level: 9\n  max_level: 3\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level band")
}

func TestLoadRejectsBadCoinRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yml")
	require.NoError(t, os.WriteFile(path, []byte("loot:\n  coin_fraction_min: 0.5\n  coin_fraction_max: 0.2\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coin fraction")
}

func TestLoadRejectsUnparsableYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
