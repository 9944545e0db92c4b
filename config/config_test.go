package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/search"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, search.DefaultWeights(), c.Weights)
	assert.Equal(t, search.DefaultConfig().Depth, c.Depth())

	gen, err := c.Generation()
	require.NoError(t, err)
	assert.Equal(t, game.Gen4, gen)

	foe, err := c.Foe()
	require.NoError(t, err)
	assert.IsType(t, search.MaxDamage{}, foe)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  general: 3
  foe: uniform
weights:
  hidden: 120
selfplay:
  generation: gen2
  team_size: 3
`), 0o644))
	t.Setenv("POKESIM_SEARCH_SINGLE", "2")
	t.Setenv("POKESIM_LOG_FORMAT", "pretty")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, search.Depth{General: 3, Single: 2}, c.Depth())
	assert.Equal(t, 120.0, c.Weights.Hidden)
	assert.Equal(t, search.DefaultWeights().HP, c.Weights.HP)
	assert.Equal(t, 3, c.SelfPlay.TeamSize)
	assert.Equal(t, "pretty", c.Log.Format)

	gen, err := c.Generation()
	require.NoError(t, err)
	assert.Equal(t, game.Gen2, gen)
}

func TestValidate(t *testing.T) {
	base, err := Load("")
	require.NoError(t, err)

	bad := base
	bad.Search.General = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = base
	bad.SelfPlay.TeamSize = game.MaxTeamSize + 1
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = base
	bad.Search.Foe = "oracle"
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = base
	bad.SelfPlay.Generation = "gen12"
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)
}

func TestDump_RoundTrips(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	b, err := Dump(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), "stealth_rock:")

	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, again)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(b, &raw))
	assert.Contains(t, raw, "selfplay")
}
