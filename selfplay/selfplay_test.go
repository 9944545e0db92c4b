package selfplay

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/rules"
	"github.com/brensch/pokesim/search"
	"github.com/brensch/pokesim/store"
)

func testConfig() Config {
	p := Player{
		Depth:   search.Depth{General: 1},
		Weights: search.DefaultWeights(),
		Options: search.Options{Foe: search.MaxDamage{}, Parallel: 1, TableBits: 10},
	}
	return Config{Generation: game.Gen3, TeamSize: 2, MaxTurns: 40, Players: [2]Player{p, p}}
}

func TestPlayBattle_Reproducible(t *testing.T) {
	cfg := testConfig()
	rowsA, resA, err := PlayBattle(context.Background(), "a", cfg, rand.New(rand.NewSource(11)), nil)
	require.NoError(t, err)
	rowsB, resB, err := PlayBattle(context.Background(), "a", cfg, rand.New(rand.NewSource(11)), nil)
	require.NoError(t, err)

	assert.Equal(t, resA, resB)
	require.Equal(t, len(rowsA), len(rowsB))
	for i := range rowsA {
		assert.Equal(t, rowsA[i].Selection, rowsB[i].Selection, "row %d", i)
		assert.Equal(t, rowsA[i].Key, rowsB[i].Key, "row %d", i)
	}
}

func TestPlayBattle_Rows(t *testing.T) {
	decisions := 0
	rows, res, err := PlayBattle(context.Background(), "b", testConfig(), rand.New(rand.NewSource(5)), func() { decisions++ })
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, decisions, len(rows))
	assert.Equal(t, res.Decisions, len(rows))
	assert.LessOrEqual(t, res.Turns, 40)

	prev := int32(0)
	for _, r := range rows {
		assert.Equal(t, "b", r.BattleID)
		assert.Contains(t, []string{"ai", "foe"}, r.Side)
		assert.Equal(t, res.Winner.String(), r.Winner)
		assert.GreaterOrEqual(t, r.Turn, prev)
		prev = r.Turn

		cands, err := store.DecodeCandidates(r.Candidates)
		require.NoError(t, err)
		require.NotEmpty(t, cands)
		assert.Equal(t, r.Selection, cands[0].Selection)
	}
	if res.Winner == rules.Undecided {
		assert.Equal(t, 40, res.Turns)
	}
}

func TestPlayBattle_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, _, err := PlayBattle(ctx, "c", testConfig(), rand.New(rand.NewSource(1)), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rows)
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	id := func(p float64) float64 { return p }
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1.0, sample(rng, []float64{0, 1}, id))
		assert.Equal(t, 1.0, sample(rng, []float64{1, 0}, func(p float64) float64 { return p }))
	}
	assert.Equal(t, 0.5, sample(rng, []float64{0.5}, id))
}

func TestRunner_ArchivesAndResumes(t *testing.T) {
	dir := t.TempDir()
	cfg := RunConfig{
		Battle:     testConfig(),
		Workers:    2,
		Battles:    3,
		Seed:       42,
		PerFlush:   2,
		OutDir:     dir,
		WrittenLog: filepath.Join(dir, "written.log"),
	}

	r := NewRunner(cfg)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, int64(3), r.Played.Load())
	assert.Positive(t, r.Decisions.Load())

	ids := map[string]bool{}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".parquet") {
			continue
		}
		rows, err := store.ReadDecisions(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		for _, row := range rows {
			ids[row.BattleID] = true
		}
	}
	assert.Len(t, ids, 3)
	for i := int64(0); i < 3; i++ {
		assert.True(t, ids[BattleID(42, i)])
	}

	again := NewRunner(cfg)
	require.NoError(t, again.Run(context.Background()))
	assert.Zero(t, again.Played.Load())
	assert.Equal(t, int64(3), again.Skipped.Load())
}
