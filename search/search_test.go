package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/rules"
)

func mon(gen game.Generation, species game.SpeciesName, ability game.Ability, item game.Item, moves ...game.MoveName) game.Pokemon {
	return game.NewPokemon(gen, species, 100, game.Hardy, game.MaxSpread(), ability, item, moves...)
}

func duel(gen game.Generation, ai, foe game.Pokemon) game.State {
	return game.NewState(gen, game.NewTeam(ai), game.NewTeam(foe))
}

func generated(seed int64, gen game.Generation, size int) game.State {
	rng := rand.New(rand.NewSource(seed))
	return game.NewState(gen, game.GenerateTeam(gen, size, rng), game.GenerateTeam(gen, size, rng))
}

func testConfig(d Depth) Config {
	cfg := DefaultConfig()
	cfg.Depth = d
	cfg.Parallel = 1
	cfg.TableBits = 12
	return cfg
}

func TestCompress_SameStateSameKey(t *testing.T) {
	s := generated(1, game.Gen4, 6)
	copied := s
	assert.Equal(t, Compress(&s), Compress(&copied))

	copied.Active(game.Foe).HP--
	assert.NotEqual(t, Compress(&s), Compress(&copied))
}

func TestCompress_DifferentStatsDifferentKey(t *testing.T) {
	gen := game.Gen4
	base := duel(gen,
		mon(gen, game.Garchomp, game.SandVeil, game.NoItem, game.Earthquake),
		mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam))
	key := Compress(&base)

	stronger := base
	stronger.Active(game.Foe).Stats[game.Atk] += 20
	assert.NotEqual(t, key, Compress(&stronger))

	faster := base
	faster.Active(game.Foe).Stats[game.Spe] += 1
	assert.NotEqual(t, key, Compress(&faster))

	lower := base
	lower.Active(game.Foe).Level = 90
	assert.NotEqual(t, key, Compress(&lower))

	jolly := base
	*jolly.Active(game.AI) = game.NewPokemon(gen, game.Garchomp, 100, game.Jolly, game.MaxSpread(), game.SandVeil, game.NoItem, game.Earthquake)
	require.Equal(t, base.Active(game.AI).MaxHP(), jolly.Active(game.AI).MaxHP())
	assert.NotEqual(t, key, Compress(&jolly))
}

func TestCompress_MoveOrderWithinTurn(t *testing.T) {
	gen := game.Gen4
	base := duel(gen,
		mon(gen, game.Scizor, game.Technician, game.NoItem, game.SwordsDance),
		mon(gen, game.Clefable, game.MagicGuard, game.NoItem, game.Growl))

	use := func(s *game.State, side game.Side, move game.MoveName) {
		effects := rules.MoveEffects(gen, move, s.Team(side), s.Team(side.Other()), s.Env)
		require.Len(t, effects, 1)
		rules.CallMove(s, side, rules.UsedMove{Selected: move, Executed: move, Hit: true, Effect: effects[0]}, rules.OtherAction{})
	}
	a, b := base, base
	use(&a, game.AI, game.SwordsDance)
	use(&a, game.Foe, game.Growl)
	use(&b, game.Foe, game.Growl)
	use(&b, game.AI, game.SwordsDance)
	rules.ResetTurnFlags(&a)
	rules.ResetTurnFlags(&b)

	assert.Equal(t, int8(1), a.Active(game.AI).Stage[game.StageAtk])
	assert.Equal(t, Compress(&a), Compress(&b))
}

func TestCompress_HiddenSlotsNotEncoded(t *testing.T) {
	gen := game.Gen4
	foe := game.NewObservedTeam(6)
	_, err := foe.Reveal(mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam))
	require.NoError(t, err)
	s := game.NewState(gen, game.NewTeam(mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam)), foe)

	other := s
	other.Team(game.Foe).Pokemon[3].Species = game.Gengar
	assert.Equal(t, Compress(&s), Compress(&other))
}

func TestTable_ReplacementPolicy(t *testing.T) {
	s := generated(2, game.Gen4, 3)
	key := Compress(&s)
	tt := NewTable(4)

	deep := []ScoredSelection{{Selection: game.PassSelection, Score: 2}}
	shallow := []ScoredSelection{{Selection: game.PassSelection, Score: 1}}

	tt.Store(key, Depth{General: 2}, deep)
	tt.Store(key, Depth{General: 1}, shallow)
	got, ok := tt.Lookup(key, Depth{General: 2})
	require.True(t, ok)
	assert.Equal(t, deep, got)

	got, ok = tt.Lookup(key, Depth{General: 1})
	require.True(t, ok, "a deeper entry serves a shallower request")
	assert.Equal(t, deep, got)

	_, ok = tt.Lookup(key, Depth{General: 3})
	assert.False(t, ok)

	tt.Store(key, Depth{General: 3}, shallow)
	got, ok = tt.Lookup(key, Depth{General: 3})
	require.True(t, ok)
	assert.Equal(t, shallow, got)
}

func TestTable_DifferentKeyAlwaysReplaces(t *testing.T) {
	tt := NewTable(1)
	for seed := int64(0); seed < 8; seed++ {
		s := generated(seed, game.Gen4, 2)
		key := Compress(&s)
		tt.Store(key, Depth{}, []ScoredSelection{{Score: float64(seed)}})
		got, ok := tt.Lookup(key, Depth{})
		require.True(t, ok)
		assert.Equal(t, float64(seed), got[0].Score)
	}
	assert.Equal(t, uint64(8), tt.Stats().Stores)
}

func TestDeepening_Schedule(t *testing.T) {
	ctx := context.Background()
	d := newDeepening(Depth{General: 2, Single: 1})
	var got []Depth
	for {
		step, ok := d.Step(ctx)
		if !ok {
			break
		}
		got = append(got, step)
	}
	assert.Equal(t, []Depth{{General: 1}, {General: 2}, {General: 2, Single: 1}}, got)
	assert.Equal(t, phaseFinished, d.Phase())
}

func TestEvaluate_Antisymmetric(t *testing.T) {
	s := generated(3, game.Gen4, 4)
	s.Team(game.AI).StealthRock = true
	s.Team(game.Foe).Spikes = 2
	w := DefaultWeights()
	swapped := s.Swapped()
	assert.InDelta(t, -Evaluate(&s, w), Evaluate(&swapped, w), 1e-9)
	assert.Less(t, Evaluate(&s, w), w.Victory())
}

func TestTerminal_LastFaintedPokemonLoses(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam),
		mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam))
	s.Active(game.Foe).Faint()
	require.Equal(t, rules.AIWins, rules.Winner(&s))

	e := NewEngine(testConfig(Depth{General: 1}), Uniform{})
	w := e.Config.Weights
	assert.Equal(t, w.Victory()+1, e.value(&s, Depth{General: 1}))
}

func TestChoose_TakesTheKnockout(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Garchomp, game.SandVeil, game.NoItem, game.Splash, game.Earthquake),
		mon(gen, game.Magnezone, game.MagnetPull, game.NoItem, game.Thunderbolt))
	s.Active(game.Foe).HP = s.Active(game.Foe).MaxHP() / 3

	e := NewEngine(testConfig(Depth{General: 1}), MaxDamage{})
	best, scored, err := e.Choose(context.Background(), s, e.Config.Depth)
	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.Equal(t, game.MoveSelection(game.Earthquake), best)
	assert.Greater(t, scored[0].Score, scored[1].Score)
}

func TestChoose_TableDoesNotChangeResult(t *testing.T) {
	s := generated(4, game.Gen4, 2)
	d := Depth{General: 1, Single: 1}
	ctx := context.Background()

	e := NewEngine(testConfig(d), Uniform{})
	_, first, err := e.Choose(ctx, s, d)
	require.NoError(t, err)
	_, second, err := e.Choose(ctx, s, d)
	require.NoError(t, err)
	_, fresh, err := NewEngine(testConfig(d), Uniform{}).Choose(ctx, s, d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, fresh, second)
	assert.Greater(t, e.Table.Stats().Hits, uint64(0))
}

func TestChoose_ReusedEngineSeesStatChanges(t *testing.T) {
	a := generated(4, game.Gen4, 2)
	b := a
	b.Active(game.Foe).Stats[game.Atk] *= 2
	b.Active(game.Foe).Stats[game.SpA] *= 2
	d := Depth{General: 1}
	ctx := context.Background()

	e := NewEngine(testConfig(d), Uniform{})
	_, _, err := e.Choose(ctx, a, d)
	require.NoError(t, err)
	_, reused, err := e.Choose(ctx, b, d)
	require.NoError(t, err)
	_, fresh, err := NewEngine(testConfig(d), Uniform{}).Choose(ctx, b, d)
	require.NoError(t, err)

	assert.Equal(t, fresh, reused)
}

func TestChooseAction_Iterative(t *testing.T) {
	s := generated(5, game.Gen3, 2)
	best, scored, err := ChooseAction(context.Background(), s, Depth{General: 2}, DefaultWeights(), Options{Foe: MaxDamage{}, Iterative: true, Parallel: 2})
	require.NoError(t, err)
	require.NotEmpty(t, scored)
	assert.Equal(t, scored[0].Selection, best)
	assert.Contains(t, rules.LegalSelections(&s, game.AI), best)
}

func TestChoose_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewEngine(testConfig(Depth{General: 1}), nil).Choose(ctx, generated(6, game.Gen4, 2), Depth{General: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPredictors_SumToOne(t *testing.T) {
	s := generated(7, game.Gen4, 6)
	legal := rules.LegalSelections(&s, game.Foe)
	active := s.Active(game.Foe)
	stat := Statistical{
		Usage: map[game.SpeciesName]map[game.MoveName]float64{
			active.Species: {active.Moves[0].Name: 3, active.Moves[1].Name: 1},
		},
		SwitchWeight: 0.5,
	}
	for name, p := range map[string]Predictor{"uniform": Uniform{}, "max damage": MaxDamage{}, "statistical": stat} {
		total := 0.0
		for _, w := range p.Predict(&s, game.Foe, legal) {
			assert.Contains(t, legal, w.Selection, name)
			total += w.Probability
		}
		assert.InDelta(t, 1.0, total, 1e-9, name)
	}
}

func TestMaxDamage_PicksStrongestMove(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Magnezone, game.MagnetPull, game.NoItem, game.Thunderbolt),
		mon(gen, game.Garchomp, game.SandVeil, game.NoItem, game.Outrage, game.Earthquake, game.SwordsDance))
	got := MaxDamage{}.Predict(&s, game.Foe, rules.LegalSelections(&s, game.Foe))
	require.Len(t, got, 1)
	assert.Equal(t, game.MoveSelection(game.Earthquake), got[0].Selection)
}

func BenchmarkSearch(b *testing.B) {
	s := generated(42, game.Gen4, 6)
	cfg := DefaultConfig()
	cfg.Depth = Depth{General: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := NewEngine(cfg, MaxDamage{})
		if _, _, err := e.Choose(context.Background(), s, cfg.Depth); err != nil {
			b.Fatalf("Choose failed: %v", err)
		}
	}
}
