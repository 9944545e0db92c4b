package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneration(t *testing.T) {
	for _, s := range []string{"gen4", "Gen4", "4"} {
		g, err := ParseGeneration(s)
		require.NoError(t, err, s)
		assert.Equal(t, Gen4, g)
	}
	_, err := ParseGeneration("gen9")
	assert.Error(t, err)
	_, err = ParseGeneration("nope")
	assert.Error(t, err)
}

func TestTypeEffectiveness(t *testing.T) {
	assert.Equal(t, Effectiveness(64), TypeEffectiveness(Gen4, Ice, Types{Dragon, Ground}))
	assert.True(t, TypeEffectiveness(Gen4, Ground, Types{Flying, Typeless}).Immune())
	assert.Equal(t, Effectiveness(4), TypeEffectiveness(Gen4, Grass, Types{Fire, Flying}))

	// Steel lost its Ghost and Dark resistance in Gen6.
	assert.True(t, TypeEffectiveness(Gen5, Dark, Types{Steel, Typeless}).NotVery())
	assert.Equal(t, EffectiveNeutral, TypeEffectiveness(Gen6, Dark, Types{Steel, Typeless}))

	assert.True(t, TypeEffectiveness(Gen1, Ghost, Types{Psychic, Typeless}).Immune())
	assert.True(t, TypeEffectiveness(Gen2, Ghost, Types{Psychic, Typeless}).Super())
	assert.Equal(t, EffectiveNeutral, TypeEffectiveness(Gen5, Fairy, Types{Dragon, Typeless}))
}

func TestCalculateStats(t *testing.T) {
	spread := Spread{}
	for i := range spread.IVs {
		spread.IVs[i] = 31
	}
	spread.EVs[Spe] = 252
	stats := CalculateStats(Gen4, Garchomp, 100, Jolly, spread)
	assert.Equal(t, 333, stats[Spe])
	assert.Equal(t, 357, stats[HP])

	spread.EVs[HP] = 252
	old := CalculateStats(Gen1, Snorlax, 100, Hardy, spread)
	assert.Equal(t, 524, old[HP])
	assert.Equal(t, old[SpA], old[SpD])
}

func TestNatureModifier(t *testing.T) {
	assert.Equal(t, 110, Adamant.Modifier(Atk))
	assert.Equal(t, 90, Adamant.Modifier(SpA))
	assert.Equal(t, 100, Adamant.Modifier(Spe))
	assert.Equal(t, 100, Serious.Modifier(Atk))
	assert.Equal(t, 110, Timid.Modifier(Spe))
}

func TestStageBoostClamps(t *testing.T) {
	var s Stage
	assert.True(t, s.Boost(StageAtk, 4))
	assert.True(t, s.Boost(StageAtk, 4))
	assert.Equal(t, int8(6), s[StageAtk])
	assert.False(t, s.Boost(StageAtk, 1))

	num, den := s.Modifier(StageAtk)
	assert.Equal(t, 8, num)
	assert.Equal(t, 2, den)

	s.Boost(StageEvasion, -1)
	num, den = s.Modifier(StageEvasion)
	assert.Equal(t, 3, num)
	assert.Equal(t, 4, den)
}

func TestSleepClearingProbability(t *testing.T) {
	s := Status{Name: StatusSleep}
	assert.Equal(t, 0.0, s.ProbabilityOfClearing(Gen4, NoAbility))
	s.Turns = 2
	assert.InDelta(t, 0.25, s.ProbabilityOfClearing(Gen4, NoAbility), 1e-9)
	s.Turns = 5
	assert.Equal(t, 1.0, s.ProbabilityOfClearing(Gen4, NoAbility))

	rest := Status{Name: StatusRest, Turns: 1}
	assert.Equal(t, 0.0, rest.ProbabilityOfClearing(Gen5, NoAbility))
	rest.Turns = 2
	assert.Equal(t, 1.0, rest.ProbabilityOfClearing(Gen5, NoAbility))
}

func TestEnvironmentAdvance(t *testing.T) {
	var e Environment
	require.True(t, e.SetWeather(WeatherRain, 2))
	assert.False(t, e.SetWeather(WeatherRain, 5))
	e.TrickRoom = 1
	e.AdvanceOneTurn()
	assert.Equal(t, WeatherRain, e.Weather)
	assert.Equal(t, uint8(0), e.TrickRoom)
	e.AdvanceOneTurn()
	assert.Equal(t, WeatherClear, e.Weather)

	e.SetWeather(WeatherSand, PermanentWeather)
	for range 10 {
		e.AdvanceOneTurn()
	}
	assert.Equal(t, WeatherSand, e.Weather)
}

func testTeam(gen Generation, species ...SpeciesName) Team {
	members := make([]Pokemon, 0, len(species))
	for _, s := range species {
		members = append(members, NewPokemon(gen, s, 100, Hardy, MaxSpread(), NoAbility, NoItem, s.Learnset(gen)[0]))
	}
	return NewTeam(members...)
}

func TestRemoveFaintedKeepsActive(t *testing.T) {
	team := testTeam(Gen4, Garchomp, Blissey, Scizor, Starmie)
	team.Pokemon[1].Faint()
	team.Pokemon[3].Faint()
	team.Active = 2

	team.RemoveFainted()

	assert.Equal(t, 2, team.Count)
	assert.Equal(t, 2, team.Size)
	assert.Equal(t, 1, team.Active)
	assert.Equal(t, Scizor, team.ActivePokemon().Species)
	assert.Equal(t, NoSpecies, team.Pokemon[2].Species)
}

func TestTeamLost(t *testing.T) {
	team := testTeam(Gen4, Garchomp)
	assert.False(t, team.Lost())
	team.ActivePokemon().Faint()
	assert.True(t, team.Lost())

	observed := NewObservedTeam(3)
	_, err := observed.Reveal(NewPokemon(Gen4, Blissey, 100, Hardy, MaxSpread(), NaturalCure, Leftovers))
	require.NoError(t, err)
	observed.ActivePokemon().Faint()
	assert.False(t, observed.Lost(), "hidden members keep the team alive")
}

func TestReveal(t *testing.T) {
	observed := NewObservedTeam(1)
	slot, err := observed.Reveal(NewPokemon(Gen4, Blissey, 100, Hardy, MaxSpread(), NaturalCure, Leftovers))
	require.NoError(t, err)
	assert.Equal(t, 0, slot)
	assert.True(t, observed.ActivePokemon().Seen)

	_, err = observed.Reveal(NewPokemon(Gen4, Scizor, 100, Hardy, MaxSpread(), Technician, Leftovers))
	assert.ErrorIs(t, err, ErrTeamFull)

	known := testTeam(Gen4, Garchomp)
	_, err = known.Reveal(NewPokemon(Gen4, Scizor, 100, Hardy, MaxSpread(), Technician, Leftovers))
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestStateCopyIsDeep(t *testing.T) {
	s := NewState(Gen4, testTeam(Gen4, Garchomp, Blissey), testTeam(Gen4, Scizor))
	c := s
	c.Active(AI).HP = 1
	c.Active(AI).Stage.Boost(StageAtk, 2)
	assert.NotEqual(t, s.Active(AI).HP, c.Active(AI).HP)
	assert.Equal(t, int8(0), s.Active(AI).Stage[StageAtk])

	sw := s.Swapped()
	assert.Equal(t, Scizor, sw.Active(AI).Species)
}

func TestMoveLookup(t *testing.T) {
	m, ok := MoveByName("Double-Edge")
	require.True(t, ok)
	assert.Equal(t, DoubleEdge, m)
	m, ok = MoveByName("uturn")
	require.True(t, ok)
	assert.Equal(t, UTurn, m)

	assert.Equal(t, CategorySpecial, Crunch.Category(Gen3))
	assert.Equal(t, CategoryPhysical, Crunch.Category(Gen4))
	assert.False(t, StealthRock.AvailableIn(Gen3))
}

func TestGenerateTeamDeterministic(t *testing.T) {
	for _, gen := range Generations {
		a := GenerateTeam(gen, 6, rand.New(rand.NewSource(7)))
		b := GenerateTeam(gen, 6, rand.New(rand.NewSource(7)))
		assert.Equal(t, a, b, gen.String())
		require.Equal(t, 6, a.Count, gen.String())
		for _, p := range a.Members() {
			assert.Greater(t, p.MoveCount, 0, p.Species.String())
			for i := 0; i < p.MoveCount; i++ {
				assert.True(t, p.Moves[i].Name.AvailableIn(gen))
			}
			if gen == Gen1 {
				assert.Equal(t, NoItem, p.Item)
				assert.Equal(t, NoAbility, p.Ability)
			}
		}
	}
}
