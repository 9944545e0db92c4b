package rules

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/pokesim/game"
)

func dumpState(s *game.State) string {
	if s == nil {
		return "<nil state>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Gen=%s Weather=%s(%d) TrickRoom=%d\n", s.Gen, s.Env.Weather, s.Env.WeatherTurns, s.Env.TrickRoom)
	for _, side := range [2]game.Side{game.AI, game.Foe} {
		t := s.Team(side)
		fmt.Fprintf(&b, "%s: size=%d count=%d active=%d spikes=%d sr=%v\n", side, t.Size, t.Count, t.Active, t.Spikes, t.StealthRock)
		for i, p := range t.Members() {
			marker := ' '
			if i == t.Active {
				marker = '*'
			}
			fmt.Fprintf(&b, " %c %s %d/%d %s lock=%s(%d) conf=%d\n", marker, p.Species, p.HP, p.MaxHP(), p.Status, p.LockIn.Kind, p.LockIn.Counter, p.Confusion)
		}
	}
	return b.String()
}

func logTransition(t *testing.T, name string, before, after *game.State) {
	t.Helper()
	t.Logf("=== %s ===\nBefore:\n%sAfter:\n%s", name, dumpState(before), dumpState(after))
}

func mon(gen game.Generation, species game.SpeciesName, ability game.Ability, item game.Item, moves ...game.MoveName) game.Pokemon {
	return game.NewPokemon(gen, species, 100, game.Hardy, game.MaxSpread(), ability, item, moves...)
}

func duel(gen game.Generation, ai, foe game.Pokemon) game.State {
	return game.NewState(gen, game.NewTeam(ai), game.NewTeam(foe))
}

func sumOutcomes(outs []MoveOutcome) float64 {
	total := 0.0
	for _, o := range outs {
		total += o.Probability
	}
	return total
}

func TestMoveOutcomes_ProbabilitiesSumToOne(t *testing.T) {
	gen := game.Gen4
	ai := mon(gen, game.Garchomp, game.SandVeil, game.NoItem, game.Outrage, game.Earthquake, game.StoneEdge, game.SwordsDance)
	ai.Status = game.Status{Name: game.StatusParalysis}
	ai.Confusion = 3
	foe := mon(gen, game.Cloyster, game.SkillLink, game.NoItem, game.RockBlast, game.IceBeam, game.Spikes, game.RapidSpin)
	s := duel(gen, ai, foe)

	for _, side := range [2]game.Side{game.AI, game.Foe} {
		for _, sel := range LegalSelections(&s, side) {
			outs := MoveOutcomes(&s, side, sel, OtherAction{})
			require.NotEmpty(t, outs, "%s %s", side, sel)
			assert.InDelta(t, 1.0, sumOutcomes(outs), 1e-9, "%s %s", side, sel)
		}
	}
}

func TestResolve_SleepingPokemonWakesOrStays(t *testing.T) {
	gen := game.Gen4
	ai := mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam)
	ai.Status = game.Status{Name: game.StatusSleep, Turns: 3}
	s := duel(gen, ai, mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam))

	branches := Resolve(s, game.AI, game.MoveSelection(game.BodySlam), OtherAction{})
	require.NotEmpty(t, branches)
	woke, slept := 0.0, 0.0
	for _, b := range branches {
		if b.State.Active(game.AI).Status.IsClear() {
			woke += b.Probability
		} else {
			slept += b.Probability
			assert.Equal(t, uint8(4), b.State.Active(game.AI).Status.Turns)
		}
	}
	// Gen4 sleep lasts 2-5 turns; after three the hazard is 1/(5-3+1).
	assert.InDelta(t, 1.0/3.0, woke, 1e-9)
	assert.InDelta(t, 2.0/3.0, slept, 1e-9)
}

func TestRampage_EndsWithConfusion(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Dragonite, game.InnerFocus, game.NoItem, game.Outrage),
		mon(gen, game.Blissey, game.NaturalCure, game.NoItem, game.Splash))

	used := UsedMove{Selected: game.Outrage, Executed: game.Outrage, Hit: true, Effect: SideEffect{Probability: 0.5, Apply: func(user, other *game.Team, env *game.Environment) {
		user.ActivePokemon().LockIn = game.Rampage(game.Outrage, 2)
	}}}
	before := s
	CallMove(&s, game.AI, used, OtherAction{})
	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	logTransition(t, "rampage turn 1", &before, &s)
	require.Equal(t, game.LockRampage, s.Active(game.AI).LockIn.Kind, dumpState(&s))
	assert.Equal(t, []game.Selection{game.MoveSelection(game.Outrage)}, LegalSelections(&s, game.AI))

	// The second turn continues the lock without spending PP.
	pp := s.Active(game.AI).Moves[0].PP
	CallMove(&s, game.AI, UsedMove{Selected: game.Outrage, Executed: game.Outrage, Hit: true, Effect: noEffects[0]}, OtherAction{})
	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	p := s.Active(game.AI)
	assert.Equal(t, pp, p.Moves[0].PP)
	assert.Equal(t, game.LockNone, p.LockIn.Kind, dumpState(&s))
	assert.Greater(t, p.Confusion, uint8(0))
}

func TestPerishSong_FaintsOnFourthEndOfTurn(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Wobbuffet, game.ShadowTag, game.NoItem, game.PerishSong),
		mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.Splash))

	effects := MoveEffects(gen, game.PerishSong, s.Team(game.AI), s.Team(game.Foe), s.Env)
	require.Len(t, effects, 1)
	CallMove(&s, game.AI, UsedMove{Selected: game.PerishSong, Executed: game.PerishSong, Hit: true, Effect: effects[0]}, OtherAction{})

	for turn := 1; turn <= 3; turn++ {
		EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
		require.False(t, s.Active(game.AI).Fainted(), "turn %d\n%s", turn, dumpState(&s))
		require.False(t, s.Active(game.Foe).Fainted(), "turn %d\n%s", turn, dumpState(&s))
	}
	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	assert.True(t, s.Active(game.AI).Fainted())
	assert.True(t, s.Active(game.Foe).Fainted())
	assert.Equal(t, Draw, Winner(&s))
}

func useMove(t *testing.T, s *game.State, side game.Side, move game.MoveName) {
	t.Helper()
	effects := MoveEffects(s.Gen, move, s.Team(side), s.Team(side.Other()), s.Env)
	require.Len(t, effects, 1)
	CallMove(s, side, UsedMove{Selected: move, Executed: move, Hit: true, Effect: effects[0]}, OtherAction{})
}

func TestWish_HealsAtSecondEndOfTurn(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Blissey, game.NaturalCure, game.NoItem, game.Wish),
		mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.Splash))
	p := s.Active(game.AI)
	p.HP = 100

	useMove(t, &s, game.AI, game.Wish)
	require.Equal(t, game.Wish{Turns: 2, Amount: p.MaxHP() / 2}, s.Team(game.AI).Wish)

	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	require.Equal(t, 100, s.Active(game.AI).HP, dumpState(&s))

	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	assert.Equal(t, 100+s.Active(game.AI).MaxHP()/2, s.Active(game.AI).HP)
	assert.Zero(t, s.Team(game.AI).Wish.Turns)
}

func TestFutureSight_LandsAtThirdEndOfTurn(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Alakazam, game.InnerFocus, game.NoItem, game.FutureSight),
		mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.Splash))
	hp := s.Active(game.Foe).HP

	useMove(t, &s, game.AI, game.FutureSight)
	pending := s.Team(game.Foe).Future
	require.Equal(t, uint8(3), pending.Turns)
	require.Positive(t, pending.Damage)
	require.Equal(t, hp, s.Active(game.Foe).HP)

	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	// A second attack at the same team fails while one is pending.
	useMove(t, &s, game.AI, game.FutureSight)
	require.Equal(t, uint8(2), s.Team(game.Foe).Future.Turns)

	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	require.Equal(t, hp, s.Active(game.Foe).HP, dumpState(&s))

	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	assert.Equal(t, hp-pending.Damage, s.Active(game.Foe).HP)
	assert.Equal(t, game.FutureAttack{}, s.Team(game.Foe).Future)
}

func TestFutureAttack_CountsDownWhileActiveFainted(t *testing.T) {
	gen := game.Gen4
	s := game.NewState(gen,
		game.NewTeam(mon(gen, game.Alakazam, game.InnerFocus, game.NoItem, game.FutureSight)),
		game.NewTeam(
			mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.Splash),
			mon(gen, game.Blissey, game.NaturalCure, game.NoItem, game.Splash)))
	foe := s.Team(game.Foe)
	foe.Future = game.FutureAttack{Turns: 2, Damage: 100}
	lead := s.Active(game.Foe)
	lead.HP = 1
	lead.Status = game.Status{Name: game.StatusPoison}

	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	require.True(t, s.Active(game.Foe).Fainted(), dumpState(&s))
	require.Equal(t, uint8(1), foe.Future.Turns)

	Switch(&s, game.Foe, 1)
	require.Equal(t, game.Blissey, s.Active(game.Foe).Species)
	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	assert.Equal(t, s.Active(game.Foe).MaxHP()-100, s.Active(game.Foe).HP)
	assert.Equal(t, game.FutureAttack{}, foe.Future)
}

func TestFutureAttack_MissesEmptySlot(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Alakazam, game.InnerFocus, game.NoItem, game.FutureSight),
		mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.Splash))
	s.Team(game.Foe).Future = game.FutureAttack{Turns: 1, Damage: 100}
	s.Active(game.Foe).Faint()

	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	assert.Equal(t, game.FutureAttack{}, s.Team(game.Foe).Future)
	assert.Zero(t, s.Active(game.Foe).HP)
}

func TestLeftovers_HealClampedToMax(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Snorlax, game.ThickFat, game.Leftovers, game.BodySlam),
		mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam))
	p := s.Active(game.AI)
	p.HP = p.MaxHP() - 1
	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	assert.Equal(t, p.MaxHP(), s.Active(game.AI).HP)

	s.Active(game.AI).HP = 1
	EndOfTurn(&s, game.AI, [2]EndOfTurnFlags{})
	assert.Equal(t, 1+p.MaxHP()/16, s.Active(game.AI).HP)
}

func TestEndOfTurn_Deterministic(t *testing.T) {
	gen := game.Gen4
	rng := rand.New(rand.NewSource(7))
	s := game.NewState(gen, game.GenerateTeam(gen, 6, rng), game.GenerateTeam(gen, 6, rng))
	s.Env.SetWeather(game.WeatherSand, 5)
	s.Active(game.AI).Status = game.Status{Name: game.StatusToxic}
	s.Active(game.Foe).LeechSeeded = true

	a, b := s, s
	EndOfTurn(&a, game.Foe, [2]EndOfTurnFlags{})
	EndOfTurn(&b, game.Foe, [2]EndOfTurnFlags{})
	assert.Equal(t, a, b)
}

func TestEndOfTurnFlagBranches_SumToOne(t *testing.T) {
	gen := game.Gen2
	ai := mon(gen, game.Cloyster, game.NoAbility, game.NoItem, game.Surf)
	ai.Status = game.Status{Name: game.StatusFreeze}
	s := duel(gen, ai, mon(gen, game.Snorlax, game.NoAbility, game.NoItem, game.BodySlam))
	branches := EndOfTurnFlagBranches(&s)
	require.Len(t, branches, 2)
	total := 0.0
	for _, b := range branches {
		total += b.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestLegalSelections_AllResolve(t *testing.T) {
	for _, gen := range game.Generations {
		rng := rand.New(rand.NewSource(int64(gen)))
		s := game.NewState(gen, game.GenerateTeam(gen, 3, rng), game.GenerateTeam(gen, 3, rng))
		for _, side := range [2]game.Side{game.AI, game.Foe} {
			for _, sel := range LegalSelections(&s, side) {
				branches := Resolve(s, side, sel, OtherActionFor(&s, side.Other(), game.PassSelection))
				require.NotEmpty(t, branches, "%s %s %s\n%s", gen, side, sel, dumpState(&s))
				total := 0.0
				for _, b := range branches {
					total += b.Probability
				}
				assert.InDelta(t, 1.0, total, 1e-9, "%s %s %s", gen, side, sel)
			}
		}
	}
}

func TestDamage_Immunities(t *testing.T) {
	gen := game.Gen4
	garchomp := mon(gen, game.Garchomp, game.SandVeil, game.NoItem, game.Earthquake)
	gyarados := mon(gen, game.Gyarados, game.Intimidate, game.NoItem, game.Thunderbolt)
	s := duel(gen, garchomp, gyarados)

	assert.Equal(t, DamageRange{}, Damage(gen, s.Team(game.AI), s.Team(game.Foe), game.Earthquake, s.Env, false, OtherAction{}))
	assert.Equal(t, DamageRange{}, Damage(gen, s.Team(game.Foe), s.Team(game.AI), game.Thunderbolt, s.Env, false, OtherAction{}))

	s.Env.Gravity = 5
	grounded := Damage(gen, s.Team(game.AI), s.Team(game.Foe), game.Earthquake, s.Env, false, OtherAction{})
	assert.Greater(t, grounded.Min, 0)
}

func TestDamage_RangeOrderedAndCritHitsHarder(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Garchomp, game.SandVeil, game.NoItem, game.Outrage),
		mon(gen, game.Salamence, game.Intimidate, game.NoItem, game.Outrage))
	normal := Damage(gen, s.Team(game.AI), s.Team(game.Foe), game.Outrage, s.Env, false, OtherAction{})
	crit := Damage(gen, s.Team(game.AI), s.Team(game.Foe), game.Outrage, s.Env, true, OtherAction{})
	assert.LessOrEqual(t, normal.Min, normal.Mean)
	assert.LessOrEqual(t, normal.Mean, normal.Max)
	assert.Greater(t, crit.Min, normal.Max)
	assert.True(t, normal.Contains(normal.Mean))
}

func TestLegalSelections_ChoiceItemLocksMove(t *testing.T) {
	gen := game.Gen4
	ai := mon(gen, game.Garchomp, game.SandVeil, game.ChoiceScarf, game.Outrage, game.Earthquake)
	ai.LastMove = game.Earthquake
	s := game.NewState(gen, game.NewTeam(ai, mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam)),
		game.NewTeam(mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam)))
	assert.Equal(t, []game.Selection{game.MoveSelection(game.Earthquake), game.SwitchSelection(1)}, LegalSelections(&s, game.AI))
}

func TestLegalSelections_TauntBlocksStatusMoves(t *testing.T) {
	gen := game.Gen4
	ai := mon(gen, game.Skarmory, game.Sturdy, game.NoItem, game.Spikes, game.Roost)
	ai.Taunt = 2
	s := duel(gen, ai, mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam))
	assert.Equal(t, []game.Selection{game.MoveSelection(game.Struggle)}, LegalSelections(&s, game.AI))
}

func TestTrapped(t *testing.T) {
	gen := game.Gen4
	s := game.NewState(gen,
		game.NewTeam(mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam), mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam)),
		game.NewTeam(mon(gen, game.Wobbuffet, game.ShadowTag, game.NoItem, game.Counter)))
	assert.True(t, Trapped(&s, game.AI))
	for _, sel := range LegalSelections(&s, game.AI) {
		assert.False(t, sel.IsSwitch())
	}

	s.Active(game.AI).Item = game.ShedShell
	assert.False(t, Trapped(&s, game.AI))
}

func TestSwitch_StealthRockAndIntimidate(t *testing.T) {
	gen := game.Gen4
	s := game.NewState(gen,
		game.NewTeam(mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam), mon(gen, game.Charizard, game.Blaze, game.NoItem, game.Flamethrower), mon(gen, game.Gyarados, game.Intimidate, game.NoItem, game.Waterfall)),
		game.NewTeam(mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam)))
	s.Team(game.AI).StealthRock = true

	Switch(&s, game.AI, 1)
	zard := s.Active(game.AI)
	assert.Equal(t, zard.MaxHP()-zard.MaxHP()/2, zard.HP)
	assert.True(t, zard.SwitchedIn)

	Switch(&s, game.AI, 2)
	assert.Equal(t, int8(-1), s.Active(game.Foe).Stage[game.StageAtk])
}

func TestSwitch_ReplacingFaintedShrinksTeam(t *testing.T) {
	gen := game.Gen4
	s := game.NewState(gen,
		game.NewTeam(mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam), mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam)),
		game.NewTeam(mon(gen, game.Blissey, game.NaturalCure, game.NoItem, game.Splash)))
	s.Active(game.AI).Faint()
	require.Equal(t, []game.Selection{game.SwitchSelection(1)}, LegalSelections(&s, game.AI))
	assert.Equal(t, []game.Selection{game.PassSelection}, LegalSelections(&s, game.Foe))

	Switch(&s, game.AI, 1)
	team := s.Team(game.AI)
	assert.Equal(t, 1, team.Count)
	assert.Equal(t, 0, team.Active)
	assert.Equal(t, game.Tauros, team.ActivePokemon().Species)
}

func TestCallMove_ProtectBlocks(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam),
		mon(gen, game.Blissey, game.NaturalCure, game.NoItem, game.Protect))
	for _, b := range Resolve(s, game.Foe, game.MoveSelection(game.Protect), OtherAction{}) {
		require.Equal(t, game.LockProtecting, b.State.Active(game.Foe).LockIn.Kind)
		s = b.State
	}
	hp := s.Active(game.Foe).HP
	CallMove(&s, game.AI, UsedMove{Selected: game.BodySlam, Executed: game.BodySlam, Hit: true, Effect: noEffects[0]}, OtherAction{})
	assert.Equal(t, hp, s.Active(game.Foe).HP)
}

func TestMultiHit_SkillLinkAlwaysFive(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Cloyster, game.SkillLink, game.NoItem, game.RockBlast),
		mon(gen, game.Blissey, game.NaturalCure, game.NoItem, game.Splash))
	effects := MoveEffects(gen, game.RockBlast, s.Team(game.AI), s.Team(game.Foe), s.Env)
	require.Len(t, effects, 1)
	assert.Equal(t, 5, effects[0].Hits)

	s.Active(game.AI).Ability = game.ShellArmor
	effects = MoveEffects(gen, game.RockBlast, s.Team(game.AI), s.Team(game.Foe), s.Env)
	total := 0.0
	for _, e := range effects {
		total += e.Probability
	}
	assert.Len(t, effects, 4)
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestOrder_PriorityThenSpeedThenTrickRoom(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam),
		mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.QuickAttack, game.BodySlam))
	first, tie := Order(&s, game.MoveSelection(game.BodySlam), game.MoveSelection(game.BodySlam))
	assert.Equal(t, game.Foe, first)
	assert.False(t, tie)

	s.Env.TrickRoom = 3
	first, _ = Order(&s, game.MoveSelection(game.BodySlam), game.MoveSelection(game.BodySlam))
	assert.Equal(t, game.AI, first)

	first, _ = Order(&s, game.MoveSelection(game.BodySlam), game.MoveSelection(game.QuickAttack))
	assert.Equal(t, game.Foe, first)
}

func TestWinner(t *testing.T) {
	gen := game.Gen4
	s := duel(gen,
		mon(gen, game.Snorlax, game.ThickFat, game.NoItem, game.BodySlam),
		mon(gen, game.Tauros, game.Intimidate, game.NoItem, game.BodySlam))
	assert.Equal(t, Undecided, Winner(&s))
	s.Active(game.Foe).Faint()
	assert.Equal(t, AIWins, Winner(&s))
	s.Active(game.AI).Faint()
	assert.Equal(t, Draw, Winner(&s))
}
