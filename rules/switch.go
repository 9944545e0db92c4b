package rules

import (
	"github.com/brensch/pokesim/game"
)

// spikesDamage is the fraction of max HP lost to 1, 2 and 3 layers.
var spikesDamage = [4][2]int{{0, 1}, {1, 8}, {1, 6}, {1, 4}}

// Switch replaces side's active Pokemon with the member in slot, applying
// everything that happens on the way out and the way in.
func Switch(s *game.State, side game.Side, slot int) {
	gen := s.Gen
	team := s.Team(side)
	if slot < 0 || slot >= team.Count || slot == team.Active {
		return
	}
	out := team.ActivePokemon()
	outFainted := out.Fainted()

	// 1. Leaving the field.
	var carried game.Volatile
	if team.BatonPass && !outFainted {
		carried = out.Volatile.BatonPassed()
	}
	if !outFainted {
		if out.Ability == game.NaturalCure {
			out.Status = game.Status{}
		}
		if out.Status.Name == game.StatusToxic {
			out.Status.Turns = 0
		}
	}
	out.ResetVolatile()
	team.SelfSwitch, team.BatonPass = false, false
	if s.Team(side.Other()).Count > 0 {
		foe := s.Active(side.Other())
		foe.PartialTrap = 0
		foe.Trapped = false
	}

	// 2. Bring in the replacement.
	team.Active = slot
	if outFainted {
		team.RemoveFainted()
	}
	in := team.ActivePokemon()
	in.Volatile = carried
	in.SwitchedIn = true
	in.Seen = true

	// 3. Entry hazards.
	if !in.Ability.BlocksIndirectDamage() {
		if team.StealthRock {
			eff := game.TypeEffectiveness(gen, game.Rock, in.Types(gen))
			in.Damage(max(1, in.MaxHP()*int(eff)/16/8))
		}
		if team.Spikes > 0 && in.Grounded(gen, s.Env) {
			f := spikesDamage[min(int(team.Spikes), 3)]
			in.Damage(in.Fraction(f[0], f[1]))
		}
	}
	if team.ToxicSpikes > 0 && in.Grounded(gen, s.Env) && !in.Fainted() {
		if in.HasType(gen, game.Poison) {
			team.ToxicSpikes = 0
		} else {
			status := game.StatusPoison
			if team.ToxicSpikes > 1 {
				status = game.StatusToxic
			}
			Inflict(gen, in, status, s.Env)
		}
	}
	if in.Fainted() {
		return
	}

	// 4. Entry abilities.
	if s.Team(side.Other()).Count > 0 {
		if foe := s.Active(side.Other()); in.Ability == game.Intimidate && !foe.Fainted() {
			boostTarget(foe, game.StageAtk, -1)
		}
	}
	if w, ok := game.WeatherFromAbility(in.Ability); ok {
		turns := int8(game.PermanentWeather)
		if gen >= game.Gen6 {
			turns = weatherTurns(in.HeldItem(s.Env), w)
		}
		s.Env.SetWeather(w, turns)
	}
}
