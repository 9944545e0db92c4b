package rules

import (
	"github.com/brensch/pokesim/game"
)

// Weather returns the weather in effect, which Cloud Nine and Air Lock on
// either active Pokemon suppress.
func Weather(s *game.State) game.Weather {
	for _, side := range [2]game.Side{game.AI, game.Foe} {
		if s.Teams[side].Count == 0 {
			continue
		}
		p := s.Active(side)
		if !p.Fainted() && p.Ability.NegatesWeather() {
			return game.WeatherClear
		}
	}
	return s.Env.Weather
}

// Speed is the effective speed of side's active Pokemon.
func Speed(s *game.State, side game.Side) int {
	gen := s.Gen
	p := s.Active(side)
	v := p.Stage.Apply(game.StageSpe, p.Stats[game.Spe])
	if p.HeldItem(s.Env) == game.ChoiceScarf {
		v = v * 3 / 2
	}
	switch w := Weather(s); {
	case p.Ability == game.SwiftSwim && w == game.WeatherRain,
		p.Ability == game.Chlorophyll && w == game.WeatherSun:
		v *= 2
	}
	if p.Status.Name == game.StatusParalysis {
		if gen >= game.Gen7 {
			v /= 2
		} else {
			v /= 4
		}
	}
	return max(1, v)
}

// Faster returns the side that moves first on speed alone. Trick Room
// inverts the comparison. tie is set when the speeds are equal, in which case
// callers average over both orders.
func Faster(s *game.State) (first game.Side, tie bool) {
	a, f := Speed(s, game.AI), Speed(s, game.Foe)
	if a == f {
		return game.AI, true
	}
	aiFirst := a > f
	if s.Env.TrickRoom > 0 {
		aiFirst = !aiFirst
	}
	if aiFirst {
		return game.AI, false
	}
	return game.Foe, false
}

// switchPriority puts switches ahead of every move.
const switchPriority = 7

func priority(s *game.State, side game.Side, sel game.Selection) int {
	switch sel.Kind {
	case game.SelectSwitch, game.SelectPass:
		return switchPriority
	}
	return ExecutedMove(s.Active(side), sel.Move).Priority()
}

// Order decides which side acts first this turn: switches, then move
// priority, then speed.
func Order(s *game.State, ai, foe game.Selection) (first game.Side, tie bool) {
	pa, pf := priority(s, game.AI, ai), priority(s, game.Foe, foe)
	switch {
	case pa > pf:
		return game.AI, false
	case pf > pa:
		return game.Foe, false
	}
	return Faster(s)
}
