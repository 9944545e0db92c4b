package search

import (
	"math"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/rules"
)

// Weights scale the parts of the static evaluation. Hazard weights are
// penalties and normally negative.
type Weights struct {
	HP          float64 `mapstructure:"hp" yaml:"hp"`
	Hidden      float64 `mapstructure:"hidden" yaml:"hidden"`
	Spikes      float64 `mapstructure:"spikes" yaml:"spikes"`
	StealthRock float64 `mapstructure:"stealth_rock" yaml:"stealth_rock"`
	ToxicSpikes float64 `mapstructure:"toxic_spikes" yaml:"toxic_spikes"`
}

func DefaultWeights() Weights {
	return Weights{
		HP:          1024,
		Hidden:      80,
		Spikes:      -150,
		StealthRock: -200,
		ToxicSpikes: -100,
	}
}

// Victory is the score of a won battle. It exceeds the largest gap the static
// evaluation can produce between two full teams.
func (w Weights) Victory() float64 {
	per := math.Abs(w.HP) + math.Abs(w.Hidden) + 3*math.Abs(w.Spikes) + 4*math.Abs(w.StealthRock) + 2*math.Abs(w.ToxicSpikes)
	return 2*game.MaxTeamSize*per + 1
}

// Evaluate scores a non-terminal state from the AI's side: AI minus Foe.
func Evaluate(s *game.State, w Weights) float64 {
	return evaluateTeam(s, game.AI, w) - evaluateTeam(s, game.Foe, w)
}

func evaluateTeam(s *game.State, side game.Side, w Weights) float64 {
	gen := s.Gen
	t := s.Team(side)
	score := float64(t.Hidden()) * w.Hidden
	for i := 0; i < t.Count; i++ {
		p := &t.Pokemon[i]
		if p.Fainted() {
			continue
		}
		score += p.HPRatio() * w.HP
		if p.Ability.BlocksIndirectDamage() {
			continue
		}
		grounded := p.Grounded(gen, s.Env)
		if grounded {
			score += float64(t.Spikes) * w.Spikes
		}
		if t.StealthRock {
			score += game.TypeEffectiveness(gen, game.Rock, p.Types(gen)).Float() * w.StealthRock
		}
		if grounded && t.ToxicSpikes > 0 && !p.HasType(gen, game.Poison) && !p.HasType(gen, game.Steel) {
			score += float64(t.ToxicSpikes) * w.ToxicSpikes
		}
	}
	return score
}

// terminal scores a finished battle. Earlier wins and later losses score
// better.
func terminal(r rules.Result, d Depth, w Weights) float64 {
	bonus := float64(d.General)
	switch r {
	case rules.AIWins:
		return w.Victory() + bonus
	case rules.FoeWins:
		return -(w.Victory() + bonus)
	}
	return 0
}
