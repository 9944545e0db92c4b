package search

import (
	"github.com/samber/lo"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/rules"
)

// Weighted is a selection with the probability the opponent picks it.
type Weighted struct {
	Selection   game.Selection
	Probability float64
}

// Predictor models how a side chooses. Predict receives the side's legal
// selections and returns a distribution over them summing to 1.
type Predictor interface {
	Predict(s *game.State, side game.Side, legal []game.Selection) []Weighted
}

// Uniform gives every legal selection the same weight.
type Uniform struct{}

func (Uniform) Predict(s *game.State, side game.Side, legal []game.Selection) []Weighted {
	return uniform(legal)
}

func uniform(legal []game.Selection) []Weighted {
	p := 1 / float64(len(legal))
	return lo.Map(legal, func(sel game.Selection, _ int) Weighted {
		return Weighted{Selection: sel, Probability: p}
	})
}

// MaxDamage assumes the side uses whichever move does the most expected
// damage to the current target. It only switches when it has nothing else.
type MaxDamage struct{}

func (MaxDamage) Predict(s *game.State, side game.Side, legal []game.Selection) []Weighted {
	moves := lo.Filter(legal, func(sel game.Selection, _ int) bool { return sel.IsMove() })
	if len(moves) == 0 {
		return uniform(legal)
	}
	best := lo.MaxBy(moves, func(a, b game.Selection) bool {
		return expectedDamage(s, side, a) > expectedDamage(s, side, b)
	})
	return []Weighted{{Selection: best, Probability: 1}}
}

// expectedDamage is the mean damage of sel weighted by its chance to hit.
func expectedDamage(s *game.State, side game.Side, sel game.Selection) float64 {
	user, target := s.Team(side), s.Team(side.Other())
	move := rules.ExecutedMove(user.ActivePokemon(), sel.Move)
	if !move.IsDamaging() || target.Count == 0 {
		return 0
	}
	dmg := rules.Damage(s.Gen, user, target, move, s.Env, false, rules.OtherAction{})
	return float64(dmg.Expected()) * rules.ChanceToHit(s.Gen, user, target, move, s.Env)
}

// Statistical weights moves by how often each species uses them. Species
// missing from Usage fall back to Uniform. Switches share SwitchWeight.
type Statistical struct {
	Usage        map[game.SpeciesName]map[game.MoveName]float64
	SwitchWeight float64
}

func (m Statistical) Predict(s *game.State, side game.Side, legal []game.Selection) []Weighted {
	usage, ok := m.Usage[s.Active(side).Species]
	if !ok {
		return uniform(legal)
	}
	out := make([]Weighted, 0, len(legal))
	total := 0.0
	for _, sel := range legal {
		w := m.SwitchWeight
		if sel.IsMove() {
			w = usage[sel.Move]
		}
		if w <= 0 {
			continue
		}
		out = append(out, Weighted{Selection: sel, Probability: w})
		total += w
	}
	if total == 0 {
		return uniform(legal)
	}
	for i := range out {
		out[i].Probability /= total
	}
	return out
}
