package search

import (
	"github.com/brensch/pokesim/game"
)

// singleMatchups scores s by searching every 1v1 pairing of standing AI and
// foe members for d.Single turns, then adding the difference in members left.
// The result stays below a won battle's score.
func (e *Engine) singleMatchups(s *game.State, d Depth) float64 {
	w := e.Config.Weights
	sub := Depth{General: d.Single}
	ai, foe := s.Team(game.AI), s.Team(game.Foe)

	total, pairs := 0.0, 0
	for i := 0; i < ai.Count; i++ {
		if ai.Pokemon[i].Fainted() {
			continue
		}
		for j := 0; j < foe.Count; j++ {
			if foe.Pokemon[j].Fainted() {
				continue
			}
			m := matchup(s, i, j)
			total += e.value(&m, sub)
			pairs++
		}
	}
	if pairs == 0 {
		return Evaluate(s, w)
	}
	diff := float64(standing(ai) - standing(foe))
	return (total/float64(pairs) + diff*w.Victory()) / (game.MaxTeamSize + 1)
}

// standing counts members still able to fight, hidden ones included.
func standing(t *game.Team) int {
	n := t.Hidden()
	for i := 0; i < t.Count; i++ {
		if !t.Pokemon[i].Fainted() {
			n++
		}
	}
	return n
}

// matchup reduces both teams to a single member each, keeping side-wide
// state. A member that was not active arrives with clean volatile state.
func matchup(s *game.State, ai, foe int) game.State {
	m := *s
	for side, slot := range [2]int{game.AI: ai, game.Foe: foe} {
		t := &m.Teams[side]
		p := t.Pokemon[slot]
		if slot != t.Active {
			p.ResetVolatile()
		}
		t.Pokemon = [game.MaxTeamSize]game.Pokemon{p}
		t.Count, t.Size, t.Active = 1, 1, 0
		t.SelfSwitch, t.BatonPass = false, false
	}
	return m
}
