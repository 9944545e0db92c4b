package rules

import (
	"github.com/brensch/pokesim/game"
)

// OtherAction is what the opposing side does this turn, as far as the acting
// side's move can observe it.
type OtherAction struct {
	// Move is the move the other side executes, MoveNone when it is not
	// using one.
	Move      game.MoveName
	Damaging  bool
	Moved     bool
	Switching bool
}

// OtherActionFor describes side's selection for the benefit of its
// opponent's move resolution.
func OtherActionFor(s *game.State, side game.Side, sel game.Selection) OtherAction {
	p := s.Active(side)
	o := OtherAction{Switching: sel.IsSwitch(), Moved: p.Moved}
	if sel.IsMove() && !p.Fainted() {
		o.Move = ExecutedMove(p, sel.Move)
		o.Damaging = o.Move.IsDamaging()
	}
	return o
}

// ExecutedMove is the move p actually uses when selected is chosen: a forced
// lock-in move overrides the selection.
func ExecutedMove(p *game.Pokemon, selected game.MoveName) game.MoveName {
	if forced, ok := p.LockIn.ForcedMove(); ok {
		return forced
	}
	return selected
}

// UsedMove is one fully determined way a move attempt can play out. The
// random events are fixed up front so applying it is deterministic.
type UsedMove struct {
	Selected         game.MoveName
	Executed         game.MoveName
	ClearStatus      bool
	FullyParalyzed   bool
	ConfusionSelfHit bool
	Hit              bool
	Crit             bool
	ContactEffect    bool
	Effect           SideEffect
}

// MoveOutcome is a UsedMove with its probability.
type MoveOutcome struct {
	Probability float64
	Used        UsedMove
}

// Branch is a state reached with some probability.
type Branch struct {
	Probability float64
	State       game.State
}

func immobilized(st game.Status) bool {
	return st.Asleep() || st.Name == game.StatusFreeze
}

// acts reports whether the user gets to attempt its move under u.
func (u UsedMove) acts(st game.Status) bool {
	if immobilized(st) && !u.ClearStatus {
		return false
	}
	return !u.FullyParalyzed && !u.ConfusionSelfHit
}

func fork(outs []MoveOutcome, p float64, relevant func(UsedMove) bool, set func(*UsedMove)) []MoveOutcome {
	if p <= 0 {
		return outs
	}
	next := make([]MoveOutcome, 0, len(outs)*2)
	for _, o := range outs {
		if !relevant(o.Used) {
			next = append(next, o)
			continue
		}
		yes := o
		set(&yes.Used)
		if p >= 1 {
			yes.Probability = o.Probability
			next = append(next, yes)
			continue
		}
		yes.Probability = o.Probability * p
		no := o
		no.Probability = o.Probability * (1 - p)
		next = append(next, no, yes)
	}
	return next
}

func thawsUser(m game.MoveName) bool { return m == game.FlareBlitz || m == game.Scald }

// chargingTurn reports whether this use of move is the first turn of a two
// turn move, on which nothing is checked.
func chargingTurn(p *game.Pokemon, move game.MoveName, weather game.Weather) bool {
	if !move.IsCharge() && !move.IsVanishing() {
		return false
	}
	if p.LockIn.Kind == game.LockChargingUp || p.LockIn.Kind == game.LockVanishing {
		return false
	}
	return !(move == game.SolarBeam && weather == game.WeatherSun)
}

// MoveOutcomes enumerates every way side's move selection can play out. The
// probabilities sum to 1. Non-move selections have a single outcome.
func MoveOutcomes(s *game.State, side game.Side, sel game.Selection, other OtherAction) []MoveOutcome {
	gen := s.Gen
	user, target := s.Team(side), s.Team(side.Other())
	p := user.ActivePokemon()
	if !sel.IsMove() || p.Fainted() {
		return []MoveOutcome{{Probability: 1, Used: UsedMove{Selected: sel.Move, Executed: sel.Move, Hit: true}}}
	}
	move := ExecutedMove(p, sel.Move)
	outs := []MoveOutcome{{Probability: 1, Used: UsedMove{Selected: sel.Move, Executed: move, Hit: true}}}
	acting := func(u UsedMove) bool { return u.acts(p.Status) }

	// 1. Waking up or thawing.
	if immobilized(p.Status) {
		clear := p.Status.ProbabilityOfClearing(gen, p.Ability)
		if p.Status.Name == game.StatusFreeze {
			switch {
			case thawsUser(move) && gen >= game.Gen2:
				clear = 1
			case gen <= game.Gen2:
				clear = 0
			}
		}
		outs = fork(outs, clear, func(UsedMove) bool { return true }, func(u *UsedMove) { u.ClearStatus = true })
	}

	// 2. Full paralysis.
	if p.Status.Name == game.StatusParalysis {
		outs = fork(outs, 0.25, acting, func(u *UsedMove) { u.FullyParalyzed = true })
	}

	// 3. Confusion.
	if p.Confusion > 1 {
		chance := 0.5
		if gen >= game.Gen7 {
			chance = 1.0 / 3.0
		}
		outs = fork(outs, chance, acting, func(u *UsedMove) { u.ConfusionSelfHit = true })
	}

	weather := Weather(s)
	if move == game.Pass || move == game.Recharge || chargingTurn(p, move, weather) {
		return outs
	}
	if move == game.Bide && p.LockIn.Kind != game.LockBide {
		return withEffects(gen, outs, move, user, target, s.Env, acting)
	}

	// 4. Accuracy.
	miss := 1 - ChanceToHit(gen, user, target, move, s.Env)
	outs = fork(outs, miss, acting, func(u *UsedMove) { u.Hit = false })
	connects := func(u UsedMove) bool { return u.acts(p.Status) && u.Hit }

	// 5. Critical hit.
	t := target.ActivePokemon()
	outs = fork(outs, CritProbability(gen, p, t, move, s.Env), connects, func(u *UsedMove) { u.Crit = true })

	// 6. Contact abilities.
	if contactStatus(gen, p, t, move, s.Env) != game.StatusClear {
		outs = fork(outs, 0.3, connects, func(u *UsedMove) { u.ContactEffect = true })
	}

	// 7. Move-specific effects.
	return withEffects(gen, outs, move, user, target, s.Env, connects)
}

func withEffects(gen game.Generation, outs []MoveOutcome, move game.MoveName, user, target *game.Team, env game.Environment, relevant func(UsedMove) bool) []MoveOutcome {
	effects := MoveEffects(gen, move, user, target, env)
	next := make([]MoveOutcome, 0, len(outs)*len(effects))
	for _, o := range outs {
		if !relevant(o.Used) {
			next = append(next, o)
			continue
		}
		for _, e := range effects {
			if e.Probability <= 0 {
				continue
			}
			n := o
			n.Probability *= e.Probability
			n.Used.Effect = e
			next = append(next, n)
		}
	}
	return next
}

// contactStatus is the status a contact move would risk from the target's
// ability, StatusClear when there is none.
func contactStatus(gen game.Generation, p, t *game.Pokemon, move game.MoveName, env game.Environment) game.StatusName {
	if !move.Has(game.FlagContact) || !p.Status.IsClear() || t.Fainted() {
		return game.StatusClear
	}
	var st game.StatusName
	switch t.Ability {
	case game.Static:
		st = game.StatusParalysis
	case game.FlameBody:
		st = game.StatusBurn
	default:
		return game.StatusClear
	}
	if !statusAllowed(gen, p, st) || p.Ability.BlocksStatus(st) {
		return game.StatusClear
	}
	return st
}

// Resolve enumerates the states reachable from s when side carries out sel.
// Zero probability branches are dropped.
func Resolve(s game.State, side game.Side, sel game.Selection, other OtherAction) []Branch {
	outs := MoveOutcomes(&s, side, sel, other)
	branches := make([]Branch, 0, len(outs))
	for _, o := range outs {
		if o.Probability <= 0 {
			continue
		}
		next := s
		Apply(&next, side, sel, o.Used, other)
		branches = append(branches, Branch{Probability: o.Probability, State: next})
	}
	return branches
}

// Apply carries out sel for side with every random event fixed by used.
func Apply(s *game.State, side game.Side, sel game.Selection, used UsedMove, other OtherAction) {
	switch sel.Kind {
	case game.SelectSwitch:
		Switch(s, side, sel.Slot)
		s.Active(side).Moved = true
	case game.SelectMove:
		CallMove(s, side, used, other)
	default:
		if s.Team(side).Count > 0 {
			s.Active(side).Moved = true
		}
	}
}
