package rules

import (
	"github.com/brensch/pokesim/game"
)

// LegalSelections returns what side may select this turn, in priority order:
// forced replacement, waiting on the opponent's replacement, forced moves,
// then regular moves followed by switches. It never returns an empty slice;
// a team with nothing left to do gets Pass.
func LegalSelections(s *game.State, side game.Side) []game.Selection {
	user := s.Team(side)
	other := s.Team(side.Other())
	if user.Count == 0 {
		return []game.Selection{game.PassSelection}
	}
	active := user.ActivePokemon()

	// 1. Fainted or self-switching: replacement only.
	if active.Fainted() || user.SelfSwitch {
		targets := user.SwitchTargets()
		if len(targets) == 0 {
			return []game.Selection{game.PassSelection}
		}
		out := make([]game.Selection, 0, len(targets))
		for _, slot := range targets {
			out = append(out, game.SwitchSelection(slot))
		}
		return out
	}

	// 2. The opponent is choosing a replacement.
	if other.SwitchDecisionRequired() {
		return []game.Selection{game.PassSelection}
	}

	// 3. Already acted, or locked into a move.
	if active.Moved {
		return []game.Selection{game.PassSelection}
	}
	if forced, ok := active.LockIn.ForcedMove(); ok {
		return []game.Selection{game.MoveSelection(forced)}
	}

	// 4. Regular moves, then switches.
	out := make([]game.Selection, 0, game.MaxMoves+game.MaxTeamSize)
	for i := 0; i < active.MoveCount; i++ {
		if moveSelectable(s.Gen, active, active.Moves[i], s.Env) {
			out = append(out, game.MoveSelection(active.Moves[i].Name))
		}
	}
	if len(out) == 0 {
		out = append(out, game.MoveSelection(game.Struggle))
	}
	if !Trapped(s, side) {
		for _, slot := range user.SwitchTargets() {
			out = append(out, game.SwitchSelection(slot))
		}
	}
	return out
}

func moveSelectable(gen game.Generation, p *game.Pokemon, slot game.MoveSlot, env game.Environment) bool {
	m := slot.Name
	if slot.PP == 0 {
		return false
	}
	if p.Disable > 0 && p.DisabledMove == m {
		return false
	}
	if p.Torment && p.LastMove == m {
		return false
	}
	if p.Taunt > 0 && !m.IsDamaging() {
		return false
	}
	if p.HealBlock > 0 && m.Has(game.FlagHealing) {
		return false
	}
	if env.Gravity > 0 && m.Has(game.FlagAirborne) {
		return false
	}
	if mustRepeat(gen, p, env) && m != p.LastMove {
		return false
	}
	return true
}

// mustRepeat reports whether a choice item or Encore pins the Pokemon to its
// last move.
func mustRepeat(gen game.Generation, p *game.Pokemon, env game.Environment) bool {
	if !p.LastMove.IsRegular() || p.LastMove == game.Struggle {
		return false
	}
	if _, ok := p.FindMove(p.LastMove); !ok {
		return false
	}
	if p.Encore > 0 {
		return true
	}
	return gen.HasItems() && p.HeldItem(env).IsChoice()
}

// Trapped reports whether side's active Pokemon is prevented from switching.
func Trapped(s *game.State, side game.Side) bool {
	gen := s.Gen
	p := s.Active(side)
	if p.HeldItem(s.Env) == game.ShedShell {
		return false
	}
	if gen >= game.Gen6 && p.HasType(gen, game.Ghost) {
		return false
	}
	if p.Trapped || p.PartialTrap > 0 || p.Ingrained {
		return true
	}
	o := s.Active(side.Other())
	if o.Fainted() {
		return false
	}
	switch o.Ability {
	case game.ShadowTag:
		return p.Ability != game.ShadowTag
	case game.ArenaTrap:
		return p.Grounded(gen, s.Env)
	case game.MagnetPull:
		return p.HasType(gen, game.Steel)
	}
	return false
}
