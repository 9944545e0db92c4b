package rules

import (
	"github.com/brensch/pokesim/game"
)

// EndOfTurnFlags are the random end of turn events for one side.
type EndOfTurnFlags struct {
	ShedSkin bool
	Thaw     bool
}

// FlagBranch is one combination of end of turn events with its probability.
type FlagBranch struct {
	Probability float64
	Flags       [2]EndOfTurnFlags
}

// EndOfTurnFlagBranches enumerates the random end of turn events. The
// probabilities sum to 1.
func EndOfTurnFlagBranches(s *game.State) []FlagBranch {
	out := []FlagBranch{{Probability: 1}}
	for _, side := range [2]game.Side{game.AI, game.Foe} {
		if s.Team(side).Count == 0 {
			continue
		}
		p := s.Active(side)
		if p.Fainted() {
			continue
		}
		if p.Ability == game.ShedSkin && !p.Status.IsClear() {
			chance := 0.3
			if s.Gen >= game.Gen5 {
				chance = 1.0 / 3.0
			}
			out = splitFlags(out, chance, func(f *[2]EndOfTurnFlags) { f[side].ShedSkin = true })
		}
		if s.Gen == game.Gen2 && p.Status.Name == game.StatusFreeze {
			out = splitFlags(out, 25.0/256.0, func(f *[2]EndOfTurnFlags) { f[side].Thaw = true })
		}
	}
	return out
}

func splitFlags(in []FlagBranch, p float64, set func(*[2]EndOfTurnFlags)) []FlagBranch {
	out := make([]FlagBranch, 0, len(in)*2)
	for _, b := range in {
		yes := b
		set(&yes.Flags)
		yes.Probability *= p
		b.Probability *= 1 - p
		out = append(out, b, yes)
	}
	return out
}

// EndOfTurn applies every end of turn effect, faster side first, then clears
// the per-turn flags.
func EndOfTurn(s *game.State, first game.Side, flags [2]EndOfTurnFlags) {
	order := [2]game.Side{first, first.Other()}
	if s.Gen == game.Gen1 {
		for _, side := range order {
			if active(s, side) != nil {
				advanceLockIn(active(s, side))
			}
		}
		ResetTurnFlags(s)
		return
	}

	// 1. Screens and Wish.
	for _, side := range order {
		t := s.Team(side)
		if t.Reflect > 0 {
			t.Reflect--
		}
		if t.LightScreen > 0 {
			t.LightScreen--
		}
		if t.Wish.Turns > 0 {
			t.Wish.Turns--
			if p := active(s, side); t.Wish.Turns == 0 && p != nil {
				heal(p, t.Wish.Amount)
			}
		}
	}

	// 2. Field counters and weather.
	s.Env.AdvanceOneTurn()
	weather := Weather(s)
	for _, side := range order {
		if p := active(s, side); p != nil {
			weatherEffects(s.Gen, p, weather)
		}
	}

	// 3. Residual effects on each Pokemon.
	for _, side := range order {
		if p := active(s, side); p != nil {
			residual(s, side, flags[side])
		}
	}

	// 4. Lock-ins, future attacks and Perish Song.
	for _, side := range order {
		t := s.Team(side)
		p := active(s, side)
		// The countdown belongs to the team. An attack landing on an empty
		// slot misses.
		if t.Future.Turns > 0 {
			t.Future.Turns--
			if t.Future.Turns == 0 {
				if p != nil {
					p.Damage(t.Future.Damage)
				}
				t.Future = game.FutureAttack{}
			}
		}
		if p == nil {
			continue
		}
		advanceLockIn(p)
		if p.PerishSong && !p.Fainted() {
			if p.Perish == 0 {
				p.Faint()
			} else {
				p.Perish--
			}
		}
	}
	ResetTurnFlags(s)
}

// active returns side's active Pokemon if it is still standing.
func active(s *game.State, side game.Side) *game.Pokemon {
	if s.Team(side).Count == 0 {
		return nil
	}
	p := s.Active(side)
	if p.Fainted() {
		return nil
	}
	return p
}

// ResetTurnFlags clears the flags that only last for one turn.
func ResetTurnFlags(s *game.State) {
	for i := range s.Teams {
		t := &s.Teams[i]
		if t.Count == 0 {
			continue
		}
		p := t.ActivePokemon()
		p.Moved = false
		p.Flinched = false
		p.SwitchedIn = false
		p.DamageTaken = 0
		p.DamagePhysical = false
	}
}

func weatherEffects(gen game.Generation, p *game.Pokemon, weather game.Weather) {
	switch weather {
	case game.WeatherSand:
		if !p.HasType(gen, game.Rock) && !p.HasType(gen, game.Ground) && !p.HasType(gen, game.Steel) && p.Ability != game.SandVeil {
			chip(p, 1, 16)
		}
	case game.WeatherHail:
		switch {
		case p.Ability == game.IceBody:
			heal(p, p.Fraction(1, 16))
		case !p.HasType(gen, game.Ice) && p.Ability != game.SnowCloak:
			chip(p, 1, 16)
		}
	case game.WeatherRain:
		switch p.Ability {
		case game.RainDish:
			heal(p, p.Fraction(1, 16))
		case game.DrySkin:
			heal(p, p.Fraction(1, 8))
		case game.Hydration:
			p.Status = game.Status{}
		}
	case game.WeatherSun:
		if p.Ability == game.DrySkin || p.Ability == game.SolarPower {
			chip(p, 1, 8)
		}
	}
}

func residual(s *game.State, side game.Side, flags EndOfTurnFlags) {
	gen := s.Gen
	p := s.Active(side)
	item := p.HeldItem(s.Env)
	healing := func(num, den int) int {
		n := p.Fraction(num, den)
		if item == game.BigRoot {
			n = n * 13 / 10
		}
		return n
	}

	if p.Ingrained {
		heal(p, healing(1, 16))
	}
	if p.AquaRing {
		heal(p, healing(1, 16))
	}
	if p.Ability == game.SpeedBoost && !p.SwitchedIn {
		p.Stage.Boost(game.StageSpe, 1)
	}
	if flags.ShedSkin || (flags.Thaw && p.Status.Name == game.StatusFreeze) {
		p.Status = game.Status{}
	}

	switch item {
	case game.Leftovers:
		heal(p, p.Fraction(1, 16))
	case game.BlackSludge:
		if p.HasType(gen, game.Poison) {
			heal(p, p.Fraction(1, 16))
		} else {
			chip(p, 1, 8)
		}
	}

	if p.LeechSeeded {
		drained := chip(p, 1, 8)
		if o := active(s, side.Other()); o != nil && drained > 0 {
			if p.Ability.DamagesLeechers() {
				o.Damage(drained)
			} else {
				heal(o, drained)
			}
		}
	}

	statusDamage(gen, p)

	if p.Status.IsClear() {
		switch item {
		case game.FlameOrb:
			Inflict(gen, p, game.StatusBurn, s.Env)
		case game.ToxicOrb:
			Inflict(gen, p, game.StatusToxic, s.Env)
		}
	}
	if p.Cursed {
		chip(p, 1, 4)
	}
	if p.PartialTrap > 0 {
		den := 8
		if gen <= game.Gen5 {
			den = 16
		}
		chip(p, 1, den)
		p.PartialTrap--
	}

	countdown(&p.Taunt)
	countdown(&p.Encore)
	countdown(&p.MagnetRise)
	countdown(&p.HealBlock)
	countdown(&p.Embargo)
	if countdown(&p.Disable) {
		p.DisabledMove = game.MoveNone
	}
	if countdown(&p.Yawn) {
		Inflict(gen, p, game.StatusSleep, s.Env)
	}

	if item == game.StickyBarb {
		chip(p, 1, 8)
	}
}

// countdown decrements a running counter and reports whether it just ran out.
func countdown(c *uint8) bool {
	if *c == 0 {
		return false
	}
	*c--
	return *c == 0
}

func statusDamage(gen game.Generation, p *game.Pokemon) {
	switch p.Status.Name {
	case game.StatusBurn:
		den := 8
		if gen >= game.Gen7 {
			den = 16
		}
		chip(p, 1, den)
	case game.StatusPoison:
		if p.Ability == game.PoisonHeal {
			heal(p, p.Fraction(1, 8))
			return
		}
		chip(p, 1, 8)
	case game.StatusToxic:
		p.Status.Tick(1)
		if p.Ability == game.PoisonHeal {
			heal(p, p.Fraction(1, 8))
			return
		}
		chip(p, int(p.Status.Turns), 16)
	}
}

// advanceLockIn counts down rampage and uproar. A rampage that runs its
// course leaves the user confused.
func advanceLockIn(p *game.Pokemon) {
	switch p.LockIn.Kind {
	case game.LockRampage:
		countdown(&p.LockIn.Counter)
		if p.LockIn.Counter == 0 {
			p.LockIn = game.LockIn{}
			Confuse(p)
		}
	case game.LockUproar:
		countdown(&p.LockIn.Counter)
		if p.LockIn.Counter == 0 {
			p.LockIn = game.LockIn{}
		}
	case game.LockProtecting:
		p.LockIn = game.LockIn{}
	}
}

// residualAfterMove applies the Gen 1 residual damage that follows each
// Pokemon's own move.
func residualAfterMove(s *game.State, side game.Side) {
	if s.Gen != game.Gen1 {
		return
	}
	p := active(s, side)
	if p == nil {
		return
	}
	switch p.Status.Name {
	case game.StatusBurn, game.StatusPoison:
		p.Damage(p.Fraction(1, 16))
	case game.StatusToxic:
		p.Status.Tick(1)
		p.Damage(p.Fraction(int(p.Status.Turns), 16))
	}
	if p.LeechSeeded {
		drained := p.Damage(p.Fraction(1, 16))
		if o := active(s, side.Other()); o != nil {
			o.Heal(drained)
		}
	}
}
