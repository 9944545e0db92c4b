package rules

import (
	"github.com/brensch/pokesim/game"
)

// CallMove carries out side's move attempt with the random events fixed by
// used.
func CallMove(s *game.State, side game.Side, used UsedMove, other OtherAction) {
	gen := s.Gen
	user, target := s.Team(side), s.Team(side.Other())
	p, t := user.ActivePokemon(), target.ActivePokemon()
	if p.Fainted() {
		return
	}
	p.Moved = true
	move := used.Executed

	// 1. Sleep and freeze.
	if immobilized(p.Status) {
		if !used.ClearStatus {
			if p.Status.Asleep() {
				p.Status.Tick(1)
			}
			interrupt(p)
			return
		}
		p.Status = game.Status{}
	}

	// 2. Flinch.
	if p.Flinched {
		interrupt(p)
		return
	}

	// 3. Full paralysis.
	if used.FullyParalyzed {
		interrupt(p)
		return
	}

	// 4. Confusion.
	if p.Confusion > 0 {
		p.Confusion--
		if p.Confusion > 0 && used.ConfusionSelfHit {
			interrupt(p)
			p.Damage(confusionDamage(p))
			return
		}
	}

	switch move {
	case game.MoveNone, game.Pass:
		return
	case game.Recharge:
		p.LockIn = game.LockIn{}
		return
	}

	// 5. PP is spent when a move is chosen, not on the later turns of a lock.
	continuing := p.LockIn.Active() && p.LockIn.Move == move
	if !continuing {
		spendPP(p, move, t)
	}
	p.LastMove = move
	if !move.IsProtect() {
		p.ProtectStreak = 0
	}

	// 6. Bide stores damage, then releases double.
	if move == game.Bide {
		if p.LockIn.Kind != game.LockBide {
			used.Effect.apply(user, target, &s.Env)
			return
		}
		p.LockIn.Counter--
		if p.LockIn.Counter > 0 {
			return
		}
	}

	// 7. Two turn moves charge first.
	if chargingTurn(p, move, Weather(s)) {
		kind := game.LockChargingUp
		if move.IsVanishing() {
			kind = game.LockVanishing
		}
		p.LockIn = game.LockIn{Kind: kind, Move: move}
		return
	}
	if p.LockIn.Kind == game.LockChargingUp || p.LockIn.Kind == game.LockVanishing {
		p.LockIn = game.LockIn{}
	}

	if !landed(s, side, move, used, other) {
		if p.LockIn.Kind == game.LockRampage || p.LockIn.Kind == game.LockBide {
			p.LockIn = game.LockIn{}
		}
		if move.IsExplosion() {
			p.Faint()
		}
		residualAfterMove(s, side)
		return
	}

	// 8. Absorbing abilities turn the move into healing.
	if move.TargetsFoe() && absorbs(t, move.Type()) {
		heal(t, t.Fraction(1, 4))
		residualAfterMove(s, side)
		return
	}

	if move == game.BrickBreak && !Effectiveness(gen, move, p, t, s.Env).Immune() {
		target.Reflect, target.LightScreen = 0, 0
	}

	// 9. Future attacks land at the end of a later turn.
	if move.IsFutureAttack() {
		if target.Future.Turns == 0 {
			dmg := Damage(gen, user, target, move, s.Env, false, other)
			target.Future = game.FutureAttack{Turns: 3, Damage: dmg.Expected()}
		}
		residualAfterMove(s, side)
		return
	}

	// 10. Damage.
	if move.IsDamaging() {
		if Effectiveness(gen, move, p, t, s.Env).Immune() {
			if p.LockIn.Kind == game.LockRampage {
				p.LockIn = game.LockIn{}
			}
			residualAfterMove(s, side)
			return
		}
		dealt := strike(s, side, move, used, other)
		if move == game.Bide {
			p.LockIn = game.LockIn{}
		}
		afterStrike(s, side, move, used, dealt)
	}

	// 11. Effects.
	used.Effect.apply(user, target, &s.Env)

	// 12. Follow-up state.
	if move.IsRecharge() && (gen > game.Gen1 || !t.Fainted()) {
		p.LockIn = game.LockIn{Kind: game.LockRecharging}
	}
	if move == game.Uproar && p.LockIn.Kind != game.LockUproar {
		p.LockIn = game.LockIn{Kind: game.LockUproar, Counter: 3, Move: move}
	}
	if move.IsSelfSwitch() && len(user.SwitchTargets()) > 0 {
		user.SelfSwitch = true
		user.BatonPass = move == game.BatonPass
	}
	if move.IsExplosion() {
		p.Faint()
	}
	residualAfterMove(s, side)
}

func (e SideEffect) apply(user, other *game.Team, env *game.Environment) {
	if e.Apply != nil {
		e.Apply(user, other, env)
	}
}

// interrupt ends the lock-ins a lost turn breaks.
func interrupt(p *game.Pokemon) {
	switch p.LockIn.Kind {
	case game.LockRampage, game.LockUproar, game.LockChargingUp, game.LockVanishing, game.LockRecharging:
		p.LockIn = game.LockIn{}
	}
}

// spendPP takes PP for move; Pressure doubles the cost.
func spendPP(p *game.Pokemon, move game.MoveName, t *game.Pokemon) {
	i, ok := p.FindMove(move)
	if !ok {
		return
	}
	cost := uint8(1)
	if t.Ability == game.Pressure && !t.Fainted() {
		cost = 2
	}
	if p.Moves[i].PP < cost {
		cost = p.Moves[i].PP
	}
	p.Moves[i].PP -= cost
}

// landed reports whether the move reaches its target: it must not miss, be
// blocked by a protect, or fail its own condition.
func landed(s *game.State, side game.Side, move game.MoveName, used UsedMove, other OtherAction) bool {
	if !used.Hit {
		return false
	}
	t := s.Active(side.Other())
	if !move.TargetsFoe() {
		return true
	}
	if t.Fainted() {
		return false
	}
	if t.LockIn.Kind == game.LockProtecting {
		return false
	}
	if move == game.SuckerPunch {
		return other.Damaging && !other.Moved
	}
	return true
}

// strike deals move's damage, once per hit, and returns the total.
func strike(s *game.State, side game.Side, move game.MoveName, used UsedMove, other OtherAction) int {
	gen := s.Gen
	user, target := s.Team(side), s.Team(side.Other())
	dmg := Damage(gen, user, target, move, s.Env, used.Crit, other)
	physical := move.Category(gen) == game.CategoryPhysical
	hits := max(1, used.Effect.Hits)
	total := 0
	for range hits {
		if target.ActivePokemon().Fainted() {
			break
		}
		total += dealDamage(gen, target, dmg.Expected(), physical, move, s.Env)
	}
	return total
}

// dealDamage removes amount HP from the team's active Pokemon, or from its
// substitute, and returns the HP actually lost.
func dealDamage(gen game.Generation, t *game.Team, amount int, physical bool, move game.MoveName, env game.Environment) int {
	d := t.ActivePokemon()
	if d.Substitute > 0 && !move.Has(game.FlagSound) {
		absorbed := min(amount, d.Substitute)
		d.Substitute -= absorbed
		return absorbed
	}
	if d.HP == d.MaxHP() && amount >= d.HP {
		switch {
		case gen >= game.Gen5 && d.Ability == game.Sturdy:
			amount = d.HP - 1
		case d.HeldItem(env) == game.FocusSash:
			amount = d.HP - 1
			d.Item = game.NoItem
		}
	}
	lost := d.Damage(amount)
	d.DamageTaken = lost
	d.DamagePhysical = physical
	if d.LockIn.Kind == game.LockBide {
		d.LockIn.Damage += lost
	}
	if move.Type() == game.Fire && d.Status.Name == game.StatusFreeze {
		d.Status = game.Status{}
	}
	if !d.Fainted() && d.HP*2 <= d.MaxHP() && d.HeldItem(env) == game.SitrusBerry {
		d.Item = game.NoItem
		heal(d, d.Fraction(1, 4))
	}
	return lost
}

// afterStrike applies what follows a landed hit: recoil, drain, Life Orb,
// contact punishment and consumed berries.
func afterStrike(s *game.State, side game.Side, move game.MoveName, used UsedMove, dealt int) {
	gen := s.Gen
	p, t := s.Active(side), s.Active(side.Other())
	item := p.HeldItem(s.Env)

	if num, den := move.Recoil(); den > 0 && dealt > 0 {
		switch {
		case move == game.Struggle && gen >= game.Gen4:
			p.Damage(p.Fraction(1, 4))
		case move == game.Struggle:
			p.Damage(max(1, dealt*num/den))
		case !p.Ability.BlocksIndirectDamage():
			p.Damage(max(1, dealt*num/den))
		}
	}
	if num, den := move.Drain(); den > 0 && dealt > 0 {
		amount := max(1, dealt*num/den)
		if item == game.BigRoot {
			amount = amount * 13 / 10
		}
		if t.Ability.DamagesLeechers() {
			p.Damage(amount)
		} else {
			heal(p, amount)
		}
	}
	if item == game.LifeOrb && dealt > 0 && !p.Ability.BlocksIndirectDamage() {
		p.Damage(p.Fraction(1, 10))
	}
	if move.Has(game.FlagContact) && dealt > 0 {
		if t.Ability.DamagesOnContact() && !p.Ability.BlocksIndirectDamage() {
			den := 8
			if gen <= game.Gen4 {
				den = 16
			}
			p.Damage(p.Fraction(1, den))
		}
		if t.HeldItem(s.Env) == game.RockyHelmet && !p.Ability.BlocksIndirectDamage() {
			p.Damage(p.Fraction(1, 6))
		}
		if used.ContactEffect {
			if st := contactStatus(gen, p, t, move, s.Env); st != game.StatusClear {
				Inflict(gen, p, st, s.Env)
			}
		}
	}
	if dealt > 0 && !t.Fainted() {
		eff := Effectiveness(gen, move, p, t, s.Env)
		if resistBerryApplies(t.HeldItem(s.Env), move.Type(), eff) {
			t.Item = game.NoItem
		}
	}
}
