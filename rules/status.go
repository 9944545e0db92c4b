package rules

import (
	"github.com/brensch/pokesim/game"
)

// Inflict gives p a non-volatile status if nothing prevents it: an existing
// status, a type immunity, or an ability. A Lum Berry cures it on the spot.
// It reports whether the status stuck.
func Inflict(gen game.Generation, p *game.Pokemon, status game.StatusName, env game.Environment) bool {
	if p.Fainted() || !p.Status.IsClear() || !statusAllowed(gen, p, status) {
		return false
	}
	if p.Ability.BlocksStatus(status) {
		return false
	}
	if gen.HasItems() && p.HeldItem(env) == game.LumBerry {
		p.Item = game.NoItem
		return false
	}
	p.Status = game.Status{Name: status}
	return true
}

func statusAllowed(gen game.Generation, p *game.Pokemon, status game.StatusName) bool {
	switch status {
	case game.StatusBurn:
		return !p.HasType(gen, game.Fire)
	case game.StatusFreeze:
		return !p.HasType(gen, game.Ice)
	case game.StatusPoison, game.StatusToxic:
		return !p.HasType(gen, game.Poison) && !p.HasType(gen, game.Steel)
	case game.StatusParalysis:
		return gen < game.Gen6 || !p.HasType(gen, game.Electric)
	}
	return true
}

// confusionTurns is how many move attempts a fresh confusion lasts, counting
// the attempt on which it wears off.
const confusionTurns = 4

// Confuse confuses p unless it already is or Own Tempo prevents it.
func Confuse(p *game.Pokemon) {
	if p.Fainted() || p.Confusion > 0 || p.Ability == game.OwnTempo {
		return
	}
	p.Confusion = confusionTurns
}

// heal restores HP unless Heal Block is up.
func heal(p *game.Pokemon, amount int) {
	if p.HealBlock > 0 {
		return
	}
	p.Heal(amount)
}

// chip is indirect damage, which Magic Guard blocks.
func chip(p *game.Pokemon, num, den int) int {
	if p.Ability.BlocksIndirectDamage() {
		return 0
	}
	return p.Damage(p.Fraction(num, den))
}

// confusionDamage is the typeless 40 power physical hit a confused Pokemon
// deals itself.
func confusionDamage(p *game.Pokemon) int {
	atk := p.Stage.Apply(game.StageAtk, p.Stats[game.Atk])
	def := max(1, p.Stage.Apply(game.StageDef, p.Stats[game.Def]))
	return (2*int(p.Level)/5+2)*40*atk/def/50 + 2
}
