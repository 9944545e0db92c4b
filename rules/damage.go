package rules

import (
	"github.com/brensch/pokesim/game"
)

// DamageRange is the damage a hit can do over the random roll. Mean is the
// average over the sixteen equally likely rolls.
type DamageRange struct {
	Min  int
	Max  int
	Mean int
}

// Expected is the value the search uses in place of the roll.
func (d DamageRange) Expected() int { return d.Mean }

func (d DamageRange) Contains(n int) bool { return n >= d.Min && n <= d.Max }

func fixedDamage(n int) DamageRange { return DamageRange{Min: n, Max: n, Mean: n} }

const (
	minRoll = 85
	maxRoll = 100
)

// Damage computes what move from attacker's active Pokemon does to
// defender's active Pokemon. It applies, in order: base power adjustments,
// the level/attack/defense formula, burn, screens, weather, +2, critical hit,
// the random roll, STAB, type effectiveness and final item and ability
// modifiers. Immunities return a zero range.
func Damage(gen game.Generation, attacker, defender *game.Team, move game.MoveName, env game.Environment, crit bool, other OtherAction) DamageRange {
	a, d := attacker.ActivePokemon(), defender.ActivePokemon()
	if !move.IsDamaging() || d.Fainted() {
		return DamageRange{}
	}
	weather := env.EffectiveWeather(negatesWeather(a) || negatesWeather(d))
	eff := Effectiveness(gen, move, a, d, env)
	if eff.Immune() {
		return DamageRange{}
	}
	if move.IsFixedDamage() {
		return fixedDamage(fixedAmount(gen, move, a))
	}

	physical := move.Category(gen) == game.CategoryPhysical
	power := basePower(gen, move, a, d, weather, other)
	if power == 0 {
		return DamageRange{}
	}
	atk, def := attackAndDefense(gen, move, a, d, physical, crit, weather, env)

	base := (2*int(a.Level)/5 + 2) * power * atk / def / 50
	if physical && a.Status.Name == game.StatusBurn && a.Ability != game.Guts {
		base /= 2
	}
	if !crit && screened(defender, physical) {
		base /= 2
	}
	switch {
	case weather == game.WeatherRain && move.Type() == game.Water,
		weather == game.WeatherSun && move.Type() == game.Fire:
		base = base * 3 / 2
	case weather == game.WeatherRain && move.Type() == game.Fire,
		weather == game.WeatherSun && move.Type() == game.Water:
		base /= 2
	}
	base += 2
	if crit {
		if gen <= game.Gen5 {
			base *= 2
		} else {
			base = base * 3 / 2
		}
	}

	aItem, dItem := a.HeldItem(env), d.HeldItem(env)
	stab := a.HasType(gen, move.Type())
	roll := func(r int) int {
		x := base * r / 100
		if stab {
			if a.Ability == game.Adaptability {
				x *= 2
			} else {
				x = x * 3 / 2
			}
		}
		x = eff.Apply(x)
		if eff.Super() && (d.Ability == game.Filter || d.Ability == game.SolidRock) {
			x = x * 3 / 4
		}
		if eff.Super() && aItem == game.ExpertBelt {
			x = x * 6 / 5
		}
		if aItem == game.LifeOrb {
			x = x * 13 / 10
		}
		if resistBerryApplies(dItem, move.Type(), eff) {
			x /= 2
		}
		return max(1, x)
	}

	out := DamageRange{Min: roll(minRoll), Max: roll(maxRoll)}
	sum := 0
	for r := minRoll; r <= maxRoll; r++ {
		sum += roll(r)
	}
	out.Mean = sum / (maxRoll - minRoll + 1)
	return out
}

func negatesWeather(p *game.Pokemon) bool {
	return !p.Fainted() && p.Ability.NegatesWeather()
}

// Effectiveness is the type multiplier of move against d, folding in
// grounding and the absorbing abilities that make a Pokemon immune.
func Effectiveness(gen game.Generation, move game.MoveName, a, d *game.Pokemon, env game.Environment) game.Effectiveness {
	t := move.Type()
	if move == game.Struggle || move == game.Bide {
		t = game.Typeless
	}
	types := d.Types(gen)
	if t == game.Ground {
		if !d.Grounded(gen, env) {
			return 0
		}
		// Gravity and Ingrain ground Flying types.
		if types.First == game.Flying {
			types.First = types.Second
			types.Second = game.Typeless
		} else if types.Second == game.Flying {
			types.Second = game.Typeless
		}
		if types.First == game.Typeless {
			types.First = game.Normal
		}
	}
	if absorbs(d, t) {
		return 0
	}
	return game.TypeEffectiveness(gen, t, types)
}

// absorbs reports whether d's ability soaks up a move of type t.
func absorbs(d *game.Pokemon, t game.Type) bool {
	switch d.Ability {
	case game.VoltAbsorb:
		return t == game.Electric
	case game.WaterAbsorb, game.DrySkin:
		return t == game.Water
	}
	return false
}

func fixedAmount(gen game.Generation, move game.MoveName, a *game.Pokemon) int {
	switch move {
	case game.SeismicToss, game.NightShade:
		return int(a.Level)
	case game.Counter:
		if a.DamageTaken > 0 && a.DamagePhysical {
			return 2 * a.DamageTaken
		}
	case game.MirrorCoat:
		if a.DamageTaken > 0 && !a.DamagePhysical {
			return 2 * a.DamageTaken
		}
	case game.Bide:
		return 2 * a.LockIn.Damage
	}
	return 0
}

func basePower(gen game.Generation, move game.MoveName, a, d *game.Pokemon, weather game.Weather, other OtherAction) int {
	power := move.Data().Power
	switch move {
	case game.SpitUp:
		power = 100 * int(a.Stockpile)
	case game.SolarBeam:
		if weather == game.WeatherRain || weather == game.WeatherSand || weather == game.WeatherHail {
			power /= 2
		}
	case game.Payback:
		if other.Moved {
			power *= 2
		}
	}
	if a.Ability == game.Technician && power <= 60 {
		power = power * 3 / 2
	}
	if t, ok := a.Ability.PinchType(); ok && t == move.Type() && a.HP*3 <= a.MaxHP() {
		power = power * 3 / 2
	}
	if d.Ability == game.ThickFat && (move.Type() == game.Fire || move.Type() == game.Ice) {
		power /= 2
	}
	return power
}

func attackAndDefense(gen game.Generation, move game.MoveName, a, d *game.Pokemon, physical, crit bool, weather game.Weather, env game.Environment) (atk, def int) {
	atkStat, defStat := game.Atk, game.Def
	atkStage, defStage := game.StageAtk, game.StageDef
	if !physical {
		atkStat, defStat = game.SpA, game.SpD
		atkStage, defStage = game.StageSpA, game.StageSpD
	}
	aStages, dStages := a.Stage, d.Stage
	// Critical hits ignore the attacker's drops and the defender's boosts.
	if crit && aStages[atkStage] < 0 {
		aStages[atkStage] = 0
	}
	if crit && dStages[defStage] > 0 {
		dStages[defStage] = 0
	}
	atk = aStages.Apply(atkStage, a.Stats[atkStat])
	def = dStages.Apply(defStage, d.Stats[defStat])

	item := a.HeldItem(env)
	if physical {
		if a.Ability == game.HugePower {
			atk *= 2
		}
		if a.Ability == game.Guts && !a.Status.IsClear() {
			atk = atk * 3 / 2
		}
		if a.Ability == game.Hustle {
			atk = atk * 3 / 2
		}
		if item == game.ChoiceBand {
			atk = atk * 3 / 2
		}
		if move.IsExplosion() && gen <= game.Gen4 {
			def /= 2
		}
	} else {
		if item == game.ChoiceSpecs {
			atk = atk * 3 / 2
		}
		if a.Ability == game.SolarPower && weather == game.WeatherSun {
			atk = atk * 3 / 2
		}
		if weather == game.WeatherSand && gen >= game.Gen4 && d.HasType(gen, game.Rock) {
			def = def * 3 / 2
		}
	}
	return max(1, atk), max(1, def)
}

func screened(defender *game.Team, physical bool) bool {
	if physical {
		return defender.Reflect > 0
	}
	return defender.LightScreen > 0
}

func resistBerryApplies(item game.Item, t game.Type, eff game.Effectiveness) bool {
	resisted, ok := item.ResistedType()
	if !ok || resisted != t {
		return false
	}
	return t == game.Normal || eff.Super()
}

// CritProbability is the chance move lands a critical hit.
func CritProbability(gen game.Generation, a, d *game.Pokemon, move game.MoveName, env game.Environment) float64 {
	if !move.IsDamaging() || move.IsFixedDamage() || d.Ability.BlocksCrits() {
		return 0
	}
	if gen == game.Gen1 {
		speed := float64(a.Species.Data().Base[game.Spe])
		p := speed / 512
		if move.Has(game.FlagHighCrit) {
			p = speed / 64
		}
		return min(p, 255.0/256.0)
	}
	stage := 0
	if move.Has(game.FlagHighCrit) {
		stage++
	}
	if a.FocusEnergy {
		if gen == game.Gen2 {
			stage++
		} else {
			stage += 2
		}
	}
	if a.HeldItem(env) == game.ScopeLens {
		stage++
	}
	if a.Ability == game.SuperLuck {
		stage++
	}
	rates := [...]float64{1.0 / 16, 1.0 / 8, 1.0 / 4, 1.0 / 3, 1.0 / 2}
	if gen >= game.Gen7 {
		rates = [...]float64{1.0 / 24, 1.0 / 8, 1.0 / 2, 1, 1}
	}
	return rates[min(stage, len(rates)-1)]
}

// ChanceToHit is the probability move connects with the target.
func ChanceToHit(gen game.Generation, user, target *game.Team, move game.MoveName, env game.Environment) float64 {
	u, t := user.ActivePokemon(), target.ActivePokemon()
	if !move.TargetsFoe() {
		return 1
	}
	noGuard := u.Ability == game.NoGuard || t.Ability == game.NoGuard
	if t.LockIn.Kind == game.LockVanishing && !noGuard {
		return vanishedHit(move, t.LockIn.Move)
	}
	accuracy := move.Data().Accuracy
	if noGuard || accuracy == 0 {
		return 1
	}
	weather := env.EffectiveWeather(negatesWeather(u) || negatesWeather(t))
	switch {
	case move == game.Thunder && weather == game.WeatherRain,
		move == game.Blizzard && weather == game.WeatherHail && gen >= game.Gen4:
		return 1
	case move == game.Thunder && weather == game.WeatherSun:
		accuracy = 50
	}
	stage := int(u.Stage[game.StageAccuracy]) - int(t.Stage[game.StageEvasion])
	stage = max(game.MinStage, min(game.MaxStage, stage))
	var combined game.Stage
	combined[game.StageAccuracy] = int8(stage)
	num, den := combined.Modifier(game.StageAccuracy)
	p := float64(accuracy) / 100 * float64(num) / float64(den)

	if u.Ability == game.CompoundEyes {
		p *= 1.3
	}
	if u.Ability == game.Hustle && move.Category(gen) == game.CategoryPhysical {
		p *= 0.8
	}
	if (t.Ability == game.SandVeil && weather == game.WeatherSand) || (t.Ability == game.SnowCloak && weather == game.WeatherHail) {
		p *= 0.8
	}
	if env.Gravity > 0 {
		p *= 5.0 / 3.0
	}
	return min(p, 1)
}

// vanishedHit is the chance to hit a target in the middle of Fly or Dig.
func vanishedHit(move, vanish game.MoveName) float64 {
	switch {
	case vanish == game.Dig && move == game.Earthquake,
		vanish == game.Fly && move == game.Thunder:
		return 1
	}
	return 0
}
