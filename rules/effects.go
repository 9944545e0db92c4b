package rules

import (
	"github.com/brensch/pokesim/game"
)

// SideEffect is one weighted outcome of a move beyond its base damage. The
// side effects returned for a move and context have probabilities summing
// to 1. Hits is the number of strikes for multi-hit moves (0 means one).
type SideEffect struct {
	Probability float64
	Hits        int
	Apply       func(user, other *game.Team, env *game.Environment)
}

func noEffect(user, other *game.Team, env *game.Environment) {}

var noEffects = []SideEffect{{Probability: 1, Apply: noEffect}}

func always(fn func(user, other *game.Team, env *game.Environment)) []SideEffect {
	return []SideEffect{{Probability: 1, Apply: fn}}
}

// secondary builds the two outcomes of a percent chance effect on the target.
// Serene Grace doubles the chance; Shield Dust and substitutes block it.
func secondary(user, other *game.Team, percent int, fn func(user, other *game.Team, env *game.Environment)) []SideEffect {
	t := other.ActivePokemon()
	if t.Ability == game.ShieldDust || t.Substitute > 0 {
		return noEffects
	}
	p := float64(percent) / 100
	if user.ActivePokemon().Ability == game.SereneGrace {
		p *= 2
	}
	return weighted(p, fn)
}

func weighted(p float64, fn func(user, other *game.Team, env *game.Environment)) []SideEffect {
	p = min(p, 1)
	if p >= 1 {
		return always(fn)
	}
	if p <= 0 {
		return noEffects
	}
	return []SideEffect{{Probability: 1 - p, Apply: noEffect}, {Probability: p, Apply: fn}}
}

func inflictOn(gen game.Generation, status game.StatusName) func(user, other *game.Team, env *game.Environment) {
	return func(user, other *game.Team, env *game.Environment) {
		if t := other.ActivePokemon(); t.Substitute == 0 {
			Inflict(gen, t, status, *env)
		}
	}
}

func flinch(user, other *game.Team, env *game.Environment) {
	t := other.ActivePokemon()
	if t.Ability != game.InnerFocus {
		t.Flinched = true
	}
}

func lowerTarget(stat game.BoostableStat, n int) func(user, other *game.Team, env *game.Environment) {
	return func(user, other *game.Team, env *game.Environment) {
		boostTarget(other.ActivePokemon(), stat, -n)
	}
}

// boostTarget changes a stat on the opposing Pokemon, which Clear Body and
// substitutes block when it is a drop.
func boostTarget(t *game.Pokemon, stat game.BoostableStat, n int) {
	if t.Fainted() {
		return
	}
	if n < 0 && (t.Ability == game.ClearBody || t.Substitute > 0) {
		return
	}
	t.Stage.Boost(stat, n)
}

func boostSelf(boosts ...boost) func(user, other *game.Team, env *game.Environment) {
	return func(user, other *game.Team, env *game.Environment) {
		u := user.ActivePokemon()
		if u.Fainted() {
			return
		}
		for _, b := range boosts {
			u.Stage.Boost(b.stat, b.n)
		}
	}
}

type boost struct {
	stat game.BoostableStat
	n    int
}

// multiHitEffects spreads the 2-5 hit count. Skill Link always hits five
// times.
func multiHitEffects(gen game.Generation, user *game.Team) []SideEffect {
	if user.ActivePokemon().Ability == game.SkillLink {
		return []SideEffect{{Probability: 1, Hits: 5, Apply: noEffect}}
	}
	probs := [4]float64{3.0 / 8, 3.0 / 8, 1.0 / 8, 1.0 / 8}
	if gen >= game.Gen5 {
		probs = [4]float64{0.35, 0.35, 0.15, 0.15}
	}
	out := make([]SideEffect, 0, len(probs))
	for i, p := range probs {
		out = append(out, SideEffect{Probability: p, Hits: i + 2, Apply: noEffect})
	}
	return out
}

func rampageEffects(user *game.Team, move game.MoveName) []SideEffect {
	if user.ActivePokemon().LockIn.Kind == game.LockRampage {
		return noEffects
	}
	out := make([]SideEffect, 0, 2)
	for _, turns := range []uint8{2, 3} {
		out = append(out, SideEffect{Probability: 0.5, Apply: func(user, other *game.Team, env *game.Environment) {
			user.ActivePokemon().LockIn = game.Rampage(move, turns)
		}})
	}
	return out
}

func partialTrapEffects(gen game.Generation) []SideEffect {
	turns := []uint8{4, 5}
	probs := []float64{0.5, 0.5}
	if gen <= game.Gen4 {
		turns = []uint8{2, 3, 4, 5}
		probs = []float64{3.0 / 8, 3.0 / 8, 1.0 / 8, 1.0 / 8}
	}
	out := make([]SideEffect, 0, len(turns))
	for i, n := range turns {
		out = append(out, SideEffect{Probability: probs[i], Apply: func(user, other *game.Team, env *game.Environment) {
			t := other.ActivePokemon()
			if !t.Fainted() && t.PartialTrap == 0 {
				t.PartialTrap = n
			}
		}})
	}
	return out
}

func protectEffects(gen game.Generation, user *game.Team) []SideEffect {
	streak := int(user.ActivePokemon().ProtectStreak)
	base := 2.0
	if gen >= game.Gen6 {
		base = 3
	}
	p := 1.0
	for range streak {
		p /= base
	}
	succeed := func(user, other *game.Team, env *game.Environment) {
		u := user.ActivePokemon()
		u.LockIn = game.LockIn{Kind: game.LockProtecting}
		u.ProtectStreak = min(u.ProtectStreak+1, game.MaxProtectStreak)
	}
	fail := func(user, other *game.Team, env *game.Environment) {
		user.ActivePokemon().ProtectStreak = 0
	}
	if p >= 1 {
		return always(succeed)
	}
	return []SideEffect{{Probability: 1 - p, Apply: fail}, {Probability: p, Apply: succeed}}
}

// MoveEffects enumerates the weighted outcomes of move beyond its damage,
// evaluated against the state before the move resolves.
func MoveEffects(gen game.Generation, move game.MoveName, user, other *game.Team, env game.Environment) []SideEffect {
	switch move {
	case game.BodySlam, game.Thunderbolt, game.ThunderPunch:
		percent := 10
		if move == game.BodySlam {
			percent = 30
		}
		return secondary(user, other, percent, inflictOn(gen, game.StatusParalysis))
	case game.Thunder:
		return secondary(user, other, 30, inflictOn(gen, game.StatusParalysis))
	case game.Flamethrower, game.FireBlast, game.FirePunch, game.FlareBlitz:
		return secondary(user, other, 10, inflictOn(gen, game.StatusBurn))
	case game.Scald:
		return secondary(user, other, 30, inflictOn(gen, game.StatusBurn))
	case game.IceBeam, game.Blizzard, game.IcePunch:
		return secondary(user, other, 10, inflictOn(gen, game.StatusFreeze))
	case game.SludgeBomb, game.PoisonJab:
		return secondary(user, other, 30, inflictOn(gen, game.StatusPoison))
	case game.Waterfall:
		return secondary(user, other, 20, flinch)
	case game.AirSlash, game.RockSlide, game.IronHead:
		return secondary(user, other, 30, flinch)
	case game.EnergyBall, game.EarthPower, game.PsychicMove, game.FocusBlast, game.BugBuzz, game.FlashCannon:
		return secondary(user, other, 10, lowerTarget(game.StageSpD, 1))
	case game.ShadowBall:
		return secondary(user, other, 20, lowerTarget(game.StageSpD, 1))
	case game.Crunch:
		stat := game.StageDef
		if gen <= game.Gen3 {
			stat = game.StageSpD
		}
		return secondary(user, other, 20, lowerTarget(stat, 1))
	case game.Moonblast:
		return secondary(user, other, 30, lowerTarget(game.StageSpA, 1))
	case game.PlayRough:
		return secondary(user, other, 10, lowerTarget(game.StageAtk, 1))

	case game.Thrash, game.Outrage, game.PetalDance:
		return rampageEffects(user, move)
	case game.PinMissile, game.RockBlast:
		return multiHitEffects(gen, user)
	case game.Wrap, game.FireSpin:
		return partialTrapEffects(gen)
	case game.Protect, game.Detect:
		return protectEffects(gen, user)

	case game.CloseCombat:
		return always(boostSelf(boost{game.StageDef, -1}, boost{game.StageSpD, -1}))
	case game.DracoMeteor:
		return always(boostSelf(boost{game.StageSpA, -2}))
	case game.SwordsDance:
		return always(boostSelf(boost{game.StageAtk, 2}))
	case game.NastyPlot:
		return always(boostSelf(boost{game.StageSpA, 2}))
	case game.DragonDance:
		return always(boostSelf(boost{game.StageAtk, 1}, boost{game.StageSpe, 1}))
	case game.CalmMind:
		return always(boostSelf(boost{game.StageSpA, 1}, boost{game.StageSpD, 1}))
	case game.BulkUp:
		return always(boostSelf(boost{game.StageAtk, 1}, boost{game.StageDef, 1}))
	case game.Agility:
		return always(boostSelf(boost{game.StageSpe, 2}))
	case game.IronDefense:
		return always(boostSelf(boost{game.StageDef, 2}))
	case game.Amnesia:
		if gen == game.Gen1 {
			return always(boostSelf(boost{game.StageSpA, 2}, boost{game.StageSpD, 2}))
		}
		return always(boostSelf(boost{game.StageSpD, 2}))
	case game.Growl:
		return always(lowerTarget(game.StageAtk, 1))

	case game.ThunderWave:
		return always(func(user, other *game.Team, env *game.Environment) {
			t := other.ActivePokemon()
			if Effectiveness(gen, move, user.ActivePokemon(), t, *env).Immune() {
				return
			}
			Inflict(gen, t, game.StatusParalysis, *env)
		})
	case game.Toxic:
		return always(inflictOn(gen, game.StatusToxic))
	case game.WillOWisp:
		return always(inflictOn(gen, game.StatusBurn))
	case game.Spore, game.SleepPowder:
		return always(func(user, other *game.Team, env *game.Environment) {
			t := other.ActivePokemon()
			if gen >= game.Gen6 && t.HasType(gen, game.Grass) {
				return
			}
			Inflict(gen, t, game.StatusSleep, *env)
		})
	case game.Hypnosis:
		return always(inflictOn(gen, game.StatusSleep))
	case game.ConfuseRay:
		return always(func(user, other *game.Team, env *game.Environment) {
			Confuse(other.ActivePokemon())
		})
	case game.Yawn:
		return always(func(user, other *game.Team, env *game.Environment) {
			t := other.ActivePokemon()
			if t.Status.IsClear() && t.Yawn == 0 && !t.Ability.BlocksStatus(game.StatusSleep) {
				t.Yawn = 2
			}
		})
	case game.LeechSeed:
		return always(func(user, other *game.Team, env *game.Environment) {
			t := other.ActivePokemon()
			if !t.HasType(gen, game.Grass) && !t.LeechSeeded {
				t.LeechSeeded = true
			}
		})

	case game.Spikes:
		return always(func(user, other *game.Team, env *game.Environment) {
			limit := uint8(3)
			if gen == game.Gen2 {
				limit = 1
			}
			if other.Spikes < limit {
				other.Spikes++
			}
		})
	case game.ToxicSpikes:
		return always(func(user, other *game.Team, env *game.Environment) {
			if other.ToxicSpikes < 2 {
				other.ToxicSpikes++
			}
		})
	case game.StealthRock:
		return always(func(user, other *game.Team, env *game.Environment) {
			other.StealthRock = true
		})
	case game.Reflect, game.LightScreen:
		return always(func(user, other *game.Team, env *game.Environment) {
			turns := uint8(5)
			if user.ActivePokemon().HeldItem(*env) == game.LightClay {
				turns = 8
			}
			screen := &user.Reflect
			if move == game.LightScreen {
				screen = &user.LightScreen
			}
			if *screen == 0 {
				*screen = turns
			}
		})
	case game.RainDance, game.SunnyDay, game.Sandstorm, game.Hail:
		return always(func(user, other *game.Team, env *game.Environment) {
			w := moveWeather(move)
			env.SetWeather(w, weatherTurns(user.ActivePokemon().HeldItem(*env), w))
		})
	case game.TrickRoom:
		return always(func(user, other *game.Team, env *game.Environment) {
			if env.TrickRoom > 0 {
				env.TrickRoom = 0
			} else {
				env.TrickRoom = 5
			}
		})
	case game.Gravity:
		return always(func(user, other *game.Team, env *game.Environment) {
			if env.Gravity == 0 {
				env.Gravity = 5
			}
		})
	case game.MagicRoom:
		return always(func(user, other *game.Team, env *game.Environment) {
			if env.MagicRoom > 0 {
				env.MagicRoom = 0
			} else {
				env.MagicRoom = 5
			}
		})
	case game.Haze:
		return always(func(user, other *game.Team, env *game.Environment) {
			user.ActivePokemon().Stage.Reset()
			other.ActivePokemon().Stage.Reset()
		})
	case game.PerishSong:
		return always(func(user, other *game.Team, env *game.Environment) {
			for _, p := range []*game.Pokemon{user.ActivePokemon(), other.ActivePokemon()} {
				if !p.Fainted() && !p.PerishSong {
					p.PerishSong = true
					p.Perish = 3
				}
			}
		})

	case game.Wish:
		return always(func(user, other *game.Team, env *game.Environment) {
			if user.Wish.Turns == 0 {
				user.Wish = game.Wish{Turns: 2, Amount: user.ActivePokemon().MaxHP() / 2}
			}
		})
	case game.Rest:
		return always(func(user, other *game.Team, env *game.Environment) {
			u := user.ActivePokemon()
			if u.HP == u.MaxHP() || u.Status.Asleep() || u.HealBlock > 0 || u.Ability.BlocksStatus(game.StatusRest) {
				return
			}
			u.Status = game.Status{Name: game.StatusRest}
			u.HP = u.MaxHP()
		})
	case game.Recover, game.Roost:
		return always(func(user, other *game.Team, env *game.Environment) {
			heal(user.ActivePokemon(), user.ActivePokemon().Fraction(1, 2))
		})
	case game.Swallow:
		return always(func(user, other *game.Team, env *game.Environment) {
			u := user.ActivePokemon()
			switch u.Stockpile {
			case 0:
				return
			case 1:
				heal(u, u.Fraction(1, 4))
			case 2:
				heal(u, u.Fraction(1, 2))
			default:
				heal(u, u.MaxHP())
			}
			releaseStockpile(gen, u)
		})
	case game.Stockpile:
		return always(func(user, other *game.Team, env *game.Environment) {
			u := user.ActivePokemon()
			if u.Stockpile >= 3 {
				return
			}
			u.Stockpile++
			if gen >= game.Gen4 {
				u.Stage.Boost(game.StageDef, 1)
				u.Stage.Boost(game.StageSpD, 1)
			}
		})
	case game.SpitUp:
		return always(func(user, other *game.Team, env *game.Environment) {
			releaseStockpile(gen, user.ActivePokemon())
		})
	case game.Substitute:
		return always(func(user, other *game.Team, env *game.Environment) {
			u := user.ActivePokemon()
			cost := u.MaxHP() / 4
			if u.Substitute > 0 || u.HP <= cost {
				return
			}
			u.HP -= cost
			u.Substitute = cost
		})
	case game.Curse:
		return always(func(user, other *game.Team, env *game.Environment) {
			u, t := user.ActivePokemon(), other.ActivePokemon()
			if !u.HasType(gen, game.Ghost) {
				u.Stage.Boost(game.StageSpe, -1)
				u.Stage.Boost(game.StageAtk, 1)
				u.Stage.Boost(game.StageDef, 1)
				return
			}
			if t.Cursed || t.Fainted() {
				return
			}
			t.Cursed = true
			u.Damage(u.Fraction(1, 2))
		})
	case game.Encore:
		return always(func(user, other *game.Team, env *game.Environment) {
			t := other.ActivePokemon()
			last := t.LastMove
			if t.Encore > 0 || !last.IsRegular() || last == game.Encore || last == game.Struggle {
				return
			}
			if _, ok := t.FindMove(last); !ok {
				return
			}
			t.Encore = 3
		})
	case game.Disable:
		return always(func(user, other *game.Team, env *game.Environment) {
			t := other.ActivePokemon()
			if t.Disable > 0 || !t.LastMove.IsRegular() || t.LastMove == game.Struggle {
				return
			}
			t.DisabledMove = t.LastMove
			t.Disable = 4
		})
	case game.Torment:
		return always(func(user, other *game.Team, env *game.Environment) {
			other.ActivePokemon().Torment = true
		})
	case game.Taunt:
		return always(func(user, other *game.Team, env *game.Environment) {
			if t := other.ActivePokemon(); t.Taunt == 0 {
				t.Taunt = 3
			}
		})
	case game.HealBlock:
		return always(func(user, other *game.Team, env *game.Environment) {
			if t := other.ActivePokemon(); t.HealBlock == 0 {
				t.HealBlock = 5
			}
		})
	case game.Embargo:
		return always(func(user, other *game.Team, env *game.Environment) {
			if t := other.ActivePokemon(); t.Embargo == 0 {
				t.Embargo = 5
			}
		})
	case game.MagnetRise:
		return always(func(user, other *game.Team, env *game.Environment) {
			if u := user.ActivePokemon(); u.MagnetRise == 0 && !u.Ingrained {
				u.MagnetRise = 5
			}
		})
	case game.Ingrain:
		return always(func(user, other *game.Team, env *game.Environment) {
			user.ActivePokemon().Ingrained = true
		})
	case game.AquaRing:
		return always(func(user, other *game.Team, env *game.Environment) {
			user.ActivePokemon().AquaRing = true
		})
	case game.MeanLook:
		return always(func(user, other *game.Team, env *game.Environment) {
			other.ActivePokemon().Trapped = true
		})
	case game.FocusEnergy:
		return always(func(user, other *game.Team, env *game.Environment) {
			user.ActivePokemon().FocusEnergy = true
		})
	case game.RapidSpin:
		return always(func(user, other *game.Team, env *game.Environment) {
			u := user.ActivePokemon()
			if u.Fainted() {
				return
			}
			user.ClearHazards()
			u.LeechSeeded = false
			u.PartialTrap = 0
		})
	case game.Bide:
		return always(func(user, other *game.Team, env *game.Environment) {
			u := user.ActivePokemon()
			if u.LockIn.Kind != game.LockBide {
				u.LockIn = game.LockIn{Kind: game.LockBide, Counter: 2, Move: game.Bide}
			}
		})
	}
	return noEffects
}

func releaseStockpile(gen game.Generation, u *game.Pokemon) {
	if gen >= game.Gen4 {
		u.Stage.Boost(game.StageDef, -int(u.Stockpile))
		u.Stage.Boost(game.StageSpD, -int(u.Stockpile))
	}
	u.Stockpile = 0
}

func moveWeather(m game.MoveName) game.Weather {
	switch m {
	case game.RainDance:
		return game.WeatherRain
	case game.SunnyDay:
		return game.WeatherSun
	case game.Sandstorm:
		return game.WeatherSand
	case game.Hail:
		return game.WeatherHail
	}
	return game.WeatherClear
}

// weatherTurns is 5, or 8 when the setter holds the matching rock.
func weatherTurns(item game.Item, w game.Weather) int8 {
	if extended, ok := item.ExtendsWeather(); ok && extended == w {
		return 8
	}
	return 5
}
