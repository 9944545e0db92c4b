package game

import "math"

type Nature uint8

const (
	Hardy Nature = iota
	Lonely
	Brave
	Adamant
	Naughty
	Bold
	Docile
	Relaxed
	Impish
	Lax
	Timid
	Hasty
	Serious
	Jolly
	Naive
	Modest
	Mild
	Quiet
	Bashful
	Rash
	Calm
	Gentle
	Sassy
	Careful
	Quirky
	numNatures
)

const NumNatures = int(numNatures)

var natureNames = [numNatures]string{
	"hardy", "lonely", "brave", "adamant", "naughty", "bold", "docile", "relaxed", "impish", "lax",
	"timid", "hasty", "serious", "jolly", "naive", "modest", "mild", "quiet", "bashful", "rash",
	"calm", "gentle", "sassy", "careful", "quirky",
}

func (n Nature) String() string {
	if n >= numNatures {
		return "unknown"
	}
	return natureNames[n]
}

// Boosted and Hindered follow the table layout: row i raises stat i, column j
// lowers stat j, over Atk, Def, Spe, SpA, SpD.
func (n Nature) Boosted() StatName  { return natureOrder[int(n)/5] }
func (n Nature) Hindered() StatName { return natureOrder[int(n)%5] }
func (n Nature) Neutral() bool      { return int(n)/5 == int(n)%5 }

var natureOrder = [5]StatName{Atk, Def, Spe, SpA, SpD}

// Modifier returns the nature multiplier for stat in percent.
func (n Nature) Modifier(s StatName) int {
	switch {
	case n.Neutral() || s == HP:
		return 100
	case n.Boosted() == s:
		return 110
	case n.Hindered() == s:
		return 90
	}
	return 100
}

type StatName uint8

const (
	HP StatName = iota
	Atk
	Def
	SpA
	SpD
	Spe
	NumStats
)

// Stats are the computed, unboosted stats of a Pokemon.
type Stats [NumStats]int

// Spread holds individual and effort values. Generations 1 and 2 derive DVs
// as IV/2 and stat experience as EV*260.
type Spread struct {
	IVs [NumStats]int
	EVs [NumStats]int
}

// MaxSpread is 31 IVs and 84 EVs everywhere, the usual default when a
// spread is unknown.
func MaxSpread() Spread {
	var s Spread
	for i := range s.IVs {
		s.IVs[i] = 31
		s.EVs[i] = 84
	}
	return s
}

// CalculateStats applies the generation's stat formula.
func CalculateStats(gen Generation, species SpeciesName, level int, nature Nature, spread Spread) Stats {
	base := species.Data().Base
	var out Stats
	for i := HP; i < NumStats; i++ {
		b, iv, ev := base[i], spread.IVs[i], spread.EVs[i]
		if gen <= Gen2 && i == SpD {
			// one Special stat
			b, iv, ev = base[SpA], spread.IVs[SpA], spread.EVs[SpA]
		}
		out[i] = statValue(gen, i, b, level, nature, iv, ev)
	}
	return out
}

func statValue(gen Generation, s StatName, base, level int, nature Nature, iv, ev int) int {
	if gen <= Gen2 {
		dv := iv / 2
		statExp := min(ev*260, 65535)
		bonus := int(math.Ceil(math.Sqrt(float64(statExp)))) / 4
		v := ((base+dv)*2 + bonus) * level / 100
		if s == HP {
			return v + level + 10
		}
		return v + 5
	}
	v := (2*base + iv + ev/4) * level / 100
	if s == HP {
		return v + level + 10
	}
	return (v + 5) * nature.Modifier(s) / 100
}
