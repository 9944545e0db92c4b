package game

// Type is an elemental type. Typeless is used for Struggle, confusion
// self-hits and fixed-damage attacks.
type Type uint8

const (
	Typeless Type = iota
	Normal
	Fire
	Water
	Electric
	Grass
	Ice
	Fighting
	Poison
	Ground
	Flying
	Psychic
	Bug
	Rock
	Ghost
	Dragon
	Dark
	Steel
	Fairy
	numTypes
)

var typeNames = [numTypes]string{
	"typeless", "normal", "fire", "water", "electric", "grass", "ice", "fighting", "poison",
	"ground", "flying", "psychic", "bug", "rock", "ghost", "dragon", "dark", "steel", "fairy",
}

func (t Type) String() string {
	if t >= numTypes {
		return "unknown"
	}
	return typeNames[t]
}

// Types is a Pokemon's type pair. A single-typed Pokemon has Second == Typeless.
type Types struct {
	First  Type
	Second Type
}

func (ts Types) Has(t Type) bool {
	return t != Typeless && (ts.First == t || ts.Second == t)
}

type matchup struct {
	super  []Type
	weak   []Type
	immune []Type
}

// Modern (Gen6+) chart, adjusted per generation in Effectiveness.
var chart = [numTypes]matchup{
	Normal:   {weak: []Type{Rock, Steel}, immune: []Type{Ghost}},
	Fire:     {super: []Type{Grass, Ice, Bug, Steel}, weak: []Type{Fire, Water, Rock, Dragon}},
	Water:    {super: []Type{Fire, Ground, Rock}, weak: []Type{Water, Grass, Dragon}},
	Electric: {super: []Type{Water, Flying}, weak: []Type{Electric, Grass, Dragon}, immune: []Type{Ground}},
	Grass:    {super: []Type{Water, Ground, Rock}, weak: []Type{Fire, Grass, Poison, Flying, Bug, Dragon, Steel}},
	Ice:      {super: []Type{Grass, Ground, Flying, Dragon}, weak: []Type{Fire, Water, Ice, Steel}},
	Fighting: {super: []Type{Normal, Ice, Rock, Dark, Steel}, weak: []Type{Poison, Flying, Psychic, Bug, Fairy}, immune: []Type{Ghost}},
	Poison:   {super: []Type{Grass, Fairy}, weak: []Type{Poison, Ground, Rock, Ghost}, immune: []Type{Steel}},
	Ground:   {super: []Type{Fire, Electric, Poison, Rock, Steel}, weak: []Type{Grass, Bug}, immune: []Type{Flying}},
	Flying:   {super: []Type{Grass, Fighting, Bug}, weak: []Type{Electric, Rock, Steel}},
	Psychic:  {super: []Type{Fighting, Poison}, weak: []Type{Psychic, Steel}, immune: []Type{Dark}},
	Bug:      {super: []Type{Grass, Psychic, Dark}, weak: []Type{Fire, Fighting, Poison, Flying, Ghost, Steel, Fairy}},
	Rock:     {super: []Type{Fire, Ice, Flying, Bug}, weak: []Type{Fighting, Ground, Steel}},
	Ghost:    {super: []Type{Psychic, Ghost}, weak: []Type{Dark}, immune: []Type{Normal}},
	Dragon:   {super: []Type{Dragon}, weak: []Type{Steel}, immune: []Type{Fairy}},
	Dark:     {super: []Type{Psychic, Ghost}, weak: []Type{Fighting, Dark, Fairy}},
	Steel:    {super: []Type{Ice, Rock, Fairy}, weak: []Type{Fire, Water, Electric, Steel}},
	Fairy:    {super: []Type{Fighting, Dragon, Dark}, weak: []Type{Fire, Poison, Steel}},
}

func contains(ts []Type, t Type) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

// singleEffectiveness returns the multiplier in quarters (0, 2, 4, 8) of
// attack against one defending type.
func singleEffectiveness(gen Generation, attack, defend Type) int {
	if attack == Typeless || defend == Typeless {
		return 4
	}
	if defend == Fairy && !gen.HasFairy() {
		return 4
	}
	if attack == Fairy && !gen.HasFairy() {
		return 4
	}
	switch {
	case gen == Gen1 && attack == Ghost && defend == Psychic:
		return 0
	case gen == Gen1 && attack == Bug && defend == Poison:
		return 8
	case gen == Gen1 && attack == Poison && defend == Bug:
		return 8
	case gen == Gen1 && attack == Ice && defend == Fire:
		return 4
	case gen <= Gen5 && defend == Steel && (attack == Ghost || attack == Dark):
		return 2
	}
	m := chart[attack]
	switch {
	case contains(m.immune, defend):
		return 0
	case contains(m.super, defend):
		return 8
	case contains(m.weak, defend):
		return 2
	}
	return 4
}

// Effectiveness is a type multiplier stored as a fraction over 16 so that
// 0, 1/4, 1/2, 1, 2 and 4 are all exact.
type Effectiveness int

const EffectiveNeutral Effectiveness = 16

func (e Effectiveness) Immune() bool    { return e == 0 }
func (e Effectiveness) Super() bool     { return e > EffectiveNeutral }
func (e Effectiveness) NotVery() bool   { return e > 0 && e < EffectiveNeutral }
func (e Effectiveness) Float() float64  { return float64(e) / 16 }
func (e Effectiveness) Apply(x int) int { return x * int(e) / 16 }

// TypeEffectiveness returns the multiplier of an attack of type attack
// against a Pokemon with the given types.
func TypeEffectiveness(gen Generation, attack Type, defend Types) Effectiveness {
	e := singleEffectiveness(gen, attack, defend.First)
	if defend.Second != Typeless && defend.Second != defend.First {
		e *= singleEffectiveness(gen, attack, defend.Second)
	} else {
		e *= 4
	}
	return Effectiveness(e)
}
