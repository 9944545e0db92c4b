package game

type Gender uint8

const (
	Genderless Gender = iota
	Male
	Female
)

const MaxMoves = 4

type MoveSlot struct {
	Name  MoveName
	PP    uint8
	MaxPP uint8
}

// MaxProtectStreak bounds consecutive successful protects; the success chance
// is negligible past it.
const MaxProtectStreak = 7

// Volatile is the state a Pokemon loses when it leaves the field.
type Volatile struct {
	Stage      Stage
	Confusion  uint8
	Substitute int
	LockIn     LockIn

	LastMove       MoveName
	Moved          bool
	Flinched       bool
	SwitchedIn     bool
	ProtectStreak  uint8
	DamageTaken    int
	DamagePhysical bool

	LeechSeeded bool
	Ingrained   bool
	AquaRing    bool
	Cursed      bool
	Trapped     bool
	Torment     bool
	FocusEnergy bool
	PerishSong  bool

	Perish       uint8
	Taunt        uint8
	DisabledMove MoveName
	Disable      uint8
	Encore       uint8
	MagnetRise   uint8
	HealBlock    uint8
	Embargo      uint8
	Yawn         uint8
	PartialTrap  uint8
	Stockpile    uint8
}

type Pokemon struct {
	Species SpeciesName
	Level   uint8
	Gender  Gender
	Nature  Nature
	Ability Ability
	Item    Item
	Stats   Stats

	HP        int
	Moves     [MaxMoves]MoveSlot
	MoveCount int
	Status    Status
	// Seen is set once the opponent has observed this Pokemon.
	Seen bool

	Volatile
}

// NewPokemon builds a Pokemon at full HP with full PP.
func NewPokemon(gen Generation, species SpeciesName, level int, nature Nature, spread Spread, ability Ability, item Item, moves ...MoveName) Pokemon {
	if !gen.HasAbilities() {
		ability = NoAbility
	}
	if !gen.HasItems() {
		item = NoItem
	}
	p := Pokemon{
		Species: species,
		Level:   uint8(level),
		Nature:  nature,
		Ability: ability,
		Item:    item,
		Stats:   CalculateStats(gen, species, level, nature, spread),
	}
	p.HP = p.Stats[HP]
	for _, m := range moves {
		p.AddMove(m)
	}
	return p
}

// AddMove appends a move if there is room and it is not already known.
func (p *Pokemon) AddMove(m MoveName) bool {
	if p.MoveCount >= MaxMoves || !m.IsRegular() {
		return false
	}
	if _, ok := p.FindMove(m); ok {
		return false
	}
	pp := m.MaxPP()
	p.Moves[p.MoveCount] = MoveSlot{Name: m, PP: uint8(pp), MaxPP: uint8(pp)}
	p.MoveCount++
	return true
}

func (p *Pokemon) FindMove(m MoveName) (int, bool) {
	for i := 0; i < p.MoveCount; i++ {
		if p.Moves[i].Name == m {
			return i, true
		}
	}
	return -1, false
}

func (p *Pokemon) MaxHP() int { return p.Stats[HP] }

func (p *Pokemon) Fainted() bool { return p.HP <= 0 }

func (p *Pokemon) HPRatio() float64 {
	if p.Stats[HP] == 0 {
		return 0
	}
	return float64(p.HP) / float64(p.Stats[HP])
}

// Fraction returns max HP * num / den, at least 1.
func (p *Pokemon) Fraction(num, den int) int {
	return max(1, p.Stats[HP]*num/den)
}

// Heal restores up to amount HP without exceeding the maximum. Fainted
// Pokemon cannot be healed.
func (p *Pokemon) Heal(amount int) {
	if p.Fainted() || amount <= 0 {
		return
	}
	p.HP = min(p.HP+amount, p.Stats[HP])
}

// Damage removes up to amount HP and returns what was actually lost.
func (p *Pokemon) Damage(amount int) int {
	if amount <= 0 || p.Fainted() {
		return 0
	}
	lost := min(amount, p.HP)
	p.HP -= lost
	return lost
}

// Faint zeroes HP.
func (p *Pokemon) Faint() { p.HP = 0 }

func (p *Pokemon) Types(gen Generation) Types { return p.Species.Types(gen) }

func (p *Pokemon) HasType(gen Generation, t Type) bool { return p.Types(gen).Has(t) }

// Grounded reports whether the Pokemon is affected by Ground moves and
// grounded hazards.
func (p *Pokemon) Grounded(gen Generation, env Environment) bool {
	if env.Gravity > 0 || p.Ingrained {
		return true
	}
	if p.HasType(gen, Flying) || p.Ability == Levitate || p.MagnetRise > 0 {
		return false
	}
	return true
}

// HeldItem is the item whose effects are active, which Embargo and Magic
// Room suppress.
func (p *Pokemon) HeldItem(env Environment) Item {
	if p.Embargo > 0 || env.MagicRoom > 0 {
		return NoItem
	}
	return p.Item
}

// ResetVolatile clears everything a switch out clears.
func (p *Pokemon) ResetVolatile() {
	p.Volatile = Volatile{}
}

// BatonPassed is the part of Volatile that Baton Pass hands to the
// replacement.
func (v Volatile) BatonPassed() Volatile {
	return Volatile{
		Stage:       v.Stage,
		Confusion:   v.Confusion,
		Substitute:  v.Substitute,
		LeechSeeded: v.LeechSeeded,
		Cursed:      v.Cursed,
		Ingrained:   v.Ingrained,
		AquaRing:    v.AquaRing,
		Trapped:     v.Trapped,
		FocusEnergy: v.FocusEnergy,
		PerishSong:  v.PerishSong,
		Perish:      v.Perish,
		MagnetRise:  v.MagnetRise,
		Embargo:     v.Embargo,
		HealBlock:   v.HealBlock,
	}
}
