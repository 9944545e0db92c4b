package game

import "strings"

// MoveName identifies a move. Pass and Recharge are pseudo-moves: Pass is
// what a side selects when it has nothing to do, Recharge is the forced turn
// after a recharge move hits.
type MoveName uint8

const (
	MoveNone MoveName = iota
	Pass
	Struggle
	Recharge

	Tackle
	Return
	BodySlam
	DoubleEdge
	HyperBeam
	GigaImpact
	QuickAttack
	ExtremeSpeed
	Explosion
	SelfDestruct
	Thrash
	Uproar
	RapidSpin
	Wrap
	Bide
	SpitUp
	Swallow
	Stockpile
	SwordsDance
	Growl
	Protect
	Substitute
	Recover
	Wish
	Yawn
	PerishSong
	Encore
	Disable
	FocusEnergy
	BatonPass
	MeanLook
	Splash

	Flamethrower
	FireBlast
	FlareBlitz
	FirePunch
	FireSpin
	WillOWisp
	SunnyDay

	Surf
	HydroPump
	Waterfall
	AquaJet
	Scald
	RainDance
	AquaRing

	Thunderbolt
	Thunder
	ThunderPunch
	ThunderWave
	VoltSwitch
	MagnetRise

	EnergyBall
	GigaDrain
	LeafBlade
	SolarBeam
	PetalDance
	Spore
	SleepPowder
	LeechSeed
	Ingrain

	IceBeam
	Blizzard
	IcePunch
	IceShard
	Hail
	Haze

	CloseCombat
	BrickBreak
	MachPunch
	DrainPunch
	FocusBlast
	Counter
	SeismicToss
	BulkUp
	Detect

	SludgeBomb
	PoisonJab
	Toxic
	ToxicSpikes

	Earthquake
	Dig
	EarthPower
	Spikes

	Fly
	BraveBird
	AirSlash
	Roost

	PsychicMove
	FutureSight
	MirrorCoat
	CalmMind
	Agility
	Amnesia
	Reflect
	LightScreen
	Rest
	TrickRoom
	Gravity
	MagicRoom
	Hypnosis
	HealBlock

	XScissor
	UTurn
	BugBuzz
	PinMissile

	RockSlide
	StoneEdge
	RockBlast
	StealthRock
	Sandstorm

	ShadowBall
	ShadowSneak
	NightShade
	ConfuseRay
	Curse

	DragonClaw
	DracoMeteor
	DragonPulse
	Outrage
	DragonDance

	Crunch
	SuckerPunch
	Payback
	NastyPlot
	Taunt
	Torment
	Embargo

	IronHead
	FlashCannon
	BulletPunch
	DoomDesire
	IronDefense

	Moonblast
	PlayRough

	numMoves
)

// NumMoves is the radix used when packing a move into a key.
const NumMoves = int(numMoves)

type Category uint8

const (
	CategoryPhysical Category = iota
	CategorySpecial
	CategoryStatus
)

func (c Category) String() string {
	switch c {
	case CategoryPhysical:
		return "physical"
	case CategorySpecial:
		return "special"
	}
	return "status"
}

type MoveFlag uint16

const (
	FlagContact MoveFlag = 1 << iota
	FlagHighCrit
	FlagSound
	FlagHealing
	// FlagAirborne moves cannot be selected under gravity.
	FlagAirborne
	// FlagSelf moves affect only the user.
	FlagSelf
	// FlagField moves affect a side or the whole field rather than the target.
	FlagField
)

type MoveData struct {
	Name       string
	Type       Type
	Category   Category
	Power      int
	Accuracy   int // percent, 0 never misses
	PP         int
	Priority   int
	Flags      MoveFlag
	Introduced Generation
}

const (
	cPhys = CategoryPhysical
	cSpec = CategorySpecial
	cStat = CategoryStatus
)

var moveTable = [numMoves]MoveData{
	MoveNone: {Name: "none", Category: cStat},
	Pass:     {Name: "pass", Category: cStat, Flags: FlagSelf, Introduced: Gen1},
	Struggle: {Name: "struggle", Category: cPhys, Power: 50, PP: 1, Flags: FlagContact, Introduced: Gen1},
	Recharge: {Name: "recharge", Category: cStat, Flags: FlagSelf, Introduced: Gen1},

	Tackle:       {"tackle", Normal, cPhys, 40, 100, 35, 0, FlagContact, Gen1},
	Return:       {"return", Normal, cPhys, 102, 100, 20, 0, FlagContact, Gen2},
	BodySlam:     {"body slam", Normal, cPhys, 85, 100, 15, 0, FlagContact, Gen1},
	DoubleEdge:   {"double-edge", Normal, cPhys, 120, 100, 15, 0, FlagContact, Gen1},
	HyperBeam:    {"hyper beam", Normal, cSpec, 150, 90, 5, 0, 0, Gen1},
	GigaImpact:   {"giga impact", Normal, cPhys, 150, 90, 5, 0, FlagContact, Gen4},
	QuickAttack:  {"quick attack", Normal, cPhys, 40, 100, 30, 1, FlagContact, Gen1},
	ExtremeSpeed: {"extreme speed", Normal, cPhys, 80, 100, 5, 2, FlagContact, Gen2},
	Explosion:    {"explosion", Normal, cPhys, 250, 100, 5, 0, 0, Gen1},
	SelfDestruct: {"self-destruct", Normal, cPhys, 200, 100, 5, 0, 0, Gen1},
	Thrash:       {"thrash", Normal, cPhys, 120, 100, 10, 0, FlagContact, Gen1},
	Uproar:       {"uproar", Normal, cSpec, 90, 100, 10, 0, FlagSound, Gen3},
	RapidSpin:    {"rapid spin", Normal, cPhys, 50, 100, 40, 0, FlagContact, Gen2},
	Wrap:         {"wrap", Normal, cPhys, 15, 90, 20, 0, FlagContact, Gen1},
	Bide:         {"bide", Normal, cPhys, 0, 0, 10, 1, FlagContact | FlagSelf, Gen1},
	SpitUp:       {"spit up", Normal, cSpec, 0, 100, 10, 0, 0, Gen3},
	Swallow:      {"swallow", Normal, cStat, 0, 0, 10, 0, FlagSelf | FlagHealing, Gen3},
	Stockpile:    {"stockpile", Normal, cStat, 0, 0, 20, 0, FlagSelf, Gen3},
	SwordsDance:  {"swords dance", Normal, cStat, 0, 0, 20, 0, FlagSelf, Gen1},
	Growl:        {"growl", Normal, cStat, 0, 100, 40, 0, FlagSound, Gen1},
	Protect:      {"protect", Normal, cStat, 0, 0, 10, 4, FlagSelf, Gen2},
	Substitute:   {"substitute", Normal, cStat, 0, 0, 10, 0, FlagSelf, Gen1},
	Recover:      {"recover", Normal, cStat, 0, 0, 10, 0, FlagSelf | FlagHealing, Gen1},
	Wish:         {"wish", Normal, cStat, 0, 0, 10, 0, FlagSelf | FlagHealing, Gen3},
	Yawn:         {"yawn", Normal, cStat, 0, 0, 10, 0, 0, Gen3},
	PerishSong:   {"perish song", Normal, cStat, 0, 0, 5, 0, FlagSound | FlagField, Gen2},
	Encore:       {"encore", Normal, cStat, 0, 100, 5, 0, 0, Gen2},
	Disable:      {"disable", Normal, cStat, 0, 100, 20, 0, 0, Gen1},
	FocusEnergy:  {"focus energy", Normal, cStat, 0, 0, 30, 0, FlagSelf, Gen1},
	BatonPass:    {"baton pass", Normal, cStat, 0, 0, 40, 0, FlagSelf, Gen2},
	MeanLook:     {"mean look", Normal, cStat, 0, 0, 5, 0, 0, Gen2},
	Splash:       {"splash", Normal, cStat, 0, 0, 40, 0, FlagSelf | FlagAirborne, Gen1},

	Flamethrower: {"flamethrower", Fire, cSpec, 90, 100, 15, 0, 0, Gen1},
	FireBlast:    {"fire blast", Fire, cSpec, 110, 85, 5, 0, 0, Gen1},
	FlareBlitz:   {"flare blitz", Fire, cPhys, 120, 100, 15, 0, FlagContact, Gen4},
	FirePunch:    {"fire punch", Fire, cPhys, 75, 100, 15, 0, FlagContact, Gen1},
	FireSpin:     {"fire spin", Fire, cSpec, 35, 85, 15, 0, 0, Gen1},
	WillOWisp:    {"will-o-wisp", Fire, cStat, 0, 85, 15, 0, 0, Gen3},
	SunnyDay:     {"sunny day", Fire, cStat, 0, 0, 5, 0, FlagField, Gen2},

	Surf:      {"surf", Water, cSpec, 90, 100, 15, 0, 0, Gen1},
	HydroPump: {"hydro pump", Water, cSpec, 110, 80, 5, 0, 0, Gen1},
	Waterfall: {"waterfall", Water, cPhys, 80, 100, 15, 0, FlagContact, Gen1},
	AquaJet:   {"aqua jet", Water, cPhys, 40, 100, 20, 1, FlagContact, Gen4},
	Scald:     {"scald", Water, cSpec, 80, 100, 15, 0, 0, Gen5},
	RainDance: {"rain dance", Water, cStat, 0, 0, 5, 0, FlagField, Gen2},
	AquaRing:  {"aqua ring", Water, cStat, 0, 0, 20, 0, FlagSelf, Gen4},

	Thunderbolt:  {"thunderbolt", Electric, cSpec, 90, 100, 15, 0, 0, Gen1},
	Thunder:      {"thunder", Electric, cSpec, 110, 70, 10, 0, 0, Gen1},
	ThunderPunch: {"thunder punch", Electric, cPhys, 75, 100, 15, 0, FlagContact, Gen1},
	ThunderWave:  {"thunder wave", Electric, cStat, 0, 90, 20, 0, 0, Gen1},
	VoltSwitch:   {"volt switch", Electric, cSpec, 70, 100, 20, 0, 0, Gen5},
	MagnetRise:   {"magnet rise", Electric, cStat, 0, 0, 10, 0, FlagSelf | FlagAirborne, Gen4},

	EnergyBall:  {"energy ball", Grass, cSpec, 90, 100, 10, 0, 0, Gen4},
	GigaDrain:   {"giga drain", Grass, cSpec, 75, 100, 10, 0, 0, Gen2},
	LeafBlade:   {"leaf blade", Grass, cPhys, 90, 100, 15, 0, FlagContact | FlagHighCrit, Gen3},
	SolarBeam:   {"solar beam", Grass, cSpec, 120, 100, 10, 0, 0, Gen1},
	PetalDance:  {"petal dance", Grass, cSpec, 120, 100, 10, 0, FlagContact, Gen1},
	Spore:       {"spore", Grass, cStat, 0, 100, 15, 0, 0, Gen1},
	SleepPowder: {"sleep powder", Grass, cStat, 0, 75, 15, 0, 0, Gen1},
	LeechSeed:   {"leech seed", Grass, cStat, 0, 90, 10, 0, 0, Gen1},
	Ingrain:     {"ingrain", Grass, cStat, 0, 0, 20, 0, FlagSelf, Gen3},

	IceBeam:  {"ice beam", Ice, cSpec, 90, 100, 10, 0, 0, Gen1},
	Blizzard: {"blizzard", Ice, cSpec, 110, 70, 5, 0, 0, Gen1},
	IcePunch: {"ice punch", Ice, cPhys, 75, 100, 15, 0, FlagContact, Gen1},
	IceShard: {"ice shard", Ice, cPhys, 40, 100, 30, 1, 0, Gen4},
	Hail:     {"hail", Ice, cStat, 0, 0, 10, 0, FlagField, Gen3},
	Haze:     {"haze", Ice, cStat, 0, 0, 30, 0, FlagField, Gen1},

	CloseCombat: {"close combat", Fighting, cPhys, 120, 100, 5, 0, FlagContact, Gen4},
	BrickBreak:  {"brick break", Fighting, cPhys, 75, 100, 15, 0, FlagContact, Gen3},
	MachPunch:   {"mach punch", Fighting, cPhys, 40, 100, 30, 1, FlagContact, Gen2},
	DrainPunch:  {"drain punch", Fighting, cPhys, 75, 100, 10, 0, FlagContact, Gen4},
	FocusBlast:  {"focus blast", Fighting, cSpec, 120, 70, 5, 0, 0, Gen4},
	Counter:     {"counter", Fighting, cPhys, 0, 100, 20, -5, FlagContact, Gen1},
	SeismicToss: {"seismic toss", Fighting, cPhys, 0, 100, 20, 0, FlagContact, Gen1},
	BulkUp:      {"bulk up", Fighting, cStat, 0, 0, 20, 0, FlagSelf, Gen3},
	Detect:      {"detect", Fighting, cStat, 0, 0, 5, 4, FlagSelf, Gen2},

	SludgeBomb:  {"sludge bomb", Poison, cSpec, 90, 100, 10, 0, 0, Gen2},
	PoisonJab:   {"poison jab", Poison, cPhys, 80, 100, 20, 0, FlagContact, Gen4},
	Toxic:       {"toxic", Poison, cStat, 0, 90, 10, 0, 0, Gen1},
	ToxicSpikes: {"toxic spikes", Poison, cStat, 0, 0, 20, 0, FlagField, Gen4},

	Earthquake: {"earthquake", Ground, cPhys, 100, 100, 10, 0, 0, Gen1},
	Dig:        {"dig", Ground, cPhys, 80, 100, 10, 0, FlagContact, Gen1},
	EarthPower: {"earth power", Ground, cSpec, 90, 100, 10, 0, 0, Gen4},
	Spikes:     {"spikes", Ground, cStat, 0, 0, 20, 0, FlagField, Gen2},

	Fly:       {"fly", Flying, cPhys, 90, 95, 15, 0, FlagContact | FlagAirborne, Gen1},
	BraveBird: {"brave bird", Flying, cPhys, 120, 100, 15, 0, FlagContact, Gen4},
	AirSlash:  {"air slash", Flying, cSpec, 75, 95, 15, 0, 0, Gen4},
	Roost:     {"roost", Flying, cStat, 0, 0, 10, 0, FlagSelf | FlagHealing, Gen4},

	PsychicMove: {"psychic", Psychic, cSpec, 90, 100, 10, 0, 0, Gen1},
	FutureSight: {"future sight", Psychic, cSpec, 120, 100, 10, 0, FlagField, Gen2},
	MirrorCoat:  {"mirror coat", Psychic, cSpec, 0, 100, 20, -5, 0, Gen2},
	CalmMind:    {"calm mind", Psychic, cStat, 0, 0, 20, 0, FlagSelf, Gen3},
	Agility:     {"agility", Psychic, cStat, 0, 0, 30, 0, FlagSelf, Gen1},
	Amnesia:     {"amnesia", Psychic, cStat, 0, 0, 20, 0, FlagSelf, Gen1},
	Reflect:     {"reflect", Psychic, cStat, 0, 0, 20, 0, FlagSelf, Gen1},
	LightScreen: {"light screen", Psychic, cStat, 0, 0, 30, 0, FlagSelf, Gen1},
	Rest:        {"rest", Psychic, cStat, 0, 0, 10, 0, FlagSelf | FlagHealing, Gen1},
	TrickRoom:   {"trick room", Psychic, cStat, 0, 0, 5, -7, FlagField, Gen4},
	Gravity:     {"gravity", Psychic, cStat, 0, 0, 5, 0, FlagField, Gen4},
	MagicRoom:   {"magic room", Psychic, cStat, 0, 0, 10, 0, FlagField, Gen5},
	Hypnosis:    {"hypnosis", Psychic, cStat, 0, 60, 20, 0, 0, Gen1},
	HealBlock:   {"heal block", Psychic, cStat, 0, 100, 15, 0, 0, Gen4},

	XScissor:   {"x-scissor", Bug, cPhys, 80, 100, 15, 0, FlagContact, Gen4},
	UTurn:      {"u-turn", Bug, cPhys, 70, 100, 20, 0, FlagContact, Gen4},
	BugBuzz:    {"bug buzz", Bug, cSpec, 90, 100, 10, 0, FlagSound, Gen4},
	PinMissile: {"pin missile", Bug, cPhys, 25, 95, 20, 0, 0, Gen1},

	RockSlide:   {"rock slide", Rock, cPhys, 75, 90, 10, 0, 0, Gen1},
	StoneEdge:   {"stone edge", Rock, cPhys, 100, 80, 5, 0, FlagHighCrit, Gen4},
	RockBlast:   {"rock blast", Rock, cPhys, 25, 90, 10, 0, 0, Gen3},
	StealthRock: {"stealth rock", Rock, cStat, 0, 0, 20, 0, FlagField, Gen4},
	Sandstorm:   {"sandstorm", Rock, cStat, 0, 0, 10, 0, FlagField, Gen2},

	ShadowBall:  {"shadow ball", Ghost, cSpec, 80, 100, 15, 0, 0, Gen2},
	ShadowSneak: {"shadow sneak", Ghost, cPhys, 40, 100, 30, 1, FlagContact, Gen4},
	NightShade:  {"night shade", Ghost, cSpec, 0, 100, 15, 0, 0, Gen1},
	ConfuseRay:  {"confuse ray", Ghost, cStat, 0, 100, 10, 0, 0, Gen1},
	Curse:       {"curse", Ghost, cStat, 0, 0, 10, 0, 0, Gen2},

	DragonClaw:  {"dragon claw", Dragon, cPhys, 80, 100, 15, 0, FlagContact, Gen3},
	DracoMeteor: {"draco meteor", Dragon, cSpec, 130, 90, 5, 0, 0, Gen4},
	DragonPulse: {"dragon pulse", Dragon, cSpec, 85, 100, 10, 0, 0, Gen4},
	Outrage:     {"outrage", Dragon, cPhys, 120, 100, 10, 0, FlagContact, Gen2},
	DragonDance: {"dragon dance", Dragon, cStat, 0, 0, 20, 0, FlagSelf, Gen3},

	Crunch:      {"crunch", Dark, cPhys, 80, 100, 15, 0, FlagContact, Gen2},
	SuckerPunch: {"sucker punch", Dark, cPhys, 70, 100, 5, 1, FlagContact, Gen4},
	Payback:     {"payback", Dark, cPhys, 50, 100, 10, 0, FlagContact, Gen4},
	NastyPlot:   {"nasty plot", Dark, cStat, 0, 0, 20, 0, FlagSelf, Gen4},
	Taunt:       {"taunt", Dark, cStat, 0, 100, 20, 0, 0, Gen3},
	Torment:     {"torment", Dark, cStat, 0, 100, 15, 0, 0, Gen3},
	Embargo:     {"embargo", Dark, cStat, 0, 100, 15, 0, 0, Gen4},

	IronHead:    {"iron head", Steel, cPhys, 80, 100, 15, 0, FlagContact, Gen4},
	FlashCannon: {"flash cannon", Steel, cSpec, 80, 100, 10, 0, 0, Gen4},
	BulletPunch: {"bullet punch", Steel, cPhys, 40, 100, 30, 1, FlagContact, Gen4},
	DoomDesire:  {"doom desire", Steel, cSpec, 140, 100, 5, 0, FlagField, Gen3},
	IronDefense: {"iron defense", Steel, cStat, 0, 0, 15, 0, FlagSelf, Gen3},

	Moonblast: {"moonblast", Fairy, cSpec, 95, 100, 15, 0, 0, Gen6},
	PlayRough: {"play rough", Fairy, cPhys, 90, 90, 10, 0, FlagContact, Gen6},
}

var movesByName = func() map[string]MoveName {
	m := make(map[string]MoveName, numMoves)
	for i := MoveName(0); i < numMoves; i++ {
		m[normalizeName(moveTable[i].Name)] = i
	}
	return m
}()

// normalizeName folds the different spellings protocol layers use
// ("Double-Edge", "doubleedge", "double edge") into one lookup key.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MoveByName looks up a move by its display name.
func MoveByName(name string) (MoveName, bool) {
	m, ok := movesByName[normalizeName(name)]
	return m, ok
}

func (m MoveName) Data() MoveData {
	if m >= numMoves {
		return moveTable[MoveNone]
	}
	return moveTable[m]
}

func (m MoveName) String() string { return m.Data().Name }

func (m MoveName) Type() Type { return m.Data().Type }

func (m MoveName) Priority() int { return m.Data().Priority }

func (m MoveName) Has(f MoveFlag) bool { return m.Data().Flags&f != 0 }

// MaxPP is the PP of the move with all PP Ups applied.
func (m MoveName) MaxPP() int { return m.Data().PP * 8 / 5 }

// AvailableIn reports whether the move exists in the generation.
func (m MoveName) AvailableIn(gen Generation) bool {
	d := m.Data()
	return d.Introduced != 0 && d.Introduced <= gen
}

// Category returns the damage category. Before Gen4 it is decided by type.
func (m MoveName) Category(gen Generation) Category {
	d := m.Data()
	if d.Category == CategoryStatus || gen.HasSplitCategories() {
		return d.Category
	}
	switch d.Type {
	case Fire, Water, Grass, Electric, Psychic, Ice, Dragon, Dark:
		return CategorySpecial
	}
	return CategoryPhysical
}

func (m MoveName) IsDamaging() bool {
	return m.Data().Category != CategoryStatus
}

// TargetsFoe reports whether the move acts on the opposing Pokemon, which
// makes it subject to Protect, Substitute and semi-invulnerability.
func (m MoveName) TargetsFoe() bool {
	return m > Recharge && !m.Has(FlagSelf|FlagField)
}

func (m MoveName) IsRegular() bool { return m > Recharge && m < numMoves }

func (m MoveName) IsRampage() bool { return m == Thrash || m == Outrage || m == PetalDance }

func (m MoveName) IsCharge() bool { return m == SolarBeam }

func (m MoveName) IsVanishing() bool { return m == Fly || m == Dig }

func (m MoveName) IsRecharge() bool { return m == HyperBeam || m == GigaImpact }

func (m MoveName) IsSelfSwitch() bool { return m == UTurn || m == VoltSwitch || m == BatonPass }

func (m MoveName) IsPartialTrap() bool { return m == Wrap || m == FireSpin }

func (m MoveName) IsMultiHit() bool { return m == PinMissile || m == RockBlast }

func (m MoveName) IsFutureAttack() bool { return m == FutureSight || m == DoomDesire }

func (m MoveName) IsProtect() bool { return m == Protect || m == Detect }

// IsFixedDamage reports whether the move ignores the damage formula.
func (m MoveName) IsFixedDamage() bool {
	switch m {
	case SeismicToss, NightShade, Counter, MirrorCoat, Bide:
		return true
	}
	return false
}

func (m MoveName) IsExplosion() bool { return m == Explosion || m == SelfDestruct }

// Recoil returns the fraction of damage dealt that the user takes back.
func (m MoveName) Recoil() (num, den int) {
	switch m {
	case DoubleEdge, FlareBlitz, BraveBird:
		return 1, 3
	case Struggle:
		return 1, 4
	}
	return 0, 1
}

// Drain returns the fraction of damage dealt that the user recovers.
func (m MoveName) Drain() (num, den int) {
	switch m {
	case GigaDrain, DrainPunch:
		return 1, 2
	}
	return 0, 1
}
