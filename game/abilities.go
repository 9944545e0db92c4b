package game

// Ability is a Pokemon's ability. Generations before 3 treat every Pokemon
// as having NoAbility.
type Ability uint8

const (
	NoAbility Ability = iota
	AirLock
	Adaptability
	ArenaTrap
	BattleArmor
	ClearBody
	CloudNine
	CompoundEyes
	Drizzle
	Drought
	DrySkin
	EarlyBird
	Filter
	FlameBody
	Guts
	HugePower
	Hustle
	Hydration
	IceBody
	Immunity
	InnerFocus
	Insomnia
	Intimidate
	Levitate
	Limber
	LiquidOoze
	MagicGuard
	MagnetPull
	NaturalCure
	NoGuard
	OwnTempo
	PoisonHeal
	Pressure
	RainDish
	RoughSkin
	SandStream
	SandVeil
	SereneGrace
	ShadowTag
	ShedSkin
	ShellArmor
	ShieldDust
	SkillLink
	SnowCloak
	SnowWarning
	SolarPower
	SolidRock
	SpeedBoost
	Static
	Sturdy
	SuperLuck
	SwiftSwim
	Chlorophyll
	Technician
	ThickFat
	VitalSpirit
	VoltAbsorb
	WaterAbsorb
	WaterVeil
	Blaze
	Torrent
	Overgrow
	Swarm
	IronBarbs
	numAbilities
)

var abilityNames = [numAbilities]string{
	"none", "air lock", "adaptability", "arena trap", "battle armor", "clear body", "cloud nine",
	"compound eyes", "drizzle", "drought", "dry skin", "early bird", "filter", "flame body", "guts",
	"huge power", "hustle", "hydration", "ice body", "immunity", "inner focus", "insomnia",
	"intimidate", "levitate", "limber", "liquid ooze", "magic guard", "magnet pull", "natural cure",
	"no guard", "own tempo", "poison heal", "pressure", "rain dish", "rough skin", "sand stream",
	"sand veil", "serene grace", "shadow tag", "shed skin", "shell armor", "shield dust",
	"skill link", "snow cloak", "snow warning", "solar power", "solid rock", "speed boost",
	"static", "sturdy", "super luck", "swift swim", "chlorophyll", "technician", "thick fat",
	"vital spirit", "volt absorb", "water absorb", "water veil", "blaze", "torrent", "overgrow", "swarm", "iron barbs",
}

func (a Ability) String() string {
	if a >= numAbilities {
		return "unknown"
	}
	return abilityNames[a]
}

// NumAbilities is the radix used when packing an ability into a key.
const NumAbilities = int(numAbilities)

func (a Ability) BlocksCrits() bool { return a == BattleArmor || a == ShellArmor }

// NegatesWeather reports whether this ability suppresses weather effects
// while on the field.
func (a Ability) NegatesWeather() bool { return a == AirLock || a == CloudNine }

func (a Ability) DamagesLeechers() bool { return a == LiquidOoze }

func (a Ability) BlocksIndirectDamage() bool { return a == MagicGuard }

// BlocksStatus reports whether the ability prevents the named status.
func (a Ability) BlocksStatus(s StatusName) bool {
	switch a {
	case Insomnia, VitalSpirit:
		return s == StatusSleep || s == StatusRest
	case Immunity:
		return s == StatusPoison || s == StatusToxic
	case Limber:
		return s == StatusParalysis
	case WaterVeil:
		return s == StatusBurn
	}
	return false
}

// WeatherFromAbility returns the weather an ability summons on switch-in.
func WeatherFromAbility(a Ability) (Weather, bool) {
	switch a {
	case Drizzle:
		return WeatherRain, true
	case Drought:
		return WeatherSun, true
	case SandStream:
		return WeatherSand, true
	case SnowWarning:
		return WeatherHail, true
	}
	return WeatherClear, false
}

// PinchType returns the type boosted by 1.5x when the holder is at or below
// 1/3 of its maximum HP.
func (a Ability) PinchType() (Type, bool) {
	switch a {
	case Blaze:
		return Fire, true
	case Torrent:
		return Water, true
	case Overgrow:
		return Grass, true
	case Swarm:
		return Bug, true
	}
	return Typeless, false
}

// DamagesOnContact reports whether attackers making contact lose 1/8 of
// their maximum HP.
func (a Ability) DamagesOnContact() bool { return a == RoughSkin || a == IronBarbs }
