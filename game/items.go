package game

// Item is a held item. Generation 1 has no held items.
type Item uint8

const (
	NoItem Item = iota
	Leftovers
	BlackSludge
	FlameOrb
	ToxicOrb
	StickyBarb
	ChoiceBand
	ChoiceSpecs
	ChoiceScarf
	LifeOrb
	ExpertBelt
	ShedShell
	BigRoot
	SitrusBerry
	LumBerry
	ScopeLens
	FocusSash
	LightClay
	HeatRock
	DampRock
	SmoothRock
	IcyRock
	RockyHelmet
	OccaBerry
	PasshoBerry
	WacanBerry
	RindoBerry
	YacheBerry
	ChopleBerry
	KebiaBerry
	ShucaBerry
	CobaBerry
	PayapaBerry
	TangaBerry
	ChartiBerry
	KasibBerry
	HabanBerry
	ColburBerry
	BabiriBerry
	ChilanBerry
	RoseliBerry
	numItems
)

var itemNames = [numItems]string{
	"none", "leftovers", "black sludge", "flame orb", "toxic orb", "sticky barb", "choice band",
	"choice specs", "choice scarf", "life orb", "expert belt", "shed shell", "big root",
	"sitrus berry", "lum berry", "scope lens", "focus sash", "light clay", "heat rock",
	"damp rock", "smooth rock", "icy rock", "rocky helmet", "occa berry", "passho berry",
	"wacan berry", "rindo berry", "yache berry", "chople berry", "kebia berry", "shuca berry",
	"coba berry", "payapa berry", "tanga berry", "charti berry", "kasib berry", "haban berry",
	"colbur berry", "babiri berry", "chilan berry", "roseli berry",
}

func (i Item) String() string {
	if i >= numItems {
		return "unknown"
	}
	return itemNames[i]
}

const NumItems = int(numItems)

func (i Item) IsChoice() bool { return i == ChoiceBand || i == ChoiceSpecs || i == ChoiceScarf }

// AllowsSwitching reports whether the item overrides trapping effects.
func (i Item) AllowsSwitching() bool { return i == ShedShell }

// ResistedType returns the type whose super effective hit this berry halves.
// Chilan Berry halves any Normal hit.
func (i Item) ResistedType() (Type, bool) {
	if i < OccaBerry || i > RoseliBerry {
		return Typeless, false
	}
	return [...]Type{Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground, Flying,
		Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Normal, Fairy}[i-OccaBerry], true
}

// ExtendsWeather returns the weather this rock lengthens to 8 turns.
func (i Item) ExtendsWeather() (Weather, bool) {
	switch i {
	case HeatRock:
		return WeatherSun, true
	case DampRock:
		return WeatherRain, true
	case SmoothRock:
		return WeatherSand, true
	case IcyRock:
		return WeatherHail, true
	}
	return WeatherClear, false
}
