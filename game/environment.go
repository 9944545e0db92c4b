package game

type Weather uint8

const (
	WeatherClear Weather = iota
	WeatherHail
	WeatherSand
	WeatherSun
	WeatherRain
	numWeathers
)

const NumWeathers = int(numWeathers)

var weatherNames = [numWeathers]string{"clear", "hail", "sand", "sun", "rain"}

func (w Weather) String() string {
	if w >= numWeathers {
		return "unknown"
	}
	return weatherNames[w]
}

// PermanentWeather is the WeatherTurns value of weather that never expires.
const PermanentWeather = -1

// Environment is the field-wide state. A counter of 0 means inactive.
type Environment struct {
	Weather      Weather
	WeatherTurns int8
	TrickRoom    uint8
	Gravity      uint8
	MagicRoom    uint8
}

// SetWeather starts weather for turns (PermanentWeather for no limit). It
// fails if the same weather is already active.
func (e *Environment) SetWeather(w Weather, turns int8) bool {
	if e.Weather == w && w != WeatherClear {
		return false
	}
	e.Weather = w
	e.WeatherTurns = turns
	if w == WeatherClear {
		e.WeatherTurns = 0
	}
	return true
}

// EffectiveWeather is the weather seen by rules, which Cloud Nine and Air
// Lock suppress.
func (e Environment) EffectiveWeather(suppressed bool) Weather {
	if suppressed {
		return WeatherClear
	}
	return e.Weather
}

// AdvanceOneTurn decrements every active counter once.
func (e *Environment) AdvanceOneTurn() {
	if e.WeatherTurns > 0 {
		e.WeatherTurns--
		if e.WeatherTurns == 0 {
			e.Weather = WeatherClear
		}
	}
	if e.TrickRoom > 0 {
		e.TrickRoom--
	}
	if e.Gravity > 0 {
		e.Gravity--
	}
	if e.MagicRoom > 0 {
		e.MagicRoom--
	}
}
