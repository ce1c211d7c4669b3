package weather

// Condition describes one WMO weather code
type Condition struct {
	Description string
	Day         string
	Night       string
}

// glyphs from the Nerd Fonts material set
const (
	sunny        = "\U000f0599"
	night        = "\U000f0594"
	partlyCloudy = "\U000f0595"
	nightCloudy  = "\U000f0f31"
	cloudy       = "\U000f0590"
	fog          = "\U000f0591"
	partlyRainy  = "\U000f0f33"
	rainy        = "\U000f0597"
	pouring      = "\U000f0596"
	snowy        = "\U000f0598"
	snowyHeavy   = "\U000f0f36"
	lightning    = "\U000f0593"
	stormRain    = "\U000f067e"
	hail         = "\U000f0592"
	alert        = "\U000f0f2f"
)

var conditions = map[int]Condition{
	0:  {"clear", sunny, night},
	1:  {"mainly_clear", sunny, nightCloudy},
	2:  {"partly_cloudy", partlyCloudy, nightCloudy},
	3:  {"overcast", cloudy, cloudy},
	45: {"fog", fog, fog},
	48: {"rime_fog", fog, fog},
	51: {"drizzle_light", partlyRainy, rainy},
	53: {"drizzle_moderate", partlyRainy, rainy},
	55: {"drizzle_dense", rainy, rainy},
	61: {"rain_slight", rainy, rainy},
	63: {"rain_moderate", rainy, rainy},
	65: {"rain_heavy", pouring, pouring},
	71: {"snow_slight", snowy, snowy},
	73: {"snow_moderate", snowy, snowy},
	75: {"snow_heavy", snowyHeavy, snowyHeavy},
	80: {"rain_showers_slight", pouring, pouring},
	81: {"rain_showers_moderate", pouring, pouring},
	82: {"rain_showers_violent", pouring, pouring},
	85: {"snow_showers_slight", snowy, snowy},
	86: {"snow_showers_heavy", snowyHeavy, snowyHeavy},
	95: {"thunderstorm", lightning, lightning},
	96: {"thunderstorm_hail_slight", stormRain, stormRain},
	99: {"thunderstorm_hail_heavy", hail, hail},
}

var unknownCondition = Condition{"unknown", alert, alert}

// Lookup returns the condition for code, or the unknown condition
func Lookup(code int) Condition {
	if c, ok := conditions[code]; ok {
		return c
	}
	return unknownCondition
}

// Icon returns the day or night glyph for code
func Icon(code int, day bool) string {
	c := Lookup(code)
	if day {
		return c.Day
	}
	return c.Night
}

// Group maps a code to the coarse class used for styling
func Group(code int) string {
	switch {
	case code == 0 || code == 1:
		return "clear"
	case code == 2 || code == 3:
		return "cloudy"
	case code >= 40 && code <= 49:
		return "fog"
	case (code >= 51 && code <= 55) || (code >= 61 && code <= 65) || (code >= 80 && code <= 82):
		return "rain"
	case (code >= 71 && code <= 75) || code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunder"
	case code >= 23 && code <= 27:
		return "mixed"
	default:
		return "unknown"
	}
}
