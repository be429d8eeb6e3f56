package model

import "fmt"

// weatherIcon maps a Dark Sky icon name to an emoji glyph. Unknown names map
// to the empty string instead of erroring.
func weatherIcon(icon string) string {
	switch icon {
	case "clear-day":
		return "☀️"
	case "clear-night":
		return "🌙"
	case "rain":
		return "🌧"
	case "snow":
		return "🌨"
	case "sleet":
		return "🌨"
	case "wind":
		return "💨"
	case "fog":
		return "🌫"
	case "cloudy":
		return "☁️"
	case "partly-cloudy-day":
		return "⛅️"
	case "partly-cloudy-night":
		return "🌙"
	case "hail":
		return "🌧"
	case "thunderstorm":
		return "⛈"
	case "tornado":
		return "🌪"
	default:
		return ""
	}
}

// UnitLabel resolves the temperature unit label from the response's units
// convention: "F" for "us", "C" for every other value including
// unrecognized ones.
func (f *ForecastResult) UnitLabel() string {
	switch f.Flags.Units {
	case "us":
		return "F"
	default:
		return "C"
	}
}

// CurrentSummary renders the current conditions as a one-line string such as
// "61.2°F 🌫 Foggy". It never fails: an unrecognized icon leaves its slot
// empty and an unrecognized units value falls back to Celsius.
//
// The temperature is formatted with %.1f, which rounds to the nearest tenth
// of the stored float64; ties are decided by the underlying binary value
// (72.35 is stored slightly below 72.35 and prints "72.3").
func (f *ForecastResult) CurrentSummary() string {
	return fmt.Sprintf("%.1f°%s %s %s",
		f.Currently.Temperature,
		f.UnitLabel(),
		weatherIcon(f.Currently.Icon),
		f.Currently.Summary)
}

// String makes the forecast printable directly; it is CurrentSummary.
func (f *ForecastResult) String() string {
	return f.CurrentSummary()
}
