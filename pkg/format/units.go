package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Celsius converts a Fahrenheit reading, rounding half away from zero
func Celsius(f float64) int {
	return int(math.Round((f - 32) * 5 / 9))
}

// Temperature rounds a Fahrenheit reading, converting to Celsius on request
func Temperature(f float64, celsius bool) int {
	if celsius {
		return Celsius(f)
	}
	return int(math.Round(f))
}

// TemperatureUnit returns the scale letter
func TemperatureUnit(celsius bool) string {
	if celsius {
		return "C"
	}
	return "F"
}

// Precipitation renders an amount: empty below 0.01, one decimal from 0.1,
// otherwise two decimals without the leading zero (".05in").
func Precipitation(amount float64, metric bool) string {
	if amount < 0.01 {
		return ""
	}
	unit := "in"
	if metric {
		unit = "cm"
	}
	if amount >= 0.1 {
		return fmt.Sprintf("%.1f%s", amount, unit)
	}
	return strings.TrimLeft(fmt.Sprintf("%.2f%s", amount, unit), "0")
}

// OrdinalDay renders a day of month with its English suffix
func OrdinalDay(day int) string {
	suffix := "th"
	if day%100 < 10 || day%100 > 20 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// LongDate renders t as "Mon, Jan 2nd, 2006"
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %s %s, %d", t.Format("Mon"), t.Format("Jan"), OrdinalDay(t.Day()), t.Year())
}
