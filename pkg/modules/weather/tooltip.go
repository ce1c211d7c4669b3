package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/format"
)

const (
	rule         = "───────────────────────────────────"
	calendarIcon = "\U000f00ed"
	weekIcon     = "\U000f0a33"
	rainIcon     = "\U000f058c"
	sunIcon      = "\U000f059b"
)

func temperatures(high float64, low *float64, celsius bool) string {
	hi := format.Temperature(high, celsius)
	if low == nil {
		return fmt.Sprint(hi)
	}
	return fmt.Sprintf("%d/%d", hi, format.Temperature(*low, celsius))
}

func precipitation(prob int, amount float64, celsius bool) string {
	icon, pct := "", ""
	if prob > 0 || amount > 0 {
		icon = rainIcon
	}
	if prob > 0 {
		pct = fmt.Sprintf("%d%%", prob)
	}
	if celsius {
		amount *= 2.54
	}
	return fmt.Sprintf("%3s%5s %6s", icon, pct, format.Precipitation(amount, celsius))
}

// HourLine renders one hourly tooltip row
func HourLine(h Hour, celsius bool) string {
	sun := ""
	if h.SunEvent {
		sun = sunIcon
	}
	return fmt.Sprintf("%-5s<span size='18pt'>%3s</span>%10s%s%s%-3s",
		h.Time.Format("15:04"),
		Icon(h.Code, h.IsDay),
		temperatures(h.Temperature, nil, celsius),
		format.TemperatureUnit(celsius),
		precipitation(h.PrecipProb, h.Precipitation, celsius),
		sun,
	)
}

// DayLine renders one daily tooltip row
func DayLine(d Day, celsius bool) string {
	low := d.Low
	return fmt.Sprintf("%-5s<span size='18pt'>%3s</span>%8s%s%s",
		d.Date.Format("01-02"),
		Icon(d.Code, true),
		temperatures(d.High, &low, celsius),
		format.TemperatureUnit(celsius),
		precipitation(d.PrecipProb, d.Precipitation, celsius),
	)
}

// Tooltip renders the date header, the hourly rows and the daily rows
func Tooltip(now time.Time, hours []Hour, days []Day, celsius bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<span size='17pt'>%s</span> <span size='14pt'>%s</span>\n", calendarIcon, format.LongDate(now))
	b.WriteString(rule + "\n")
	for i, h := range hours {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(HourLine(h, celsius))
	}
	fmt.Fprintf(&b, "\n\n<span size='17pt'>%s</span>\n", weekIcon)
	b.WriteString(rule + "\n")
	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(DayLine(d, celsius))
	}
	return b.String()
}
