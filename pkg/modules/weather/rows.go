package weather

import (
	"time"
)

// Day is one row of the daily series
type Day struct {
	Date          time.Time
	Code          int
	High          float64
	Low           float64
	Precipitation float64
	PrecipProb    int
	Sunrise       time.Time
	Sunset        time.Time
}

// Hour is one row of the hourly series
type Hour struct {
	Time          time.Time
	Code          int
	Temperature   float64
	Precipitation float64
	PrecipProb    int
	IsDay         bool
	// SunEvent is set when sunrise or sunset falls inside the row's span
	SunEvent bool
}

// Location returns the forecast's fixed-offset zone
func (f *Forecast) Location() *time.Location {
	name := f.Timezone
	if name == "" {
		name = "local"
	}
	return time.FixedZone(name, f.UTCOffsetSeconds)
}

// Days zips the daily columns into rows. Columns shorter than the time
// axis yield zero values.
func (f *Forecast) Days() []Day {
	loc := f.Location()
	d := f.Daily
	days := make([]Day, 0, len(d.Time))
	for i, ts := range d.Time {
		days = append(days, Day{
			Date:          time.Unix(ts, 0).In(loc),
			Code:          int(at(d.WeatherCode, i)),
			High:          at(d.TemperatureMax, i),
			Low:           at(d.TemperatureMin, i),
			Precipitation: at(d.PrecipitationSum, i),
			PrecipProb:    int(at(d.PrecipProbability, i)),
			Sunrise:       unixAt(d.Sunrise, i, loc),
			Sunset:        unixAt(d.Sunset, i, loc),
		})
	}
	return days
}

// Hours zips the hourly columns and flags daylight: an hour is day when
// it falls in [sunrise, sunset) of its own local date.
func (f *Forecast) Hours() []Hour {
	loc := f.Location()
	h := f.Hourly
	sun := make(map[string]Day)
	for _, d := range f.Days() {
		sun[d.Date.Format("2006-01-02")] = d
	}

	hours := make([]Hour, 0, len(h.Time))
	for i, ts := range h.Time {
		t := time.Unix(ts, 0).In(loc)
		hour := Hour{
			Time:          t,
			Code:          int(at(h.WeatherCode, i)),
			Temperature:   at(h.Temperature, i),
			Precipitation: at(h.Precipitation, i),
			PrecipProb:    int(at(h.PrecipProbability, i)),
			IsDay:         true,
		}
		if d, ok := sun[t.Format("2006-01-02")]; ok && !d.Sunrise.IsZero() {
			hour.IsDay = !t.Before(d.Sunrise) && t.Before(d.Sunset)
		}
		hours = append(hours, hour)
	}
	return hours
}

// markSunEvents flags rows whose span [t, t+step) contains a sunrise or
// sunset
func markSunEvents(hours []Hour, days []Day, step time.Duration) {
	for i := range hours {
		start := hours[i].Time
		end := start.Add(step)
		for _, d := range days {
			if within(d.Sunrise, start, end) || within(d.Sunset, start, end) {
				hours[i].SunEvent = true
				break
			}
		}
	}
}

func within(t, start, end time.Time) bool {
	return !t.IsZero() && !t.Before(start) && t.Before(end)
}

func at(col []float64, i int) float64 {
	if i < len(col) {
		return col[i]
	}
	return 0
}

func unixAt(col []int64, i int, loc *time.Location) time.Time {
	if i < len(col) && col[i] != 0 {
		return time.Unix(col[i], 0).In(loc)
	}
	return time.Time{}
}
