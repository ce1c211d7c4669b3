package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/polka-dots/polka/pkg/errors"
	"github.com/polka-dots/polka/pkg/logging"
)

// DefaultEndpoint is the Open-Meteo forecast API
const DefaultEndpoint = "https://api.open-meteo.com/v1/forecast"

var dailyFields = []string{
	"weather_code",
	"precipitation_sum",
	"sunrise",
	"sunset",
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_probability_max",
}

var hourlyFields = []string{
	"temperature_2m",
	"precipitation_probability",
	"precipitation",
	"weather_code",
}

// Forecast is the columnar API response. Times are unix seconds;
// temperatures are Fahrenheit and precipitation is inches.
type Forecast struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Daily            Daily   `json:"daily"`
	Hourly           Hourly  `json:"hourly"`
}

// Daily holds the per-day series
type Daily struct {
	Time              []int64   `json:"time"`
	WeatherCode       []float64 `json:"weather_code"`
	PrecipitationSum  []float64 `json:"precipitation_sum"`
	Sunrise           []int64   `json:"sunrise"`
	Sunset            []int64   `json:"sunset"`
	TemperatureMax    []float64 `json:"temperature_2m_max"`
	TemperatureMin    []float64 `json:"temperature_2m_min"`
	PrecipProbability []float64 `json:"precipitation_probability_max"`
}

// Hourly holds the per-hour series
type Hourly struct {
	Time              []int64   `json:"time"`
	Temperature       []float64 `json:"temperature_2m"`
	PrecipProbability []float64 `json:"precipitation_probability"`
	Precipitation     []float64 `json:"precipitation"`
	WeatherCode       []float64 `json:"weather_code"`
}

// Client fetches forecasts over HTTP
type Client struct {
	http     *http.Client
	endpoint string
}

// NewClient creates a client; an empty endpoint means DefaultEndpoint
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}, endpoint: endpoint}
}

// Fetch requests a forecast for the given position. One attempt only.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, timezone string) (*Forecast, error) {
	logger := logging.GetLogger("weather")

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("daily", strings.Join(dailyFields, ","))
	q.Set("hourly", strings.Join(hourlyFields, ","))
	q.Set("timezone", timezone)
	q.Set("timeformat", "unixtime")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("precipitation_unit", "inch")
	q.Set("wind_speed_unit", "mph")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to build forecast request")
	}

	logger.Debug().Str("url", req.URL.String()).Msg("Fetching forecast")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUnavailable, "forecast request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrUnavailable, "forecast API returned status %d", resp.StatusCode)
	}

	var f Forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, errors.Wrap(err, errors.ErrUnavailable, "malformed forecast response")
	}
	return &f, nil
}
