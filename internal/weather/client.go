// Package weather implements the stateless weather-lookup tool: a thin
// proxy over the open-meteo geocoding and forecast APIs. It holds no store
// connection and keeps no state between calls.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

var (
	ErrLocationNotFound = errors.New("weather: location not found")
	ErrNoCurrentData    = errors.New("weather: no current conditions in response")
)

// wmoCodes maps WMO weather interpretation codes to descriptions.
var wmoCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

func describeCode(code int) string {
	if desc, ok := wmoCodes[code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown (code %d)", code)
}

// Conditions holds the current weather for a resolved location.
type Conditions struct {
	Location    string
	Description string
	Temperature float64
	Unit        string
}

// Report renders the one-sentence summary returned to the caller.
func (c *Conditions) Report() string {
	return fmt.Sprintf("The current weather in %s is %s with a temperature of %g%s.",
		c.Location, c.Description, c.Temperature, c.Unit)
}

type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
}

type Option func(*Client)

// WithBaseURLs overrides the upstream endpoints, used by tests.
func WithBaseURLs(geocoding, forecast string) Option {
	return func(c *Client) {
		c.geocodingURL = geocoding
		c.forecastURL = forecast
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		geocodingURL: defaultGeocodingURL,
		forecastURL:  defaultForecastURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	CurrentUnits struct {
		Temperature string `json:"temperature_2m"`
	} `json:"current_units"`
}

// Current resolves the location and fetches its current conditions.
func (c *Client) Current(ctx context.Context, location string) (*Conditions, error) {
	geo, err := c.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"latitude":  {fmt.Sprintf("%g", geo.Latitude)},
		"longitude": {fmt.Sprintf("%g", geo.Longitude)},
		"current":   {"temperature_2m,weather_code,wind_speed_10m"},
		"timezone":  {"auto"},
	}
	var forecast forecastResponse
	if err := c.getJSON(ctx, c.forecastURL, params, &forecast); err != nil {
		return nil, err
	}
	if forecast.Current == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCurrentData, geo.Name)
	}

	return &Conditions{
		Location:    geo.Name,
		Description: describeCode(forecast.Current.WeatherCode),
		Temperature: forecast.Current.Temperature,
		Unit:        forecast.CurrentUnits.Temperature,
	}, nil
}

type geoResult struct {
	Name      string
	Latitude  float64
	Longitude float64
}

func (c *Client) geocode(ctx context.Context, location string) (*geoResult, error) {
	params := url.Values{
		"name":     {location},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}
	var geo geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL, params, &geo); err != nil {
		return nil, err
	}
	if len(geo.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}
	first := geo.Results[0]
	return &geoResult{Name: first.Name, Latitude: first.Latitude, Longitude: first.Longitude}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", endpoint, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
