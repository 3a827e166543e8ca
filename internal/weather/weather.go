package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/krishimitra/krishi/internal/logger"
)

// ErrNoAPIKey is returned when no OpenWeatherMap key is configured.
var ErrNoAPIKey = errors.New("weather: no API key configured")

// Snapshot is the current weather at a location, in metric units.
type Snapshot struct {
	Location     string
	Temperature  int
	FeelsLike    int
	Humidity     int
	Pressure     int
	Description  string
	WindSpeedKmh float64
	VisibilityKm float64
	CloudCover   int
	Sunrise      time.Time
	Sunset       time.Time
	RainfallMm   float64 // last hour
}

// ForecastItem is one 3-hour forecast step.
type ForecastItem struct {
	Time         time.Time
	Temperature  int
	Humidity     int
	Description  string
	WindSpeedKmh float64
	RainfallMm   float64 // last 3 hours
}

// Client talks to the OpenWeatherMap REST API.
type Client struct {
	client *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{client: c, apiKey: apiKey}
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
	Pressure  int     `json:"pressure"`
}

type owmWeather struct {
	Description string `json:"description"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
}

type currentResponse struct {
	Name       string       `json:"name"`
	Main       owmMain      `json:"main"`
	Weather    []owmWeather `json:"weather"`
	Wind       owmWind      `json:"wind"`
	Visibility float64      `json:"visibility"`
	Clouds     struct {
		All int `json:"all"`
	} `json:"clouds"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Rain map[string]float64 `json:"rain"`
}

type forecastResponse struct {
	List []struct {
		Dt      int64              `json:"dt"`
		Main    owmMain            `json:"main"`
		Weather []owmWeather       `json:"weather"`
		Wind    owmWind            `json:"wind"`
		Rain    map[string]float64 `json:"rain"`
	} `json:"list"`
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("appid", c.apiKey).
		SetQueryParam("units", "metric").
		Get(path)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("weather status %d: %s", resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}

// GetWeather fetches the current conditions for a place name.
func (c *Client) GetWeather(ctx context.Context, location string) (Snapshot, error) {
	var r currentResponse
	if err := c.get(ctx, "/data/2.5/weather", map[string]string{"q": location}, &r); err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		Location:     location,
		Temperature:  round(r.Main.Temp),
		FeelsLike:    round(r.Main.FeelsLike),
		Humidity:     r.Main.Humidity,
		Pressure:     r.Main.Pressure,
		WindSpeedKmh: kmh(r.Wind.Speed),
		VisibilityKm: r.Visibility / 1000,
		CloudCover:   r.Clouds.All,
		Sunrise:      time.Unix(r.Sys.Sunrise, 0),
		Sunset:       time.Unix(r.Sys.Sunset, 0),
		RainfallMm:   r.Rain["1h"],
	}
	if r.Name != "" {
		s.Location = r.Name
	}
	if len(r.Weather) > 0 {
		s.Description = titleCase(r.Weather[0].Description)
	}

	logger.Debug("Fetched weather", "location", location, "temp", s.Temperature, "humidity", s.Humidity)
	return s, nil
}

// GetForecast fetches days worth of 3-hour forecast steps.
func (c *Client) GetForecast(ctx context.Context, location string, days int) ([]ForecastItem, error) {
	if days <= 0 {
		days = 5
	}
	var r forecastResponse
	params := map[string]string{"q": location, "cnt": fmt.Sprint(days * 8)}
	if err := c.get(ctx, "/data/2.5/forecast", params, &r); err != nil {
		return nil, err
	}

	out := make([]ForecastItem, 0, len(r.List))
	for _, it := range r.List {
		f := ForecastItem{
			Time:         time.Unix(it.Dt, 0),
			Temperature:  round(it.Main.Temp),
			Humidity:     it.Main.Humidity,
			WindSpeedKmh: kmh(it.Wind.Speed),
			RainfallMm:   it.Rain["3h"],
		}
		if len(it.Weather) > 0 {
			f.Description = titleCase(it.Weather[0].Description)
		}
		out = append(out, f)
	}
	return out, nil
}

func round(v float64) int {
	return int(math.Round(v))
}

// kmh converts m/s to km/h rounded to one decimal.
func kmh(ms float64) float64 {
	return math.Round(ms*3.6*10) / 10
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
