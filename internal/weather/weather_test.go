package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const currentBody = `{
  "name": "Kochi",
  "main": {"temp": 31.6, "feels_like": 36.2, "humidity": 78, "pressure": 1008},
  "weather": [{"description": "scattered clouds"}],
  "wind": {"speed": 5},
  "visibility": 8000,
  "clouds": {"all": 40},
  "sys": {"sunrise": 1735693200, "sunset": 1735735800},
  "rain": {"1h": 2.5}
}`

func TestGetWeather(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k123", 5*time.Second)
	s, err := c.GetWeather(context.Background(), "Kochi,IN")
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}

	for _, want := range []string{"q=Kochi%2CIN", "appid=k123", "units=metric"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}

	if s.Location != "Kochi" {
		t.Errorf("Location = %q", s.Location)
	}
	if s.Temperature != 32 || s.FeelsLike != 36 {
		t.Errorf("Temperature = %d, FeelsLike = %d", s.Temperature, s.FeelsLike)
	}
	if s.Description != "Scattered Clouds" {
		t.Errorf("Description = %q", s.Description)
	}
	if s.WindSpeedKmh != 18 {
		t.Errorf("WindSpeedKmh = %v, want 18", s.WindSpeedKmh)
	}
	if s.VisibilityKm != 8 {
		t.Errorf("VisibilityKm = %v, want 8", s.VisibilityKm)
	}
	if s.RainfallMm != 2.5 {
		t.Errorf("RainfallMm = %v", s.RainfallMm)
	}
}

func TestGetWeatherNoKey(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", time.Second)
	if _, err := c.GetWeather(context.Background(), "Kochi"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("error = %v, want ErrNoAPIKey", err)
	}
}

func TestGetWeatherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	if _, err := c.GetWeather(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestGetForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cnt"); got != "16" {
			t.Errorf("cnt = %q, want 16", got)
		}
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1735700000,"main":{"temp":29.4,"humidity":80},"weather":[{"description":"light rain"}],"wind":{"speed":2},"rain":{"3h":1.2}},
			{"dt":1735710800,"main":{"temp":27.5,"humidity":88},"weather":[],"wind":{"speed":1}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	items, err := c.GetForecast(context.Background(), "Kochi", 2)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Description != "Light Rain" || items[0].RainfallMm != 1.2 || items[0].WindSpeedKmh != 7.2 {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Temperature != 28 || items[1].RainfallMm != 0 {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestAdvisories(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
		want []string
	}{
		{"favorable", Snapshot{Temperature: 28, Humidity: 60}, []string{"favorable"}},
		{"hot and dry", Snapshot{Temperature: 38, Humidity: 20}, []string{"high_temperature", "low_humidity"}},
		{"cold", Snapshot{Temperature: 8, Humidity: 50}, []string{"low_temperature"}},
		{"storm", Snapshot{Temperature: 25, Humidity: 90, RainfallMm: 60, WindSpeedKmh: 30}, []string{"high_humidity", "heavy_rain", "strong_wind"}},
		{"thresholds are exclusive", Snapshot{Temperature: 35, Humidity: 85, RainfallMm: 50, WindSpeedKmh: 25}, []string{"favorable"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advisories(tt.s)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d advisories %+v, want %v", len(got), got, tt.want)
			}
			for i, a := range got {
				if a.Condition != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, a.Condition, tt.want[i])
				}
				if a.Message == "" {
					t.Errorf("[%d] empty message", i)
				}
			}
		})
	}
}
