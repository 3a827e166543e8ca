package advisory

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/config"
	"github.com/krishimitra/krishi/internal/storage"
)

func setupTestContext(t *testing.T, cfg config.Config) *cli.Context {
	t.Helper()
	if cfg.Region == "" {
		cfg.Region = "Kerala"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 2 * time.Second
	}
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "users.json"))
	return cli.NewContext(store, catalog.Builtin(), cfg)
}

func TestWeatherCmd(t *testing.T) {
	var gotCity string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("q")
		switch r.URL.Path {
		case "/data/2.5/weather":
			_, _ = w.Write([]byte(`{"name":"Kerala","main":{"temp":36,"humidity":40},"weather":[{"description":"clear sky"}],"wind":{"speed":2}}`))
		case "/data/2.5/forecast":
			_, _ = w.Write([]byte(`{"list":[{"dt":1735700000,"main":{"temp":30,"humidity":70},"weather":[{"description":"rain"}],"wind":{"speed":1}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := setupTestContext(t, config.Config{WeatherBaseURL: srv.URL, WeatherAPIKey: "k"})
	if err := (&WeatherCmd{Forecast: 1}).Run(ctx); err != nil {
		t.Fatalf("weather failed: %v", err)
	}
	if gotCity != "Kerala" {
		t.Errorf("location = %q, want configured region", gotCity)
	}

	if err := (&WeatherCmd{Forecast: 9}).Validate(); err == nil {
		t.Error("Validate() should reject long forecasts")
	}

	noKey := setupTestContext(t, config.Config{WeatherBaseURL: srv.URL})
	if err := (&WeatherCmd{Location: "Kochi"}).Run(noKey); err == nil {
		t.Error("expected error without API key")
	}
}

func TestNewsCmdOffline(t *testing.T) {
	ctx := setupTestContext(t, config.Config{NewsBaseURL: "http://127.0.0.1:1"})
	if err := (&NewsCmd{Limit: 3}).Run(ctx); err != nil {
		t.Errorf("news failed: %v", err)
	}
}

func TestAskAndDiagnoseOffline(t *testing.T) {
	ctx := setupTestContext(t, config.Config{})

	if err := (&AskCmd{Question: []string{"which", "fertilizer", "for", "rice?"}}).Run(ctx); err != nil {
		t.Errorf("ask failed: %v", err)
	}
	if err := (&AskCmd{Question: []string{" "}}).Run(ctx); err == nil {
		t.Error("expected error for empty question")
	}
	if err := (&AskCmd{Lang: "fr"}).Validate(); err == nil {
		t.Error("expected error for unsupported language")
	}

	img := filepath.Join(t.TempDir(), "leaf.jpg")
	if err := os.WriteFile(img, []byte("\xff\xd8\xff\xe0 fake jpeg"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&DiagnoseCmd{Image: img, Lang: "ml"}).Run(ctx); err != nil {
		t.Errorf("diagnose failed: %v", err)
	}
}

func TestPricesCmd(t *testing.T) {
	ctx := setupTestContext(t, config.Config{})
	tests := []struct {
		name    string
		cmd     PricesCmd
		wantErr bool
	}{
		{"default region", PricesCmd{}, false},
		{"unknown state falls back", PricesCmd{State: "Punjab"}, false},
		{"one crop", PricesCmd{Crop: "Pepper"}, false},
		{"missing crop", PricesCmd{Crop: "Saffron"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecommendCmd(t *testing.T) {
	ctx := setupTestContext(t, config.Config{})
	tests := []struct {
		name    string
		cmd     RecommendCmd
		wantErr bool
	}{
		{"kharif loamy", RecommendCmd{Season: "kharif", Soil: "loamy"}, false},
		{"rabi red soil in punjab", RecommendCmd{Season: "Rabi", Soil: "red soil", State: "Punjab"}, false},
		{"bad season", RecommendCmd{Season: "spring", Soil: "Clay"}, true},
		{"bad soil", RecommendCmd{Season: "zaid", Soil: "Peat"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
