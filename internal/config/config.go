package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/krishimitra/krishi/internal/constants"
	"github.com/krishimitra/krishi/internal/keyring"
	"github.com/krishimitra/krishi/internal/logger"
)

// Environment variables read by Load.
const (
	EnvWeatherKey  = "OPENWEATHER_API_KEY"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvNewsKey     = "NEWS_API_KEY"
	EnvWeatherURL  = "KRISHI_WEATHER_URL"
	EnvGeminiURL   = "KRISHI_GEMINI_URL"
	EnvNewsURL     = "KRISHI_NEWS_URL"
	EnvLanguage    = "KRISHI_LANGUAGE"
	EnvRegion      = "KRISHI_REGION"
	EnvHTTPTimeout = "KRISHI_HTTP_TIMEOUT"
)

// Config holds settings for the external collaborators.
type Config struct {
	WeatherAPIKey string
	GeminiAPIKey  string
	NewsAPIKey    string

	WeatherBaseURL string
	GeminiBaseURL  string
	NewsBaseURL    string

	Language    string
	Region      string
	HTTPTimeout time.Duration
}

// secretLookup is replaced in tests.
var secretLookup = keyring.Get

// Load reads the given .env files (or ./.env when none are given), then
// resolves each setting from the environment. API keys missing from the
// environment are looked up in the OS keyring.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug("No .env file loaded", "error", err)
	}

	cfg := Config{
		WeatherAPIKey:  secret(EnvWeatherKey, constants.KeyringWeatherUser),
		GeminiAPIKey:   secret(EnvGeminiKey, constants.KeyringGeminiUser),
		NewsAPIKey:     secret(EnvNewsKey, constants.KeyringNewsUser),
		WeatherBaseURL: get(EnvWeatherURL, "https://api.openweathermap.org"),
		GeminiBaseURL:  get(EnvGeminiURL, "https://generativelanguage.googleapis.com"),
		NewsBaseURL:    get(EnvNewsURL, "https://newsapi.org"),
		Language:       get(EnvLanguage, constants.DefaultLanguage),
		Region:         get(EnvRegion, constants.DefaultRegion),
		HTTPTimeout:    10 * time.Second,
	}
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		} else if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		} else {
			logger.Warn("Ignoring invalid HTTP timeout", "value", v)
		}
	}
	if _, ok := constants.Languages[cfg.Language]; !ok {
		logger.Warn("Unsupported language, falling back", "language", cfg.Language, "default", constants.DefaultLanguage)
		cfg.Language = constants.DefaultLanguage
	}

	logger.Debug("Loaded configuration",
		"weather_key", cfg.WeatherAPIKey != "",
		"gemini_key", cfg.GeminiAPIKey != "",
		"news_key", cfg.NewsAPIKey != "",
		"language", cfg.Language,
		"region", cfg.Region)
	return cfg
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func secret(env, keyringUser string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	v, err := secretLookup(keyringUser)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "user", keyringUser, "error", err)
		}
		return ""
	}
	return v
}
