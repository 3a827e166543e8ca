package advisory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/weather"
)

type WeatherCmd struct {
	Location string `arg:"" optional:"" help:"Place name. Defaults to the user's location, then the configured region."`
	Forecast int    `short:"f" help:"Also show a forecast for this many days (1-5)."`
}

func (c *WeatherCmd) Validate() error {
	if c.Forecast < 0 || c.Forecast > 5 {
		return fmt.Errorf("forecast must be between 0 and 5 days")
	}
	return nil
}

func (c *WeatherCmd) Run(ctx *cli.Context) error {
	location := c.location(ctx)
	client := ctx.Weather()
	bg := context.Background()

	snap, err := client.GetWeather(bg, location)
	if errors.Is(err, weather.ErrNoAPIKey) {
		return fmt.Errorf("%w: set OPENWEATHER_API_KEY or run 'krishi keyring set openweather'", err)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Weather in %s: %s\n", snap.Location, snap.Description)
	fmt.Printf("  Temperature: %d°C (feels like %d°C)\n", snap.Temperature, snap.FeelsLike)
	fmt.Printf("  Humidity:    %d%%   Pressure: %d hPa\n", snap.Humidity, snap.Pressure)
	fmt.Printf("  Wind:        %.1f km/h   Visibility: %.1f km   Clouds: %d%%\n", snap.WindSpeedKmh, snap.VisibilityKm, snap.CloudCover)
	fmt.Printf("  Rain (1h):   %.1f mm\n", snap.RainfallMm)
	fmt.Printf("  Sunrise %s, sunset %s\n", snap.Sunrise.Format("15:04"), snap.Sunset.Format("15:04"))

	fmt.Println("\nFarming advice:")
	for _, a := range weather.Advisories(snap) {
		fmt.Printf("  • %s\n", a.Message)
	}

	if c.Forecast > 0 {
		items, err := client.GetForecast(bg, location, c.Forecast)
		if err != nil {
			return err
		}
		fmt.Printf("\nForecast (%d days):\n", c.Forecast)
		for _, it := range items {
			fmt.Printf("  %s  %3d°C  %3d%%  %5.1f mm  %s\n",
				it.Time.Format("Mon 02 15:04"), it.Temperature, it.Humidity, it.RainfallMm, it.Description)
		}
	}
	return nil
}

func (c *WeatherCmd) location(ctx *cli.Context) string {
	if strings.TrimSpace(c.Location) != "" {
		return c.Location
	}
	if user, err := ctx.CurrentUser(); err == nil && user.Location != "" {
		return user.Location
	}
	return ctx.Config.Region
}
