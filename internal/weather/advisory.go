package weather

// Thresholds for farming advisories.
const (
	HotTemperature  = 35
	ColdTemperature = 10
	HighHumidity    = 85
	LowHumidity     = 30
	HeavyRainMm     = 50
	StrongWindKmh   = 25
)

// Advisory is a farming recommendation derived from the weather.
type Advisory struct {
	Condition string
	Message   string
}

// Advisories turns a snapshot into farming advice. It always returns at
// least one entry.
func Advisories(s Snapshot) []Advisory {
	var out []Advisory
	if s.Temperature > HotTemperature {
		out = append(out, Advisory{"high_temperature", "High temperature detected. Increase irrigation frequency and provide shade for sensitive crops."})
	}
	if s.Temperature < ColdTemperature {
		out = append(out, Advisory{"low_temperature", "Low temperature warning. Protect crops from frost damage."})
	}
	if s.Humidity > HighHumidity {
		out = append(out, Advisory{"high_humidity", "High humidity levels. Monitor for fungal diseases and improve air circulation."})
	}
	if s.Humidity < LowHumidity {
		out = append(out, Advisory{"low_humidity", "Low humidity. Increase irrigation and consider mulching."})
	}
	if s.RainfallMm > HeavyRainMm {
		out = append(out, Advisory{"heavy_rain", "Heavy rainfall expected. Ensure proper drainage and harvest ready crops."})
	}
	if s.WindSpeedKmh > StrongWindKmh {
		out = append(out, Advisory{"strong_wind", "Strong winds expected. Secure tall crops and protect seedlings."})
	}
	if len(out) == 0 {
		out = append(out, Advisory{"favorable", "Weather conditions are favorable for normal farming activities."})
	}
	return out
}
