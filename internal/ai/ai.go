package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/krishimitra/krishi/internal/config"
	"github.com/krishimitra/krishi/internal/constants"
	"github.com/krishimitra/krishi/internal/logger"
)

// Assistant answers farming questions and diagnoses crop photos.
type Assistant interface {
	Ask(ctx context.Context, question, lang string) (string, error)
	AnalyzeImage(ctx context.Context, image []byte, lang string) (string, error)
}

// New returns a Gemini-backed assistant, or the offline mock when no API key
// is configured.
func New(cfg config.Config) Assistant {
	if cfg.GeminiAPIKey == "" {
		logger.Debug("No Gemini API key, using offline assistant")
		return Mock{}
	}
	return NewGemini(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.HTTPTimeout)
}

// LanguageName maps a language code to the name used in prompts. Unknown
// codes become English.
func LanguageName(code string) string {
	if name, ok := constants.Languages[code]; ok {
		return name
	}
	return constants.Languages[constants.DefaultLanguage]
}

// DetectMIME sniffs an image's content type, defaulting to JPEG.
func DetectMIME(image []byte) string {
	mt := http.DetectContentType(image)
	switch mt {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
		return mt
	}
	return "image/jpeg"
}

func askPrompt(lang string) string {
	return fmt.Sprintf(`You are Krishi Mitra AI, an expert agricultural assistant for Indian farmers.
You have deep knowledge of Indian crops and seasons (Kharif, Rabi, Zaid), soil types common in India,
pest and disease management, government schemes and subsidies, weather-based farming advice,
sustainable farming practices, market prices and trends, and fertilizer and seed recommendations.

Always provide practical, actionable advice suited to Indian conditions. Prefer cost-effective
solutions and combine traditional knowledge with modern techniques.

Respond in %s. If the user asks in a different language, detect it and respond in that language.
Keep responses informative yet concise (200-300 words max).`, LanguageName(lang))
}

func diagnosisPrompt(lang string) string {
	return fmt.Sprintf(`You are an expert plant pathologist specializing in crop diseases common in India.
Analyze this image and provide:
1. Crop identification if possible
2. Disease or pest identification
3. Severity level (Mild/Moderate/Severe)
4. Immediate treatment recommendations
5. Prevention measures
6. Organic and chemical treatment options

Focus on diseases common in Indian agriculture.
Respond in %s.
If you cannot identify any disease, suggest general plant health tips.`, LanguageName(lang))
}
