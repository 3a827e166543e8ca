package ai

import (
	"context"
	"fmt"
	"strings"
)

// Mock is the offline assistant. It answers from a few canned topics.
type Mock struct{}

var cannedAnswers = []struct {
	keywords []string
	answer   string
}{
	{[]string{"fertilizer", "urea", "npk", "manure"}, "Apply fertilizer in split doses. For paddy, give a basal dose of NPK at planting, urea at tillering and potash at panicle initiation. Add farmyard manure or compost before land preparation to keep organic matter up."},
	{[]string{"pest", "insect", "borer", "aphid"}, "Scout the field twice a week. Use pheromone and light traps first, then neem-based sprays (5 ml/litre). Use chemical pesticides only when damage crosses the economic threshold, and follow label doses."},
	{[]string{"disease", "fungus", "blight", "rot", "wilt"}, "Remove and destroy infected plant parts, avoid waterlogging and improve air circulation. A copper oxychloride or mancozeb spray controls most fungal diseases. Use resistant varieties next season."},
	{[]string{"water", "irrigat", "drought"}, "Irrigate early in the morning or late evening. Mulch with crop residue to cut evaporation, and consider drip irrigation for coconut, banana and vegetables."},
	{[]string{"price", "market", "sell"}, "Check prices at nearby mandis and on eNAM before selling. Storing produce properly and selling in peak demand months usually brings better returns."},
}

func (Mock) Ask(_ context.Context, question, lang string) (string, error) {
	q := strings.ToLower(question)
	for _, c := range cannedAnswers {
		for _, k := range c.keywords {
			if strings.Contains(q, k) {
				return c.answer, nil
			}
		}
	}
	return fmt.Sprintf("AI assistant is offline (no API key configured). Your question was noted: %q. Contact your local Krishi Bhavan for advice in %s.", question, LanguageName(lang)), nil
}

func (Mock) AnalyzeImage(_ context.Context, image []byte, lang string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("ai: empty image")
	}
	return fmt.Sprintf("Image diagnosis is offline (no API key configured). Received a %s of %d bytes. General tips: remove affected leaves, avoid overhead watering, and keep the field free of weeds.", DetectMIME(image), len(image)), nil
}
