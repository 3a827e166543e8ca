package market

import (
	"fmt"
	"strings"
)

type Season string

const (
	Kharif    Season = "Kharif (Monsoon)"
	Rabi      Season = "Rabi (Winter)"
	Zaid      Season = "Zaid (Summer)"
	AllSeason Season = "All Season"
)

// Seasons accepted by RecommendCrops.
var Seasons = []Season{Kharif, Rabi, Zaid}

// SoilTypes accepted by RecommendCrops.
var SoilTypes = []string{"Clay", "Sandy", "Loamy", "Red Soil", "Black Soil", "Alluvial"}

const (
	MaxPrimary   = 5
	MaxSecondary = 3
	MaxTips      = 8

	anyState = "All"
)

type cropProfile struct {
	name     string
	seasons  []Season
	soils    []string
	states   []string
	water    string
	duration string
}

var baseCrops = []cropProfile{
	{"Rice", []Season{Kharif, Rabi}, []string{"Clay", "Loamy", "Alluvial"}, []string{"Kerala", anyState}, "High", "120-150 days"},
	{"Coconut", []Season{AllSeason}, []string{"Sandy", "Loamy", "Red Soil"}, []string{"Kerala", anyState}, "Medium", "Perennial"},
	{"Pepper", []Season{Kharif}, []string{"Red Soil", "Loamy"}, []string{"Kerala", anyState}, "Medium", "Perennial"},
	{"Banana", []Season{AllSeason}, []string{"Loamy", "Alluvial", "Red Soil"}, []string{"Kerala", anyState}, "High", "12-15 months"},
	{"Cardamom", []Season{Kharif}, []string{"Red Soil", "Loamy"}, []string{"Kerala"}, "High", "Perennial"},
	{"Rubber", []Season{AllSeason}, []string{"Red Soil", "Loamy"}, []string{"Kerala"}, "High", "Perennial"},
	{"Tapioca", []Season{Kharif, Zaid}, []string{"Red Soil", "Sandy", "Loamy"}, []string{"Kerala", anyState}, "Low", "8-10 months"},
	{"Ginger", []Season{Kharif}, []string{"Loamy", "Red Soil"}, []string{"Kerala", anyState}, "Medium", "8-10 months"},
	{"Turmeric", []Season{Kharif}, []string{"Loamy", "Red Soil", "Clay"}, []string{"Kerala", anyState}, "Medium", "7-10 months"},
	{"Arecanut", []Season{AllSeason}, []string{"Loamy", "Red Soil"}, []string{"Kerala"}, "High", "Perennial"},
	{"Cashew", []Season{AllSeason}, []string{"Red Soil", "Sandy"}, []string{"Kerala", anyState}, "Low", "Perennial"},
	{"Cocoa", []Season{AllSeason}, []string{"Loamy", "Red Soil"}, []string{"Kerala"}, "Medium", "Perennial"},
}

// Extra candidates that only apply in one season.
var seasonalCrops = map[Season][]cropProfile{
	Rabi: {
		{"Wheat", []Season{Rabi}, []string{"Loamy", "Alluvial", "Clay"}, []string{anyState}, "Medium", "120-150 days"},
		{"Barley", []Season{Rabi}, []string{"Loamy", "Sandy"}, []string{anyState}, "Low", "120-140 days"},
		{"Mustard", []Season{Rabi}, []string{"Loamy", "Sandy"}, []string{anyState}, "Low", "90-120 days"},
	},
	Zaid: {
		{"Watermelon", []Season{Zaid}, []string{"Sandy", "Loamy"}, []string{anyState}, "High", "90-100 days"},
		{"Muskmelon", []Season{Zaid}, []string{"Sandy", "Loamy"}, []string{anyState}, "Medium", "90-110 days"},
		{"Cucumber", []Season{Zaid}, []string{"Loamy", "Sandy"}, []string{anyState}, "High", "50-70 days"},
	},
}

// Recommendation is one suggested crop.
type Recommendation struct {
	Name             string
	Reason           string
	WaterRequirement string
	Duration         string
}

// Recommendations groups crops that fully match (Primary) and crops that
// match the season and state but not the soil (Secondary).
type Recommendations struct {
	Primary   []Recommendation
	Secondary []Recommendation
	Tips      []string
}

// RecommendCrops applies the season/soil/state rules. Candidates are
// considered in table order.
func RecommendCrops(season Season, soil, state string) Recommendations {
	candidates := append(append([]cropProfile{}, baseCrops...), seasonalCrops[season]...)
	short := seasonShortName(season)

	var rec Recommendations
	for _, c := range candidates {
		seasonOK := containsSeason(c.seasons, season) || containsSeason(c.seasons, AllSeason)
		stateOK := contains(c.states, state) || contains(c.states, anyState)
		if !seasonOK || !stateOK {
			continue
		}
		r := Recommendation{Name: c.name, WaterRequirement: c.water, Duration: c.duration}
		if contains(c.soils, soil) {
			r.Reason = fmt.Sprintf("Suitable for %s season in %s soil", short, strings.ToLower(soil))
			rec.Primary = append(rec.Primary, r)
		} else {
			r.Reason = fmt.Sprintf("May work with soil management for %s season", short)
			rec.Secondary = append(rec.Secondary, r)
		}
	}
	if len(rec.Primary) > MaxPrimary {
		rec.Primary = rec.Primary[:MaxPrimary]
	}
	if len(rec.Secondary) > MaxSecondary {
		rec.Secondary = rec.Secondary[:MaxSecondary]
	}
	rec.Tips = FarmingTips(season, soil, state)
	return rec
}

var soilTips = map[string][]string{
	"Clay":       {"Improve drainage by adding organic matter", "Avoid working the soil when it's too wet", "Clay soils retain nutrients well but may need better aeration"},
	"Sandy":      {"Add organic matter to improve water retention", "More frequent but lighter irrigation needed", "Regular fertilization required as nutrients leach quickly"},
	"Loamy":      {"Ideal soil type for most crops", "Maintain organic matter levels with compost", "Well-balanced nutrition and water retention"},
	"Red Soil":   {"May need lime to reduce acidity", "Add phosphorus-rich fertilizers", "Good for perennial crops like coconut and cashew"},
	"Black Soil": {"Excellent for cotton and sugarcane", "Rich in nutrients but may have drainage issues", "Deep plowing recommended"},
	"Alluvial":   {"Very fertile and suitable for cereals", "Regular flooding areas - plan accordingly", "Rich in potash but may need phosphorus"},
}

// FarmingTips returns up to MaxTips tips for the season, soil and state.
func FarmingTips(season Season, soil, state string) []string {
	var tips []string
	switch {
	case strings.Contains(string(season), "Monsoon"):
		tips = append(tips,
			"Ensure proper drainage to prevent waterlogging",
			"Monitor for fungal diseases due to high humidity",
			"Plant at the right time to utilize monsoon rains effectively")
	case strings.Contains(string(season), "Winter"):
		tips = append(tips,
			"Protect crops from frost in colder regions",
			"Irrigation requirements are generally lower",
			"Good time for harvesting kharif crops")
	case strings.Contains(string(season), "Summer"):
		tips = append(tips,
			"Ensure adequate irrigation systems",
			"Use mulching to conserve soil moisture",
			"Consider drought-resistant varieties")
	}
	tips = append(tips, soilTips[soil]...)
	if state == "Kerala" {
		tips = append(tips,
			"Take advantage of two monsoon seasons",
			"Intercropping with spices can increase income",
			"Consider organic farming for premium prices")
	}
	if len(tips) > MaxTips {
		tips = tips[:MaxTips]
	}
	return tips
}

// ParseSeason accepts a full season name or its short form ("kharif").
func ParseSeason(s string) (Season, error) {
	for _, season := range Seasons {
		if strings.EqualFold(s, string(season)) || strings.EqualFold(s, seasonShortName(season)) {
			return season, nil
		}
	}
	return "", fmt.Errorf("unknown season %q", s)
}

func seasonShortName(s Season) string {
	name, _, _ := strings.Cut(string(s), "(")
	return strings.TrimSpace(name)
}

func containsSeason(list []Season, s Season) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
