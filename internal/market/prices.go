package market

import (
	"sort"
	"strings"

	"github.com/krishimitra/krishi/internal/constants"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Price is a mandi quote for one commodity, in rupees per Unit.
type Price struct {
	Crop     string
	Unit     string
	MinPrice int
	MaxPrice int
	Modal    int
	Trend    Trend
	Change   string
	Market   string
}

// PriceTable is the set of quotes for a state.
type PriceTable struct {
	State  string
	Prices []Price
}

var statePrices = map[string][]Price{
	"Kerala": {
		{"Rice (Paddy)", "Quintal", 2650, 2950, 2800, TrendStable, "+1.5%", "Palakkad Mandi"},
		{"Coconut", "100 Nuts", 1750, 1950, 1850, TrendUp, "+5.2%", "Thrissur Market"},
		{"Pepper", "Kg", 465, 510, 485, TrendDown, "-2.1%", "Kochi Spice Market"},
		{"Cardamom", "Kg", 1200, 1350, 1280, TrendUp, "+3.8%", "Kumily Market"},
		{"Ginger", "Quintal", 7800, 8600, 8200, TrendStable, "+0.8%", "Wayanad Market"},
		{"Turmeric", "Quintal", 7400, 8200, 7800, TrendUp, "+2.3%", "Ernakulam Mandi"},
		{"Banana", "Dozen", 35, 45, 40, TrendStable, "+0.5%", "Trivandrum Market"},
		{"Rubber", "Kg", 168, 185, 175, TrendDown, "-1.2%", "Kottayam Market"},
		{"Arecanut", "Quintal", 28500, 32000, 30500, TrendUp, "+4.2%", "Kasaragod Market"},
		{"Tapioca", "Quintal", 1200, 1450, 1350, TrendStable, "+1.1%", "Kollam Market"},
	},
}

// GetMarketPrices returns the quotes for a state. States without a table
// get the Kerala quotes, and the returned State says so.
func GetMarketPrices(state string) PriceTable {
	key := canonicalState(state)
	prices, ok := statePrices[key]
	if !ok {
		key = constants.DefaultRegion
		prices = statePrices[key]
	}
	out := make([]Price, len(prices))
	copy(out, prices)
	return PriceTable{State: key, Prices: out}
}

// Lookup finds a crop's quote by case-insensitive name.
func (t PriceTable) Lookup(crop string) (Price, bool) {
	for _, p := range t.Prices {
		if strings.EqualFold(p.Crop, crop) {
			return p, true
		}
	}
	return Price{}, false
}

// States lists the states that have their own price table.
func States() []string {
	out := make([]string, 0, len(statePrices))
	for s := range statePrices {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func canonicalState(s string) string {
	for k := range statePrices {
		if strings.EqualFold(k, strings.TrimSpace(s)) {
			return k
		}
	}
	return s
}

// SellingAdvice is the historical best time to sell a crop.
type SellingAdvice struct {
	BestMonths []string
	Reason     string
	Advice     string
}

var sellingAdvice = map[string]SellingAdvice{
	"Rice (Paddy)": {[]string{"November", "December", "January"}, "Post-harvest demand is high during festive season", "Store properly and sell during peak demand months"},
	"Coconut":      {[]string{"Year-round with peak in April-June"}, "Summer months see increased demand for coconut water", "Prices peak during summer, good time to sell"},
	"Pepper":       {[]string{"October", "November", "December"}, "Festival season and export demand drives prices", "Hold stock till export season begins"},
	"Cardamom":     {[]string{"October", "November"}, "Festive season demand from domestic and export markets", "Peak prices during Diwali season"},
}

// BestSellingTime returns selling advice for a crop, or generic advice.
func BestSellingTime(crop string) SellingAdvice {
	if a, ok := sellingAdvice[crop]; ok {
		return a
	}
	return SellingAdvice{
		BestMonths: []string{"Check market trends"},
		Reason:     "Market conditions vary",
		Advice:     "Monitor prices regularly for best returns",
	}
}
