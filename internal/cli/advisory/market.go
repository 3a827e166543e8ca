package advisory

import (
	"fmt"
	"strings"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/market"
)

type PricesCmd struct {
	State string `arg:"" optional:"" help:"State. Defaults to the configured region."`
	Crop  string `help:"Show one crop with selling advice."`
}

func (c *PricesCmd) Run(ctx *cli.Context) error {
	state := c.State
	if state == "" {
		state = ctx.Config.Region
	}
	table := market.GetMarketPrices(state)
	if !strings.EqualFold(table.State, state) {
		fmt.Printf("No price table for %s; showing %s.\n\n", state, table.State)
	}

	if c.Crop != "" {
		p, ok := table.Lookup(c.Crop)
		if !ok {
			return fmt.Errorf("no price for %q in %s", c.Crop, table.State)
		}
		printPrice(p)
		advice := market.BestSellingTime(p.Crop)
		fmt.Printf("\nBest months to sell: %s\n", strings.Join(advice.BestMonths, ", "))
		fmt.Printf("  %s. %s.\n", advice.Reason, advice.Advice)
		return nil
	}

	fmt.Printf("Market prices in %s:\n", table.State)
	for _, p := range table.Prices {
		printPrice(p)
	}
	return nil
}

func printPrice(p market.Price) {
	arrow := "→"
	switch p.Trend {
	case market.TrendUp:
		arrow = "↑"
	case market.TrendDown:
		arrow = "↓"
	}
	fmt.Printf("  %-14s ₹%-7d per %-9s (₹%d-₹%d) %s %s  %s\n",
		p.Crop, p.Modal, p.Unit, p.MinPrice, p.MaxPrice, arrow, p.Change, p.Market)
}

type RecommendCmd struct {
	Season string `arg:"" help:"Season: kharif, rabi or zaid."`
	Soil   string `arg:"" help:"Soil type: Clay, Sandy, Loamy, \"Red Soil\", \"Black Soil\" or Alluvial."`
	State  string `help:"State. Defaults to the configured region."`
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	season, err := market.ParseSeason(c.Season)
	if err != nil {
		return err
	}
	soil, ok := matchSoil(c.Soil)
	if !ok {
		return fmt.Errorf("unknown soil type %q (one of %s)", c.Soil, strings.Join(market.SoilTypes, ", "))
	}
	state := c.State
	if state == "" {
		state = ctx.Config.Region
	}

	rec := market.RecommendCrops(season, soil, state)
	fmt.Printf("Recommendations for %s, %s soil, %s\n", season, soil, state)

	fmt.Println("\nBest suited:")
	if len(rec.Primary) == 0 {
		fmt.Println("  none")
	}
	for _, r := range rec.Primary {
		fmt.Printf("  %-12s %s (water: %s, duration: %s)\n", r.Name, r.Reason, r.WaterRequirement, r.Duration)
	}
	if len(rec.Secondary) > 0 {
		fmt.Println("\nAlso possible:")
		for _, r := range rec.Secondary {
			fmt.Printf("  %-12s %s (water: %s, duration: %s)\n", r.Name, r.Reason, r.WaterRequirement, r.Duration)
		}
	}
	fmt.Println("\nTips:")
	for _, tip := range rec.Tips {
		fmt.Printf("  • %s\n", tip)
	}
	return nil
}

func matchSoil(s string) (string, bool) {
	for _, soil := range market.SoilTypes {
		if strings.EqualFold(soil, strings.TrimSpace(s)) {
			return soil, true
		}
	}
	return "", false
}
