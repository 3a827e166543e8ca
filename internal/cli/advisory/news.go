package advisory

import (
	"context"
	"fmt"

	"github.com/krishimitra/krishi/internal/cli"
)

type NewsCmd struct {
	Limit int `short:"n" help:"Number of headlines to show." default:"8"`
}

func (c *NewsCmd) Run(ctx *cli.Context) error {
	items := ctx.News().GetNews(context.Background())
	if c.Limit > 0 && len(items) > c.Limit {
		items = items[:c.Limit]
	}

	fmt.Println("Agriculture news:")
	for i, it := range items {
		fmt.Printf("\n%d. %s\n", i+1, it.Title)
		fmt.Printf("   %s\n", it.Description)
		fmt.Printf("   %s, %s", it.Source, it.PublishedAt)
		if it.URL != "" && it.URL != "#" {
			fmt.Printf("  %s", it.URL)
		}
		fmt.Println()
	}
	return nil
}
