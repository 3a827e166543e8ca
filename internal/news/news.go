package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/krishimitra/krishi/internal/logger"
)

const (
	Query    = "agriculture OR farming OR crops OR farmers India"
	PageSize = 10
	MaxItems = 8
)

// Item is one news headline.
type Item struct {
	Title       string
	Description string
	Source      string
	PublishedAt string
	URL         string
}

// Client fetches agriculture headlines from NewsAPI.
type Client struct {
	client *resty.Client
	apiKey string
	now    func() time.Time
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{client: c, apiKey: apiKey, now: time.Now}
}

type articlesResponse struct {
	Articles []struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		URL         string  `json:"url"`
		PublishedAt string  `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// GetNews returns live headlines, or the curated list when no key is set,
// the request fails, or nothing comes back. It never fails.
func (c *Client) GetNews(ctx context.Context) []Item {
	if c.apiKey == "" {
		return Fallback(c.now())
	}
	items, err := c.fetch(ctx)
	if err != nil {
		logger.Warn("News fetch failed, using curated headlines", "error", err)
		return Fallback(c.now())
	}
	if len(items) == 0 {
		return Fallback(c.now())
	}
	return items
}

func (c *Client) fetch(ctx context.Context) ([]Item, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        Query,
			"language": "en",
			"sortBy":   "publishedAt",
			"pageSize": fmt.Sprint(PageSize),
			"apiKey":   c.apiKey,
		}).
		Get("/v2/everything")
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("news status %d", resp.StatusCode())
	}

	var r articlesResponse
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	var items []Item
	for _, a := range r.Articles {
		if len(items) == MaxItems {
			break
		}
		desc := "No description available"
		if a.Description != nil && *a.Description != "" {
			desc = *a.Description
		}
		items = append(items, Item{
			Title:       a.Title,
			Description: desc,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
		})
	}
	return items, nil
}

var curated = [][3]string{
	{"Digital Agriculture Initiatives Boost Farmer Incomes Across India", "Government launches new digital platforms to connect farmers directly with markets, eliminating middlemen and increasing profits by 30%.", "Ministry of Agriculture"},
	{"IMD Predicts Normal Monsoon Rainfall for Kerala", "Indian Meteorological Department forecasts favorable monsoon conditions for Kerala, benefiting rice and spice cultivation.", "India Meteorological Department"},
	{"New High-Yield Rice Varieties Released for Coastal States", "ICAR develops salt-tolerant rice varieties specifically for coastal regions, promising 20% higher yields.", "Indian Council of Agricultural Research"},
	{"PM-KISAN Benefits Reach 12 Crore Farmers", "Direct benefit transfer scheme successfully provides financial support to millions of small and marginal farmers.", "Press Information Bureau"},
	{"Organic Farming: Kerala Leads in Sustainable Agriculture", "Kerala state government announces incentives for organic farming across all districts.", "Kerala Agricultural Department"},
	{"Drone Technology Revolutionizes Crop Monitoring", "Farmers increasingly adopt drone technology for pest surveillance and precision agriculture applications.", "Agriculture Technology Today"},
	{"Coconut Prices Show Upward Trend in South Indian Markets", "Increased demand for coconut products drives prices up, benefiting coconut farmers in Kerala and Karnataka.", "Coconut Development Board"},
	{"Climate-Smart Agriculture Practices Gain Momentum", "Farmers adopt climate-resilient techniques to combat changing weather patterns and ensure sustainable production.", "National Sample Survey Office"},
}

// Fallback returns the curated headlines dated on the given day.
func Fallback(now time.Time) []Item {
	date := now.Format("2006-01-02")
	items := make([]Item, len(curated))
	for i, c := range curated {
		items[i] = Item{Title: c[0], Description: c[1], Source: c[2], PublishedAt: date, URL: "#"}
	}
	return items
}
