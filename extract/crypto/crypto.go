// Package crypto implements the crypto price extractor: one unauthenticated
// GET for the top 50 coins by market cap, flattened into CoinSnapshot records
// and landed as a raw snapshot.
package crypto

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/extract"
)

const marketsURL = "https://api.coingecko.com/api/v3/coins/markets"

// Client fetches coin market data.
type Client struct {
	HTTP *http.Client
	// BaseURL is the markets endpoint. Tests point it at a local server.
	BaseURL string
}

// NewClient creates a Client against the public API.
func NewClient(httpClient *http.Client) *Client {
	return &Client{HTTP: httpClient, BaseURL: marketsURL}
}

// coin is the subset of the markets response we keep. Numeric fields decode
// as float64 because the API reports fractional values even for nominally
// integral columns like total_volume.
type coin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int64   `json:"market_cap_rank"`
	PriceChange24h           float64 `json:"price_change_24h"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	TotalVolume              float64 `json:"total_volume"`
	LastUpdated              string  `json:"last_updated"`
}

// Extract fetches the top 50 coins by market cap and maps each into a
// CoinSnapshot stamped with now as the extraction date. Unlike the other
// extractors there is only one fetch, so any failure aborts the whole
// invocation.
func (c *Client) Extract(ctx context.Context, now time.Time) ([]pulse.CoinSnapshot, error) {
	params := url.Values{
		"vs_currency": {"usd"},
		"order":       {"market_cap_desc"},
		"per_page":    {"50"},
		"page":        {"1"},
		"sparkline":   {"false"},
	}

	var coins []coin
	if err := extract.GetJSON(ctx, c.HTTP, c.BaseURL+"?"+params.Encode(), nil, &coins); err != nil {
		return nil, errors.Wrap(err, "fetching coin markets")
	}

	snaps := make([]pulse.CoinSnapshot, 0, len(coins))
	extracted := now.Format(time.RFC3339)
	for _, co := range coins {
		snaps = append(snaps, pulse.CoinSnapshot{
			CoinID:                co.ID,
			Symbol:                co.Symbol,
			Name:                  co.Name,
			CurrentPrice:          co.CurrentPrice,
			MarketCap:             int64(co.MarketCap),
			MarketCapRank:         co.MarketCapRank,
			PriceChange24h:        co.PriceChange24h,
			PriceChangePercent24h: co.PriceChangePercentage24h,
			TotalVolume:           int64(co.TotalVolume),
			LastUpdated:           co.LastUpdated,
			ExtractionDate:        extracted,
		})
	}
	return snaps, nil
}
