// Package news implements the news headline extractor: one authenticated GET
// per topic category, flattened into NewsArticle records. A category that
// fails to fetch is logged and skipped; the snapshot carries whatever the
// remaining categories returned.
package news

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/extract"
)

const headlinesURL = "https://newsapi.org/v2/top-headlines"

// DefaultCategories are the topic categories fetched when none are
// configured.
var DefaultCategories = []string{"technology", "business", "science"}

const country = "us"

// Client fetches top headlines.
type Client struct {
	HTTP   *http.Client
	APIKey string
	// BaseURL is the top-headlines endpoint. Tests point it at a local server.
	BaseURL string
}

// NewClient creates a Client against the public API.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	return &Client{HTTP: httpClient, APIKey: apiKey, BaseURL: headlinesURL}
}

type headlinesResponse struct {
	Articles []struct {
		Source struct {
			Name *string `json:"name"`
		} `json:"source"`
		Author      *string `json:"author"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		URL         *string `json:"url"`
		PublishedAt *string `json:"publishedAt"`
	} `json:"articles"`
}

// Extract fetches the top headlines for each category in turn, 20 per
// category, and maps each article into a NewsArticle stamped with now as the
// extraction date. Per-category failures are logged and skipped; the
// returned slice holds the categories that succeeded.
func (c *Client) Extract(ctx context.Context, categories []string, stats pulse.Statter, now time.Time) []pulse.NewsArticle {
	var all []pulse.NewsArticle
	extracted := now.Format(time.RFC3339)

	for _, category := range categories {
		params := url.Values{
			"country":  {country},
			"category": {category},
			"apiKey":   {c.APIKey},
			"pageSize": {"20"},
		}

		var resp headlinesResponse
		if err := extract.GetJSON(ctx, c.HTTP, c.BaseURL+"?"+params.Encode(), nil, &resp); err != nil {
			slog.Warn("extracting news category failed, skipping", "category", category, "err", err)
			stats.Count("fetch-failures", 1, 1, "source:news")
			continue
		}

		for _, a := range resp.Articles {
			all = append(all, pulse.NewsArticle{
				Title:          a.Title,
				Description:    a.Description,
				SourceName:     a.Source.Name,
				Author:         a.Author,
				PublishedAt:    a.PublishedAt,
				URL:            a.URL,
				Category:       category,
				Country:        country,
				ExtractionDate: extracted,
			})
		}
		stats.Count("records", int64(len(resp.Articles)), 1, "source:news")
	}
	return all
}
