// Package reddit implements the social-post extractor. It exchanges OAuth
// client credentials for a bearer token, then pulls the hot listing of each
// configured subreddit. A subreddit that fails to fetch is logged and
// skipped; a token failure aborts the whole invocation.
package reddit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/extract"
)

const (
	tokenURL  = "https://www.reddit.com/api/v1/access_token"
	listedURL = "https://oauth.reddit.com"
	userAgent = "pulse-pipeline/1.0 (batch extractor)"

	// selftextLimit caps free-text bodies before they land in a snapshot.
	selftextLimit = 500
)

// DefaultSubreddits are the communities fetched when none are configured.
var DefaultSubreddits = []string{"technology", "datascience", "worldnews", "cryptocurrency"}

// Client fetches subreddit listings with OAuth client credentials.
type Client struct {
	HTTP         *http.Client
	ClientID     string
	ClientSecret string
	// TokenURL and BaseURL exist so tests can point the client at a local
	// server.
	TokenURL string
	BaseURL  string
}

// NewClient creates a Client against the public API.
func NewClient(httpClient *http.Client, clientID, clientSecret string) *Client {
	return &Client{
		HTTP:         httpClient,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		BaseURL:      listedURL,
	}
}

// Token performs the client-credentials exchange and returns the bearer
// token for subsequent listing fetches.
func (c *Client) Token(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "building token request")
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "requesting token")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("token request failed with status %v", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "decoding token response")
	}
	if body.AccessToken == "" {
		return "", errors.New("token response contained no access_token")
	}
	return body.AccessToken, nil
}

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Author      string  `json:"author"`
				Subreddit   string  `json:"subreddit"`
				Score       int64   `json:"score"`
				UpvoteRatio float64 `json:"upvote_ratio"`
				NumComments int64   `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Selftext    string  `json:"selftext"`
				URL         string  `json:"url"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Extract fetches the hot listing of each subreddit in turn, 25 posts per
// community, and maps each post into a RedditPost stamped with now as the
// extraction date. Per-subreddit failures are logged and skipped.
func (c *Client) Extract(ctx context.Context, token string, subreddits []string, stats pulse.Statter, now time.Time) []pulse.RedditPost {
	header := http.Header{
		"Authorization": {"bearer " + token},
		"User-Agent":    {userAgent},
	}

	var all []pulse.RedditPost
	extracted := now.Format(time.RFC3339)
	for _, subreddit := range subreddits {
		var l listing
		u := c.BaseURL + "/r/" + subreddit + "/hot?limit=25"
		if err := extract.GetJSON(ctx, c.HTTP, u, header, &l); err != nil {
			slog.Warn("extracting subreddit failed, skipping", "subreddit", subreddit, "err", err)
			stats.Count("fetch-failures", 1, 1, "source:reddit")
			continue
		}

		for _, child := range l.Data.Children {
			p := child.Data
			all = append(all, pulse.RedditPost{
				PostID:         p.ID,
				Title:          p.Title,
				Author:         p.Author,
				Subreddit:      p.Subreddit,
				Score:          p.Score,
				UpvoteRatio:    p.UpvoteRatio,
				NumComments:    p.NumComments,
				CreatedUTC:     p.CreatedUTC,
				Selftext:       pulse.Truncate(p.Selftext, selftextLimit),
				URL:            p.URL,
				ExtractionDate: extracted,
			})
		}
		stats.Count("records", int64(len(l.Data.Children)), 1, "source:reddit")
		slog.Info("extracted subreddit", "subreddit", subreddit, "posts", len(l.Data.Children))
	}
	return all
}
