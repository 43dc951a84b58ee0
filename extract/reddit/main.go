package reddit

import (
	"context"
	"log/slog"
	"time"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/extract"
)

// Main holds the options for the reddit extractor job.
type Main struct {
	Bucket       string   `help:"S3 bucket raw snapshots are written to."`
	Region       string   `help:"AWS region of the bucket."`
	LocalDir     string   `help:"Write the snapshot beneath this local directory instead of S3."`
	ClientID     string   `help:"OAuth client id. Required; also read from PULSE_CLIENT_ID."`
	ClientSecret string   `help:"OAuth client secret. Required; also read from PULSE_CLIENT_SECRET."`
	Subreddits   []string `help:"Comma separated communities to fetch."`

	stats pulse.Statter
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region:     "us-east-1",
		Subreddits: DefaultSubreddits,
		stats:      pulse.NopStatter{},
	}
}

// SetStatter sets the stats collector for the run.
func (m *Main) SetStatter(s pulse.Statter) { m.stats = s }

// Run exchanges credentials for a token, fetches each subreddit's hot
// listing, and lands the combined list as one timestamped snapshot. Missing
// credentials are a client-error Result; a token failure is a server-error
// Result; per-subreddit failures are absorbed inside Extract.
func (m *Main) Run(ctx context.Context) extract.Result {
	if m.ClientID == "" || m.ClientSecret == "" {
		slog.Error("reddit credentials not set")
		return extract.ClientError("client-id and client-secret must be set")
	}
	store, err := extract.OpenStore(m.Region, m.Bucket, m.LocalDir)
	if err != nil {
		slog.Error("configuring snapshot store", "err", err)
		return extract.ClientError(err.Error())
	}

	client := NewClient(extract.NewHTTPClient(), m.ClientID, m.ClientSecret)
	token, err := client.Token(ctx)
	if err != nil {
		slog.Error("getting access token", "err", err)
		return extract.ServerError(err)
	}

	now := time.Now().UTC()
	posts := client.Extract(ctx, token, m.Subreddits, m.stats, now)
	if len(posts) == 0 {
		slog.Warn("no posts extracted")
	}

	body, err := extract.MarshalRecords(posts)
	if err != nil {
		slog.Error("marshaling reddit snapshot", "err", err)
		return extract.ServerError(err)
	}
	key := extract.SnapshotKey("reddit", "reddit_posts", now)
	if err := store.Put(ctx, key, body, "application/json"); err != nil {
		slog.Error("uploading reddit snapshot", "err", err)
		return extract.ServerError(err)
	}

	slog.Info("uploaded reddit posts", "count", len(posts), "filename", key)
	return extract.OK(len(posts), "Reddit posts", key)
}
