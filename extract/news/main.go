package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/extract"
)

// Main holds the options for the news extractor job.
type Main struct {
	Bucket     string   `help:"S3 bucket raw snapshots are written to."`
	Region     string   `help:"AWS region of the bucket."`
	LocalDir   string   `help:"Write the snapshot beneath this local directory instead of S3."`
	APIKey     string   `help:"News API key. Required; also read from PULSE_API_KEY."`
	Categories []string `help:"Comma separated topic categories to fetch."`

	stats pulse.Statter
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region:     "us-east-1",
		Categories: DefaultCategories,
		stats:      pulse.NopStatter{},
	}
}

// SetStatter sets the stats collector for the run.
func (m *Main) SetStatter(s pulse.Statter) { m.stats = s }

// Run fetches each category's headlines and lands the combined list as one
// timestamped snapshot. A missing API key is a client-error Result before
// any fetch happens; individual category failures are absorbed inside
// Extract.
func (m *Main) Run(ctx context.Context) extract.Result {
	if m.APIKey == "" {
		slog.Error("news API key not set")
		return extract.ClientError("api-key must be set")
	}
	store, err := extract.OpenStore(m.Region, m.Bucket, m.LocalDir)
	if err != nil {
		slog.Error("configuring snapshot store", "err", err)
		return extract.ClientError(err.Error())
	}

	now := time.Now().UTC()
	articles := NewClient(extract.NewHTTPClient(), m.APIKey).Extract(ctx, m.Categories, m.stats, now)

	body, err := extract.MarshalRecords(articles)
	if err != nil {
		slog.Error("marshaling news snapshot", "err", err)
		return extract.ServerError(err)
	}
	key := extract.SnapshotKey("news", "news_articles", now)
	if err := store.Put(ctx, key, body, "application/json"); err != nil {
		slog.Error("uploading news snapshot", "err", err)
		return extract.ServerError(err)
	}

	slog.Info("uploaded news articles", "count", len(articles), "filename", key)
	return extract.OK(len(articles), "news articles", key)
}
