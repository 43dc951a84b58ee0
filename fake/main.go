package fake

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse/extract"
)

// Main holds the options for the fake snapshot generator.
type Main struct {
	Bucket   string `help:"S3 bucket to write raw snapshots to."`
	Region   string `help:"AWS region of the bucket."`
	LocalDir string `help:"Write snapshots beneath this local directory instead of S3."`
	Seed     int64  `help:"Random seed. The same seed generates the same records."`
	Posts    int    `help:"Number of social posts to generate."`
	Articles int    `help:"Number of news articles to generate."`
	Coins    int    `help:"Number of coin snapshots to generate."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region:   "us-east-1",
		Seed:     1,
		Posts:    100,
		Articles: 60,
		Coins:    8,
	}
}

// Run generates one raw snapshot per source and writes them with the same
// keys the real extractors use.
func (m *Main) Run(ctx context.Context) error {
	store, err := extract.OpenStore(m.Region, m.Bucket, m.LocalDir)
	if err != nil {
		return errors.Wrap(err, "configuring store")
	}

	g := NewGenerator(m.Seed)
	now := time.Now().UTC()

	posts := g.Posts(m.Posts, now)
	articles := g.Articles(m.Articles, now)
	coins := g.Coins(m.Coins, now)
	snapshots := []struct {
		source, entity string
		records        interface{}
		count          int
	}{
		{"reddit", "reddit_posts", posts, len(posts)},
		{"news", "news_articles", articles, len(articles)},
		{"crypto", "crypto_prices", coins, len(coins)},
	}
	for _, snap := range snapshots {
		body, err := extract.MarshalRecords(snap.records)
		if err != nil {
			return errors.Wrapf(err, "marshalling %v", snap.source)
		}
		key := extract.SnapshotKey(snap.source, snap.entity, now)
		if err := store.Put(ctx, key, body, "application/json"); err != nil {
			return errors.Wrapf(err, "writing %v", key)
		}
		slog.Info("wrote fake snapshot", "key", key, "records", snap.count)
	}
	return nil
}
