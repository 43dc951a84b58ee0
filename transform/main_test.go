package transform

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/file"
)

func writeSnapshot(t *testing.T, store *file.Store, key string, records interface{}) {
	t.Helper()
	body, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshalling records: %v", err)
	}
	if err := store.Put(context.Background(), key, body, "application/json"); err != nil {
		t.Fatalf("writing %v: %v", key, err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewStore(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	ctx := context.Background()

	writeSnapshot(t, store, "raw-data/reddit/reddit_posts_20250602_120000.json", []pulse.RedditPost{
		{PostID: "p1", Title: "first", Subreddit: "technology", Score: 100, NumComments: 50, UpvoteRatio: 0.9, CreatedUTC: 1748874600},
		{PostID: "p2", Title: "second", Subreddit: "worldnews", Score: 10, NumComments: 5, UpvoteRatio: 0.8, CreatedUTC: 1748874600},
	})
	writeSnapshot(t, store, "raw-data/news/news_articles_20250602_120000.json", []pulse.NewsArticle{
		{Title: strptr("a positive headline"), Description: strptr("positive coverage"), SourceName: strptr("Reuters"), PublishedAt: strptr("2025-06-02T09:00:00Z"), Category: "business", Country: "us"},
	})
	writeSnapshot(t, store, "raw-data/crypto/crypto_prices_20250602_120000.json", []pulse.CoinSnapshot{
		{CoinID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: 67000.123, MarketCap: 1320000000000, MarketCapRank: 1, TotalVolume: 28000000000, LastUpdated: "2025-06-02T11:59:00Z"},
		{CoinID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3500.456, MarketCap: 420000000000, MarketCapRank: 2, TotalVolume: 15000000000, LastUpdated: "2025-06-02T11:59:00Z"},
	})

	// Stale output from a previous run should be replaced, not accumulated.
	if err := store.Put(ctx, "processed-data/dim_crypto/part-00007.parquet", []byte("stale"), "application/octet-stream"); err != nil {
		t.Fatalf("seeding stale output: %v", err)
	}

	m := NewMain()
	m.LocalDir = dir
	m.StartDate = "2025-06-01"
	m.EndDate = "2025-06-03"
	m.KeyRegistry = filepath.Join(t.TempDir(), "keys.bolt")
	if err := m.Run(ctx); err != nil {
		t.Fatalf("running transform: %v", err)
	}

	for _, table := range []string{
		"dim_date", "dim_content", "dim_news", "dim_crypto",
		"fact_engagement", "fact_news", "fact_crypto_prices",
	} {
		keys, err := store.List(ctx, "processed-data/"+table+"/")
		if err != nil {
			t.Fatalf("listing %v: %v", table, err)
		}
		if len(keys) != 1 || keys[0] != "processed-data/"+table+"/part-00000.parquet" {
			t.Fatalf("unexpected objects for %v: %v", table, keys)
		}
	}

	dates, err := parquet.ReadFile[DateRow](filepath.Join(dir, "processed-data", "dim_date", "part-00000.parquet"))
	if err != nil {
		t.Fatalf("reading dim_date: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("expected 3 date rows, got %d", len(dates))
	}

	cryptoDims, err := parquet.ReadFile[CryptoRow](filepath.Join(dir, "processed-data", "dim_crypto", "part-00000.parquet"))
	if err != nil {
		t.Fatalf("reading dim_crypto: %v", err)
	}
	if len(cryptoDims) != 2 {
		t.Fatalf("expected 2 crypto dim rows, got %d", len(cryptoDims))
	}

	cryptoFacts, err := parquet.ReadFile[CryptoFact](filepath.Join(dir, "processed-data", "fact_crypto_prices", "part-00000.parquet"))
	if err != nil {
		t.Fatalf("reading fact_crypto_prices: %v", err)
	}
	if len(cryptoFacts) != 2 {
		t.Fatalf("expected 2 crypto fact rows, got %d", len(cryptoFacts))
	}
	foundBitcoin := false
	for _, f := range cryptoFacts {
		if f.DateKey != 20250602 {
			t.Fatalf("expected date key 20250602, got %d", f.DateKey)
		}
		if f.CryptoKey == pulse.Key("bitcoin") {
			foundBitcoin = true
			if f.CurrentPrice != 67000.12 {
				t.Fatalf("expected rounded price 67000.12, got %v", f.CurrentPrice)
			}
		}
	}
	if !foundBitcoin {
		t.Fatal("no fact row for bitcoin")
	}

	engagement, err := parquet.ReadFile[EngagementFact](filepath.Join(dir, "processed-data", "fact_engagement", "part-00000.parquet"))
	if err != nil {
		t.Fatalf("reading fact_engagement: %v", err)
	}
	if len(engagement) != 2 {
		t.Fatalf("expected 2 engagement rows, got %d", len(engagement))
	}
	foundPost := false
	for _, f := range engagement {
		if f.ContentKey == pulse.Key("p1") {
			foundPost = true
			if f.EngagementScore != 80 {
				t.Fatalf("expected engagement score 80, got %v", f.EngagementScore)
			}
		}
	}
	if !foundPost {
		t.Fatal("no engagement row for post p1")
	}
}

func TestRunEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	m := NewMain()
	m.LocalDir = dir
	m.StartDate = "2025-06-01"
	m.EndDate = "2025-06-01"
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("running transform over empty catalog: %v", err)
	}

	// Date dimension is still produced; source tables are empty but present.
	if _, err := os.Stat(filepath.Join(dir, "processed-data", "dim_date", "part-00000.parquet")); err != nil {
		t.Fatalf("expected dim_date output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "processed-data", "fact_news", "part-00000.parquet")); err != nil {
		t.Fatalf("expected fact_news output: %v", err)
	}
}

func TestRunBadDates(t *testing.T) {
	m := NewMain()
	m.LocalDir = t.TempDir()
	m.StartDate = "2025-06-02"
	m.EndDate = "2025-06-01"
	if err := m.Run(context.Background()); err == nil {
		t.Fatal("expected error for inverted date range")
	}

	m = NewMain()
	m.LocalDir = t.TempDir()
	m.StartDate = "June 1"
	if err := m.Run(context.Background()); err == nil {
		t.Fatal("expected error for malformed start date")
	}
}

func TestRunUnknownRegistryBackend(t *testing.T) {
	m := NewMain()
	m.LocalDir = t.TempDir()
	m.KeyRegistry = filepath.Join(t.TempDir(), "keys.db")
	m.KeyBackend = "redis"
	if err := m.Run(context.Background()); err == nil {
		t.Fatal("expected error for unknown registry backend")
	}
}
