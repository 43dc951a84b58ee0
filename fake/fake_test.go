package fake_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/fake"
	"github.com/pulsedata/pulse/file"
	"github.com/pulsedata/pulse/json"
	"github.com/pulsedata/pulse/transform"
)

func TestGeneratorDeterminism(t *testing.T) {
	now := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	a := fake.NewGenerator(42).Posts(10, now)
	b := fake.NewGenerator(42).Posts(10, now)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed should generate the same posts")
	}
	c := fake.NewGenerator(43).Posts(10, now)
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds should generate different posts")
	}
}

func TestGeneratedRecordsTransform(t *testing.T) {
	now := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	g := fake.NewGenerator(7)

	posts := g.Posts(50, now)
	dims, facts := transform.Reddit(posts)
	if len(facts) != 50 {
		t.Fatalf("expected 50 engagement facts, got %d", len(facts))
	}
	if len(dims) == 0 {
		t.Fatal("expected content dim rows")
	}

	articles := g.Articles(30, now)
	if _, _, err := transform.News(articles); err != nil {
		t.Fatalf("generated articles should transform cleanly: %v", err)
	}

	coins := g.Coins(8, now)
	if len(coins) != 8 {
		t.Fatalf("expected 8 coins, got %d", len(coins))
	}
	if _, _, err := transform.Crypto(coins); err != nil {
		t.Fatalf("generated coins should transform cleanly: %v", err)
	}
}

func TestCoinsCapped(t *testing.T) {
	now := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	coins := fake.NewGenerator(1).Coins(100, now)
	if len(coins) != 8 {
		t.Fatalf("expected coin list capped at 8, got %d", len(coins))
	}

	dir := t.TempDir()
	m := fake.NewMain()
	m.LocalDir = dir
	m.Posts = 1
	m.Articles = 1
	m.Coins = 100
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("running generator: %v", err)
	}
	store, err := file.NewStore(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	rs, err := store.RawSource(context.Background(), "raw-data/crypto/")
	if err != nil {
		t.Fatalf("opening raw source: %v", err)
	}
	written, err := json.ReadAllRecords[pulse.CoinSnapshot](rs)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if len(written) != 8 {
		t.Fatalf("expected 8 coins written, got %d", len(written))
	}
}

func TestMainRun(t *testing.T) {
	dir := t.TempDir()
	m := fake.NewMain()
	m.LocalDir = dir
	m.Posts = 5
	m.Articles = 3
	m.Coins = 2
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("running generator: %v", err)
	}

	store, err := file.NewStore(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	for _, source := range []string{"reddit", "news", "crypto"} {
		keys, err := store.List(context.Background(), "raw-data/"+source+"/")
		if err != nil {
			t.Fatalf("listing %v: %v", source, err)
		}
		if len(keys) != 1 {
			t.Fatalf("expected 1 snapshot for %v, got %v", source, keys)
		}
		if filepath.Ext(keys[0]) != ".json" {
			t.Fatalf("unexpected snapshot key %v", keys[0])
		}
	}
}
