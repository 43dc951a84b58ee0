package json

import (
	"context"
	"strings"
	"testing"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/file"
)

func TestDecodeRecordsArray(t *testing.T) {
	doc := `[
  {"post_id": "abc", "score": 100, "num_comments": 50},
  {"post_id": "def", "score": 3, "num_comments": 0}
]`
	recs, err := DecodeRecords[pulse.RedditPost](strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].PostID != "abc" || recs[0].Score != 100 {
		t.Fatalf("unexpected first record: %#v", recs[0])
	}
}

func TestDecodeRecordsObjectStream(t *testing.T) {
	doc := `{"coin_id": "bitcoin"}
{"coin_id": "ethereum"}`
	recs, err := DecodeRecords[pulse.CoinSnapshot](strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(recs) != 2 || recs[1].CoinID != "ethereum" {
		t.Fatalf("unexpected records: %#v", recs)
	}
}

func TestDecodeRecordsNulls(t *testing.T) {
	// Missing fields map to nothing; explicit nulls decode without error.
	doc := `[{"title": null, "description": "a positive take", "category": "science"}]`
	recs, err := DecodeRecords[pulse.NewsArticle](strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if recs[0].Title != nil {
		t.Fatalf("expected nil title, got %q", *recs[0].Title)
	}
	if recs[0].Description == nil || *recs[0].Description != "a positive take" {
		t.Fatalf("unexpected description: %#v", recs[0].Description)
	}
}

func TestDecodeRecordsEmpty(t *testing.T) {
	recs, err := DecodeRecords[pulse.RedditPost](strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestReadAllRecords(t *testing.T) {
	ctx := context.Background()
	s, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("getting store: %v", err)
	}

	snaps := map[string]string{
		"raw-data/crypto/crypto_prices_20240101_000000.json": `[{"coin_id": "bitcoin"}, {"coin_id": "ethereum"}]`,
		"raw-data/crypto/crypto_prices_20240102_000000.json": `[{"coin_id": "solana"}]`,
	}
	for key, doc := range snaps {
		if err := s.Put(ctx, key, []byte(doc), "application/json"); err != nil {
			t.Fatalf("putting %v: %v", key, err)
		}
	}

	rs, err := s.RawSource(ctx, "raw-data/crypto/")
	if err != nil {
		t.Fatalf("getting raw source: %v", err)
	}
	recs, err := ReadAllRecords[pulse.CoinSnapshot](rs)
	if err != nil {
		t.Fatalf("reading records: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records across snapshots, got %d", len(recs))
	}
}
