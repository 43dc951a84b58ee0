package extract

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestSnapshotKey(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)
	got := SnapshotKey("reddit", "reddit_posts", now)
	want := "raw-data/reddit/reddit_posts_20240115_103045.json"
	if got != want {
		t.Fatalf("got %q, expected %q", got, want)
	}
}

func TestResults(t *testing.T) {
	res := OK(50, "crypto prices", "raw-data/crypto/crypto_prices_20240115_103045.json")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(res.Body), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["message"] != "Successfully processed 50 crypto prices" {
		t.Fatalf("unexpected message: %q", body["message"])
	}
	if body["filename"] != "raw-data/crypto/crypto_prices_20240115_103045.json" {
		t.Fatalf("unexpected filename: %q", body["filename"])
	}

	res = ClientError("api-key must be set")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	if err := json.Unmarshal([]byte(res.Body), &body); err != nil || body["error"] == "" {
		t.Fatalf("unexpected client error body: %q (%v)", res.Body, err)
	}

	res = ServerError(errors.New("boom"))
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	if err := json.Unmarshal([]byte(res.Body), &body); err != nil || body["error"] != "boom" {
		t.Fatalf("unexpected server error body: %q (%v)", res.Body, err)
	}
}

func TestOpenStoreRequiresTarget(t *testing.T) {
	if _, err := OpenStore("us-east-1", "", ""); err == nil {
		t.Fatalf("expected error with neither bucket nor local directory")
	}
	if _, err := OpenStore("us-east-1", "", t.TempDir()); err != nil {
		t.Fatalf("local store: %v", err)
	}
}
