// Package extract holds the pieces shared by the three extractor jobs: the
// HTTP client they fetch with, the invocation Result contract, snapshot
// naming, and the storage hookup.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse/aws/s3"
	"github.com/pulsedata/pulse/file"
)

// Timeout applies to every individual API call an extractor makes. Calls are
// sequential and blocking; there is no retry.
const Timeout = 10 * time.Second

// NewHTTPClient returns the client extractors use for all API calls.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: Timeout}
}

// Result is what an extractor invocation reports: an HTTP-style status code
// and a JSON body carrying either a success message plus the written
// snapshot key, or an error message.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// OK builds a 200 Result for count records written to filename.
func OK(count int, noun, filename string) Result {
	body, _ := json.Marshal(map[string]string{
		"message":  fmt.Sprintf("Successfully processed %d %s", count, noun),
		"filename": filename,
	})
	return Result{StatusCode: http.StatusOK, Body: string(body)}
}

// ClientError builds a 400 Result. Used for configuration problems (missing
// credentials) detected before any fetch.
func ClientError(msg string) Result {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return Result{StatusCode: http.StatusBadRequest, Body: string(body)}
}

// ServerError builds a 500 Result from an unexpected failure.
func ServerError(err error) Result {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return Result{StatusCode: http.StatusInternalServerError, Body: string(body)}
}

// Store is the single storage operation extractors need.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// OpenStore picks the snapshot store for an extractor Main: the local
// directory if localDir is set, otherwise S3.
func OpenStore(region, bucket, localDir string) (Store, error) {
	if localDir != "" {
		return file.NewStore(localDir)
	}
	if bucket == "" {
		return nil, errors.New("bucket must be set (or use a local directory)")
	}
	return s3.NewStore(region, bucket)
}

// SnapshotKey builds the timestamped object key for one extractor run:
// raw-data/<source>/<entity>_<yyyyMMdd_HHMMSS>.json. Keys are unique per
// invocation second, so runs never overwrite each other.
func SnapshotKey(source, entity string, now time.Time) string {
	return fmt.Sprintf("raw-data/%s/%s_%s.json", source, entity, now.Format("20060102_150405"))
}

// MarshalRecords renders the full record list as one indented JSON array,
// the snapshot document format.
func MarshalRecords(recs interface{}) ([]byte, error) {
	body, err := json.MarshalIndent(recs, "", "  ")
	return body, errors.Wrap(err, "marshaling records")
}

// GetJSON issues one GET and decodes the response body into out. Non-2xx
// statuses are errors.
func GetJSON(ctx context.Context, client *http.Client, url string, header http.Header, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "issuing request")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("unexpected status %v", resp.Status)
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decoding response")
}
