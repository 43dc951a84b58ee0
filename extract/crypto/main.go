package crypto

import (
	"context"
	"log/slog"
	"time"

	"github.com/pulsedata/pulse"
	"github.com/pulsedata/pulse/extract"
)

// Main holds the options for the crypto extractor job.
type Main struct {
	Bucket   string `help:"S3 bucket raw snapshots are written to."`
	Region   string `help:"AWS region of the bucket."`
	LocalDir string `help:"Write the snapshot beneath this local directory instead of S3."`

	stats pulse.Statter
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Region: "us-east-1",
		stats:  pulse.NopStatter{},
	}
}

// SetStatter sets the stats collector for the run.
func (m *Main) SetStatter(s pulse.Statter) { m.stats = s }

// Run fetches the coin listing and lands it as one timestamped snapshot. It
// always returns a Result; any failure after configuration checks is a
// server-error Result, mirroring the invocation contract.
func (m *Main) Run(ctx context.Context) extract.Result {
	store, err := extract.OpenStore(m.Region, m.Bucket, m.LocalDir)
	if err != nil {
		slog.Error("configuring snapshot store", "err", err)
		return extract.ClientError(err.Error())
	}

	now := time.Now().UTC()
	snaps, err := NewClient(extract.NewHTTPClient()).Extract(ctx, now)
	if err != nil {
		slog.Error("extracting crypto data", "err", err)
		return extract.ServerError(err)
	}
	m.stats.Count("records", int64(len(snaps)), 1, "source:crypto")

	body, err := extract.MarshalRecords(snaps)
	if err != nil {
		slog.Error("marshaling crypto snapshot", "err", err)
		return extract.ServerError(err)
	}
	key := extract.SnapshotKey("crypto", "crypto_prices", now)
	if err := store.Put(ctx, key, body, "application/json"); err != nil {
		slog.Error("uploading crypto snapshot", "err", err)
		return extract.ServerError(err)
	}

	slog.Info("uploaded crypto prices", "count", len(snaps), "filename", key)
	return extract.OK(len(snaps), "crypto prices", key)
}
