package transform

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
)

// processedPrefix is where output tables live; each table owns one prefix
// beneath it.
const processedPrefix = "processed-data/"

// Warehouse is the storage the transform reads raw snapshots from and writes
// output tables to. Implemented by aws/s3.Store and file.Store.
type Warehouse interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	DeletePrefix(ctx context.Context, prefix string) error
	RawSource(ctx context.Context, prefix string) (pulse.RawSource, error)
}

// writeTable replaces a table's prefix with a single Parquet part file
// holding rows. The delete and the put are separate storage operations;
// failing between them leaves the table empty rather than stale (no
// transactional guarantee, matching the rest of the job).
func writeTable[T any](ctx context.Context, ws Warehouse, table string, rows []T, stats pulse.Statter) error {
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[T](&buf)
	if _, err := w.Write(rows); err != nil {
		return errors.Wrapf(err, "encoding %v", table)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "closing %v encoder", table)
	}

	prefix := processedPrefix + table + "/"
	if err := ws.DeletePrefix(ctx, prefix); err != nil {
		return errors.Wrapf(err, "clearing %v", table)
	}
	if err := ws.Put(ctx, prefix+"part-00000.parquet", buf.Bytes(), "application/octet-stream"); err != nil {
		return errors.Wrapf(err, "writing %v", table)
	}

	stats.Count("rows-written", int64(len(rows)), 1, "table:"+table)
	slog.Info("wrote table", "table", table, "rows", len(rows))
	return nil
}
