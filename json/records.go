// Package json decodes raw snapshot documents into typed records. Each
// extractor invocation lands one JSON array document; the transform reads the
// whole catalog for a source by concatenating the records of every snapshot
// under the source's prefix.
package json

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
)

// DecodeRecords decodes one snapshot document into records of type T. The
// canonical snapshot format is a single top-level JSON array; a stream of
// concatenated top-level objects is also accepted.
func DecodeRecords[T any](r io.Reader) ([]T, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading document")
	}
	trimmed := bytes.TrimSpace(buf)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var recs []T
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, errors.Wrap(err, "decoding array")
		}
		return recs, nil
	}

	var recs []T
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	for {
		var rec T
		err := dec.Decode(&rec)
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding object stream")
		}
		recs = append(recs, rec)
	}
}

// ReadAllRecords drains a pulse.RawSource, decoding every snapshot it
// produces and concatenating the records. This is the transform's view of
// "the full current set of raw records" for one source.
func ReadAllRecords[T any](rs pulse.RawSource) ([]T, error) {
	var out []T
	for {
		rdr, err := rs.NextReader()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "getting next reader")
		}
		recs, err := DecodeRecords[T](rdr)
		rdr.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %v", rdr.Name())
		}
		out = append(out, recs...)
	}
}
