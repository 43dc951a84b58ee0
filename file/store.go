// Package file implements the same storage contract as aws/s3 over a local
// directory tree. It backs tests and local runs: `pulse gen` can land fake
// snapshots in a directory and `pulse transform --local-dir` can process them
// without any AWS credentials.
package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
)

// Store reads and writes objects as files beneath a root directory. Keys use
// forward slashes and map directly to subpaths.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating root '%v'", dir)
	}
	return &Store{root: dir}, nil
}

// Put writes one object, creating intermediate directories.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating directory for %v", key)
	}
	return errors.Wrapf(os.WriteFile(path, body, 0644), "writing %v", key)
}

// DeletePrefix removes every object under prefix.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	keys, err := s.list(prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		path := filepath.Join(s.root, filepath.FromSlash(key))
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "removing %v", key)
		}
	}
	return nil
}

// RawSource returns a pulse.RawSource over all objects under prefix, in
// lexical key order.
func (s *Store) RawSource(ctx context.Context, prefix string) (pulse.RawSource, error) {
	keys, err := s.list(prefix)
	if err != nil {
		return nil, err
	}
	return &RawSource{root: s.root, keys: keys}, nil
}

// List returns the keys under prefix in lexical order. Tests use it to
// assert overwrite semantics.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return s.list(prefix)
}

func (s *Store) list(prefix string) ([]string, error) {
	var keys []string
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking '%v'", s.root)
	}
	sort.Strings(keys)
	return keys, nil
}

// RawSource is a pulse.RawSource over files beneath a directory.
type RawSource struct {
	root string
	keys []string
	idx  int
}

// NextReader opens the next file, or returns io.EOF when the listing is
// exhausted.
func (rs *RawSource) NextReader() (pulse.NamedReadCloser, error) {
	if rs.idx >= len(rs.keys) {
		return nil, io.EOF
	}
	key := rs.keys[rs.idx]
	rs.idx++

	f, err := os.Open(filepath.Join(rs.root, filepath.FromSlash(key)))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", key)
	}
	return &fileReader{name: key, f: f}, nil
}

type fileReader struct {
	name string
	f    *os.File
}

func (f *fileReader) Read(buf []byte) (int, error) { return f.f.Read(buf) }
func (f *fileReader) Close() error                 { return f.f.Close() }
func (f *fileReader) Name() string                 { return f.name }

var _ io.ReadCloser = (*fileReader)(nil)
