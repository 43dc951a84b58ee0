// Copyright 2024 Pulse Data Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package boltdb provides a pulse.KeyRegistry backed by BoltDB, so surrogate
// key collisions are detected across transform runs, not just within one.
package boltdb

import (
	"encoding/binary"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/pulsedata/pulse"
)

var _ pulse.KeyRegistry = (*Registry)(nil)

// Registry is a pulse.KeyRegistry which stores each table's surrogate key →
// natural key mapping in its own bolt bucket.
type Registry struct {
	db *bolt.DB
}

// NewRegistry opens (or creates) the registry database at filename.
func NewRegistry(filename string) (*Registry, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening db file '%v'", filename)
	}
	return &Registry{db: db}, nil
}

// Check records the mapping and returns an error if key was previously
// recorded under table for a different natural key.
func (r *Registry) Check(table, naturalKey string, key uint64) error {
	keyBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(keyBytes, key)

	err := r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return errors.Wrapf(err, "creating bucket '%v'", table)
		}
		if prev := b.Get(keyBytes); prev != nil {
			if string(prev) != naturalKey {
				return errors.Errorf("key collision in '%v': %d maps to both %q and %q", table, key, prev, naturalKey)
			}
			return nil
		}
		return b.Put(keyBytes, []byte(naturalKey))
	})
	return err
}

// Close syncs and closes the underlying boltdb.
func (r *Registry) Close() error {
	if err := r.db.Sync(); err != nil {
		return errors.Wrap(err, "syncing db")
	}
	return r.db.Close()
}
