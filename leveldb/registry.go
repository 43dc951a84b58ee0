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

// Package leveldb provides a pulse.KeyRegistry backed by LevelDB. Same
// contract as the boltdb registry with better write throughput; useful when
// registering every key of a large raw catalog.
package leveldb

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/pulsedata/pulse"
)

var _ pulse.KeyRegistry = (*Registry)(nil)

// Registry is a pulse.KeyRegistry which stores surrogate key → natural key
// mappings in a single leveldb, namespaced by table name.
type Registry struct {
	db *leveldb.DB
}

// NewRegistry opens (or creates) the registry database in dirname.
func NewRegistry(dirname string) (*Registry, error) {
	db, err := leveldb.OpenFile(dirname, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb in '%v'", dirname)
	}
	return &Registry{db: db}, nil
}

// dbKey namespaces a surrogate key by table. Table names never contain the
// zero byte.
func dbKey(table string, key uint64) []byte {
	out := make([]byte, 0, len(table)+9)
	out = append(out, table...)
	out = append(out, 0)
	return binary.BigEndian.AppendUint64(out, key)
}

// Check records the mapping and returns an error if key was previously
// recorded under table for a different natural key.
func (r *Registry) Check(table, naturalKey string, key uint64) error {
	k := dbKey(table, key)
	prev, err := r.db.Get(k, nil)
	if err == nil {
		if string(prev) != naturalKey {
			return errors.Errorf("key collision in '%v': %d maps to both %q and %q", table, key, prev, naturalKey)
		}
		return nil
	}
	if err != leveldb.ErrNotFound {
		return errors.Wrapf(err, "getting key %d in '%v'", key, table)
	}
	return errors.Wrapf(r.db.Put(k, []byte(naturalKey), nil), "putting key %d in '%v'", key, table)
}

// Close closes the underlying leveldb.
func (r *Registry) Close() error {
	return r.db.Close()
}
