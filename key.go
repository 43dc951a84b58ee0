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

package pulse

import (
	"sync"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// Key derives the surrogate key for the given natural-key fields. The fields
// are hashed in order with no separator, so Key("a", "b") == Key("ab") - the
// same concatenation the fact and dimension projections both rely on. The
// hash is stable across runs and processes; downstream tables join on it, so
// changing it invalidates every previously written table.
func Key(fields ...string) uint64 {
	h := xxhash.New()
	for _, f := range fields {
		_, _ = h.Write([]byte(f))
	}
	return h.Sum64()
}

// KeyRegistry records every (natural key, surrogate key) pair the transform
// derives, and complains if two distinct natural keys ever hash to the same
// surrogate key within one table. Hash collisions are otherwise silently
// tolerated by the pipeline, which would quietly merge the colliding
// entities in every downstream join.
//
// Persistent implementations backed by BoltDB and LevelDB live in the boltdb
// and leveldb packages.
type KeyRegistry interface {
	// Check records the mapping and returns an error if key was previously
	// recorded under table for a different natural key.
	Check(table, naturalKey string, key uint64) error
	Close() error
}

// MapKeyRegistry is an in-memory KeyRegistry. Registrations do not survive
// the process, so it only catches collisions within a single run.
type MapKeyRegistry struct {
	mu     sync.Mutex
	tables map[string]map[uint64]string
}

// NewMapKeyRegistry creates a new MapKeyRegistry.
func NewMapKeyRegistry() *MapKeyRegistry {
	return &MapKeyRegistry{
		tables: make(map[string]map[uint64]string),
	}
}

// Check implements KeyRegistry.
func (m *MapKeyRegistry) Check(table, naturalKey string, key uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys, ok := m.tables[table]
	if !ok {
		keys = make(map[uint64]string)
		m.tables[table] = keys
	}
	if prev, ok := keys[key]; ok {
		if prev != naturalKey {
			return errors.Errorf("key collision in '%v': %d maps to both %q and %q", table, key, prev, naturalKey)
		}
		return nil
	}
	keys[key] = naturalKey
	return nil
}

// Close implements KeyRegistry. It is a no-op for the in-memory registry.
func (m *MapKeyRegistry) Close() error { return nil }

// NopKeyRegistry accepts every registration. It is the default when collision
// checking is disabled.
type NopKeyRegistry struct{}

// Check does nothing.
func (NopKeyRegistry) Check(table, naturalKey string, key uint64) error { return nil }

// Close does nothing.
func (NopKeyRegistry) Close() error { return nil }
