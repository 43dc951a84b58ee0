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

package boltdb

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.db")

	reg, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("opening registry: %v", err)
	}
	if err := reg.Check("dim_crypto", "bitcoin", 42); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := reg.Check("dim_crypto", "bitcoin", 42); err != nil {
		t.Fatalf("repeat registration: %v", err)
	}
	if err := reg.Check("dim_content", "bitcoin", 42); err != nil {
		t.Fatalf("cross-table registration: %v", err)
	}
	if err := reg.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	// Registrations survive reopening; a colliding natural key from a later
	// run is caught.
	reg, err = NewRegistry(path)
	if err != nil {
		t.Fatalf("reopening registry: %v", err)
	}
	defer reg.Close()
	err = reg.Check("dim_crypto", "ethereum", 42)
	if err == nil || !strings.Contains(err.Error(), "collision") {
		t.Fatalf("expected collision error, got %v", err)
	}
}
