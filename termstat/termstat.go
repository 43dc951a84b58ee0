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

// Package termstat provides a stats implementation which accumulates counters
// in memory and prints them to the given writer when flushed. The pipeline
// jobs are short batch runs, so a single summary at exit is more useful than
// an external collector writing to graphite or datadog.
package termstat

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Collector collects stats and prints them to the terminal on Flush.
type Collector struct {
	lock   sync.Mutex
	counts map[string]int64
	out    io.Writer
}

// NewCollector initializes and returns a new Collector.
func NewCollector(out io.Writer) *Collector {
	return &Collector{
		counts: make(map[string]int64),
		out:    out,
	}
}

// Count adds value to the named stat. Each distinct tag set gets its own
// counter. The rate argument satisfies the Statter interface but batch runs
// never sample, so it is ignored.
func (t *Collector) Count(name string, value int64, rate float64, tags ...string) {
	key := name
	if len(tags) > 0 {
		key = name + "[" + strings.Join(tags, ",") + "]"
	}
	t.lock.Lock()
	t.counts[key] += value
	t.lock.Unlock()
}

// Flush writes every counter in sorted order, one per line.
func (t *Collector) Flush() {
	t.lock.Lock()
	defer t.lock.Unlock()
	if len(t.counts) == 0 {
		return
	}
	names := make([]string, 0, len(t.counts))
	for name := range t.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(t.out, "%s: %d\n", name, t.counts[name])
	}
}
