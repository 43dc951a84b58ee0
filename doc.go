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

// Package pulse contains the shared pieces of the pulse batch pipeline: the
// raw record types produced by the extractors, surrogate key derivation for
// the dimensional model, the RawSource abstraction over snapshot storage, and
// the Statter interface for run statistics.
//
// The pipeline itself is a handful of batch jobs exposed as subcommands of
// the pulse binary (see cmd/):
//
// 1. Extractors
//
//	pulse crypto, pulse news, and pulse reddit each call one external API,
//	flatten the response into a list of records, and land the list as a
//	timestamped JSON snapshot under raw-data/<source>/ in object storage.
//	Runs never overwrite each other; every invocation writes a new
//	snapshot keyed by its start time.
//
// 2. Transform
//
//	pulse transform reads the full raw catalog for each source, derives a
//	date dimension plus per-source dimension and fact projections, and
//	writes the seven resulting tables as Parquet under processed-data/,
//	wholesale-replacing the previous run's output.
//
// Everything is single-threaded and batch-oriented: sequential blocking HTTP
// calls with a fixed timeout, one in-memory pass per source, whole-table
// writes. Components never call each other directly; they communicate only
// through the storage boundary.
package pulse
