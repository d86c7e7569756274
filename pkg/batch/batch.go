/*
Copyright 2025 The SeqLink Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package batch

import (
	"encoding/binary"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Batch is a handle on one batch of raw input records, the sequences a
// pipeline component steps through. A batch is immutable after construction
// and safe for concurrent use. A batch with zero records is valid; consumers
// that only need the handle can run against it.
type Batch struct {
	records []string

	tokensOnce sync.Once
	tokens     [][]string

	keyOnce sync.Once
	key     uint64
}

// New returns a batch over the given records. Callers must not modify the
// records after handing them over.
func New(records ...string) *Batch {
	return &Batch{records: records}
}

// Size returns the number of records in the batch.
func (b *Batch) Size() int {
	return len(b.records)
}

// Record returns the raw record at index i.
func (b *Batch) Record(i int) string {
	return b.records[i]
}

// Tokens returns the whitespace-separated tokens of record i. Token views
// for all records are computed on first use and cached.
func (b *Batch) Tokens(i int) []string {
	b.tokensOnce.Do(func() {
		b.tokens = make([][]string, len(b.records))
		for j, record := range b.records {
			b.tokens[j] = strings.Fields(record)
		}
	})
	return b.tokens[i]
}

// Key returns a hash of the batch content. Batches with identical records
// in identical order share a key. Records are length-prefixed before
// hashing so record boundaries contribute to the key.
func (b *Batch) Key() uint64 {
	b.keyOnce.Do(func() {
		h := xxhash.New()
		var n [8]byte
		for _, record := range b.records {
			binary.LittleEndian.PutUint64(n[:], uint64(len(record)))
			_, _ = h.Write(n[:])
			_, _ = h.Write([]byte(record))
		}
		b.key = h.Sum64()
	})
	return b.key
}
