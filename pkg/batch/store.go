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
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/transitionnets/seqlink/pkg/metrics"
)

const (
	// DefaultStoreTTL is how long a batch stays in the store without being read.
	DefaultStoreTTL = 10 * time.Minute
	// DefaultStoreCapacity bounds the number of batches held at once.
	DefaultStoreCapacity = 1024
)

// StoreConfig configures a batch store.
type StoreConfig struct {
	// TTL is the time a batch may stay in the store without being read.
	TTL time.Duration
	// Capacity is the maximum number of batches held at once. The least
	// recently used batch is dropped when the store is full.
	Capacity uint64
}

// Store caches batches under their content keys with TTL eviction. Reading a
// live entry refreshes its TTL. Identical record content shares an entry.
type Store struct {
	cache *ttlcache.Cache[uint64, *Batch]
}

// NewStore initializes a new Store and returns its pointer.
func NewStore(config StoreConfig) *Store {
	if config.TTL <= 0 {
		config.TTL = DefaultStoreTTL
	}
	if config.Capacity == 0 {
		config.Capacity = DefaultStoreCapacity
	}

	store := &Store{
		cache: ttlcache.New(
			ttlcache.WithTTL[uint64, *Batch](config.TTL),
			ttlcache.WithCapacity[uint64, *Batch](config.Capacity),
		),
	}

	store.cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, _ *ttlcache.Item[uint64, *Batch]) {
		if reason != ttlcache.EvictionReasonExpired {
			return
		}
		metrics.RecordBatchStoreEviction()
	})

	go store.cache.Start()
	return store
}

// Put stores the batch under its content key and returns the key.
func (s *Store) Put(b *Batch) uint64 {
	key := b.Key()
	s.cache.Set(key, b, ttlcache.DefaultTTL)
	metrics.RecordBatchStoreSize(s.cache.Len())
	return key
}

// Get returns the batch stored under key, refreshing its TTL on a hit.
func (s *Store) Get(key uint64) (*Batch, bool) {
	item := s.cache.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Len returns the number of batches currently held.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Stop ends the background expiry loop. The store must not be used after.
func (s *Store) Stop() {
	s.cache.Stop()
}
