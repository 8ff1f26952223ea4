/*
   Copyright 2025 The DIRPX Authors.

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

package cache

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"dirpx.dev/attrx/cache/strategy"
)

// Bounded is a capacity-bounded map that evicts its oldest entry once full.
//
// Under the Insertion strategy reads never reorder entries, so the entry
// evicted is always the least recently inserted one. Re-storing an existing
// key updates it in place without moving it. Capacity changes take effect
// on the next insertion; SetCapacity never evicts on its own.
//
// Reads are lock-free apart from the backing cache's read lock. Writers are
// serialized by mu.
type Bounded[K comparable, V any] struct {
	// mu serializes Put, Upsert, Remove, Clear and capacity changes.
	mu sync.Mutex
	// lru is the backing store. It is never reassigned.
	lru *lru.Cache
	// capacity is the configured bound.
	capacity int
	// pending is set when capacity changed and has not been applied yet.
	pending bool
	// quiet suppresses eviction accounting for explicit removals.
	quiet bool
	// policy selects read promotion or pass-through.
	policy strategy.Strategy
	// evictions counts capacity evictions.
	evictions atomic.Uint64
	// onEvict observes capacity evictions. May be nil.
	onEvict func(K, V)
}

// cell lets a stored value be replaced without touching its position.
type cell[V any] struct {
	v atomic.Pointer[V]
}

func newCell[V any](v V) *cell[V] {
	c := &cell[V]{}
	c.v.Store(&v)
	return c
}

// NewBounded creates a Bounded holding at most capacity entries.
// onEvict, if non-nil, is called for every entry dropped because of capacity.
func NewBounded[K comparable, V any](capacity int, policy strategy.Strategy, onEvict func(K, V)) *Bounded[K, V] {
	b := &Bounded[K, V]{capacity: capacity, policy: policy, onEvict: onEvict}
	size := capacity
	if size < 1 {
		// golang-lru refuses a zero size; the real bound is applied on first insert.
		size = 1
		b.pending = true
	}
	c, err := lru.NewWithEvict(size, b.evicted)
	if err != nil {
		panic(err) // unreachable: size is positive
	}
	b.lru = c
	return b
}

// Get returns the value stored under key.
func (b *Bounded[K, V]) Get(key K) (V, bool) {
	var zero V
	var raw any
	var ok bool
	switch b.policy {
	case strategy.None:
		return zero, false
	case strategy.Access:
		raw, ok = b.lru.Get(key)
	default:
		raw, ok = b.lru.Peek(key)
	}
	if !ok {
		return zero, false
	}
	return *raw.(*cell[V]).v.Load(), true
}

// Put stores v under key, evicting the oldest entry if the cache is full.
func (b *Bounded[K, V]) Put(key K, v V) {
	if b.policy == strategy.None {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if raw, ok := b.lru.Peek(key); ok {
		raw.(*cell[V]).v.Store(&v)
		return
	}
	b.insert(key, v)
}

// Upsert returns the value stored under key, storing create() first if the
// key is absent. With the None strategy create() is returned unstored.
func (b *Bounded[K, V]) Upsert(key K, create func() V) V {
	if b.policy == strategy.None {
		return create()
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if raw, ok := b.lru.Peek(key); ok {
		return *raw.(*cell[V]).v.Load()
	}
	v := create()
	b.insert(key, v)
	return v
}

// insert applies a pending capacity change and adds a new key. Callers hold mu.
func (b *Bounded[K, V]) insert(key K, v V) {
	if b.pending {
		b.lru.Resize(max(b.capacity, 0))
		b.pending = false
	}
	b.lru.Add(key, newCell(v))
}

// Remove drops key if present.
func (b *Bounded[K, V]) Remove(key K) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quiet = true
	b.lru.Remove(key)
	b.quiet = false
}

// Clear drops every entry. Capacity is unchanged.
func (b *Bounded[K, V]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quiet = true
	b.lru.Purge()
	b.quiet = false
}

// SetCapacity changes the bound. Existing entries above the new bound are
// evicted on the next insertion, not now.
func (b *Bounded[K, V]) SetCapacity(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.capacity = n
	b.pending = true
}

// Capacity returns the configured bound.
func (b *Bounded[K, V]) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}

// Len returns the number of stored entries.
func (b *Bounded[K, V]) Len() int {
	return b.lru.Len()
}

// Keys returns the keys from oldest to newest.
func (b *Bounded[K, V]) Keys() []K {
	raw := b.lru.Keys()
	out := make([]K, 0, len(raw))
	for _, k := range raw {
		out = append(out, k.(K))
	}
	return out
}

// Evictions returns the number of capacity evictions so far.
func (b *Bounded[K, V]) Evictions() uint64 {
	return b.evictions.Load()
}

// evicted is the golang-lru callback. It runs on the writer's goroutine
// while mu is held.
func (b *Bounded[K, V]) evicted(key, value interface{}) {
	if b.quiet {
		return
	}
	b.evictions.Add(1)
	if b.onEvict != nil {
		b.onEvict(key.(K), *value.(*cell[V]).v.Load())
	}
}
