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

	"go.uber.org/zap"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/config"
)

// Metadata is the resolver's two-tier cache: a positive side mapping each
// declaration to the instances resolved on it, and a negative side holding
// the kinds known to be absent on it. Both sides are Bounded and evict
// independently.
type Metadata struct {
	pos *Bounded[apis.Declaration, *instances]
	neg *Bounded[apis.Declaration, *kinds]
	log *zap.Logger

	hits    atomic.Uint64
	negHits atomic.Uint64
}

// Ensure Metadata implements apis.Cache.
var _ apis.Cache = (*Metadata)(nil)

// instances is a declaration's positive entry. Writers hold mu; readers
// rely on sync.Map.
type instances struct {
	mu sync.Mutex
	m  sync.Map // map[apis.Kind]apis.Instance
}

// kinds is a declaration's negative entry.
type kinds struct {
	mu sync.Mutex
	m  sync.Map // map[apis.Kind]struct{}
}

// Option configures a Metadata cache.
type Option func(*Metadata)

// WithLogger sets the logger used for eviction events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Metadata) {
		if l != nil {
			m.log = l
		}
	}
}

// New constructs an empty Metadata cache bounded according to cfg.
// Non-positive capacities fall back to the defaults.
func New(cfg apis.Config, opts ...Option) *Metadata {
	if cfg.PositiveCapacity <= 0 {
		cfg.PositiveCapacity = config.DefaultPositiveCapacity
	}
	if cfg.NegativeCapacity <= 0 {
		cfg.NegativeCapacity = config.DefaultNegativeCapacity
	}

	m := &Metadata{log: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	m.pos = NewBounded(cfg.PositiveCapacity, cfg.Policy, func(d apis.Declaration, _ *instances) {
		m.log.Debug("positive cache eviction", zap.String("declaration", d.Name()))
	})
	m.neg = NewBounded(cfg.NegativeCapacity, cfg.Policy, func(d apis.Declaration, _ *kinds) {
		m.log.Debug("negative cache eviction", zap.String("declaration", d.Name()))
	})
	return m
}

// Lookup returns the cached instance of k on d.
func (m *Metadata) Lookup(d apis.Declaration, k apis.Kind) (apis.Instance, bool) {
	e, ok := m.pos.Get(d)
	if !ok {
		return nil, false
	}
	v, ok := e.m.Load(k)
	if !ok {
		return nil, false
	}
	m.hits.Add(1)
	return v.(apis.Instance), true
}

// Store caches inst on d and clears a stale negative entry for the same kind.
func (m *Metadata) Store(d apis.Declaration, inst apis.Instance) {
	k := inst.Kind()
	e := m.pos.Upsert(d, func() *instances { return &instances{} })
	e.mu.Lock()
	e.m.Store(k, inst)
	e.mu.Unlock()

	if ne, ok := m.neg.Get(d); ok {
		ne.mu.Lock()
		ne.m.Delete(k)
		ne.mu.Unlock()
	}
}

// Absent reports whether k is recorded as absent on d.
func (m *Metadata) Absent(d apis.Declaration, k apis.Kind) bool {
	e, ok := m.neg.Get(d)
	if !ok {
		return false
	}
	if _, ok := e.m.Load(k); !ok {
		return false
	}
	m.negHits.Add(1)
	return true
}

// MarkAbsent records k as absent on d.
func (m *Metadata) MarkAbsent(d apis.Declaration, k apis.Kind) {
	e := m.neg.Upsert(d, func() *kinds { return &kinds{} })
	e.mu.Lock()
	e.m.Store(k, struct{}{})
	e.mu.Unlock()
}

// Clear drops every positive and negative entry.
func (m *Metadata) Clear() {
	m.pos.Clear()
	m.neg.Clear()
}

// SetPositiveCapacity bounds the positive side from the next insertion on.
func (m *Metadata) SetPositiveCapacity(n int) { m.pos.SetCapacity(n) }

// SetNegativeCapacity bounds the negative side from the next insertion on.
func (m *Metadata) SetNegativeCapacity(n int) { m.neg.SetCapacity(n) }

// Stats returns the cache counters. Computes is left to the resolver.
func (m *Metadata) Stats() apis.Stats {
	return apis.Stats{
		Hits:         m.hits.Load(),
		NegativeHits: m.negHits.Load(),
		Evictions:    m.pos.Evictions() + m.neg.Evictions(),
		Positive:     m.pos.Len(),
		Negative:     m.neg.Len(),
	}
}
