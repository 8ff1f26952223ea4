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

package resolver

import (
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/errors"
)

// Resolver resolves attributes through meta-attributes and repeatable
// containers, caching positive and negative results in an apis.Cache.
// It is safe for concurrent use; two goroutines missing the cache for the
// same pair both compute and the later store wins.
type Resolver struct {
	// cfg holds the resolution knobs.
	cfg apis.Config
	// cache holds positive and negative results.
	cache apis.Cache
	// inst synthesizes merged and projected instances.
	inst apis.Instantiator
	// mix is the marker kind that enables merging a direct container. May be nil.
	mix apis.Kind
	// log receives debug events.
	log *zap.Logger
	// computes counts cache misses that ran the algorithm.
	computes atomic.Uint64
}

// Ensure Resolver implements apis.Resolver.
var _ apis.Resolver = (*Resolver)(nil)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for debug events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMixMarker sets the kind whose presence on a container kind enables
// merging a directly-present container with reachable children.
func WithMixMarker(k apis.Kind) Option {
	return func(r *Resolver) {
		r.mix = k
	}
}

// New constructs a Resolver over c that synthesizes instances with inst.
func New(cfg apis.Config, c apis.Cache, inst apis.Instantiator, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:   cfg,
		cache: c,
		inst:  inst,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the attribute of kind k that applies to d, or nil.
func (r *Resolver) Resolve(d apis.Declaration, k apis.Kind) (apis.Instance, error) {
	if d == nil {
		return nil, errors.WithStack(errors.ErrNilDeclaration)
	}
	if k == nil {
		return nil, errors.WithStack(errors.ErrNilKind)
	}
	found, _, err := r.resolve(nil, d, k, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s on %s", k.Name(), d.Name())
	}
	return found, nil
}

// Contains reports whether Resolve(d, k) finds an instance.
func (r *Resolver) Contains(d apis.Declaration, k apis.Kind) (bool, error) {
	found, err := r.Resolve(d, k)
	return found != nil, err
}

// ClearCache drops every cached result.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

// SetPositiveCapacity bounds the positive cache.
func (r *Resolver) SetPositiveCapacity(n int) {
	r.cache.SetPositiveCapacity(n)
}

// SetNegativeCapacity bounds the negative cache.
func (r *Resolver) SetNegativeCapacity(n int) {
	r.cache.SetNegativeCapacity(n)
}

// Stats returns resolver and cache counters.
func (r *Resolver) Stats() apis.Stats {
	s := r.cache.Stats()
	s.Computes = r.computes.Load()
	return s
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() apis.Config {
	return r.cfg
}
