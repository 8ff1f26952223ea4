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

package attrx

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/builder"
	"dirpx.dev/attrx/config"
	"dirpx.dev/attrx/errors"
	"dirpx.dev/attrx/model"
)

// init initializes the global engine state.
func init() {
	s := &state{
		cfg:  config.DefaultConfig(),
		log:  zap.NewNop(),
		inst: model.Instantiator{},
		bld:  builder.New(),
	}
	s.res = build(s)
	st.Store(s)
}

// ErrNilResolver is raised when a builder returns a nil resolver.
var ErrNilResolver = errors.New("attrx: builder returned nil resolver")

// Resolve returns the attribute of kind k that applies to d, directly or
// through meta-attributes, or nil if none does.
// This is a convenience wrapper around the global resolver.
func Resolve(d apis.Declaration, k apis.Kind) (apis.Instance, error) {
	return st.Load().res.Resolve(d, k)
}

// Contains reports whether Resolve(d, k) finds an instance.
// This is a convenience wrapper around the global resolver.
func Contains(d apis.Declaration, k apis.Kind) (bool, error) {
	return st.Load().res.Contains(d, k)
}

// ClearCache drops every cached positive and negative result.
func ClearCache() {
	st.Load().res.ClearCache()
}

// SetPositiveCacheCapacity bounds the live positive cache. The change takes
// effect on the next insertion. A rebuild triggered later by SetConfig,
// SetLogger, SetInstantiator or SetBuilder starts from Config again.
func SetPositiveCacheCapacity(n int) {
	st.Load().res.SetPositiveCapacity(n)
}

// SetNegativeCacheCapacity bounds the live negative cache, like
// SetPositiveCacheCapacity.
func SetNegativeCacheCapacity(n int) {
	st.Load().res.SetNegativeCapacity(n)
}

// Stats returns the counters of the global resolver.
func Stats() apis.Stats {
	return st.Load().res.Stats()
}

// DefaultInstance builds an instance of k from values using the global
// instantiator. Properties missing from values take their defaults.
func DefaultInstance(k apis.Kind, values map[string]any) (apis.Instance, error) {
	return st.Load().inst.Instantiate(k, values)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration and rebuilds the resolver
// unless it is pinned. The rebuilt resolver starts with empty caches.
func SetConfig(cfg apis.Config) {
	update(func(s *state) { s.cfg = cfg })
}

// Logger returns the global logger.
func Logger() *zap.Logger {
	return st.Load().log
}

// SetLogger replaces the global logger and rebuilds the resolver unless it
// is pinned. A nil logger is ignored.
func SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	update(func(s *state) { s.log = l })
}

// Instantiator returns the global instantiator.
func Instantiator() apis.Instantiator {
	return st.Load().inst
}

// SetInstantiator replaces the instantiator used to synthesize merged and
// projected instances, and rebuilds the resolver unless it is pinned.
// A nil instantiator is ignored.
func SetInstantiator(in apis.Instantiator) {
	if in == nil {
		return
	}
	update(func(s *state) { s.inst = in })
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds the resolver with it
// unless the resolver is pinned. A nil builder is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(s *state) { s.bld = b })
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res as the global resolver and pins it: later
// configuration changes no longer rebuild it until UnpinResolver.
// A nil resolver is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	ns := *st.Load()
	ns.res = res
	ns.pres = true
	st.Store(&ns)
}

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// UnpinResolver lets configuration changes rebuild the resolver again.
// The current resolver stays in place until the next change.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	ns := *st.Load()
	ns.pres = false
	st.Store(&ns)
}

// update applies change to a copy of the current state, rebuilds the
// resolver unless pinned, and publishes the result.
func update(change func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Copy the old state; the published one is never mutated.
	ns := *st.Load()
	change(&ns)
	if !ns.pres {
		ns.res = build(&ns)
	}
	st.Store(&ns)
}

// build constructs a resolver over a fresh cache from s.
func build(s *state) apis.Resolver {
	c := s.bld.BuildCache(s.cfg, s.log)
	res := s.bld.BuildResolver(s.cfg, c, s.inst, s.log)
	if res == nil {
		panic(ErrNilResolver)
	}
	return res
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the global engine state.
var st atomic.Pointer[state]

// state is the global engine snapshot.
// Immutable once published via st.Store. Writers create a new state and
// swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// log receives debug events from the cache and resolver.
	log *zap.Logger
	// inst synthesizes merged and projected instances.
	inst apis.Instantiator
	// bld constructs caches and resolvers.
	bld apis.Builder
	// res is the global resolver.
	res apis.Resolver
	// pres indicates whether res is pinned.
	pres bool
}
