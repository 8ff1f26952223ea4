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

// Package attrx provides a global, process-wide attribute resolution engine.
//
// attrx answers one question: "does declaration D carry an attribute of
// kind K, and if so with which values?" The attribute may be present on D
// directly, or only reachable through meta-attributes: attributes placed on
// the kind declarations of D's attributes, recursively. Repeatable
// attributes are merged into a synthesized container, and values travel
// along meta-attribute chains according to projection rules declared on
// the kinds.
//
// # Design
//
// The core of attrx is a read-mostly global snapshot (state). The snapshot
// holds:
//
//   - Config: cache capacities, eviction policy and resolution knobs
//     (shallow-first probing, projection overlay, container mixing).
//
//   - Logger: a *zap.Logger receiving debug events from the caches and
//     the resolver. It defaults to a no-op logger.
//
//   - Instantiator: the factory that synthesizes merged containers and
//     projected instances from a kind and a property map.
//
//   - Resolver: the engine itself. It walks the meta-attribute graph,
//     merges repeatable attributes, projects values, and remembers both
//     what it found and what it did not find in bounded caches.
//
//   - Builder: a pluggable factory that constructs caches and resolvers
//     for a given Config.
//
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in:
//
//	inst, err := attrx.Resolve(decl, kind)
//	ok, err := attrx.Contains(decl, kind)
//
// # Global API
//
//  1. Resolution:
//
//     Resolve(d apis.Declaration, k apis.Kind) (apis.Instance, error)
//     Contains(d apis.Declaration, k apis.Kind) (bool, error)
//     DefaultInstance(k apis.Kind, values map[string]any) (apis.Instance, error)
//
//     Absence is not an error: Resolve returns a nil instance and a nil
//     error when no attribute of kind k applies.
//
//  2. Cache control:
//
//     ClearCache()
//     SetPositiveCacheCapacity(n int)
//     SetNegativeCacheCapacity(n int)
//     Stats() apis.Stats
//
//  3. Reconfiguration:
//
//     SetConfig, SetLogger, SetInstantiator, SetBuilder, SetResolver
//
//     Every reconfiguration except SetResolver rebuilds the resolver with
//     empty caches, unless the resolver is pinned.
//
// # Concurrency model
//
// Reads are wait-free on the snapshot; the resolver itself is safe for
// concurrent use and its caches tolerate concurrent readers and writers.
// Two goroutines missing the cache for the same pair may both compute the
// result; the later store wins and both results are equal.
//
// Writes take a short build mutex, assemble a new state, and publish it
// via an atomic pointer swap.
//
// # Pinning
//
// SetResolver installs a resolver and pins it: SetConfig and friends no
// longer rebuild it until UnpinResolver is called. This is meant for tests
// and for binaries that wire a resolver by hand.
//
// # Scope
//
// attrx does not scan source code or compiled binaries for declarations.
// Vocabularies are input data: build them with package model, or load them
// from YAML with package loader.
package attrx
