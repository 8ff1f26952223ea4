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

package apis

// Resolver answers "which attribute of kind K applies to declaration D",
// looking through meta-attributes and repeatable containers.
// Implementations must be safe for concurrent use.
type Resolver interface {
	// Resolve returns the attribute of kind k that applies to d, or nil if
	// none does. Absence is not an error; errors signal a broken vocabulary.
	Resolve(d Declaration, k Kind) (Instance, error)
	// Contains reports whether Resolve(d, k) would return a non-nil instance.
	Contains(d Declaration, k Kind) (bool, error)
	// ClearCache drops every cached positive and negative result.
	ClearCache()
	// SetPositiveCapacity bounds the positive cache. Applies on the next insertion.
	SetPositiveCapacity(n int)
	// SetNegativeCapacity bounds the negative cache. Applies on the next insertion.
	SetNegativeCapacity(n int)
	// Stats returns a snapshot of resolution counters.
	Stats() Stats
}

// Stats is a point-in-time snapshot of resolver and cache counters.
type Stats struct {
	// Computes counts cache misses that ran the resolution algorithm.
	Computes uint64
	// Hits counts positive cache hits.
	Hits uint64
	// NegativeHits counts negative cache hits.
	NegativeHits uint64
	// Evictions counts entries evicted by capacity from either cache.
	Evictions uint64
	// Positive is the number of declarations held by the positive cache.
	Positive int
	// Negative is the number of declarations held by the negative cache.
	Negative int
}
