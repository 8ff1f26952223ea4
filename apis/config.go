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

import "dirpx.dev/attrx/cache/strategy"

// Config carries read-only resolution knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// PositiveCapacity bounds the number of declarations in the positive cache.
	PositiveCapacity int

	// NegativeCapacity bounds the number of declarations in the negative cache.
	NegativeCapacity int

	// Policy selects how the caches order entries for eviction.
	Policy strategy.Strategy

	// ShallowFirst makes the meta-attribute walk probe every sibling's kind
	// declaration for a direct match before descending depth-first.
	ShallowFirst bool

	// OverlayProjection keeps the matched instance's values for properties
	// not covered by a projection rule. When false they take declared defaults.
	OverlayProjection bool

	// MixMerge enables merging a directly-present repeatable container with
	// children reachable through meta-attributes, for containers marked as mixing.
	MixMerge bool
}
