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

// Cache stores resolution results per (Declaration, Kind) pair.
//
// Positive entries map a declaration to the instances resolved on it;
// negative entries record kinds known to be absent. Both sides are bounded
// independently and evict in insertion order.
type Cache interface {
	// Lookup returns a cached positive result.
	Lookup(d Declaration, k Kind) (Instance, bool)
	// Store records inst as the result for (d, inst.Kind()) and drops any
	// negative entry for the same pair.
	Store(d Declaration, inst Instance)
	// Absent reports whether k is recorded as unresolvable on d.
	Absent(d Declaration, k Kind) bool
	// MarkAbsent records k as unresolvable on d.
	MarkAbsent(d Declaration, k Kind)
	// Clear drops all positive and negative entries.
	Clear()
	// SetPositiveCapacity bounds the positive side.
	SetPositiveCapacity(n int)
	// SetNegativeCapacity bounds the negative side.
	SetNegativeCapacity(n int)
	// Stats fills the cache-owned fields of Stats.
	Stats() Stats
}
