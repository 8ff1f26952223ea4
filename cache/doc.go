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

// Package cache implements the bounded metadata caches used by the resolver.
//
// Bounded is a generic capacity-bounded map backed by golang-lru. It evicts
// in insertion order by default: reads use Peek and never promote, and
// re-storing a key updates it in place. Metadata composes two Bounded maps
// into the resolver's positive (declaration -> kind -> instance) and
// negative (declaration -> kinds known absent) caches.
package cache
