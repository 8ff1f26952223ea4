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

package strategy

import (
	"strconv"
	"strings"

	"dirpx.dev/attrx/errors"
)

// Strategy controls how a metadata cache orders its entries for eviction.
//
// # Overview
//
// Strategy is a small enumerated type that selects how a bounded cache
// decides which declaration to drop once it reaches capacity. It does not
// define the capacity itself; capacities are configured separately.
//
// # Values
//
//   - Insertion: evict the oldest-inserted entry; reads never reorder.
//   - Access: evict the least-recently-read entry; reads promote.
//   - None: caching disabled (pass-through behavior).
//
// # Contract
//
//   - Insertion is the zero value and the default for resolver caches.
//   - Strategy values are plain integers and safe to share across goroutines.
//   - Existing values MUST NOT change their semantics; new values may be added.
type Strategy int

const (
	// Insertion selects insertion-order eviction.
	//
	// # Semantics
	//
	// When the cache is full, the entry that was inserted first is evicted,
	// regardless of how often or how recently it was read. Re-storing an
	// existing key updates its value in place without moving it.
	Insertion Strategy = iota

	// Access selects least-recently-used eviction.
	//
	// # Semantics
	//
	// Reads and inserts both mark an entry as recently used. When the cache
	// is full, the entry that has gone longest without being touched is
	// evicted.
	Access

	// None disables caching.
	//
	// # Semantics
	//
	// Reads always miss and writes are dropped. Useful for tests that want
	// to observe the raw cost of resolution, and for comparing behavior with
	// and without caching.
	None
)

// String returns a short, stable identifier for logs and config dumps.
// Unknown values render as "unknown(<n>)" and never panic.
func (s Strategy) String() string {
	switch s {
	case Insertion:
		return "insertion"
	case Access:
		return "access"
	case None:
		return "none"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// Parse converts a case-insensitive token into a Strategy.
//
// Accepted inputs (surrounding whitespace is ignored):
//
//   - "insertion", "fifo" -> Insertion
//   - "access", "lru"     -> Access
//   - "none", "off"       -> None
//
// On failure Parse returns Insertion and a non-nil error.
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Insertion, errors.New("cache: empty strategy")
	}

	switch strings.ToLower(trimmed) {
	case "insertion", "fifo":
		return Insertion, nil
	case "access", "lru":
		return Access, nil
	case "none", "off":
		return None, nil
	default:
		return Insertion, errors.Newf("cache: unknown strategy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
// It is meant for hard-coded values and tests.
func MustParse(s string) Strategy {
	strategy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values fail instead of serializing a diagnostic form.
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case Insertion, Access, None:
		return []byte(s.String()), nil
	default:
		return nil, errors.Newf("cache: cannot marshal unknown strategy %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// On failure the receiver is left unchanged.
func (s *Strategy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = value
	return nil
}
