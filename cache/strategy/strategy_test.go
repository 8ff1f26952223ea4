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

package strategy_test

import (
	"testing"

	"dirpx.dev/attrx/cache/strategy"
)

// TestStrategyString verifies the stable tokens of known values and the
// diagnostic form of unknown ones.
func TestStrategyString(t *testing.T) {
	tests := []struct {
		name     string
		strategy strategy.Strategy
		want     string
	}{
		{"Insertion", strategy.Insertion, "insertion"},
		{"Access", strategy.Access, "access"},
		{"None", strategy.None, "none"},
		{"Unknown", strategy.Strategy(42), "unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.strategy.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestZeroValueIsInsertion pins the default eviction order.
func TestZeroValueIsInsertion(t *testing.T) {
	var s strategy.Strategy
	if s != strategy.Insertion {
		t.Fatalf("zero Strategy = %v, want insertion", s)
	}
}

// TestParseStrategyValid verifies case-insensitive parsing, aliases and
// whitespace trimming.
func TestParseStrategyValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  strategy.Strategy
	}{
		{"insertion", "insertion", strategy.Insertion},
		{"insertion upper", "INSERTION", strategy.Insertion},
		{"fifo alias", "fifo", strategy.Insertion},
		{"access", "access", strategy.Access},
		{"lru alias", " LRU ", strategy.Access},
		{"none", "None", strategy.None},
		{"off alias", "off", strategy.None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strategy.Parse(tt.input)
			if err != nil {
				t.Fatalf("strategy.Parse(%q) error = %v, want nil", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("strategy.Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseStrategyInvalid verifies that invalid input fails and yields the
// default strategy.
func TestParseStrategyInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "lfu", "insertion1", "!!"} {
		t.Run(input, func(t *testing.T) {
			got, err := strategy.Parse(input)
			if err == nil {
				t.Fatalf("strategy.Parse(%q) error = nil, want non-nil", input)
			}
			if got != strategy.Insertion {
				t.Fatalf("strategy.Parse(%q) = %v, want insertion on error", input, got)
			}
		})
	}
}

// TestMustParseStrategy verifies MustParse on valid input and its panic on
// invalid input.
func TestMustParseStrategy(t *testing.T) {
	if got := strategy.MustParse("access"); got != strategy.Access {
		t.Fatalf("strategy.MustParse(access) = %v, want access", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("strategy.MustParse(unknown) did not panic")
		}
	}()
	_ = strategy.MustParse("unknown")
}

// TestStrategyTextRoundTrip verifies MarshalText/UnmarshalText for all known
// strategies.
func TestStrategyTextRoundTrip(t *testing.T) {
	for _, s := range []strategy.Strategy{strategy.Insertion, strategy.Access, strategy.None} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", s, err)
		}
		var got strategy.Strategy
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != s {
			t.Fatalf("round trip %v -> %q -> %v", s, text, got)
		}
	}
}

// TestStrategyTextInvalid verifies that unknown values do not serialize and
// that invalid text leaves the receiver unchanged.
func TestStrategyTextInvalid(t *testing.T) {
	if got, err := strategy.Strategy(42).MarshalText(); err == nil || len(got) != 0 {
		t.Fatalf("MarshalText(42) = %q, %v; want error", got, err)
	}

	s := strategy.Access
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("UnmarshalText(bogus) error = nil, want non-nil")
	}
	if s != strategy.Access {
		t.Fatalf("UnmarshalText(bogus) modified receiver to %v", s)
	}
}
