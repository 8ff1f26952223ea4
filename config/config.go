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

package config

import (
	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/cache/strategy"
)

const (
	// DefaultPositiveCapacity bounds the positive cache by declaration count.
	DefaultPositiveCapacity = 128
	// DefaultNegativeCapacity bounds the negative cache by declaration count.
	DefaultNegativeCapacity = 128
	// DefaultPolicy evicts the oldest-inserted declaration first.
	DefaultPolicy = strategy.Insertion
	// DefaultShallowFirst prefers a sibling's direct meta-attribute over a deeper match.
	DefaultShallowFirst = true
	// DefaultOverlayProjection leaves uncovered projected properties at their defaults.
	DefaultOverlayProjection = false
	// DefaultMixMerge merges directly-present containers marked as mixing.
	DefaultMixMerge = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		PositiveCapacity:  DefaultPositiveCapacity,
		NegativeCapacity:  DefaultNegativeCapacity,
		Policy:            DefaultPolicy,
		ShallowFirst:      DefaultShallowFirst,
		OverlayProjection: DefaultOverlayProjection,
		MixMerge:          DefaultMixMerge,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPositiveCapacity sets PositiveCapacity.
// A non-positive value resets to the default.
func WithPositiveCapacity(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.PositiveCapacity = DefaultPositiveCapacity
			return
		}
		c.PositiveCapacity = n
	}
}

// WithNegativeCapacity sets NegativeCapacity.
// A non-positive value resets to the default.
func WithNegativeCapacity(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.NegativeCapacity = DefaultNegativeCapacity
			return
		}
		c.NegativeCapacity = n
	}
}

// WithPolicy sets the cache eviction policy.
func WithPolicy(p strategy.Strategy) Option {
	return func(c *apis.Config) {
		c.Policy = p
	}
}

// WithShallowFirst sets the ShallowFirst option.
func WithShallowFirst(on bool) Option {
	return func(c *apis.Config) {
		c.ShallowFirst = on
	}
}

// WithOverlayProjection sets the OverlayProjection option.
func WithOverlayProjection(on bool) Option {
	return func(c *apis.Config) {
		c.OverlayProjection = on
	}
}

// WithMixMerge sets the MixMerge option.
func WithMixMerge(on bool) Option {
	return func(c *apis.Config) {
		c.MixMerge = on
	}
}
