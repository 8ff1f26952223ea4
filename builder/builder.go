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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/cache"
	"dirpx.dev/attrx/model"
	"dirpx.dev/attrx/resolver"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildCache builds an empty cache bounded by cfg. Nothing is migrated from
// previous caches: a rebuilt engine starts cold.
func (b *builder) BuildCache(cfg apis.Config, log *zap.Logger) apis.Cache {
	return cache.New(cfg, cache.WithLogger(log))
}

// BuildResolver builds a resolver over c that merges directly-present
// containers marked with model.MixRepeats.
func (b *builder) BuildResolver(cfg apis.Config, c apis.Cache, inst apis.Instantiator, log *zap.Logger) apis.Resolver {
	if inst == nil {
		inst = model.Instantiator{}
	}
	return resolver.New(cfg, c, inst,
		resolver.WithLogger(log),
		resolver.WithMixMarker(model.MixRepeats),
	)
}
