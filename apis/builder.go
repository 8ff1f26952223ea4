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

import "go.uber.org/zap"

// Builder composes a Cache and a Resolver from a Config.
// Implementations may be swapped at runtime to replace resolution logic.
type Builder interface {
	// BuildCache constructs an empty Cache for cfg.
	BuildCache(cfg Config, log *zap.Logger) Cache
	// BuildResolver constructs a Resolver over c that synthesizes instances with inst.
	BuildResolver(cfg Config, c Cache, inst Instantiator, log *zap.Logger) Resolver
}
