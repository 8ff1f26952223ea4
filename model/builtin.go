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

package model

import "dirpx.dev/attrx/apis"

// Builtin kinds shared by every vocabulary.
var (
	// Documented is a language-level marker. Meta walks never descend into it.
	Documented = NewKind("Documented").
		WithTargets(apis.ElementAttributeKind).
		AsBuiltin()

	// Retention is a language-level marker carrying the retention policy.
	Retention = NewKind("Retention").
		WithTargets(apis.ElementAttributeKind).
		WithValue(apis.TypeOf(apis.String), "runtime").
		AsBuiltin()

	// MixRepeats marks a repeatable container kind whose directly-present
	// instances are merged with children reachable through meta-attributes.
	MixRepeats = NewKind("MixRepeats").
		WithTargets(apis.ElementAttributeKind)
)

// Builtins returns the shared kinds in a stable order.
func Builtins() []*Kind {
	return []*Kind{Documented, Retention, MixRepeats}
}
