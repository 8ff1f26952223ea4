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

// Instance is an attribute of a concrete Kind bound to property values.
// Instances are immutable once produced.
type Instance interface {
	// Kind returns the attribute kind of the instance.
	Kind() Kind
	// Get returns the value of the named property. It fails when the
	// property does not exist or the underlying accessor cannot be invoked.
	Get(property string) (any, error)
}

// Instantiator produces live instances of a Kind from a property mapping.
//
// Properties missing from values take their declared defaults. Implementations
// must fail when values names a property the kind does not declare, or when a
// value is not assignable to the property's declared type.
type Instantiator interface {
	Instantiate(k Kind, values map[string]any) (Instance, error)
}
