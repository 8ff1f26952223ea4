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

// Declaration is anything that can carry attributes: a type, a method,
// or an attribute kind itself.
//
// Identity is reference identity. Implementations are used as map keys
// by the caches, so they must be comparable (pointer receivers are the
// usual choice).
type Declaration interface {
	// Name returns a human-readable name used in logs and diagnostics.
	Name() string
	// Attribute returns the first directly-present attribute of kind k.
	Attribute(k Kind) (Instance, bool)
	// Attributes lists every directly-present attribute in declaration order.
	// Callers must not modify the returned slice.
	Attributes() []Instance
}

// ElementType names the kind of program element an attribute may be applied to.
type ElementType int

const (
	// ElementTypeDecl is a type declaration (class, struct, interface).
	ElementTypeDecl ElementType = iota
	// ElementMethod is a method or function declaration.
	ElementMethod
	// ElementField is a field declaration.
	ElementField
	// ElementAttributeKind is an attribute kind declaration.
	ElementAttributeKind
)

// String returns the lower-case token used in vocabulary files.
func (e ElementType) String() string {
	switch e {
	case ElementTypeDecl:
		return "type"
	case ElementMethod:
		return "method"
	case ElementField:
		return "field"
	case ElementAttributeKind:
		return "attribute_kind"
	default:
		return "unknown"
	}
}
