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

// Kind is the schema of an attribute. A Kind is also a Declaration:
// attributes placed on a kind declaration are its meta-attributes.
type Kind interface {
	Declaration

	// Properties returns the declared properties in declaration order.
	Properties() []Property
	// Property returns the declared property with the given name.
	Property(name string) (Property, bool)
	// Targets returns the element types this kind may be applied to.
	Targets() []ElementType
	// RepeatsInto returns the container kind this kind repeats into,
	// or nil if the kind is not repeatable.
	RepeatsInto() Kind
	// Projection returns the kind-level default projection rule, or nil.
	Projection() *Projection
	// Builtin reports whether the kind belongs to the language-level
	// vocabulary (retention, documentation markers, etc.). Builtin kinds
	// are never descended into while walking meta-attributes.
	Builtin() bool
}

// Property is one named, typed value slot of a Kind.
type Property struct {
	// Name is the accessor name.
	Name string
	// Type is the declared value type.
	Type ValueType
	// Default is the value used when an instance omits this property.
	// A nil Default means the zero value of Type.
	Default any
	// Projection overrides the kind-level projection rule for this property.
	Projection *Projection
}

// Projection is a (target kind, target property) correspondence used when
// values of one attribute are carried into an attribute of another kind.
type Projection struct {
	// Target is the kind that receives the value.
	Target Kind
	// Name is the receiving property. Empty means "same name as the source".
	Name string
}

// Scalar enumerates the element types a property value may have.
type Scalar int

const (
	// String values are Go strings.
	String Scalar = iota
	// Bool values are Go bools.
	Bool
	// Int values are Go ints.
	Int
	// Float values are float64.
	Float
	// Attribute values are Instances of ValueType.Attr.
	Attribute
)

// String returns the vocabulary token of the scalar.
func (s Scalar) String() string {
	switch s {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Attribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// ValueType describes the declared type of a property.
type ValueType struct {
	// Scalar is the element type.
	Scalar Scalar
	// Attr is the component kind when Scalar is Attribute.
	Attr Kind
	// Array marks a slice of Scalar.
	Array bool
}

// TypeOf returns a non-array ValueType of the given scalar.
func TypeOf(s Scalar) ValueType { return ValueType{Scalar: s} }

// AttrOf returns a non-array ValueType holding instances of k.
func AttrOf(k Kind) ValueType { return ValueType{Scalar: Attribute, Attr: k} }

// ArrayOf returns the array form of t.
func ArrayOf(t ValueType) ValueType {
	t.Array = true
	return t
}

// String renders t the way vocabulary files spell it ("[]@Item", "int").
func (t ValueType) String() string {
	s := t.Scalar.String()
	if t.Scalar == Attribute && t.Attr != nil {
		s = "@" + t.Attr.Name()
	}
	if t.Array {
		return "[]" + s
	}
	return s
}
