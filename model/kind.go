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

import (
	"slices"

	"dirpx.dev/attrx/apis"
)

// Kind is an attribute kind declaration.
type Kind struct {
	attributes
	name        string
	props       []apis.Property
	targets     []apis.ElementType
	repeatsInto apis.Kind
	projection  *apis.Projection
	builtin     bool
}

// Ensure Kind implements apis.Kind.
var _ apis.Kind = (*Kind)(nil)

// NewKind creates a kind applicable to types and attribute kinds.
// Use WithTargets to narrow or widen that.
func NewKind(name string) *Kind {
	return &Kind{
		name:    name,
		targets: []apis.ElementType{apis.ElementTypeDecl, apis.ElementAttributeKind},
	}
}

// Name returns the kind name.
func (k *Kind) Name() string { return k.name }

// Properties returns the declared properties in declaration order.
func (k *Kind) Properties() []apis.Property { return k.props }

// Property returns the property with the given name.
func (k *Kind) Property(name string) (apis.Property, bool) {
	for _, p := range k.props {
		if p.Name == name {
			return p, true
		}
	}
	return apis.Property{}, false
}

// Targets returns the element types the kind applies to.
func (k *Kind) Targets() []apis.ElementType { return k.targets }

// RepeatsInto returns the container kind, or nil.
func (k *Kind) RepeatsInto() apis.Kind { return k.repeatsInto }

// Projection returns the kind-level projection rule, or nil.
func (k *Kind) Projection() *apis.Projection { return k.projection }

// Builtin reports whether the kind is part of the language-level vocabulary.
func (k *Kind) Builtin() bool { return k.builtin }

// String returns "@" followed by the kind name.
func (k *Kind) String() string { return "@" + k.name }

// WithProperty declares a property. Redeclaring a name replaces it in place.
func (k *Kind) WithProperty(p apis.Property) *Kind {
	if i := slices.IndexFunc(k.props, func(q apis.Property) bool { return q.Name == p.Name }); i >= 0 {
		k.props[i] = p
		return k
	}
	k.props = append(k.props, p)
	return k
}

// WithValue declares the conventional single "value" property.
func (k *Kind) WithValue(t apis.ValueType, def any) *Kind {
	return k.WithProperty(apis.Property{Name: ValueProperty, Type: t, Default: def})
}

// WithTargets replaces the applicable element types.
func (k *Kind) WithTargets(ts ...apis.ElementType) *Kind {
	k.targets = slices.Clone(ts)
	return k
}

// WithRepeatsInto declares c as the container this kind repeats into.
func (k *Kind) WithRepeatsInto(c apis.Kind) *Kind {
	k.repeatsInto = c
	return k
}

// WithProjection sets the kind-level projection rule. An empty name keeps
// each property's own name.
func (k *Kind) WithProjection(target apis.Kind, name string) *Kind {
	k.projection = &apis.Projection{Target: target, Name: name}
	return k
}

// AsBuiltin marks the kind as language-level.
func (k *Kind) AsBuiltin() *Kind {
	k.builtin = true
	return k
}

// Annotate appends meta-attributes to the kind declaration.
func (k *Kind) Annotate(insts ...apis.Instance) *Kind {
	k.add(insts)
	return k
}

// AppliesTo reports whether the kind may be placed on element e.
func AppliesTo(k apis.Kind, e apis.ElementType) bool {
	return slices.Contains(k.Targets(), e)
}
