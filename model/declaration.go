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

// attributes is the directly-present attribute list shared by declarations
// and kinds.
type attributes struct {
	list []apis.Instance
}

// Attribute returns the first directly-present attribute of kind k.
func (a *attributes) Attribute(k apis.Kind) (apis.Instance, bool) {
	for _, inst := range a.list {
		if inst.Kind() == k {
			return inst, true
		}
	}
	return nil, false
}

// Attributes returns the directly-present attributes in declaration order.
func (a *attributes) Attributes() []apis.Instance {
	return a.list
}

func (a *attributes) add(insts []apis.Instance) {
	for _, inst := range insts {
		if inst != nil {
			a.list = append(a.list, inst)
		}
	}
}

// Declaration is a type, method or field declaration carrying attributes.
type Declaration struct {
	attributes
	name    string
	element apis.ElementType
}

// Ensure Declaration implements apis.Declaration.
var _ apis.Declaration = (*Declaration)(nil)

// NewDeclaration creates a declaration of the given element type.
func NewDeclaration(name string, element apis.ElementType) *Declaration {
	return &Declaration{name: name, element: element}
}

// Name returns the declaration name.
func (d *Declaration) Name() string { return d.name }

// Element returns the element type of the declaration.
func (d *Declaration) Element() apis.ElementType { return d.element }

// Annotate appends attributes in declaration order. Nil instances are skipped.
func (d *Declaration) Annotate(insts ...apis.Instance) *Declaration {
	d.add(insts)
	return d
}

// String returns the declaration name.
func (d *Declaration) String() string { return d.name }
