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
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/errors"
)

// ValueProperty is the conventional name of a single-valued attribute's
// property and of a repeatable container's array property.
const ValueProperty = "value"

// Instance is an immutable attribute value produced by Instantiator.
// Every declared property of its kind holds a value.
type Instance struct {
	kind   apis.Kind
	values map[string]any
}

// Ensure Instance implements apis.Instance.
var _ apis.Instance = (*Instance)(nil)

// Kind returns the attribute kind.
func (i *Instance) Kind() apis.Kind { return i.kind }

// Get returns the value of property name.
func (i *Instance) Get(name string) (any, error) {
	v, ok := i.values[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownProperty, "%s has no property %q", i.kind.Name(), name)
	}
	return v, nil
}

// Value returns the property value, or nil when the property is undeclared.
func (i *Instance) Value(name string) any {
	return i.values[name]
}

// Values returns a copy of the property values.
func (i *Instance) Values() map[string]any {
	out := make(map[string]any, len(i.values))
	for k, v := range i.values {
		out[k] = v
	}
	return out
}

// Equal reports whether o has the same kind and deeply equal values.
func (i *Instance) Equal(o apis.Instance) bool {
	if o == nil || i.kind != o.Kind() {
		return false
	}
	if oi, ok := o.(*Instance); ok {
		return reflect.DeepEqual(i.values, oi.values)
	}
	for _, p := range i.kind.Properties() {
		v, err := o.Get(p.Name)
		if err != nil || !reflect.DeepEqual(i.values[p.Name], v) {
			return false
		}
	}
	return true
}

// String renders the instance as @Kind(name=value, ...) in property order.
func (i *Instance) String() string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(i.kind.Name())
	props := i.kind.Properties()
	if len(props) == 0 {
		return b.String()
	}
	b.WriteString("(")
	for n, p := range props {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString("=")
		b.WriteString(render(i.values[p.Name]))
	}
	b.WriteString(")")
	return b.String()
}

func render(v any) string {
	switch vv := v.(type) {
	case string:
		return fmt.Sprintf("%q", vv)
	case apis.Instance:
		if s, ok := vv.(fmt.Stringer); ok {
			return s.String()
		}
		return "@" + vv.Kind().Name()
	case []apis.Instance:
		parts := make([]string, len(vv))
		for n, e := range vv {
			parts[n] = render(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []string:
		parts := make([]string, len(vv))
		for n, e := range vv {
			parts[n] = fmt.Sprintf("%q", e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case nil:
		return "null"
	default:
		s := fmt.Sprint(vv)
		if strings.HasPrefix(s, "[") {
			return "{" + strings.Trim(s, "[]") + "}"
		}
		return s
	}
}
