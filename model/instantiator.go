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
	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/errors"
	uref "dirpx.dev/attrx/utils/reflect"
)

// Instantiator builds Instances from a kind and a property mapping.
// The zero value is ready to use and safe for concurrent use.
type Instantiator struct{}

// Ensure Instantiator implements apis.Instantiator.
var _ apis.Instantiator = Instantiator{}

// Instantiate type-checks values against k and fills omitted properties
// with their declared defaults.
func (Instantiator) Instantiate(k apis.Kind, values map[string]any) (apis.Instance, error) {
	if k == nil {
		return nil, errors.ErrNilKind
	}
	for name := range values {
		if _, ok := k.Property(name); !ok {
			return nil, errors.Wrapf(errors.ErrUnknownProperty, "%s has no property %q", k.Name(), name)
		}
	}

	props := k.Properties()
	out := make(map[string]any, len(props))
	for _, p := range props {
		raw, ok := values[p.Name]
		if !ok {
			raw = p.Default
		}
		v, err := uref.Conform(raw, p.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", k.Name(), p.Name)
		}
		out[p.Name] = v
	}
	return &Instance{kind: k, values: out}, nil
}

// New is Instantiator.Instantiate for callers that build vocabularies by
// hand and treat a bad value as a programming error. It panics on failure.
func New(k apis.Kind, values map[string]any) *Instance {
	inst, err := Instantiator{}.Instantiate(k, values)
	if err != nil {
		panic(err)
	}
	return inst.(*Instance)
}

// Default returns an instance of k with every property at its default.
func Default(k apis.Kind) *Instance {
	return New(k, nil)
}
