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

package resolver

import (
	"go.uber.org/zap"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/errors"
	uref "dirpx.dev/attrx/utils/reflect"
)

// reserved holds accessor names that never carry attribute values.
var reserved = map[string]struct{}{
	"String":   {},
	"GoString": {},
	"Equal":    {},
	"Hash":     {},
	"Kind":     {},
}

// Reserved reports whether name is an accessor name skipped by projection.
func Reserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Project builds an instance of target carrying the values of source.
//
// A property of source is carried when its own projection rule, or failing
// that the kind-level rule of source's kind, names target. The receiving
// property is the rule's name, or the source property's name when the rule
// leaves it empty. Target properties no rule covers take base's values when
// base is non-nil, and their defaults otherwise.
func Project(in apis.Instantiator, source apis.Instance, target apis.Kind, base apis.Instance) (apis.Instance, error) {
	values := make(map[string]any, len(target.Properties()))
	if base != nil {
		for _, p := range target.Properties() {
			v, err := base.Get(p.Name)
			if err != nil {
				return nil, introspection(err, target, p.Name)
			}
			values[p.Name] = v
		}
	}

	kind := source.Kind()
	for _, p := range kind.Properties() {
		if Reserved(p.Name) {
			continue
		}
		rule := p.Projection
		if rule == nil {
			rule = kind.Projection()
		}
		if rule == nil || rule.Target != target {
			continue
		}
		name := rule.Name
		if name == "" {
			name = p.Name
		}
		dst, ok := target.Property(name)
		if !ok {
			return nil, errors.Mark(
				errors.Wrapf(errors.ErrUnknownProperty, "project %s.%s onto %s.%s", kind.Name(), p.Name, target.Name(), name),
				errors.ErrProjection)
		}
		v, err := source.Get(p.Name)
		if err != nil {
			return nil, introspection(err, kind, p.Name)
		}
		if p.Type != dst.Type {
			if v, err = uref.Conform(v, dst.Type); err != nil {
				return nil, errors.Mark(
					errors.Wrapf(err, "project %s.%s onto %s.%s", kind.Name(), p.Name, target.Name(), name),
					errors.ErrProjection)
			}
		}
		values[name] = v
	}

	out, err := in.Instantiate(target, values)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "project %s onto %s", kind.Name(), target.Name()), errors.ErrProjection)
	}
	return out, nil
}

func (r *Resolver) project(origin, found apis.Instance) (apis.Instance, error) {
	var base apis.Instance
	if r.cfg.OverlayProjection {
		base = found
	}
	out, err := Project(r.inst, origin, found.Kind(), base)
	if err != nil {
		return nil, err
	}
	r.log.Debug("projected meta-attribute",
		zap.String("from", origin.Kind().Name()),
		zap.String("onto", found.Kind().Name()))
	return out, nil
}
