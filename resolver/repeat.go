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

// repeatable reports whether container is a repeatable container: it must
// declare exactly one array-of-attribute property whose component kind
// repeats into container. It returns that component kind and property.
func repeatable(container apis.Kind) (apis.Kind, string, bool) {
	var (
		child apis.Kind
		prop  string
		n     int
	)
	for _, p := range container.Properties() {
		t := p.Type
		if !t.Array || t.Scalar != apis.Attribute || t.Attr == nil {
			continue
		}
		if t.Attr.RepeatsInto() == container {
			child, prop = t.Attr, p.Name
			n++
		}
	}
	return child, prop, n == 1
}

// mixes reports whether a directly-present container of kind container is
// merged with the children reachable through meta-attributes.
func (r *Resolver) mixes(container apis.Kind) (bool, error) {
	if !r.cfg.MixMerge || r.mix == nil || container == r.mix {
		return false, nil
	}
	if _, _, ok := repeatable(container); !ok {
		return false, nil
	}
	marker, _, err := r.resolve(nil, container, r.mix, nil)
	return marker != nil, err
}

// mergeRepeats synthesizes a container holding every child instance that
// applies to from. A nil result means no child applies.
func (r *Resolver) mergeRepeats(from apis.Declaration, container, child apis.Kind, prop string, excluded kindSet) (apis.Instance, bool, error) {
	list, settled, err := r.collect(from, container, child, excluded)
	if err != nil || len(list) == 0 {
		return nil, settled, err
	}
	merged, err := r.synthesize(container, map[string]any{prop: list})
	if err != nil {
		return nil, false, err
	}
	r.log.Debug("merged repeatable attributes",
		zap.String("declaration", from.Name()),
		zap.String("container", container.Name()),
		zap.Int("count", len(list)))
	return merged, true, nil
}

// mergeDirect appends the children reachable from from to the elements of
// the directly-present container direct, keeping its other values. A nil
// result means nothing was reachable and direct stands as is.
func (r *Resolver) mergeDirect(from apis.Declaration, direct apis.Instance, excluded kindSet) (apis.Instance, error) {
	container := direct.Kind()
	child, prop, _ := repeatable(container)

	reached, _, err := r.collect(from, container, child, excluded)
	if err != nil || len(reached) == 0 {
		return nil, err
	}

	values := make(map[string]any, len(container.Properties()))
	for _, p := range container.Properties() {
		v, err := direct.Get(p.Name)
		if err != nil {
			return nil, introspection(err, container, p.Name)
		}
		values[p.Name] = v
	}
	existing := uref.Instances(values[prop])
	list := make([]apis.Instance, 0, len(existing)+len(reached))
	list = append(list, existing...)
	list = append(list, reached...)
	values[prop] = list

	merged, err := r.synthesize(container, values)
	if err != nil {
		return nil, err
	}
	r.log.Debug("mixed direct container",
		zap.String("declaration", from.Name()),
		zap.String("container", container.Name()),
		zap.Int("direct", len(existing)),
		zap.Int("reached", len(reached)))
	return merged, nil
}

// collect gathers, in order, the child instances directly present on from
// followed by those reached through from's meta-attributes. Meta-attributes
// of the child or container kind are not descended into: the former are
// already collected, the latter would only find the container again.
func (r *Resolver) collect(from apis.Declaration, container, child apis.Kind, excluded kindSet) ([]apis.Instance, bool, error) {
	attrs := from.Attributes()
	var (
		list       []apis.Instance
		candidates []apis.Instance
		settled    = true
	)
	for _, a := range attrs {
		k := a.Kind()
		switch {
		case k == child:
			list = append(list, a)
		case k == container || k.Builtin():
		case excluded.has(k):
			settled = false
		default:
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return list, settled, nil
	}

	next := excluded.with(attrs)
	for _, a := range candidates {
		found, ok, err := r.resolve(a, a.Kind(), child, next)
		if err != nil {
			return nil, false, err
		}
		if found != nil {
			list = append(list, found)
		}
		settled = settled && ok
	}
	return list, settled, nil
}

func (r *Resolver) synthesize(k apis.Kind, values map[string]any) (apis.Instance, error) {
	inst, err := r.inst.Instantiate(k, values)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "synthesize %s", k.Name()), errors.ErrProjection)
	}
	return inst, nil
}

func introspection(err error, k apis.Kind, prop string) error {
	return errors.Mark(errors.Wrapf(err, "read %s.%s", k.Name(), prop), errors.ErrIntrospection)
}
