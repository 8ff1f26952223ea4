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
	"slices"

	"go.uber.org/zap"

	"dirpx.dev/attrx/apis"
)

// resolve looks for target on from. origin is the meta-attribute whose kind
// declaration from is, or nil at the top of the walk; excluded holds the
// kinds already visited on the current path and at the current level.
//
// The second result reports whether a nil result holds regardless of
// excluded. Only such absences are written to the negative cache, except at
// the top of the walk where excluded is empty by construction.
//
// Inside a meta-attribute's kind declaration a direct match is projected
// from origin, so the result depends on origin: the positive cache is
// neither read nor written there.
func (r *Resolver) resolve(origin apis.Instance, from apis.Declaration, target apis.Kind, excluded kindSet) (apis.Instance, bool, error) {
	_, onKind := from.(apis.Kind)
	projecting := origin != nil && onKind

	if !projecting {
		if cached, ok := r.cache.Lookup(from, target); ok {
			return cached, true, nil
		}
	}
	if r.cache.Absent(from, target) {
		return nil, true, nil
	}
	r.computes.Add(1)

	found, direct, settled, err := r.search(from, target, excluded)
	if err != nil {
		return nil, false, err
	}
	if found != nil {
		switch {
		case projecting && direct:
			if found, err = r.project(origin, found); err != nil {
				return nil, false, err
			}
		case !projecting:
			r.cache.Store(from, found)
		}
		return found, true, nil
	}
	if settled || (origin == nil && len(excluded) == 0) {
		r.cache.MarkAbsent(from, target)
		r.log.Debug("attribute absent",
			zap.String("declaration", from.Name()),
			zap.String("kind", target.Name()))
		return nil, true, nil
	}
	return nil, false, nil
}

// search runs the uncached part of the walk in order: direct presence,
// repeatable container synthesis, then meta-attribute descent. direct
// reports whether the result is the attribute present on from, possibly
// mixed with reachable children.
func (r *Resolver) search(from apis.Declaration, target apis.Kind, excluded kindSet) (found apis.Instance, direct, settled bool, err error) {
	if inst, ok := from.Attribute(target); ok {
		mix, err := r.mixes(target)
		if err != nil || !mix {
			return inst, true, true, err
		}
		merged, err := r.mergeDirect(from, inst, excluded)
		if err != nil {
			return nil, false, false, err
		}
		if merged != nil {
			return merged, true, true, nil
		}
		return inst, true, true, nil
	}

	if child, prop, ok := repeatable(target); ok {
		found, settled, err = r.mergeRepeats(from, target, child, prop, excluded)
		return found, false, settled, err
	}

	if !metaApplicable(target) {
		return nil, false, true, nil
	}
	found, settled, err = r.walk(from, target, excluded)
	return found, false, settled, err
}

// walk descends into the kind declarations of from's attributes.
//
// Every non-excluded sibling kind joins the excluded set of the next level,
// which is what guarantees termination on cyclic vocabularies. With
// ShallowFirst, a sibling whose kind declaration carries target directly
// wins over any deeper match; otherwise the first sibling, in declaration
// order, that yields a match wins.
func (r *Resolver) walk(from apis.Declaration, target apis.Kind, excluded kindSet) (apis.Instance, bool, error) {
	attrs := from.Attributes()
	candidates := make([]apis.Instance, 0, len(attrs))
	settled := true
	for _, a := range attrs {
		k := a.Kind()
		switch {
		case excluded.has(k):
			settled = false
		case k.Builtin() && k != target:
		default:
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil, settled, nil
	}
	next := excluded.with(candidates)

	if r.cfg.ShallowFirst {
		for _, a := range candidates {
			if _, ok := a.Kind().Attribute(target); !ok {
				continue
			}
			found, _, err := r.resolve(a, a.Kind(), target, next)
			if err != nil || found != nil {
				return found, true, err
			}
		}
	}

	for _, a := range candidates {
		found, ok, err := r.resolve(a, a.Kind(), target, next)
		if err != nil {
			return nil, false, err
		}
		if found != nil {
			return found, true, nil
		}
		settled = settled && ok
	}
	return nil, settled, nil
}

// metaApplicable reports whether k may sit on another attribute kind or a
// type, i.e. whether looking for it among meta-attributes makes sense.
func metaApplicable(k apis.Kind) bool {
	targets := k.Targets()
	return slices.Contains(targets, apis.ElementAttributeKind) || slices.Contains(targets, apis.ElementTypeDecl)
}
