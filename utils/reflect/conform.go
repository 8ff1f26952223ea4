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

package reflect

import (
	"math"
	"reflect"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/errors"
)

var instanceType = reflect.TypeOf((*apis.Instance)(nil)).Elem()

// Conform checks v against t and returns it in canonical form.
//
// Canonical forms:
//   - String    -> string
//   - Bool      -> bool
//   - Int       -> int (any integer kind, or a float with no fractional part)
//   - Float     -> float64 (any integer or float kind)
//   - Attribute -> apis.Instance whose Kind() is t.Attr
//   - arrays    -> []string, []bool, []int, []float64, []apis.Instance
//
// Arrays accept any slice or array whose elements conform. A nil v conforms
// to the zero value of t. Failures are marked with errors.ErrTypeMismatch.
func Conform(v any, t apis.ValueType) (any, error) {
	if v == nil {
		return Zero(t), nil
	}
	if !t.Array {
		return scalar(v, t)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, mismatch(v, t)
	}
	elem := t
	elem.Array = false

	switch t.Scalar {
	case apis.String:
		return collect[string](rv, elem)
	case apis.Bool:
		return collect[bool](rv, elem)
	case apis.Int:
		return collect[int](rv, elem)
	case apis.Float:
		return collect[float64](rv, elem)
	case apis.Attribute:
		return collect[apis.Instance](rv, elem)
	default:
		return nil, mismatch(v, t)
	}
}

// Zero returns the canonical zero value of t.
// Attribute scalars have no zero instance and yield nil.
func Zero(t apis.ValueType) any {
	if t.Array {
		switch t.Scalar {
		case apis.String:
			return []string{}
		case apis.Bool:
			return []bool{}
		case apis.Int:
			return []int{}
		case apis.Float:
			return []float64{}
		default:
			return []apis.Instance{}
		}
	}
	switch t.Scalar {
	case apis.String:
		return ""
	case apis.Bool:
		return false
	case apis.Int:
		return 0
	case apis.Float:
		return 0.0
	default:
		return nil
	}
}

// Instances returns v as a slice of instances, or nil if v is not an
// attribute array.
func Instances(v any) []apis.Instance {
	switch vv := v.(type) {
	case []apis.Instance:
		return vv
	case nil:
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]apis.Instance, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if inst, ok := rv.Index(i).Interface().(apis.Instance); ok && inst != nil {
			out = append(out, inst)
		}
	}
	return out
}

func collect[T any](rv reflect.Value, elem apis.ValueType) (any, error) {
	out := make([]T, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		c, err := scalar(rv.Index(i).Interface(), elem)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, c.(T))
	}
	return out, nil
}

func scalar(v any, t apis.ValueType) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, mismatch(v, t)
	}
	switch t.Scalar {
	case apis.String:
		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	case apis.Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}
	case apis.Int:
		switch {
		case rv.CanInt():
			return int(rv.Int()), nil
		case rv.CanUint():
			if rv.Uint() <= math.MaxInt {
				return int(rv.Uint()), nil
			}
		case rv.CanFloat():
			// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
			if f := rv.Float(); f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
				return int(f), nil
			}
		}
	case apis.Float:
		switch {
		case rv.CanFloat():
			return rv.Float(), nil
		case rv.CanInt():
			return float64(rv.Int()), nil
		case rv.CanUint():
			return float64(rv.Uint()), nil
		}
	case apis.Attribute:
		if rv.Type().Implements(instanceType) {
			inst := v.(apis.Instance)
			if t.Attr == nil || inst.Kind() == t.Attr {
				return inst, nil
			}
		}
	}
	return nil, mismatch(v, t)
}

func mismatch(v any, t apis.ValueType) error {
	return errors.Wrapf(errors.ErrTypeMismatch, "%T is not assignable to %s", v, t)
}
