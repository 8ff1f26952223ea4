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

// Package loader reads attribute vocabularies from YAML.
//
// A vocabulary file lists kinds and declarations:
//
//	kinds:
//	  - name: Item
//	    repeats_into: Group
//	    projection: {target: Named}
//	    properties:
//	      - {name: value, type: string, default: ""}
//	  - name: Group
//	    attributes:
//	      - kind: MixRepeats
//	    properties:
//	      - {name: value, type: "[]@Item"}
//	declarations:
//	  - name: Users
//	    element: type
//	    attributes:
//	      - kind: Item
//	        values: {value: users}
//
// Property types are string, bool, int, float, @Kind, or any of those
// prefixed with [] for arrays. Attribute-valued properties and their
// defaults take nested {kind, values} maps. The builtin kinds of package model may be referenced
// by name but not redefined.
package loader

import (
	"bytes"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/errors"
	"dirpx.dev/attrx/model"
)

// Vocabulary is a loaded set of kinds and declarations, in file order.
type Vocabulary struct {
	kinds     map[string]*model.Kind
	kindOrder []*model.Kind
	decls     map[string]*model.Declaration
	declOrder []*model.Declaration

	// prepared marks kinds whose attribute-typed defaults are converted,
	// or being converted. Only set while parsing.
	prepared map[*model.Kind]bool
}

// Kind returns the kind with the given name, builtins included.
func (v *Vocabulary) Kind(name string) (*model.Kind, bool) {
	k, ok := v.kinds[name]
	return k, ok
}

// Declaration returns the declaration with the given name.
func (v *Vocabulary) Declaration(name string) (*model.Declaration, bool) {
	d, ok := v.decls[name]
	return d, ok
}

// Kinds returns the kinds defined by the file, in file order.
func (v *Vocabulary) Kinds() []*model.Kind {
	return v.kindOrder
}

// Declarations returns the declarations defined by the file, in file order.
func (v *Vocabulary) Declarations() []*model.Declaration {
	return v.declOrder
}

type document struct {
	Kinds        []kindSpec `yaml:"kinds"`
	Declarations []declSpec `yaml:"declarations"`
}

type kindSpec struct {
	Name        string         `yaml:"name"`
	Builtin     bool           `yaml:"builtin"`
	Targets     []string       `yaml:"targets"`
	RepeatsInto string         `yaml:"repeats_into"`
	Projection  *ruleSpec      `yaml:"projection"`
	Properties  []propertySpec `yaml:"properties"`
	Attributes  []attrSpec     `yaml:"attributes"`
}

type propertySpec struct {
	Name       string    `yaml:"name"`
	Type       string    `yaml:"type"`
	Default    any       `yaml:"default"`
	Projection *ruleSpec `yaml:"projection"`
}

type ruleSpec struct {
	Target string `yaml:"target"`
	Name   string `yaml:"name"`
}

type attrSpec struct {
	Kind   string         `yaml:"kind"`
	Values map[string]any `yaml:"values"`
}

type declSpec struct {
	Name       string     `yaml:"name"`
	Element    string     `yaml:"element"`
	Attributes []attrSpec `yaml:"attributes"`
}

// LoadFile reads a vocabulary from the YAML file at path.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read vocabulary %s", path)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load vocabulary %s", path)
	}
	return v, nil
}

// Load reads a vocabulary from r.
func Load(r io.Reader) (*Vocabulary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read vocabulary")
	}
	return Parse(data)
}

// Parse builds a vocabulary from YAML. Unknown fields are rejected.
func Parse(data []byte) (*Vocabulary, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Mark(errors.Wrap(err, "decode vocabulary"), errors.ErrInvalidVocabulary)
	}

	v := &Vocabulary{
		kinds:    make(map[string]*model.Kind),
		decls:    make(map[string]*model.Declaration),
		prepared: make(map[*model.Kind]bool),
	}
	defer func() { v.prepared = nil }()
	for _, b := range model.Builtins() {
		v.kinds[b.Name()] = b
	}

	// Kinds reference each other freely, so create them all first.
	for _, ks := range doc.Kinds {
		if ks.Name == "" {
			return nil, invalidf("kind without a name")
		}
		if _, dup := v.kinds[ks.Name]; dup {
			return nil, invalidf("kind %s defined twice", ks.Name)
		}
		k := model.NewKind(ks.Name)
		v.kinds[ks.Name] = k
		v.kindOrder = append(v.kindOrder, k)
	}
	for i, ks := range doc.Kinds {
		if err := v.define(v.kindOrder[i], ks); err != nil {
			return nil, err
		}
	}
	// Attribute-typed defaults are nested instances of other kinds, so they
	// are converted only once every kind is defined.
	for i, ks := range doc.Kinds {
		if err := v.prepare(v.kindOrder[i]); err != nil {
			return nil, wrapInvalid(err, "kind %s", ks.Name)
		}
	}
	for i, ks := range doc.Kinds {
		insts, err := v.instances(ks.Attributes)
		if err != nil {
			return nil, wrapInvalid(err, "kind %s", ks.Name)
		}
		v.kindOrder[i].Annotate(insts...)
	}

	for _, ds := range doc.Declarations {
		if ds.Name == "" {
			return nil, invalidf("declaration without a name")
		}
		if _, dup := v.decls[ds.Name]; dup {
			return nil, invalidf("declaration %s defined twice", ds.Name)
		}
		el := apis.ElementTypeDecl
		if ds.Element != "" {
			var err error
			if el, err = parseElement(ds.Element); err != nil {
				return nil, wrapInvalid(err, "declaration %s", ds.Name)
			}
		}
		insts, err := v.instances(ds.Attributes)
		if err != nil {
			return nil, wrapInvalid(err, "declaration %s", ds.Name)
		}
		d := model.NewDeclaration(ds.Name, el).Annotate(insts...)
		v.decls[ds.Name] = d
		v.declOrder = append(v.declOrder, d)
	}
	return v, nil
}

// define fills in everything about k except its meta-attributes.
func (v *Vocabulary) define(k *model.Kind, ks kindSpec) error {
	if ks.Builtin {
		k.AsBuiltin()
	}
	if len(ks.Targets) > 0 {
		targets := make([]apis.ElementType, 0, len(ks.Targets))
		for _, s := range ks.Targets {
			el, err := parseElement(s)
			if err != nil {
				return wrapInvalid(err, "kind %s", ks.Name)
			}
			targets = append(targets, el)
		}
		k.WithTargets(targets...)
	}
	if ks.RepeatsInto != "" {
		c, err := v.kind(ks.RepeatsInto)
		if err != nil {
			return wrapInvalid(err, "kind %s repeats_into", ks.Name)
		}
		k.WithRepeatsInto(c)
	}
	if ks.Projection != nil {
		rule, err := v.rule(ks.Projection)
		if err != nil {
			return wrapInvalid(err, "kind %s projection", ks.Name)
		}
		k.WithProjection(rule.Target, rule.Name)
	}
	for _, ps := range ks.Properties {
		p, err := v.property(ps)
		if err != nil {
			return wrapInvalid(err, "kind %s", ks.Name)
		}
		if _, dup := k.Property(p.Name); dup {
			return invalidf("kind %s: property %s declared twice", ks.Name, p.Name)
		}
		k.WithProperty(p)
	}
	return nil
}

func (v *Vocabulary) property(ps propertySpec) (apis.Property, error) {
	if ps.Name == "" {
		return apis.Property{}, invalidf("property without a name")
	}
	t, err := v.valueType(ps.Type)
	if err != nil {
		return apis.Property{}, wrapInvalid(err, "property %s", ps.Name)
	}
	p := apis.Property{Name: ps.Name, Type: t, Default: ps.Default}
	if ps.Projection != nil {
		if p.Projection, err = v.rule(ps.Projection); err != nil {
			return apis.Property{}, wrapInvalid(err, "property %s projection", ps.Name)
		}
	}
	return p, nil
}

// prepare converts k's attribute-typed defaults from their YAML form into
// instances. Kinds used by those instances are prepared first; a kind met
// again while it is being prepared keeps its YAML defaults, which the
// instantiator then rejects.
func (v *Vocabulary) prepare(k *model.Kind) error {
	if v.prepared[k] {
		return nil
	}
	v.prepared[k] = true
	for _, p := range k.Properties() {
		if p.Type.Scalar != apis.Attribute || p.Default == nil {
			continue
		}
		def, err := v.value(p.Default, p.Type)
		if err != nil {
			return errors.Wrapf(err, "property %s default", p.Name)
		}
		p.Default = def
		k.WithProperty(p)
	}
	return nil
}

func (v *Vocabulary) rule(rs *ruleSpec) (*apis.Projection, error) {
	target, err := v.kind(rs.Target)
	if err != nil {
		return nil, err
	}
	return &apis.Projection{Target: target, Name: rs.Name}, nil
}

// valueType parses "string", "[]int", "@Item", "[]@Item" and so on.
func (v *Vocabulary) valueType(s string) (apis.ValueType, error) {
	var t apis.ValueType
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "[]"); ok {
		t.Array = true
		s = rest
	}
	if name, ok := strings.CutPrefix(s, "@"); ok {
		k, err := v.kind(name)
		if err != nil {
			return t, err
		}
		t.Scalar, t.Attr = apis.Attribute, k
		return t, nil
	}
	switch s {
	case "string", "":
		t.Scalar = apis.String
	case "bool":
		t.Scalar = apis.Bool
	case "int":
		t.Scalar = apis.Int
	case "float":
		t.Scalar = apis.Float
	default:
		return t, invalidf("unknown type %q", s)
	}
	return t, nil
}

func (v *Vocabulary) kind(name string) (*model.Kind, error) {
	k, ok := v.kinds[name]
	if !ok {
		return nil, invalidf("unknown kind %q", name)
	}
	return k, nil
}

func (v *Vocabulary) instances(specs []attrSpec) ([]apis.Instance, error) {
	out := make([]apis.Instance, 0, len(specs))
	for i, as := range specs {
		inst, err := v.instance(as)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %d", i)
		}
		out = append(out, inst)
	}
	return out, nil
}

func (v *Vocabulary) instance(as attrSpec) (apis.Instance, error) {
	k, err := v.kind(as.Kind)
	if err != nil {
		return nil, err
	}
	if err := v.prepare(k); err != nil {
		return nil, errors.Wrapf(err, "kind %s", k.Name())
	}
	values := make(map[string]any, len(as.Values))
	for name, raw := range as.Values {
		p, ok := k.Property(name)
		if !ok {
			return nil, errors.Mark(
				errors.Wrapf(errors.ErrUnknownProperty, "%s has no property %q", k.Name(), name),
				errors.ErrInvalidVocabulary)
		}
		if values[name], err = v.value(raw, p.Type); err != nil {
			return nil, errors.Wrapf(err, "%s.%s", k.Name(), name)
		}
	}
	inst, err := model.Instantiator{}.Instantiate(k, values)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrInvalidVocabulary)
	}
	return inst, nil
}

// value turns nested {kind, values} maps into instances. Other values are
// left for the instantiator to check.
func (v *Vocabulary) value(raw any, t apis.ValueType) (any, error) {
	if t.Scalar != apis.Attribute || raw == nil {
		return raw, nil
	}
	if !t.Array {
		return v.nested(raw)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, invalidf("expected a list of attributes, got %T", raw)
	}
	out := make([]apis.Instance, 0, len(list))
	for i, e := range list {
		inst, err := v.nested(e)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, inst)
	}
	return out, nil
}

func (v *Vocabulary) nested(raw any) (apis.Instance, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidf("expected an attribute {kind, values}, got %T", raw)
	}
	var as attrSpec
	for key, val := range m {
		switch key {
		case "kind":
			if as.Kind, ok = val.(string); !ok {
				return nil, invalidf("attribute kind must be a string, got %T", val)
			}
		case "values":
			if val == nil {
				continue
			}
			if as.Values, ok = val.(map[string]any); !ok {
				return nil, invalidf("attribute values must be a map, got %T", val)
			}
		default:
			return nil, invalidf("unknown attribute field %q", key)
		}
	}
	return v.instance(as)
}

func parseElement(s string) (apis.ElementType, error) {
	for _, el := range []apis.ElementType{
		apis.ElementTypeDecl,
		apis.ElementMethod,
		apis.ElementField,
		apis.ElementAttributeKind,
	} {
		if strings.EqualFold(strings.TrimSpace(s), el.String()) {
			return el, nil
		}
	}
	return 0, invalidf("unknown element type %q", s)
}

func invalidf(format string, args ...any) error {
	return errors.Wrapf(errors.ErrInvalidVocabulary, format, args...)
}

func wrapInvalid(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), errors.ErrInvalidVocabulary)
}
