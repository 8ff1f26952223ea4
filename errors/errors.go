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

// Package errors provides error handling for attrx.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping, details and marks from one import, and it defines the sentinel
// errors the resolver surfaces.
//
// Absence of an attribute is never an error. Everything here signals a
// broken attribute vocabulary or a failing accessor, and callers should
// abort the dependent resolution instead of retrying.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// Details and hints
var (
	WithHint       = crdb.WithHint
	WithHintf      = crdb.WithHintf
	WithDetail     = crdb.WithDetail
	WithDetailf    = crdb.WithDetailf
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Match them with Is; wrapped and marked errors keep their identity.
var (
	// ErrProjection marks a projection rule that cannot be applied: the target
	// property does not exist or the projected value has the wrong type.
	ErrProjection = New("attribute projection failed")

	// ErrIntrospection marks a failing accessor or declaration query.
	ErrIntrospection = New("attribute introspection failed")

	// ErrUnknownProperty is returned when a value names an undeclared property.
	ErrUnknownProperty = New("unknown attribute property")

	// ErrTypeMismatch is returned when a value does not fit the declared type.
	ErrTypeMismatch = New("attribute value type mismatch")

	// ErrNilDeclaration is returned when a nil declaration is resolved.
	ErrNilDeclaration = New("nil declaration")

	// ErrNilKind is returned when a nil kind is requested.
	ErrNilKind = New("nil attribute kind")

	// ErrInvalidVocabulary is returned by loaders for malformed vocabularies.
	ErrInvalidVocabulary = New("invalid attribute vocabulary")
)

// IsProjection reports whether err is or wraps ErrProjection.
func IsProjection(err error) bool {
	return err != nil && Is(err, ErrProjection)
}

// IsIntrospection reports whether err is or wraps ErrIntrospection.
func IsIntrospection(err error) bool {
	return err != nil && Is(err, ErrIntrospection)
}
