// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"github.com/dacolabs/schemagen/internal/schema"
)

// TargetType describes how one schema field is expressed in a target language.
type TargetType struct {
	Expr     string      // complete type expression, wrapping included
	Element  string      // element type without sequence/optional wrapping
	Kind     schema.Kind // logical kind of the element
	Ref      string      // referenced enum/message schema name, if any
	Optional bool
	Repeated bool
}

// MapType resolves the target type of field f of message m. References are
// checked against s even though loading already validated them, so
// hand-built fields cannot slip through with a dangling type. The returned
// *schema.UnknownTypeReference names the field by its qualified name.
func MapType(s *schema.Schema, m *schema.Message, f schema.Field, r TypeResolver) (TargetType, error) {
	unknown := func() error {
		return &schema.UnknownTypeReference{Field: s.QualifiedName(m.Name, f.Name), Type: f.Type}
	}

	kind := f.Kind
	if kind == schema.KindInvalid {
		k, err := s.KindOf(f.Type)
		if err != nil {
			return TargetType{}, unknown()
		}
		kind = k
	}

	tt := TargetType{Kind: kind, Optional: f.Optional, Repeated: f.Repeated}

	switch {
	case kind.IsScalar():
		tt.Element = r.PrimitiveType(kind)
	case kind.IsWellKnown():
		tt.Element = r.WellKnownType(kind)
	case kind == schema.KindEnum:
		if _, ok := s.Enum(f.Type); !ok {
			return TargetType{}, unknown()
		}
		tt.Ref = f.Type
		tt.Element = r.RefType(f.Type)
	case kind == schema.KindMessage:
		if _, ok := s.Message(f.Type); !ok {
			return TargetType{}, unknown()
		}
		tt.Ref = f.Type
		tt.Element = r.RefType(f.Type)
	default:
		return TargetType{}, unknown()
	}

	tt.Expr = tt.Element
	if f.Repeated {
		tt.Expr = r.ArrayType(tt.Expr)
	}
	if f.Optional {
		tt.Expr = r.OptionalType(tt.Expr, f.Repeated)
	}
	return tt, nil
}
