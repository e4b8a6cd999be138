// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package protobuf

import (
	"fmt"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind schema.Kind) string {
	switch kind {
	case schema.KindString:
		return "string"
	case schema.KindInt:
		return "int64"
	case schema.KindFloat:
		return "double"
	case schema.KindBool:
		return "bool"
	default:
		return "string"
	}
}

func (r *resolver) WellKnownType(kind schema.Kind) string {
	switch kind {
	case schema.KindUUID:
		return "UUID"
	case schema.KindMoney:
		return "Money"
	case schema.KindAddress:
		return "Address"
	case schema.KindTimestamp:
		return "google.protobuf.Timestamp"
	default:
		return "string"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "repeated " + elemType
}

// OptionalType leaves repeated types alone; the translator replaces them with
// a list wrapper message, since proto3 has no optional repeated fields.
func (r *resolver) OptionalType(typ string, repeated bool) string {
	if repeated {
		return typ
	}
	return "optional " + typ
}

func (r *resolver) RefType(defName string) string {
	return translate.ToPascalCase(defName)
}

func (r *resolver) FormatDefName(defName string) string {
	return translate.ToPascalCase(defName)
}

func (r *resolver) FormatFieldName(fieldName string) string {
	return fieldName
}

func (r *resolver) FormatEnumMember(_, label string) string {
	return label
}

// EnrichField gives required singular scalars and enums explicit presence.
// proto3 writers skip implicit-presence fields holding the zero value, and
// the codec rejects a message missing a required field.
func (r *resolver) EnrichField(f *translate.Field) {
	f.Tag = fmt.Sprintf("= %d", f.Number)
	if !f.Nullable && !f.Repeated && (f.Kind.IsScalar() || f.Kind == schema.KindEnum) {
		f.Type = "optional " + f.Type
	}
}
