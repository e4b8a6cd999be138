// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typescript

import (
	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(kind schema.Kind) string {
	switch kind {
	case schema.KindString:
		return "string"
	case schema.KindInt, schema.KindFloat:
		return "number"
	case schema.KindBool:
		return "boolean"
	default:
		return "unknown"
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
		return "Date"
	default:
		return "unknown"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return elemType + "[]"
}

// OptionalType keeps the type as is; optionality is carried by "?:" on the
// property, which already separates undefined from an empty array.
func (r *resolver) OptionalType(typ string, _ bool) string {
	return typ
}

func (r *resolver) RefType(defName string) string {
	return defName
}

func (r *resolver) FormatDefName(defName string) string {
	return defName
}

func (r *resolver) FormatFieldName(fieldName string) string {
	return fieldName
}

func (r *resolver) FormatEnumMember(_, label string) string {
	return label
}

func (r *resolver) EnrichField(_ *translate.Field) {}

// ReservedNames lists the global types the generated code refers to.
func (r *resolver) ReservedNames() []string {
	return []string{"Date"}
}
