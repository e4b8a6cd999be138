// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonschema

import (
	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

// resolver yields bare definition names for composite fields; the translator
// builds the property schemas from each field's kind.
type resolver struct{}

func (r *resolver) PrimitiveType(kind schema.Kind) string {
	return kind.String()
}

func (r *resolver) WellKnownType(kind schema.Kind) string {
	switch kind {
	case schema.KindUUID:
		return "UUID"
	case schema.KindMoney:
		return "Money"
	case schema.KindAddress:
		return "Address"
	default:
		return kind.String()
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return elemType
}

func (r *resolver) OptionalType(typ string, _ bool) string {
	return typ
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

func (r *resolver) EnrichField(_ *translate.Field) {}
