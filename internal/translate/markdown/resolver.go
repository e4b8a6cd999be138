// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package markdown provides markdown schema documentation.
package markdown

import (
	"strings"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

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
	return "array(" + elemType + ")"
}

func (r *resolver) OptionalType(typ string, _ bool) string {
	return typ
}

func (r *resolver) RefType(defName string) string {
	return link(translate.ToPascalCase(defName))
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

// EnrichField links well-known composites to their sections.
func (r *resolver) EnrichField(f *translate.Field) {
	switch f.Kind {
	case schema.KindUUID, schema.KindMoney, schema.KindAddress:
		name := r.WellKnownType(f.Kind)
		f.Type = strings.Replace(f.Type, name, link(name), 1)
	}
}

func link(name string) string {
	return "[" + name + "](#" + strings.ToLower(name) + ")"
}
