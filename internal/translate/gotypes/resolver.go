// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gotypes

import (
	"strings"

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
		return "float64"
	case schema.KindBool:
		return "bool"
	default:
		return "any"
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
		return "time.Time"
	default:
		return "any"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "[]" + elemType
}

// OptionalType uses a pointer, so an optional slice becomes *[]T and nil
// stays distinct from an empty slice.
func (r *resolver) OptionalType(typ string, _ bool) string {
	return "*" + typ
}

func (r *resolver) RefType(defName string) string {
	return toPascalCase(defName)
}

func (r *resolver) FormatDefName(defName string) string {
	return toPascalCase(defName)
}

func (r *resolver) FormatFieldName(fieldName string) string {
	return toPascalCase(fieldName)
}

func (r *resolver) FormatEnumMember(enumName, label string) string {
	return toPascalCase(enumName) + "_" + label
}

func (r *resolver) EnrichField(f *translate.Field) {
	tag := f.SchemaName
	if f.Nullable {
		tag += ",omitempty"
	}
	f.Tag = "`json:\"" + tag + "\"`"
}

// Common Go acronyms that should be fully uppercased.
var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"http": "HTTP",
	"api":  "API",
	"json": "JSON",
	"xml":  "XML",
	"sql":  "SQL",
	"html": "HTML",
	"ip":   "IP",
	"tcp":  "TCP",
	"udp":  "UDP",
	"tls":  "TLS",
	"ssl":  "SSL",
	"ssh":  "SSH",
	"cpu":  "CPU",
	"uri":  "URI",
	"uuid": "UUID",
}

// toPascalCase converts a snake_case or camelCase string to PascalCase.
// Words that are common Go acronyms (ID, URL, UUID, ...) are fully uppercased,
// so "venueId" becomes "VenueID".
func toPascalCase(s string) string {
	parts := strings.Split(translate.ToSnakeCase(s), "_")

	var sb strings.Builder
	for _, part := range parts {
		if acronym, ok := acronyms[part]; ok {
			sb.WriteString(acronym)
		} else if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return sb.String()
}
