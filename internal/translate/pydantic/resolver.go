// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package pydantic provides Pydantic BaseModel schema generation.
package pydantic

import (
	"strconv"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

type resolver struct {
	s *schema.Schema
}

func (r *resolver) PrimitiveType(kind schema.Kind) string {
	switch kind {
	case schema.KindString:
		return "str"
	case schema.KindInt:
		return "int"
	case schema.KindFloat:
		return "float"
	case schema.KindBool:
		return "bool"
	default:
		return "str"
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
		return "datetime.datetime"
	default:
		return "str"
	}
}

func (r *resolver) ArrayType(elemType string) string {
	return "list[" + elemType + "]"
}

func (r *resolver) OptionalType(typ string, _ bool) string {
	return "Optional[" + typ + "]"
}

// RefType accepts plain ints next to enum members so numbers unknown to this
// version of the schema still validate.
func (r *resolver) RefType(defName string) string {
	name := translate.ToPascalCase(defName)
	if _, ok := r.s.Enum(defName); ok {
		return "Union[" + name + ", int]"
	}
	return name
}

func (r *resolver) FormatDefName(defName string) string {
	return translate.ToPascalCase(defName)
}

func (r *resolver) FormatFieldName(fieldName string) string {
	return pyIdent(translate.ToSnakeCase(fieldName))
}

func (r *resolver) FormatEnumMember(_, label string) string {
	return pyIdent(label)
}

func (r *resolver) EnrichField(f *translate.Field) {
	switch {
	case f.Name != f.SchemaName && f.Nullable:
		f.Tag = " = Field(default=None, alias=" + strconv.Quote(f.SchemaName) + ")"
	case f.Name != f.SchemaName:
		f.Tag = " = Field(alias=" + strconv.Quote(f.SchemaName) + ")"
	case f.Nullable:
		f.Tag = " = None"
	}
}

// ReservedNames lists the names the generated module imports.
func (r *resolver) ReservedNames() []string {
	return []string{"BaseModel", "ConfigDict", "Field", "IntEnum", "Optional", "Union"}
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// pyIdent appends an underscore to Python keywords.
func pyIdent(s string) string {
	if keywords[s] {
		return s + "_"
	}
	return s
}
