// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import "github.com/dacolabs/schemagen/internal/schema"

// SchemaData is the complete input passed to a translator template.
type SchemaData struct {
	Package   string         // target package/namespace
	Version   string         // semantic version of the generated artifact
	Commit    string         // build identifier
	Generator string         // generator identification for file headers
	Enums     []EnumDef      // sorted by schema name
	Defs      []TypeDef      // messages, sorted by schema name
	WellKnown []TypeDef      // composite well-known types referenced by Defs
	Extra     map[string]any // translator-specific template data
}

// TypeDef represents a message rendered as one structural type.
type TypeDef struct {
	Name        string  // formatted name, e.g. "AuditInfo"
	SchemaName  string  // name as declared in the schema
	Description string  // message description, if any
	Fields      []Field // declaration order
}

// Field represents a single field within a type definition.
type Field struct {
	Name        string      // target name (may be mutated by EnrichField)
	SchemaName  string      // name as declared in the schema
	Type        string      // fully resolved target type string
	Nullable    bool        // true for optional fields
	Repeated    bool        // true for repeated fields
	Number      int         // wire number
	Kind        schema.Kind // logical kind of the element type
	Ref         string      // referenced enum/message schema name, if any
	Tag         string      // language-specific annotation, e.g. `json:"name,omitempty"`
	Description string      // schema description, if any
}

// EnumDef represents an enum rendered as one enumeration type.
type EnumDef struct {
	Name        string
	SchemaName  string
	Description string
	Members     []EnumMember // zero member first
}

// EnumMember is one rendered enum member.
type EnumMember struct {
	Name   string // target name, e.g. "SortOrder_SORT_ORDER_ASC"
	Label  string // label as declared in the schema
	Number int32
}
