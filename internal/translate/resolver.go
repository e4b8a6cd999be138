// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import "github.com/dacolabs/schemagen/internal/schema"

// TypeResolver converts schema types to target-language type strings and naming conventions.
// Each translator implements this interface to control how schemas map to its output format.
type TypeResolver interface {
	// PrimitiveType maps a scalar kind to a target type string.
	PrimitiveType(kind schema.Kind) string

	// WellKnownType maps a well-known kind to its dedicated target type.
	// Composite kinds (UUID, Money, Address) name a type definition that is
	// emitted alongside the schema's messages.
	WellKnownType(kind schema.Kind) string

	// ArrayType wraps an element type string in an ordered sequence type.
	ArrayType(elemType string) string

	// OptionalType wraps a type for an optional field. repeated is true when
	// typ is already a sequence; absent and empty must stay distinct.
	OptionalType(typ string, repeated bool) string

	// RefType returns the type string for a reference to an enum or message.
	RefType(defName string) string

	// FormatDefName formats a message or enum name for the target language.
	FormatDefName(defName string) string

	// FormatFieldName formats a field name. The mapping must be reversible:
	// translators expose the schema name where it differs.
	FormatFieldName(fieldName string) string

	// FormatEnumMember formats an enum member name.
	FormatEnumMember(enumName, label string) string

	// EnrichField applies language-specific post-processing to a resolved field.
	// It may mutate any combination of the field's properties:
	//   - Name: rename for target conventions
	//   - Type: adjust the resolved type
	//   - Tag:  set annotations (e.g. json struct tags for Go, aliases for Python)
	// Called once per field after type resolution, before template execution.
	EnrichField(f *Field)
}

// ReservedNamer is implemented by resolvers whose output refers to type names
// the target language or its imports already define. Prepare rejects schema
// types that would shadow them.
type ReservedNamer interface {
	ReservedNames() []string
}
