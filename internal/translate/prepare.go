// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dacolabs/schemagen/internal/schema"
)

// Prepare converts a Schema into a SchemaData ready for template execution.
// Enums and messages are sorted by name; fields keep their declaration order.
// Composite well-known types referenced by any field are appended to
// WellKnown so each target can emit their definitions.
func Prepare(s *schema.Schema, resolver TypeResolver, opts Options) (*SchemaData, error) {
	data := &SchemaData{
		Package:   opts.Package,
		Version:   opts.Version,
		Commit:    opts.Commit,
		Generator: opts.Generator,
		Extra:     make(map[string]any),
	}

	names := make(map[string]string) // target type name -> schema name
	reserved := make(map[string]bool)
	if rn, ok := resolver.(ReservedNamer); ok {
		for _, name := range rn.ReservedNames() {
			reserved[name] = true
		}
	}

	claim := func(target, schemaName string) error {
		if reserved[target] {
			return fmt.Errorf("type %q maps to %q, which the target already defines", schemaName, target)
		}
		if prev, dup := names[target]; dup {
			return fmt.Errorf("types %q and %q both map to %q", prev, schemaName, target)
		}
		names[target] = schemaName
		return nil
	}

	for _, e := range s.Enums() {
		def := EnumDef{
			Name:        resolver.FormatDefName(e.Name),
			SchemaName:  e.Name,
			Description: e.Description,
		}
		if err := claim(def.Name, e.Name); err != nil {
			return nil, err
		}
		for _, v := range e.Ordered() {
			def.Members = append(def.Members, EnumMember{
				Name:   resolver.FormatEnumMember(e.Name, v.Label),
				Label:  v.Label,
				Number: v.Number,
			})
		}
		data.Enums = append(data.Enums, def)
	}

	for _, m := range s.Messages() {
		def, err := prepareMessage(s, m, resolver)
		if err != nil {
			return nil, err
		}
		if err := claim(def.Name, m.Name); err != nil {
			return nil, err
		}
		data.Defs = append(data.Defs, def)
	}

	for _, kind := range s.WellKnownKinds() {
		wk, _ := schema.WellKnown(kind)
		def, err := prepareMessage(s, wk, resolver)
		if err != nil {
			return nil, err
		}
		def.Name = resolver.WellKnownType(kind)
		if err := claim(def.Name, kind.String()); err != nil {
			return nil, fmt.Errorf("well-known type %s: %w", kind, err)
		}
		data.WellKnown = append(data.WellKnown, def)
	}

	return data, nil
}

func prepareMessage(s *schema.Schema, m *schema.Message, resolver TypeResolver) (TypeDef, error) {
	def := TypeDef{
		Name:        resolver.FormatDefName(m.Name),
		SchemaName:  m.Name,
		Description: m.Description,
		Fields:      make([]Field, 0, len(m.Fields)),
	}

	seen := make(map[string]string, len(m.Fields))
	for _, sf := range m.Fields {
		tt, err := MapType(s, m, sf, resolver)
		if err != nil {
			return TypeDef{}, err
		}

		f := Field{
			Name:        resolver.FormatFieldName(sf.Name),
			SchemaName:  sf.Name,
			Type:        tt.Expr,
			Nullable:    sf.Optional,
			Repeated:    sf.Repeated,
			Number:      sf.Number,
			Kind:        tt.Kind,
			Ref:         tt.Ref,
			Description: sf.Description,
		}
		resolver.EnrichField(&f)

		if prev, dup := seen[f.Name]; dup {
			return TypeDef{}, fmt.Errorf("message %q: fields %q and %q both map to %q", m.Name, prev, sf.Name, f.Name)
		}
		seen[f.Name] = sf.Name
		def.Fields = append(def.Fields, f)
	}
	return def, nil
}

// ToSnakeCase converts a string to a valid snake_case identifier.
// It splits on non-alphanumeric characters and lower-to-upper case changes,
// lowercases each part, and prefixes with underscore if the result starts with a digit.
func ToSnakeCase(s string) string {
	var parts []string
	var cur []rune
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			parts = append(parts, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	result := strings.Join(parts, "_")
	if result != "" && result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// ToPascalCase converts a snake_case or camelCase string to PascalCase for type name generation.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var sb strings.Builder
	for _, part := range parts {
		if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}

	return sb.String()
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	p := ToPascalCase(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}
