// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package protobuf provides Protocol Buffers (proto3) schema generation.
package protobuf

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

//go:embed protobuf.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("protobuf").Funcs(translate.Funcs()).ParseFS(tmplFS, "protobuf.go.tmpl"))

// Translator renders a schema as a single proto3 file.
type Translator struct{}

// Name returns the target name.
func (t *Translator) Name() string {
	return "protobuf"
}

type message struct {
	translate.TypeDef
	Lists []list
}

// list is the wrapper message standing in for an optional repeated field.
type list struct {
	Name string
	Elem string
}

// Translate converts a schema to proto3 enum and message definitions.
func (t *Translator) Translate(s *schema.Schema, opts translate.Options) ([]translate.File, error) {
	data, err := translate.Prepare(s, &resolver{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	if err := scopeEnumValues(data); err != nil {
		return nil, err
	}

	data.Extra["NeedsTimestamp"] = false
	var messages []message
	for _, defs := range [][]translate.TypeDef{data.WellKnown, data.Defs} {
		for _, def := range defs {
			m, err := wrapLists(def)
			if err != nil {
				return nil, err
			}
			for _, f := range def.Fields {
				if f.Kind == schema.KindTimestamp {
					data.Extra["NeedsTimestamp"] = true
				}
			}
			messages = append(messages, m)
		}
	}
	data.Extra["Messages"] = messages

	f, err := translate.Execute(tmpl, "proto", FileName(opts.Package), data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return []translate.File{f}, nil
}

// wrapLists replaces every optional repeated field with a nested wrapper
// message holding the elements at field 1. A set but empty wrapper is then
// distinguishable from an absent one.
func wrapLists(def translate.TypeDef) (message, error) {
	m := message{TypeDef: def}
	m.Fields = append([]translate.Field(nil), def.Fields...)

	taken := make(map[string]string)
	for i := range m.Fields {
		f := &m.Fields[i]
		if !f.Nullable || !f.Repeated {
			continue
		}
		name := translate.ToPascalCase(f.SchemaName) + "List"
		if prev, dup := taken[name]; dup {
			return message{}, fmt.Errorf("message %q: fields %q and %q both need wrapper %q", def.SchemaName, prev, f.SchemaName, name)
		}
		taken[name] = f.SchemaName
		m.Lists = append(m.Lists, list{Name: name, Elem: strings.TrimPrefix(f.Type, "repeated ")})
		f.Type = name
	}
	return m, nil
}

// scopeEnumValues makes enum value names unique in the package, where proto3
// declares them. A name used by several enums is prefixed with each enum's
// UPPER_SNAKE name; any clash left over fails the run.
func scopeEnumValues(data *translate.SchemaData) error {
	uses := make(map[string]int)
	for _, e := range data.Enums {
		for _, m := range e.Members {
			uses[m.Name]++
		}
	}

	owners := make(map[string]string)
	for _, defs := range [][]translate.TypeDef{data.WellKnown, data.Defs} {
		for _, def := range defs {
			owners[def.Name] = "message " + def.Name
		}
	}
	for _, e := range data.Enums {
		owners[e.Name] = "enum " + e.Name
	}

	for i := range data.Enums {
		e := &data.Enums[i]
		prefix := strings.ToUpper(translate.ToSnakeCase(e.Name)) + "_"
		for j := range e.Members {
			m := &e.Members[j]
			if uses[m.Name] > 1 {
				m.Name = prefix + m.Name
			}
			if prev, dup := owners[m.Name]; dup {
				return fmt.Errorf("enum %q: value %s clashes with %s in package scope", e.SchemaName, m.Name, prev)
			}
			owners[m.Name] = "a value of enum " + e.Name
		}
	}
	return nil
}

// FileName derives the .proto file name from the last segment of a dotted
// package, or "schema.proto" when no package is set.
func FileName(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		pkg = pkg[i+1:]
	}
	if pkg == "" {
		pkg = "schema"
	}
	return strings.ToLower(pkg) + ".proto"
}
