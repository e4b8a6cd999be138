// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonschema provides JSON Schema (draft 2020-12) generation for the
// JSON rendering of schema messages.
package jsonschema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

const draft = "https://json-schema.org/draft/2020-12/schema"

// Translator renders a schema as one JSON Schema document with every enum
// and message under $defs.
type Translator struct{}

// Name returns the target name.
func (t *Translator) Name() string {
	return "jsonschema"
}

// Translate renders schema.json.
func (t *Translator) Translate(s *schema.Schema, opts translate.Options) ([]translate.File, error) {
	data, err := translate.Prepare(s, &resolver{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	root := &jsonschema.Schema{
		Schema:  draft,
		Title:   data.Package,
		Comment: fmt.Sprintf("Code generated by %s. DO NOT EDIT. version %s, commit %s", data.Generator, data.Version, data.Commit),
		Defs:    make(map[string]*jsonschema.Schema),
	}

	for _, e := range data.Enums {
		labels := make([]any, len(e.Members))
		for i, m := range e.Members {
			labels[i] = m.Label
		}
		root.Defs[e.Name] = &jsonschema.Schema{
			Description: e.Description,
			AnyOf: []*jsonschema.Schema{
				{Type: "string", Enum: labels},
				{Type: "integer", Minimum: ptr(-2147483648.0), Maximum: ptr(2147483647.0)},
			},
		}
	}
	for _, def := range data.WellKnown {
		obj := objectSchema(def)
		if def.SchemaName == "UUID" {
			obj.Properties["value"].Format = "uuid"
		}
		root.Defs[def.Name] = obj
	}
	for _, def := range data.Defs {
		root.Defs[def.Name] = objectSchema(def)
	}

	content, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return []translate.File{{Path: "schema.json", Content: append(content, '\n')}}, nil
}

func objectSchema(def translate.TypeDef) *jsonschema.Schema {
	obj := &jsonschema.Schema{
		Type:        "object",
		Description: def.Description,
		Properties:  make(map[string]*jsonschema.Schema, len(def.Fields)),
	}
	for _, f := range def.Fields {
		prop := elementSchema(f)
		if f.Repeated {
			prop = &jsonschema.Schema{Type: "array", Items: prop}
		}
		prop.Description = f.Description
		obj.Properties[f.Name] = prop
		if !f.Nullable {
			obj.Required = append(obj.Required, f.Name)
		}
	}
	return obj
}

func elementSchema(f translate.Field) *jsonschema.Schema {
	switch f.Kind {
	case schema.KindString:
		return &jsonschema.Schema{Type: "string"}
	case schema.KindInt:
		return &jsonschema.Schema{Type: "integer"}
	case schema.KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case schema.KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case schema.KindTimestamp:
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	default:
		return &jsonschema.Schema{Ref: "#/$defs/" + f.Type}
	}
}

func ptr[T any](v T) *T {
	return &v
}
