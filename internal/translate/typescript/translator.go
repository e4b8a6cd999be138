// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typescript provides TypeScript interface and enum generation.
package typescript

import (
	"embed"
	"fmt"
	"text/template"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

//go:embed typescript.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("typescript").Funcs(translate.Funcs()).ParseFS(tmplFS, "typescript.go.tmpl"))

// Translator renders a schema as TypeScript modules.
type Translator struct{}

// Name returns the target name.
func (t *Translator) Name() string {
	return "typescript"
}

// Translate renders enums.ts, types.ts, version.ts and an index.ts barrel.
// enums.ts is omitted when the schema declares no enums.
func (t *Translator) Translate(s *schema.Schema, opts translate.Options) ([]translate.File, error) {
	data, err := translate.Prepare(s, &resolver{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}
	data.Extra["EnumImports"] = translate.EnumRefs(data.WellKnown, data.Defs)

	outputs := []struct{ name, path string }{
		{"types", "types.ts"},
		{"version", "version.ts"},
		{"index", "index.ts"},
	}
	if len(data.Enums) > 0 {
		outputs = append(outputs, struct{ name, path string }{"enums", "enums.ts"})
	}

	files := make([]translate.File, 0, len(outputs))
	for _, o := range outputs {
		f, err := translate.Execute(tmpl, o.name, o.path, data)
		if err != nil {
			return nil, fmt.Errorf("failed to execute template: %w", err)
		}
		files = append(files, f)
	}
	return files, nil
}
