// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pydantic

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

//go:embed pydantic.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("pydantic").
	Funcs(translate.Funcs()).
	Funcs(template.FuncMap{"docstring": docstring}).
	ParseFS(tmplFS, "pydantic.go.tmpl"))

// Translator renders a schema as a Pydantic v2 package.
type Translator struct{}

// Name returns the target name.
func (t *Translator) Name() string {
	return "pydantic"
}

// Translate renders models.py, version.py and __init__.py.
func (t *Translator) Translate(s *schema.Schema, opts translate.Options) ([]translate.File, error) {
	data, err := translate.Prepare(s, &resolver{s: s}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	var models []translate.TypeDef
	models = append(models, data.WellKnown...)
	models = append(models, data.Defs...)

	// sorts fields so required fields come before optional fields.
	sortFields := func(fields []translate.Field) {
		sort.SliceStable(fields, func(i, j int) bool {
			if fields[i].Nullable != fields[j].Nullable {
				return !fields[i].Nullable
			}
			return false
		})
	}

	var needsDatetime, needsOptional, needsUnion, needsField bool
	for i := range models {
		models[i].Fields = append([]translate.Field(nil), models[i].Fields...)
		sortFields(models[i].Fields)
		for _, f := range models[i].Fields {
			needsDatetime = needsDatetime || strings.Contains(f.Type, "datetime.")
			needsOptional = needsOptional || f.Nullable
			needsUnion = needsUnion || strings.Contains(f.Type, "Union[")
			needsField = needsField || strings.Contains(f.Tag, "Field(")
		}
	}

	var stdImports, typing []string
	if needsDatetime {
		stdImports = append(stdImports, "import datetime")
	}
	if len(data.Enums) > 0 {
		stdImports = append(stdImports, "from enum import IntEnum")
	}
	if needsOptional {
		typing = append(typing, "Optional")
	}
	if needsUnion {
		typing = append(typing, "Union")
	}
	if len(typing) > 0 {
		stdImports = append(stdImports, "from typing import "+strings.Join(typing, ", "))
	}
	pydantic := []string{"BaseModel", "ConfigDict"}
	if needsField {
		pydantic = append(pydantic, "Field")
	}

	var exports []string
	for _, e := range data.Enums {
		exports = append(exports, e.Name)
	}
	for _, m := range models {
		exports = append(exports, m.Name)
	}
	sort.Strings(exports)

	data.Extra["Models"] = models
	data.Extra["StdImports"] = stdImports
	data.Extra["PydanticImports"] = pydantic
	data.Extra["Exports"] = exports

	outputs := []struct{ name, path string }{
		{"models", "models.py"},
		{"version", "version.py"},
		{"init", "__init__.py"},
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

// docstring renders text as a Python docstring indented by four spaces.
func docstring(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), `"""`, `\"\"\"`)
	if !strings.Contains(text, "\n") {
		return `    """` + text + `"""`
	}
	var sb strings.Builder
	sb.WriteString(`    """` + "\n")
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(strings.TrimRight("    "+strings.TrimSpace(line), " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(`    """`)
	return sb.String()
}
