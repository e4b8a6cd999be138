// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package markdown

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

//go:embed markdown.go.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"formatFlags": formatFlags,
	"cell":        cell,
}

var tmpl = template.Must(template.New("markdown.go.tmpl").Funcs(translate.Funcs()).Funcs(funcMap).ParseFS(tmplFS, "markdown.go.tmpl"))

// Translator renders a schema as markdown documentation.
type Translator struct{}

// Name returns the target name.
func (t *Translator) Name() string {
	return "markdown"
}

// Translate renders README.md describing every enum and message.
func (t *Translator) Translate(s *schema.Schema, opts translate.Options) ([]translate.File, error) {
	data, err := translate.Prepare(s, &resolver{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	f, err := translate.Execute(tmpl, "markdown.go.tmpl", "README.md", data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return []translate.File{f}, nil
}

// formatFlags formats the presence flags of a field as a human-readable string.
func formatFlags(f translate.Field) string {
	var parts []string
	if f.Nullable {
		parts = append(parts, "optional")
	} else {
		parts = append(parts, "required")
	}
	if f.Repeated {
		parts = append(parts, "repeated")
	}
	return strings.Join(parts, ", ")
}

// cell escapes text for use inside a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
