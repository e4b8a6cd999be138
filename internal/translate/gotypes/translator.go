// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package gotypes provides Go struct type generation.
package gotypes

import (
	"embed"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

//go:embed gotypes.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("gotypes").Funcs(translate.Funcs()).ParseFS(tmplFS, "gotypes.go.tmpl"))

// Translator renders a schema as Go struct and enum declarations.
type Translator struct{}

// Name returns the target name.
func (t *Translator) Name() string {
	return "go"
}

// Translate renders types.go, version.go and, when the schema declares enums,
// enums.go. Every file is passed through gofmt.
func (t *Translator) Translate(s *schema.Schema, opts translate.Options) ([]translate.File, error) {
	data, err := translate.Prepare(s, &resolver{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	data.Extra["GoPackage"] = PackageName(opts.Package)

	// A struct cannot contain itself by value.
	for i := range data.Defs {
		def := &data.Defs[i]
		for j := range def.Fields {
			if s.OnRequiredCycle(def.SchemaName, def.Fields[j].SchemaName) {
				def.Fields[j].Type = "*" + def.Fields[j].Type
			}
		}
	}

	// checks if any field type contains time.Time.
	data.Extra["NeedsTimeImport"] = false
	for _, defs := range [][]translate.TypeDef{data.Defs, data.WellKnown} {
		for _, def := range defs {
			for i := range def.Fields {
				if strings.Contains(def.Fields[i].Type, "time.Time") {
					data.Extra["NeedsTimeImport"] = true
				}
			}
		}
	}

	outputs := []struct{ name, path string }{
		{"types", "types.go"},
		{"version", "version.go"},
	}
	if len(data.Enums) > 0 {
		outputs = append(outputs, struct{ name, path string }{"enums", "enums.go"})
	}

	files := make([]translate.File, 0, len(outputs))
	for _, o := range outputs {
		f, err := translate.Execute(tmpl, o.name, o.path, data)
		if err != nil {
			return nil, fmt.Errorf("failed to execute template: %w", err)
		}
		if f.Content, err = format.Source(f.Content); err != nil {
			return nil, fmt.Errorf("failed to format %s: %w", o.path, err)
		}
		files = append(files, f)
	}
	return files, nil
}

// PackageName derives a Go package name from the last segment of a dotted
// package. It falls back to "schema" when nothing usable remains.
func PackageName(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		pkg = pkg[i+1:]
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, pkg)
	if name == "" || !unicode.IsLetter([]rune(name)[0]) || token.IsKeyword(name) {
		return "schema"
	}
	return name
}
