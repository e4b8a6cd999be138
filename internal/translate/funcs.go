// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/dacolabs/schemagen/internal/schema"
)

// Funcs returns template helpers shared by all targets.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"comment": Comment,
		"quote":   strconv.Quote,
		"join":    strings.Join,
	}
}

// Comment prefixes every line of text with prefix and terminates each line
// with a newline. Empty text yields an empty string.
func Comment(prefix, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(strings.TrimRight(prefix+strings.TrimSpace(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Execute runs a named template of tmpl into a File at path.
func Execute(tmpl *template.Template, name, path string, data any) (File, error) {
	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return File{}, err
	}
	return File{Path: path, Content: []byte(sb.String())}, nil
}

// EnumRefs returns the sorted, distinct enum schema names referenced by defs.
func EnumRefs(defs ...[]TypeDef) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range defs {
		for _, d := range group {
			for _, f := range d.Fields {
				if f.Ref != "" && !seen[f.Ref] && f.Kind == schema.KindEnum {
					seen[f.Ref] = true
					out = append(out, f.Ref)
				}
			}
		}
	}
	sort.Strings(out)
	return out
}
