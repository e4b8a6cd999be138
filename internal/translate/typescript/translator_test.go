// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typescript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

const commonYAML = `
package: gastroflow.common
enums:
  - name: SortOrder
    values:
      - { name: SORT_ORDER_ASC, number: 1 }
      - { name: SORT_ORDER_UNSPECIFIED, number: 0 }
      - { name: SORT_ORDER_DESC, number: 2 }
messages:
  - name: PaginationRequest
    description: Page selection.
    fields:
      - { name: page, type: int }
      - { name: sortOrder, type: SortOrder, optional: true }
  - name: Venue
    fields:
      - { name: id, type: uuid }
      - { name: averageBill, type: money, optional: true }
      - { name: tags, type: string, repeated: true, optional: true }
      - { name: openedAt, type: timestamp }
      - { name: pages, type: PaginationRequest, repeated: true }
`

func mustParse(t *testing.T, src string) *schema.Schema {
	t.Helper()
	s, err := schema.YAML.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return s
}

func emit(t *testing.T, s *schema.Schema) map[string]string {
	t.Helper()
	files, err := translate.Emit(s, &Translator{}, translate.Options{Version: "1.2.0", Commit: "abc123"})
	require.NoError(t, err)
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Path] = string(f.Content)
	}
	return out
}

func TestTranslate_Files(t *testing.T) {
	files, err := translate.Emit(mustParse(t, commonYAML), &Translator{}, translate.Options{Version: "1.2.0"})
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"enums.ts", "index.ts", "types.ts", "version.ts"}, paths)
}

func TestTranslate_NoEnums(t *testing.T) {
	out := emit(t, mustParse(t, `
messages:
  - name: Ping
    fields:
      - { name: at, type: timestamp }
`))
	assert.NotContains(t, out, "enums.ts")
	assert.NotContains(t, out["index.ts"], "./enums")
	assert.NotContains(t, out["types.ts"], "import")
}

func TestTranslate_EnumZeroFirst(t *testing.T) {
	out := emit(t, mustParse(t, commonYAML))

	assert.Contains(t, out["enums.ts"], `export enum SortOrder {
  SORT_ORDER_UNSPECIFIED = 0,
  SORT_ORDER_ASC = 1,
  SORT_ORDER_DESC = 2,
}`)
}

func TestTranslate_Interfaces(t *testing.T) {
	types := emit(t, mustParse(t, commonYAML))["types.ts"]

	assert.Contains(t, types, `import { SortOrder } from "./enums";`)
	assert.Contains(t, types, "// Page selection.\nexport interface PaginationRequest {")
	assert.Contains(t, types, "  sortOrder?: SortOrder;")
	assert.Contains(t, types, "  id: UUID;")
	assert.Contains(t, types, "  averageBill?: Money;")
	assert.Contains(t, types, "  tags?: string[];")
	assert.Contains(t, types, "  openedAt: Date;")
	assert.Contains(t, types, "  pages: PaginationRequest[];")
	assert.Contains(t, types, "export interface UUID {\n  value: string;\n}")
	assert.NotContains(t, types, "interface Address")
}

func TestTranslate_MoneyShape(t *testing.T) {
	types := emit(t, mustParse(t, commonYAML))["types.ts"]
	assert.Contains(t, types, "export interface Money {\n  amount: number;\n  currency: string;\n}")
}

func TestTranslate_Version(t *testing.T) {
	out := emit(t, mustParse(t, commonYAML))

	assert.Equal(t, `// Code generated by schemagen. DO NOT EDIT.
// Package: gastroflow.common

export const SCHEMA_VERSION = "1.2.0";
export const SCHEMA_COMMIT = "abc123";
`, out["version.ts"])
	assert.Equal(t, `// Code generated by schemagen. DO NOT EDIT.
// Package: gastroflow.common

export * from "./enums";
export * from "./types";
export * from "./version";
`, out["index.ts"])
}

func TestTranslate_Deterministic(t *testing.T) {
	s := mustParse(t, commonYAML)
	assert.Equal(t, emit(t, s), emit(t, s))
}

func TestTranslate_ReservedDate(t *testing.T) {
	s := mustParse(t, `
messages:
  - name: Date
    fields:
      - { name: day, type: int }
  - name: Event
    fields:
      - { name: at, type: timestamp }
`)
	_, err := translate.Emit(s, &Translator{}, translate.Options{Version: "1.2.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `type "Date" maps to "Date", which the target already defines`)
}
