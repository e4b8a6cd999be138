// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

func translateYAML(t *testing.T, src string) string {
	t.Helper()
	s, err := schema.YAML.Parse(strings.NewReader(src))
	require.NoError(t, err)

	files, err := translate.Emit(s, &Translator{}, translate.Options{Version: "1.0.0"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "README.md", files[0].Path)
	return string(files[0].Content)
}

const auditYAML = `
package: gastroflow.common
enums:
  - name: SortOrder
    description: Direction of a sorted listing.
    values:
      - { name: SORT_ORDER_DESC, number: 2 }
      - { name: SORT_ORDER_UNSPECIFIED, number: 0 }
messages:
  - name: AuditInfo
    description: Who touched a record and when.
    fields:
      - { name: createdAt, type: timestamp }
      - { name: createdBy, type: uuid, description: "Actor | system" }
      - { name: notes, type: string, repeated: true, optional: true }
      - { name: order, type: SortOrder }
`

func TestTranslate_Header(t *testing.T) {
	md := translateYAML(t, auditYAML)
	assert.True(t, strings.HasPrefix(md, "<!-- Code generated by schemagen. DO NOT EDIT. -->\n\n# gastroflow.common\n\nVersion `1.0.0`, commit `unknown`.\n"))
}

func TestTranslate_Enum(t *testing.T) {
	md := translateYAML(t, auditYAML)
	assert.Contains(t, md, "### SortOrder\n\nDirection of a sorted listing.\n\n| Label | Number |\n|-------|--------|\n| `SORT_ORDER_UNSPECIFIED` | 0 |\n| `SORT_ORDER_DESC` | 2 |\n")
}

func TestTranslate_MessageTable(t *testing.T) {
	md := translateYAML(t, auditYAML)

	assert.Contains(t, md, "## Messages\n\n### AuditInfo\n\nWho touched a record and when.\n")
	assert.Contains(t, md, "| `createdAt` | timestamp | 1 | required |  |")
	assert.Contains(t, md, "| `createdBy` | [UUID](#uuid) | 2 | required | Actor \\| system |")
	assert.Contains(t, md, "| `notes` | array(string) | 3 | optional, repeated |  |")
	assert.Contains(t, md, "| `order` | [SortOrder](#sortorder) | 4 | required |  |")
}

func TestTranslate_WellKnownSection(t *testing.T) {
	md := translateYAML(t, auditYAML)

	assert.Contains(t, md, "## Well-known types\n\n### UUID\n")
	assert.Contains(t, md, "| `value` | string | 1 | required |  |")
	assert.NotContains(t, md, "### Money")
	assert.True(t, strings.HasSuffix(md, "|\n"))
}

func TestFormatFlags(t *testing.T) {
	assert.Equal(t, "required", formatFlags(translate.Field{}))
	assert.Equal(t, "optional, repeated", formatFlags(translate.Field{Nullable: true, Repeated: true}))
}
