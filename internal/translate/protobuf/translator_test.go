// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package protobuf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

func translateYAML(t *testing.T, src string) (string, string) {
	t.Helper()
	s, err := schema.YAML.Parse(strings.NewReader(src))
	require.NoError(t, err)

	files, err := translate.Emit(s, &Translator{}, translate.Options{Version: "2.0.0", Commit: "f00d"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0].Path, string(files[0].Content)
}

const ordersYAML = `
package: shop.orders
enums:
  - name: SortOrder
    values:
      - { name: SORT_ORDER_ASC, number: 1 }
      - { name: SORT_ORDER_UNSPECIFIED, number: 0 }
messages:
  - name: Order
    description: A customer order.
    fields:
      - { name: id, type: uuid }
      - { name: total, type: money }
      - { name: note, type: string, optional: true, description: Free text. }
      - { name: lines, type: Line, repeated: true }
      - { name: tags, type: string, repeated: true, optional: true }
      - { name: createdAt, type: timestamp, number: 10 }
      - { name: order, type: SortOrder }
  - name: Line
    fields:
      - { name: qty, type: int }
      - { name: price, type: float }
      - { name: gift, type: bool }
`

func TestTranslate_FileAndHeader(t *testing.T) {
	path, proto := translateYAML(t, ordersYAML)

	assert.Equal(t, "orders.proto", path)
	assert.True(t, strings.HasPrefix(proto, `// Code generated by schemagen. DO NOT EDIT.
// Schema version: 2.0.0
// Schema commit: f00d

syntax = "proto3";

package shop.orders;

import "google/protobuf/timestamp.proto";
`))
}

func TestTranslate_Fields(t *testing.T) {
	_, proto := translateYAML(t, ordersYAML)

	for _, want := range []string{
		"// A customer order.\nmessage Order {",
		"  UUID id = 1;",
		"  Money total = 2;",
		"  // Free text.\n  optional string note = 3;",
		"  repeated Line lines = 4;",
		"  TagsList tags = 5;",
		"  google.protobuf.Timestamp createdAt = 10;",
		"  optional SortOrder order = 7;",
		"  optional int64 qty = 1;",
		"  optional double price = 2;",
		"  optional bool gift = 3;",
	} {
		assert.Contains(t, proto, want)
	}
}

func TestTranslate_OptionalRepeatedWrapper(t *testing.T) {
	_, proto := translateYAML(t, ordersYAML)
	assert.Contains(t, proto, "  message TagsList {\n    repeated string values = 1;\n  }")
}

func TestTranslate_EnumZeroFirst(t *testing.T) {
	_, proto := translateYAML(t, ordersYAML)
	assert.Contains(t, proto, "enum SortOrder {\n  SORT_ORDER_UNSPECIFIED = 0;\n  SORT_ORDER_ASC = 1;\n}")
}

func TestTranslate_MoneyShape(t *testing.T) {
	_, proto := translateYAML(t, ordersYAML)
	assert.Contains(t, proto, "message Money {\n  optional double amount = 1;\n  optional string currency = 2;\n}")
}

func TestTranslate_MessageOrder(t *testing.T) {
	_, proto := translateYAML(t, ordersYAML)

	lineIdx := strings.Index(proto, "message Line {")
	orderIdx := strings.Index(proto, "message Order {")
	assert.Greater(t, lineIdx, 0)
	assert.Less(t, lineIdx, orderIdx, "messages are sorted by name")
}

func TestTranslate_NoPackage(t *testing.T) {
	path, proto := translateYAML(t, `
messages:
  - name: Ping
    fields:
      - { name: seq, type: int }
`)
	assert.Equal(t, "schema.proto", path)
	assert.NotContains(t, proto, "package ")
	assert.NotContains(t, proto, "import ")
}

func TestTranslate_Deterministic(t *testing.T) {
	_, a := translateYAML(t, ordersYAML)
	_, b := translateYAML(t, ordersYAML)
	assert.Equal(t, a, b)
}

func TestTranslate_RequiredScalarsHavePresence(t *testing.T) {
	_, proto := translateYAML(t, `
enums:
  - name: Status
    values:
      - { name: STATUS_UNSPECIFIED, number: 0 }
messages:
  - name: Tariff
    fields:
      - { name: amount, type: float }
      - { name: currency, type: string }
      - { name: status, type: Status }
      - { name: discount, type: float, optional: true }
      - { name: zones, type: int, repeated: true }
      - { name: validFrom, type: timestamp }
`)
	for _, want := range []string{
		"  optional double amount = 1;",
		"  optional string currency = 2;",
		"  optional Status status = 3;",
		"  optional double discount = 4;",
		"  repeated int64 zones = 5;",
		"  google.protobuf.Timestamp validFrom = 6;",
	} {
		assert.Contains(t, proto, want)
	}
	assert.NotContains(t, proto, "optional optional")
}

func TestTranslate_SharedEnumValueNames(t *testing.T) {
	_, proto := translateYAML(t, `
package: catalog
enums:
  - name: Color
    values:
      - { name: UNSPECIFIED, number: 0 }
      - { name: RED, number: 1 }
  - name: ShirtSize
    values:
      - { name: UNSPECIFIED, number: 0 }
      - { name: LARGE, number: 1 }
messages:
  - name: Shirt
    fields:
      - { name: color, type: Color }
`)
	assert.Contains(t, proto, "enum Color {\n  COLOR_UNSPECIFIED = 0;\n  RED = 1;\n}")
	assert.Contains(t, proto, "enum ShirtSize {\n  SHIRT_SIZE_UNSPECIFIED = 0;\n  LARGE = 1;\n}")
	assert.NotContains(t, proto, "  UNSPECIFIED = 0;")
}

func TestTranslate_EnumValueClashes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "value named like a message",
			src: `
enums:
  - name: Kind
    values:
      - { name: KIND_UNSPECIFIED, number: 0 }
      - { name: Shirt, number: 1 }
messages:
  - name: Shirt
    fields:
      - { name: kind, type: Kind }
`,
			want: `enum "Kind": value Shirt clashes with message Shirt`,
		},
		{
			name: "prefixed value still taken",
			src: `
enums:
  - name: Color
    values:
      - { name: UNSPECIFIED, number: 0 }
      - { name: COLOR_UNSPECIFIED, number: 1 }
  - name: Size
    values:
      - { name: UNSPECIFIED, number: 0 }
`,
			want: `value COLOR_UNSPECIFIED clashes with a value of enum Color`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.YAML.Parse(strings.NewReader(tt.src))
			require.NoError(t, err)

			files, err := translate.Emit(s, &Translator{}, translate.Options{Version: "2.0.0"})
			assert.Nil(t, files)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
