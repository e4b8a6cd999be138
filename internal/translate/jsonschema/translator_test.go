// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jsonschema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/schemagen/internal/schema"
	"github.com/dacolabs/schemagen/internal/translate"
)

const venueYAML = `
package: gastroflow.common
enums:
  - name: SortOrder
    values:
      - { name: SORT_ORDER_ASC, number: 1 }
      - { name: SORT_ORDER_UNSPECIFIED, number: 0 }
messages:
  - name: Venue
    description: A place that serves food.
    fields:
      - { name: id, type: uuid }
      - { name: averageBill, type: money, optional: true }
      - { name: tags, type: string, repeated: true }
      - { name: openedAt, type: timestamp }
      - { name: order, type: SortOrder }
      - { name: seats, type: int }
`

func generate(t *testing.T) (*jsonschema.Schema, []byte) {
	t.Helper()
	s, err := schema.YAML.Parse(strings.NewReader(venueYAML))
	require.NoError(t, err)

	files, err := translate.Emit(s, &Translator{}, translate.Options{Version: "1.0.0", Commit: "abc"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "schema.json", files[0].Path)

	var root jsonschema.Schema
	require.NoError(t, json.Unmarshal(files[0].Content, &root))
	return &root, files[0].Content
}

func TestTranslate_Document(t *testing.T) {
	root, _ := generate(t)

	assert.Equal(t, "https://json-schema.org/draft/2020-12/schema", root.Schema)
	assert.Equal(t, "gastroflow.common", root.Title)
	assert.Contains(t, root.Comment, "version 1.0.0, commit abc")

	var names []string
	for name := range root.Defs {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"Money", "SortOrder", "UUID", "Venue"}, names)
}

func TestTranslate_Message(t *testing.T) {
	root, _ := generate(t)
	venue := root.Defs["Venue"]
	require.NotNil(t, venue)

	assert.Equal(t, "object", venue.Type)
	assert.Equal(t, "A place that serves food.", venue.Description)
	assert.Equal(t, []string{"id", "tags", "openedAt", "order", "seats"}, venue.Required)
	assert.Equal(t, "#/$defs/UUID", venue.Properties["id"].Ref)
	assert.Equal(t, "#/$defs/Money", venue.Properties["averageBill"].Ref)
	assert.Equal(t, "array", venue.Properties["tags"].Type)
	assert.Equal(t, "string", venue.Properties["tags"].Items.Type)
	assert.Equal(t, "date-time", venue.Properties["openedAt"].Format)
	assert.Equal(t, "#/$defs/SortOrder", venue.Properties["order"].Ref)
	assert.Equal(t, "integer", venue.Properties["seats"].Type)
}

func TestTranslate_EnumZeroFirst(t *testing.T) {
	root, _ := generate(t)
	enum := root.Defs["SortOrder"]
	require.Len(t, enum.AnyOf, 2)
	assert.Equal(t, []any{"SORT_ORDER_UNSPECIFIED", "SORT_ORDER_ASC"}, enum.AnyOf[0].Enum)
	assert.Equal(t, "integer", enum.AnyOf[1].Type)
}

func TestTranslate_MoneyShape(t *testing.T) {
	root, _ := generate(t)
	money := root.Defs["Money"]

	var props []string
	for name := range money.Properties {
		props = append(props, name)
	}
	assert.ElementsMatch(t, []string{"amount", "currency"}, props)
	assert.Equal(t, "number", money.Properties["amount"].Type)
	assert.Equal(t, "uuid", root.Defs["UUID"].Properties["value"].Format)
}

func TestTranslate_ValidatesInstances(t *testing.T) {
	root, _ := generate(t)
	venue := &jsonschema.Schema{Schema: root.Schema, Ref: "#/$defs/Venue", Defs: root.Defs}
	resolved, err := venue.Resolve(nil)
	require.NoError(t, err)

	var good map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": {"value": "6f1c2a0e-8d3b-4c57-9a7e-1b2c3d4e5f60"},
		"averageBill": {"amount": 12.5, "currency": "USD"},
		"tags": [],
		"openedAt": "2024-05-01T10:00:00Z",
		"order": 7,
		"seats": 40
	}`), &good))
	assert.NoError(t, resolved.Validate(good))

	var bad map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"id": {"value": "x"}, "tags": "nope"}`), &bad))
	assert.Error(t, resolved.Validate(bad))
}

func TestTranslate_Deterministic(t *testing.T) {
	_, a := generate(t)
	_, b := generate(t)
	assert.Equal(t, string(a), string(b))
}
