// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/dacolabs/schemagen/internal/schema"
)

// JSON renders messages as JSON objects keyed by schema field name, the
// shape described by the jsonschema target. Timestamps are RFC 3339 strings.
var JSON Format = jsonFormat{}

type jsonFormat struct{}

func (jsonFormat) Name() string { return "json" }

func (jsonFormat) Marshal(s *schema.Schema, m *schema.Message, v Message) ([]byte, error) {
	return json.Marshal(toTree(s, m, v, treeOptions{}))
}

func (jsonFormat) Unmarshal(_ *schema.Schema, _ *schema.Message, data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, errors.Wrap(err, "json")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("json: trailing data after object")
	}
	if tree == nil {
		return nil, errors.New("json: expected an object")
	}
	return tree, nil
}
