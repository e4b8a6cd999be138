// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/dacolabs/schemagen/internal/schema"
)

// MsgPack renders messages as MessagePack maps with sorted keys. Timestamps
// use the MessagePack timestamp extension.
var MsgPack Format = msgpackFormat{}

type msgpackFormat struct{}

func (msgpackFormat) Name() string { return "msgpack" }

func (msgpackFormat) Marshal(s *schema.Schema, m *schema.Message, v Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(toTree(s, m, v, treeOptions{nativeTime: true})); err != nil {
		return nil, errors.Wrap(err, "msgpack")
	}
	return buf.Bytes(), nil
}

func (msgpackFormat) Unmarshal(_ *schema.Schema, _ *schema.Message, data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := msgpack.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(err, "msgpack")
	}
	if tree == nil {
		return nil, errors.New("msgpack: expected a map")
	}
	return tree, nil
}
