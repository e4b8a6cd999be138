// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package codec encodes and decodes schema messages at runtime. Values are
// checked against the schema on both sides; the byte layout is chosen by a
// pluggable Format.
package codec

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/dacolabs/schemagen/internal/schema"
)

// Format is a byte layout for canonical messages. Marshal only ever sees
// values that already conform to m. Unmarshal may return loosely typed
// values; the Codec conforms them afterwards.
type Format interface {
	Name() string
	Marshal(s *schema.Schema, m *schema.Message, v Message) ([]byte, error)
	Unmarshal(s *schema.Schema, m *schema.Message, data []byte) (map[string]any, error)
}

var formats = map[string]Format{
	Wire.Name():    Wire,
	JSON.Name():    JSON,
	MsgPack.Name(): MsgPack,
	BSON.Name():    BSON,
}

// FormatByName looks up a built-in format.
func FormatByName(name string) (Format, bool) {
	f, ok := formats[name]
	return f, ok
}

// Formats returns the names of the built-in formats, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Codec encodes and decodes the messages of one schema. It holds no mutable
// state and is safe for concurrent use.
type Codec struct {
	schema *schema.Schema
	format Format
}

// New returns a Codec for s. A nil format selects Wire.
func New(s *schema.Schema, format Format) *Codec {
	if format == nil {
		format = Wire
	}
	return &Codec{schema: s, format: format}
}

// Format returns the codec's byte layout.
func (c *Codec) Format() Format {
	return c.format
}

// Encode checks v against the named message and serializes it. v may be a
// Message or any string-keyed map. Errors are *EncodeError.
func (c *Codec) Encode(name string, v any) ([]byte, error) {
	m, ok := c.schema.Message(name)
	if !ok {
		return nil, &EncodeError{Kind: UnknownMessage, Message: name}
	}
	conf := &conformer{s: c.schema, root: name}
	canonical, err := conf.message(m, v, "")
	if err != nil {
		return nil, err
	}

	data, err := c.format.Marshal(c.schema, m, canonical)
	if err != nil {
		var eerr *EncodeError
		if errors.As(err, &eerr) {
			return nil, err
		}
		return nil, &EncodeError{Kind: InvalidValue, Message: name, Detail: err.Error()}
	}
	return data, nil
}

// Decode parses data as the named message. Fields unknown to the schema are
// skipped. Errors are *DecodeError.
func (c *Codec) Decode(name string, data []byte) (Message, error) {
	m, ok := c.schema.Message(name)
	if !ok {
		return nil, &DecodeError{Kind: UnknownMessage, Message: name}
	}

	tree, err := c.format.Unmarshal(c.schema, m, data)
	if err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			if derr.Message == "" {
				derr.Message = name
			}
			return nil, derr
		}
		return nil, &DecodeError{Kind: Malformed, Message: name, Detail: err.Error()}
	}

	conf := &conformer{s: c.schema, root: name, decode: true}
	return conf.message(m, tree, "")
}

// Encode serializes v as the named message in the Wire format.
func Encode(s *schema.Schema, name string, v any) ([]byte, error) {
	return New(s, Wire).Encode(name, v)
}

// Decode parses Wire data as the named message.
func Decode(s *schema.Schema, name string, data []byte) (Message, error) {
	return New(s, Wire).Decode(name, data)
}
