// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"fmt"
	"math"
	"sort"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dacolabs/schemagen/internal/schema"
)

// Wire is the default Format: the protocol buffers binary encoding of the
// message as the protobuf target declares it.
//
// Field numbers come from the schema. Required fields are always written,
// repeated fields are written one record per element, and an optional
// repeated field is a nested message carrying its elements at field 1, so
// an empty list stays distinct from an absent one. Timestamps use the
// google.protobuf.Timestamp layout.
var Wire Format = wireFormat{}

type wireFormat struct{}

func (wireFormat) Name() string { return "wire" }

func (wireFormat) Marshal(s *schema.Schema, m *schema.Message, v Message) ([]byte, error) {
	return appendMessage(nil, s, m, v), nil
}

func (wireFormat) Unmarshal(s *schema.Schema, m *schema.Message, data []byte) (map[string]any, error) {
	d := &wireDecoder{s: s, root: m.Name}
	return d.message(m, data, "")
}

// byNumber returns the fields of m in wire number order.
func byNumber(m *schema.Message) []schema.Field {
	fields := append([]schema.Field(nil), m.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Number < fields[j].Number })
	return fields
}

func appendMessage(b []byte, s *schema.Schema, m *schema.Message, v Message) []byte {
	for _, f := range byNumber(m) {
		val, ok := v[f.Name]
		if !ok {
			continue
		}
		num := protowire.Number(f.Number)

		if !f.Repeated {
			b = appendElement(b, num, s, f, val)
			continue
		}

		list := val.([]any)
		if f.Optional {
			var inner []byte
			for _, elem := range list {
				inner = appendElement(inner, 1, s, f, elem)
			}
			b = protowire.AppendTag(b, num, protowire.BytesType)
			b = protowire.AppendBytes(b, inner)
			continue
		}
		for _, elem := range list {
			b = appendElement(b, num, s, f, elem)
		}
	}
	return b
}

func appendElement(b []byte, num protowire.Number, s *schema.Schema, f schema.Field, v any) []byte {
	switch f.Kind {
	case schema.KindString:
		b = protowire.AppendTag(b, num, protowire.BytesType)
		return protowire.AppendString(b, v.(string))
	case schema.KindInt:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		return protowire.AppendVarint(b, uint64(v.(int64)))
	case schema.KindFloat:
		b = protowire.AppendTag(b, num, protowire.Fixed64Type)
		return protowire.AppendFixed64(b, math.Float64bits(v.(float64)))
	case schema.KindBool:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		return protowire.AppendVarint(b, protowire.EncodeBool(v.(bool)))
	case schema.KindEnum:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		return protowire.AppendVarint(b, uint64(int64(v.(EnumValue).Number)))
	case schema.KindTimestamp:
		t := v.(time.Time)
		var inner []byte
		inner = protowire.AppendTag(inner, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(t.Unix()))
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(int64(t.Nanosecond())))
		b = protowire.AppendTag(b, num, protowire.BytesType)
		return protowire.AppendBytes(b, inner)
	}

	var def *schema.Message
	if f.Kind == schema.KindMessage {
		def, _ = s.Message(f.Type)
	} else {
		def, _ = schema.WellKnown(f.Kind)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, appendMessage(nil, s, def, v.(Message)))
}

type wireDecoder struct {
	s    *schema.Schema
	root string
}

func (d *wireDecoder) malformed(path, format string, args ...any) error {
	return &DecodeError{Kind: Malformed, Message: d.root, Path: path, Detail: fmt.Sprintf(format, args...)}
}

func (d *wireDecoder) message(m *schema.Message, b []byte, path string) (map[string]any, error) {
	out := make(map[string]any, len(m.Fields))
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, d.malformed(path, "%v", protowire.ParseError(n))
		}
		b = b[n:]

		f, ok := m.FieldByNumber(int(num))
		if !ok || !matches(f, typ) {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, d.malformed(path, "field %d: %v", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		fpath := join(path, f.Name)
		switch {
		case f.Repeated && f.Optional:
			inner, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, d.malformed(fpath, "%v", protowire.ParseError(n))
			}
			b = b[n:]
			list, _ := out[f.Name].([]any)
			if list == nil {
				list = []any{}
			}
			list, err := d.list(f, inner, list, fpath)
			if err != nil {
				return nil, err
			}
			out[f.Name] = list

		case f.Repeated:
			list, _ := out[f.Name].([]any)
			elems, n, err := d.repeated(f, typ, b, fpath)
			if err != nil {
				return nil, err
			}
			b = b[n:]
			out[f.Name] = append(list, elems...)

		default:
			val, n, err := d.element(f, typ, b, fpath)
			if err != nil {
				return nil, err
			}
			b = b[n:]
			out[f.Name] = val
		}
	}
	return out, nil
}

// list decodes the body of an optional repeated wrapper. Records other than
// field 1 are skipped.
func (d *wireDecoder) list(f schema.Field, b []byte, list []any, path string) ([]any, error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, d.malformed(path, "%v", protowire.ParseError(n))
		}
		b = b[n:]
		if num != 1 || !matches(schema.Field{Kind: f.Kind, Repeated: true}, typ) {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, d.malformed(path, "%v", protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		elems, n, err := d.repeated(f, typ, b, fmt.Sprintf("%s[%d]", path, len(list)))
		if err != nil {
			return nil, err
		}
		b = b[n:]
		list = append(list, elems...)
	}
	return list, nil
}

// repeated decodes one record of a repeated field. Numeric fields also
// accept the packed encoding, which yields several elements at once.
func (d *wireDecoder) repeated(f schema.Field, typ protowire.Type, b []byte, path string) ([]any, int, error) {
	if typ == protowire.BytesType && packable(f.Kind) {
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, 0, d.malformed(path, "%v", protowire.ParseError(n))
		}
		var elems []any
		elemType := protowire.VarintType
		if f.Kind == schema.KindFloat {
			elemType = protowire.Fixed64Type
		}
		for len(packed) > 0 {
			val, m, err := d.element(f, elemType, packed, path)
			if err != nil {
				return nil, 0, err
			}
			packed = packed[m:]
			elems = append(elems, val)
		}
		return elems, n, nil
	}

	val, n, err := d.element(f, typ, b, path)
	if err != nil {
		return nil, 0, err
	}
	return []any{val}, n, nil
}

// matches reports whether a record of wire type typ can carry f. Records
// that cannot are skipped like unknown fields, as protobuf parsers do.
func matches(f schema.Field, typ protowire.Type) bool {
	switch {
	case f.Repeated && f.Optional:
		return typ == protowire.BytesType
	case f.Repeated && packable(f.Kind) && typ == protowire.BytesType:
		return true
	}
	return typ == wireType(f.Kind)
}

func packable(k schema.Kind) bool {
	switch k {
	case schema.KindInt, schema.KindFloat, schema.KindBool, schema.KindEnum:
		return true
	}
	return false
}

// element decodes a single value of f's kind and returns the bytes consumed.
func (d *wireDecoder) element(f schema.Field, typ protowire.Type, b []byte, path string) (any, int, error) {
	want := wireType(f.Kind)
	if typ != want {
		return nil, 0, d.malformed(path, "wire type %d, expected %d", typ, want)
	}

	switch typ {
	case protowire.VarintType:
		x, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, 0, d.malformed(path, "%v", protowire.ParseError(n))
		}
		switch f.Kind {
		case schema.KindBool:
			return protowire.DecodeBool(x), n, nil
		case schema.KindEnum:
			return EnumValue{Number: int32(x)}, n, nil
		default:
			return int64(x), n, nil
		}

	case protowire.Fixed64Type:
		x, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return nil, 0, d.malformed(path, "%v", protowire.ParseError(n))
		}
		return math.Float64frombits(x), n, nil
	}

	raw, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, d.malformed(path, "%v", protowire.ParseError(n))
	}

	switch f.Kind {
	case schema.KindString:
		return string(raw), n, nil
	case schema.KindTimestamp:
		t, err := d.timestamp(raw, path)
		return t, n, err
	case schema.KindMessage:
		def, ok := d.s.Message(f.Type)
		if !ok {
			return nil, 0, &DecodeError{Kind: UnknownMessage, Message: d.root, Path: path, Detail: f.Type}
		}
		v, err := d.message(def, raw, path)
		return v, n, err
	default:
		def, _ := schema.WellKnown(f.Kind)
		v, err := d.message(def, raw, path)
		return v, n, err
	}
}

func (d *wireDecoder) timestamp(b []byte, path string) (time.Time, error) {
	var seconds, nanos int64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return time.Time{}, d.malformed(path, "%v", protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.VarintType || (num != 1 && num != 2) {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return time.Time{}, d.malformed(path, "%v", protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		x, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return time.Time{}, d.malformed(path, "%v", protowire.ParseError(n))
		}
		b = b[n:]
		if num == 1 {
			seconds = int64(x)
		} else {
			nanos = int64(int32(x))
		}
	}
	if nanos < 0 || nanos > 999_999_999 {
		return time.Time{}, d.malformed(path, "timestamp nanos %d out of range", nanos)
	}
	return time.Unix(seconds, nanos).UTC(), nil
}

func wireType(k schema.Kind) protowire.Type {
	switch k {
	case schema.KindInt, schema.KindBool, schema.KindEnum:
		return protowire.VarintType
	case schema.KindFloat:
		return protowire.Fixed64Type
	default:
		return protowire.BytesType
	}
}
