// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dacolabs/schemagen/internal/schema"
)

// conformer checks a loosely typed value tree against a message definition
// and returns its canonical Message. Encoding rejects keys the schema does
// not know; decoding skips them.
type conformer struct {
	s      *schema.Schema
	root   string
	decode bool
}

func (c *conformer) fail(kind ErrorKind, path, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	if c.decode {
		return &DecodeError{Kind: kind, Message: c.root, Path: path, Detail: detail}
	}
	return &EncodeError{Kind: kind, Message: c.root, Path: path, Detail: detail}
}

func (c *conformer) message(m *schema.Message, v any, path string) (Message, error) {
	in, ok := asMap(v)
	if !ok {
		return nil, c.fail(TypeMismatch, path, "expected message %s, got %T", m.Name, v)
	}

	if !c.decode {
		for key := range in {
			if _, known := m.Field(key); !known {
				return nil, c.fail(InvalidValue, join(path, key), "no such field in %s", m.Name)
			}
		}
	}

	out := make(Message, len(m.Fields))
	for _, f := range m.Fields {
		fpath := join(path, f.Name)
		raw, present := in[f.Name]
		if present && raw == nil {
			present = false
		}

		switch {
		case !present && f.Optional:
			continue
		case !present && f.Repeated:
			out[f.Name] = []any{}
			continue
		case !present:
			return nil, c.fail(MissingField, fpath, "required %s field", f.Kind)
		}

		val, err := c.field(f, raw, fpath)
		if err != nil {
			return nil, err
		}
		out[f.Name] = val
	}
	return out, nil
}

func (c *conformer) field(f schema.Field, v any, path string) (any, error) {
	if !f.Repeated {
		return c.element(f, v, path)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, c.fail(TypeMismatch, path, "expected list of %s, got %T", f.Kind, v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		elem, err := c.element(f, rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = elem
	}
	return out, nil
}

func (c *conformer) element(f schema.Field, v any, path string) (any, error) {
	if v == nil {
		return nil, c.fail(InvalidValue, path, "null element")
	}

	switch f.Kind {
	case schema.KindString:
		s, ok := v.(string)
		if !ok {
			return nil, c.fail(TypeMismatch, path, "expected string, got %T", v)
		}
		return s, nil

	case schema.KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, c.fail(TypeMismatch, path, "expected bool, got %T", v)
		}
		return b, nil

	case schema.KindInt:
		n, err := toInt64(v)
		if err != nil {
			return nil, c.numberError(path, "int", v, err)
		}
		return n, nil

	case schema.KindFloat:
		x, err := toFloat64(v)
		if err != nil {
			return nil, c.numberError(path, "float", v, err)
		}
		return x, nil

	case schema.KindTimestamp:
		return c.timestamp(v, path)

	case schema.KindUUID:
		return c.uuid(v, path)

	case schema.KindMoney, schema.KindAddress:
		wk, _ := schema.WellKnown(f.Kind)
		return c.message(wk, v, path)

	case schema.KindEnum:
		e, _ := c.s.Enum(f.Type)
		return c.enum(e, v, path)

	case schema.KindMessage:
		m, ok := c.s.Message(f.Type)
		if !ok {
			return nil, c.fail(UnknownMessage, path, "%s", f.Type)
		}
		return c.message(m, v, path)
	}
	return nil, c.fail(TypeMismatch, path, "unsupported field kind %s", f.Kind)
}

func (c *conformer) numberError(path, want string, v any, err error) error {
	if err == errNotNumber {
		return c.fail(TypeMismatch, path, "expected %s, got %T", want, v)
	}
	return c.fail(InvalidValue, path, "%v", err)
}

func (c *conformer) timestamp(v any, path string) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil, c.fail(InvalidValue, path, "timestamp %q is not RFC 3339", t)
		}
		return parsed.UTC(), nil
	}
	return nil, c.fail(TypeMismatch, path, "expected timestamp, got %T", v)
}

func (c *conformer) uuid(v any, path string) (any, error) {
	var s string
	switch u := v.(type) {
	case uuid.UUID:
		return Message{"value": u.String()}, nil
	case string:
		s = u
	default:
		m, ok := asMap(v)
		if !ok {
			return nil, c.fail(TypeMismatch, path, "expected uuid, got %T", v)
		}
		val, ok := m["value"].(string)
		if !ok {
			return nil, c.fail(MissingField, join(path, "value"), "required string field")
		}
		s = val
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return nil, c.fail(InvalidValue, path, "%q is not a uuid", s)
	}
	return Message{"value": parsed.String()}, nil
}

func (c *conformer) enum(e *schema.Enum, v any, path string) (any, error) {
	switch ev := v.(type) {
	case EnumValue:
		label, _ := e.Label(ev.Number)
		if ev.Label != "" && ev.Label != label {
			return nil, c.fail(InvalidValue, path, "label %q does not match %s number %d", ev.Label, e.Name, ev.Number)
		}
		return EnumValue{Number: ev.Number, Label: label}, nil
	case string:
		n, ok := e.Number(ev)
		if !ok {
			return nil, c.fail(InvalidValue, path, "%q is not a %s label", ev, e.Name)
		}
		return EnumValue{Number: n, Label: ev}, nil
	}

	n, err := toInt64(v)
	if err != nil {
		return nil, c.numberError(path, "enum "+e.Name, v, err)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, c.fail(InvalidValue, path, "enum number %d out of int32 range", n)
	}
	label, _ := e.Label(int32(n))
	return EnumValue{Number: int32(n), Label: label}, nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// asMap accepts Message, map[string]any and other string-keyed maps.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Message:
		return m, true
	case map[string]any:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

var errNotNumber = errors.New("not a number")

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, errors.Errorf("%q is not a number", n.String())
		}
		return floatToInt64(f)
	}
	return 0, errNotNumber
}

func uintToInt64(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, errors.Errorf("%d overflows int64", n)
	}
	return int64(n), nil
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errors.Errorf("%s is not an integer", strconv.FormatFloat(f, 'g', -1, 64))
	}
	return int64(f), nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, errors.Errorf("%q is not a number", n.String())
		}
		return f, nil
	}
	i, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	return float64(i), nil
}
