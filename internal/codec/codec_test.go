// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/schemagen/internal/schema"
)

func loadShop(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Load("testdata/shop.yaml")
	require.NoError(t, err)
	return s
}

func sampleOrder() Message {
	return Message{
		"id":     Message{"value": "6f1c2a0e-8d3b-4c57-9a7e-1b2c3d4e5f60"},
		"status": EnumValue{Number: 1, Label: "STATUS_OPEN"},
		"lines": []any{
			Message{"sku": "A-1", "qty": int64(2), "unitPrice": 3.25},
			Message{"sku": "B-2", "qty": int64(-1)},
		},
		"total":    Message{"amount": 12.5, "currency": "USD"},
		"tags":     []any{},
		"placedAt": time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC),
		"paid":     false,
		"history": []any{
			EnumValue{Number: 0, Label: "STATUS_UNSPECIFIED"},
			EnumValue{Number: 42},
		},
		"shipTo": Message{
			"fullAddress": "1 Main St, Springfield",
			"city":        "Springfield",
			"street":      "Main St",
			"houseNumber": "1",
			"latitude":    40.5,
		},
		"parent": Message{
			"id":       Message{"value": "00000000-0000-0000-0000-000000000001"},
			"status":   EnumValue{Number: 2, Label: "STATUS_CLOSED"},
			"lines":    []any{},
			"total":    Message{"amount": 0.0, "currency": ""},
			"placedAt": time.Unix(0, 0).UTC(),
			"paid":     true,
			"history":  []any{},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	s := loadShop(t)

	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			format, ok := FormatByName(name)
			require.True(t, ok)
			c := New(s, format)

			data, err := c.Encode("Order", sampleOrder())
			require.NoError(t, err)

			got, err := c.Decode("Order", data)
			require.NoError(t, err)
			assert.Equal(t, sampleOrder(), got)
		})
	}
}

func TestRoundTrip_Money(t *testing.T) {
	s := loadShop(t)
	price := Message{"total": Message{"amount": 12.5, "currency": "USD"}}

	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			format, _ := FormatByName(name)
			c := New(s, format)

			data, err := c.Encode("Price", price)
			require.NoError(t, err)
			got, err := c.Decode("Price", data)
			require.NoError(t, err)
			assert.Equal(t, price, got)
		})
	}
}

func TestRoundTrip_Deterministic(t *testing.T) {
	s := loadShop(t)
	for _, name := range Formats() {
		format, _ := FormatByName(name)
		a, err := New(s, format).Encode("Order", sampleOrder())
		require.NoError(t, err)
		b, err := New(s, format).Encode("Order", sampleOrder())
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestRoundTrip_AbsentVersusEmpty(t *testing.T) {
	s := loadShop(t)

	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			format, _ := FormatByName(name)
			c := New(s, format)

			withEmpty := sampleOrder()
			withoutTags := sampleOrder()
			delete(withoutTags, "tags")

			a, err := c.Encode("Order", withEmpty)
			require.NoError(t, err)
			b, err := c.Encode("Order", withoutTags)
			require.NoError(t, err)
			assert.NotEqual(t, a, b)

			got, err := c.Decode("Order", a)
			require.NoError(t, err)
			assert.Equal(t, []any{}, got["tags"])

			got, err = c.Decode("Order", b)
			require.NoError(t, err)
			assert.NotContains(t, got, "tags")
		})
	}
}

func TestEncode_LenientInputs(t *testing.T) {
	s := loadShop(t)
	in := map[string]any{
		"id":     uuid.MustParse("6F1C2A0E-8D3B-4C57-9A7E-1B2C3D4E5F60"),
		"status": "STATUS_OPEN",
		"lines": []map[string]any{
			{"sku": "A-1", "qty": 2, "unitPrice": float32(3.25)},
			{"sku": "B-2", "qty": int8(-1)},
		},
		"total":    map[string]any{"amount": 12.5, "currency": "USD"},
		"tags":     []string{},
		"placedAt": "2024-05-01T12:00:00.123456789+02:00",
		"paid":     false,
		"history":  []any{0, int32(42)},
		"shipTo": Message{
			"fullAddress": "1 Main St, Springfield",
			"city":        "Springfield",
			"street":      "Main St",
			"houseNumber": "1",
			"latitude":    40.5,
		},
		"parent": Message{
			"id":       "00000000-0000-0000-0000-000000000001",
			"status":   2,
			"total":    Message{"amount": 0, "currency": ""},
			"placedAt": time.Unix(0, 0),
			"paid":     true,
			"note":     nil,
		},
	}

	data, err := Encode(s, "Order", in)
	require.NoError(t, err)
	got, err := Decode(s, "Order", data)
	require.NoError(t, err)
	assert.Equal(t, sampleOrder(), got)
}

func TestEncode_Errors(t *testing.T) {
	s := loadShop(t)

	tests := []struct {
		name    string
		message string
		mutate  func(Message)
		kind    ErrorKind
		path    string
	}{
		{
			name:    "unknown message",
			message: "Nope",
			mutate:  func(Message) {},
			kind:    UnknownMessage,
		},
		{
			name:    "missing required field",
			message: "Order",
			mutate:  func(m Message) { delete(m, "status") },
			kind:    MissingField,
			path:    "status",
		},
		{
			name:    "missing nested field",
			message: "Order",
			mutate: func(m Message) {
				m["lines"] = []any{Message{"sku": "A", "qty": 1}, Message{"sku": "B"}}
			},
			kind: MissingField,
			path: "lines[1].qty",
		},
		{
			name:    "type mismatch",
			message: "Order",
			mutate:  func(m Message) { m["paid"] = "yes" },
			kind:    TypeMismatch,
			path:    "paid",
		},
		{
			name:    "not a list",
			message: "Order",
			mutate:  func(m Message) { m["history"] = "STATUS_OPEN" },
			kind:    TypeMismatch,
			path:    "history",
		},
		{
			name:    "fractional int",
			message: "Order",
			mutate: func(m Message) {
				m["lines"] = []any{Message{"sku": "A", "qty": 1.5}}
			},
			kind: InvalidValue,
			path: "lines[0].qty",
		},
		{
			name:    "invalid uuid",
			message: "Order",
			mutate:  func(m Message) { m["id"] = "not-a-uuid" },
			kind:    InvalidValue,
			path:    "id",
		},
		{
			name:    "unknown enum label",
			message: "Order",
			mutate:  func(m Message) { m["status"] = "STATUS_LOST" },
			kind:    InvalidValue,
			path:    "status",
		},
		{
			name:    "mismatched enum label",
			message: "Order",
			mutate:  func(m Message) { m["status"] = EnumValue{Number: 2, Label: "STATUS_OPEN"} },
			kind:    InvalidValue,
			path:    "status",
		},
		{
			name:    "enum out of range",
			message: "Order",
			mutate:  func(m Message) { m["status"] = int64(1) << 40 },
			kind:    InvalidValue,
			path:    "status",
		},
		{
			name:    "unknown field",
			message: "Order",
			mutate:  func(m Message) { m["discount"] = 1 },
			kind:    InvalidValue,
			path:    "discount",
		},
		{
			name:    "bad timestamp",
			message: "Order",
			mutate:  func(m Message) { m["placedAt"] = "yesterday" },
			kind:    InvalidValue,
			path:    "placedAt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := sampleOrder()
			tt.mutate(v)

			_, err := Encode(s, tt.message, v)
			require.Error(t, err)

			var eerr *EncodeError
			require.True(t, errors.As(err, &eerr))
			assert.Equal(t, tt.kind, eerr.Kind)
			assert.Equal(t, tt.path, eerr.Path)
			assert.Equal(t, tt.message, eerr.Message)
		})
	}
}

func TestErrors_Sentinels(t *testing.T) {
	err := error(&DecodeError{Kind: MissingField, Message: "Line", Path: "qty", Detail: "required int field"})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, ErrMalformed)
	assert.EqualError(t, err, "decode Line.qty: missing field: required int field")

	err = &EncodeError{Kind: UnknownMessage, Message: "Nope"}
	assert.ErrorIs(t, err, ErrUnknownMessage)
	assert.EqualError(t, err, "encode Nope: unknown message")
}

func TestDecode_JSONTolerance(t *testing.T) {
	s := loadShop(t)
	c := New(s, JSON)

	got, err := c.Decode("Line", []byte(`{"sku": "A-1", "qty": 3, "extra": {"nested": true}}`))
	require.NoError(t, err)
	assert.Equal(t, Message{"sku": "A-1", "qty": int64(3)}, got)

	_, err = c.Decode("Line", []byte(`{"sku": "A-1"}`))
	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, MissingField, derr.Kind)
	assert.Equal(t, "qty", derr.Path)

	for _, bad := range []string{`[1]`, `{"sku": "A"} {}`, `null`, `{`} {
		_, err = c.Decode("Line", []byte(bad))
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestDecode_NewerEnumMember(t *testing.T) {
	newer, err := schema.YAML.Parse(strings.NewReader(`
package: shop
enums:
  - name: Status
    values:
      - { name: STATUS_UNSPECIFIED, number: 0 }
      - { name: STATUS_OPEN, number: 1 }
      - { name: STATUS_CLOSED, number: 2 }
      - { name: STATUS_REOPENED, number: 3 }
messages:
  - name: Stats
    fields:
      - { name: counts, type: int, repeated: true }
      - { name: levels, type: Status, repeated: true }
`))
	require.NoError(t, err)
	older := loadShop(t)

	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			format, _ := FormatByName(name)

			data, err := New(newer, format).Encode("Stats", Message{
				"counts": []any{},
				"levels": []any{"STATUS_REOPENED", "STATUS_OPEN"},
			})
			require.NoError(t, err)

			got, err := New(older, format).Decode("Stats", data)
			require.NoError(t, err)
			assert.Equal(t, []any{
				EnumValue{Number: 3},
				EnumValue{Number: 1, Label: "STATUS_OPEN"},
			}, got["levels"])
		})
	}
}

func TestDecode_EnumLabelsAccepted(t *testing.T) {
	got, err := New(loadShop(t), JSON).Decode("Stats", []byte(`{"counts": [], "levels": ["STATUS_CLOSED", 7]}`))
	require.NoError(t, err)
	assert.Equal(t, []any{
		EnumValue{Number: 2, Label: "STATUS_CLOSED"},
		EnumValue{Number: 7},
	}, got["levels"])
}

func TestEncode_JSONWritesEnumNumbers(t *testing.T) {
	data, err := New(loadShop(t), JSON).Encode("Stats", Message{
		"counts": []any{int64(1)},
		"levels": []any{"STATUS_OPEN", int64(9)},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"counts": [1], "levels": [1, 9]}`, string(data))
}

func TestNew_DefaultsToWire(t *testing.T) {
	c := New(loadShop(t), nil)
	assert.Equal(t, "wire", c.Format().Name())
	assert.Equal(t, []string{"bson", "json", "msgpack", "wire"}, Formats())
}

func TestEnumValue(t *testing.T) {
	assert.Equal(t, "STATUS_OPEN", EnumValue{Number: 1, Label: "STATUS_OPEN"}.String())
	assert.Equal(t, "42", EnumValue{Number: 42}.String())
	assert.False(t, EnumValue{Number: 42}.Known())
}
