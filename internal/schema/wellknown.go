// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

var wellKnown = map[Kind]*Message{
	KindUUID: newBuiltin("UUID", "Universally unique identifier in its canonical string form.",
		Field{Name: "value", Type: "string", Kind: KindString},
	),
	KindMoney: newBuiltin("Money", "Monetary amount in a given ISO 4217 currency.",
		Field{Name: "amount", Type: "float", Kind: KindFloat},
		Field{Name: "currency", Type: "string", Kind: KindString},
	),
	KindAddress: newBuiltin("Address", "Postal address with optional geo coordinates.",
		Field{Name: "fullAddress", Type: "string", Kind: KindString},
		Field{Name: "city", Type: "string", Kind: KindString},
		Field{Name: "street", Type: "string", Kind: KindString},
		Field{Name: "houseNumber", Type: "string", Kind: KindString},
		Field{Name: "apartment", Type: "string", Kind: KindString, Optional: true},
		Field{Name: "entrance", Type: "string", Kind: KindString, Optional: true},
		Field{Name: "floor", Type: "string", Kind: KindString, Optional: true},
		Field{Name: "comment", Type: "string", Kind: KindString, Optional: true},
		Field{Name: "latitude", Type: "float", Kind: KindFloat, Optional: true},
		Field{Name: "longitude", Type: "float", Kind: KindFloat, Optional: true},
	),
}

// Timestamp wire layout, shared with google.protobuf.Timestamp.
var timestampMessage = newBuiltin("Timestamp", "Point in time with nanosecond precision.",
	Field{Name: "seconds", Type: "int", Kind: KindInt},
	Field{Name: "nanos", Type: "int", Kind: KindInt},
)

func newBuiltin(name, description string, fields ...Field) *Message {
	for i := range fields {
		fields[i].Number = i + 1
	}
	m := &Message{Name: name, Description: description, Fields: fields}
	m.index()
	return m
}

// WellKnown returns the built-in composite definition of a well-known kind.
// Timestamp returns its seconds/nanos wire layout.
func WellKnown(k Kind) (*Message, bool) {
	if k == KindTimestamp {
		return timestampMessage, true
	}
	m, ok := wellKnown[k]
	return m, ok
}
