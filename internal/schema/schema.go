// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema provides the in-memory model of message and enum definitions
// and loads it from YAML, JSON or TOML definition files.
package schema

import (
	"sort"
)

// Kind classifies the logical type of a field.
type Kind int

const (
	KindInvalid Kind = iota

	// Scalars
	KindString
	KindInt
	KindFloat
	KindBool

	// Well-known types
	KindUUID
	KindMoney
	KindTimestamp
	KindAddress

	// References
	KindEnum
	KindMessage
)

var kindNames = map[Kind]string{
	KindString:    "string",
	KindInt:       "int",
	KindFloat:     "float",
	KindBool:      "bool",
	KindUUID:      "uuid",
	KindMoney:     "money",
	KindTimestamp: "timestamp",
	KindAddress:   "address",
	KindEnum:      "enum",
	KindMessage:   "message",
}

// String returns the keyword used for the kind in definition files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsScalar reports whether k is one of the scalar kinds.
func (k Kind) IsScalar() bool {
	return k >= KindString && k <= KindBool
}

// IsWellKnown reports whether k is one of the well-known kinds.
func (k Kind) IsWellKnown() bool {
	return k >= KindUUID && k <= KindAddress
}

// keywordKind maps a type keyword to its kind. Anything else is a reference.
func keywordKind(typ string) (Kind, bool) {
	switch typ {
	case "string":
		return KindString, true
	case "int":
		return KindInt, true
	case "float":
		return KindFloat, true
	case "bool":
		return KindBool, true
	case "uuid":
		return KindUUID, true
	case "money":
		return KindMoney, true
	case "timestamp":
		return KindTimestamp, true
	case "address":
		return KindAddress, true
	}
	return KindInvalid, false
}

// IsKeyword reports whether name is reserved as a built-in type keyword.
func IsKeyword(name string) bool {
	_, ok := keywordKind(name)
	return ok
}

// Field is a single field of a message.
type Field struct {
	Name        string
	Type        string // keyword or referenced enum/message name, as written
	Kind        Kind
	Optional    bool
	Repeated    bool
	Number      int // wire number, unique within the message
	Description string
}

// Ref returns the referenced enum or message name, or "" for keyword types.
func (f Field) Ref() string {
	if f.Kind == KindEnum || f.Kind == KindMessage {
		return f.Type
	}
	return ""
}

// Message is a named, ordered collection of fields.
type Message struct {
	Name        string
	Description string
	Fields      []Field

	byName   map[string]int
	byNumber map[int]int
}

func (m *Message) index() {
	m.byName = make(map[string]int, len(m.Fields))
	m.byNumber = make(map[int]int, len(m.Fields))
	for i, f := range m.Fields {
		m.byName[f.Name] = i
		m.byNumber[f.Number] = i
	}
}

// Field returns the field with the given name.
func (m *Message) Field(name string) (Field, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Field{}, false
	}
	return m.Fields[i], true
}

// FieldByNumber returns the field with the given wire number.
func (m *Message) FieldByNumber(n int) (Field, bool) {
	i, ok := m.byNumber[n]
	if !ok {
		return Field{}, false
	}
	return m.Fields[i], true
}

// Equal reports whether two messages define the same fields, ignoring order.
func (m *Message) Equal(o *Message) bool {
	if m.Name != o.Name || len(m.Fields) != len(o.Fields) {
		return false
	}
	for _, f := range m.Fields {
		g, ok := o.Field(f.Name)
		if !ok || g.Type != f.Type || g.Kind != f.Kind || g.Optional != f.Optional ||
			g.Repeated != f.Repeated || g.Number != f.Number {
			return false
		}
	}
	return true
}

// EnumValue is one member of an enum.
type EnumValue struct {
	Label  string
	Number int32
}

// Enum is a named set of numbered labels. The member numbered 0 is the
// unspecified default and is always present.
type Enum struct {
	Name        string
	Description string
	Values      []EnumValue
}

// Label returns the label declared for number n.
func (e *Enum) Label(n int32) (string, bool) {
	for _, v := range e.Values {
		if v.Number == n {
			return v.Label, true
		}
	}
	return "", false
}

// Number returns the number declared for label.
func (e *Enum) Number(label string) (int32, bool) {
	for _, v := range e.Values {
		if v.Label == label {
			return v.Number, true
		}
	}
	return 0, false
}

// Ordered returns the members with the zero member first, followed by the
// remaining members in declaration order.
func (e *Enum) Ordered() []EnumValue {
	out := make([]EnumValue, 0, len(e.Values))
	for _, v := range e.Values {
		if v.Number == 0 {
			out = append(out, v)
		}
	}
	for _, v := range e.Values {
		if v.Number != 0 {
			out = append(out, v)
		}
	}
	return out
}

// Schema is the complete, immutable set of definitions of one package.
// Values returned by its accessors must not be modified.
type Schema struct {
	pkg      string
	messages map[string]*Message
	enums    map[string]*Enum
	warnings []string
	cyclic   map[string]bool
}

// Package returns the schema's package name, which may be empty.
func (s *Schema) Package() string {
	return s.pkg
}

// Message returns the message with the given name.
func (s *Schema) Message(name string) (*Message, bool) {
	m, ok := s.messages[name]
	return m, ok
}

// Enum returns the enum with the given name.
func (s *Schema) Enum(name string) (*Enum, bool) {
	e, ok := s.enums[name]
	return e, ok
}

// Messages returns all messages sorted by name.
func (s *Schema) Messages() []*Message {
	out := make([]*Message, 0, len(s.messages))
	for _, name := range sortedKeys(s.messages) {
		out = append(out, s.messages[name])
	}
	return out
}

// Enums returns all enums sorted by name.
func (s *Schema) Enums() []*Enum {
	out := make([]*Enum, 0, len(s.enums))
	for _, name := range sortedKeys(s.enums) {
		out = append(out, s.enums[name])
	}
	return out
}

// WellKnownKinds returns the composite well-known kinds referenced by any
// field, in kind order. Timestamp is excluded since it maps to a native type.
func (s *Schema) WellKnownKinds() []Kind {
	used := make(map[Kind]bool)
	for _, m := range s.messages {
		for _, f := range m.Fields {
			if f.Kind.IsWellKnown() && f.Kind != KindTimestamp {
				used[f.Kind] = true
			}
		}
	}
	var out []Kind
	for _, k := range []Kind{KindUUID, KindMoney, KindAddress} {
		if used[k] {
			out = append(out, k)
		}
	}
	return out
}

// Warnings returns problems that do not make the schema invalid, such as a
// cycle of required message fields.
func (s *Schema) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// OnRequiredCycle reports whether the given field of message is a required,
// singular message reference that leads back to message. Targets that embed
// such fields by value must break the cycle with a reference type.
func (s *Schema) OnRequiredCycle(message, field string) bool {
	return s.cyclic[message+"."+field]
}

// QualifiedName returns the fully qualified name of a field of a message.
func (s *Schema) QualifiedName(message, field string) string {
	if s.pkg == "" {
		return message + "." + field
	}
	return s.pkg + "." + message + "." + field
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
