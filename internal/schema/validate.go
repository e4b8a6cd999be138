// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"fmt"
	"strings"
)

const (
	maxFieldNumber    = 1<<29 - 1
	reservedRangeLow  = 19000
	reservedRangeHigh = 19999
)

// New builds a validated Schema from enum and message definitions. The inputs
// are copied. Field kinds are resolved here; a zero field Number is replaced
// with the field's 1-based position.
//
// Structural problems are returned together as a *ParseError. A field whose
// type names no enum or message yields *UnknownTypeReference.
func New(pkg string, enums []*Enum, messages []*Message) (*Schema, error) {
	s := &Schema{
		pkg:      pkg,
		messages: make(map[string]*Message, len(messages)),
		enums:    make(map[string]*Enum, len(enums)),
	}

	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if pkg != "" {
		for _, part := range strings.Split(pkg, ".") {
			if !IsIdentifier(part) {
				addf("package %q is not a valid dotted identifier", pkg)
				break
			}
		}
	}

	for _, e := range enums {
		if !validTypeName(e.Name, addf, "enum") {
			continue
		}
		if _, dup := s.enums[e.Name]; dup {
			addf("enum %q is defined more than once", e.Name)
			continue
		}
		validateEnum(e, addf)
		s.enums[e.Name] = &Enum{
			Name:        e.Name,
			Description: e.Description,
			Values:      append([]EnumValue(nil), e.Values...),
		}
	}

	for _, m := range messages {
		if !validTypeName(m.Name, addf, "message") {
			continue
		}
		if _, dup := s.messages[m.Name]; dup {
			addf("message %q is defined more than once", m.Name)
			continue
		}
		if _, clash := s.enums[m.Name]; clash {
			addf("message %q has the same name as an enum", m.Name)
			continue
		}
		s.messages[m.Name] = copyMessage(m, addf)
	}

	if len(problems) > 0 {
		return nil, &ParseError{Problems: problems}
	}

	if err := s.resolve(); err != nil {
		return nil, err
	}
	if cycle := s.requiredCycle(); cycle != "" {
		s.warnings = append(s.warnings, "required field cycle: "+cycle+"; no finite value can populate it")
		s.cyclic = s.requiredCycleFields()
	}
	for _, m := range s.messages {
		m.index()
	}
	return s, nil
}

func validTypeName(name string, addf func(string, ...any), what string) bool {
	switch {
	case name == "":
		addf("%s name is required", what)
		return false
	case !IsIdentifier(name):
		addf("%s name %q is not a valid identifier", what, name)
		return false
	case IsKeyword(name):
		addf("%s name %q is a reserved type keyword", what, name)
		return false
	}
	return true
}

func validateEnum(e *Enum, addf func(string, ...any)) {
	if len(e.Values) == 0 {
		addf("enum %q has no values", e.Name)
		return
	}
	labels := make(map[string]bool, len(e.Values))
	numbers := make(map[int32]string, len(e.Values))
	for _, v := range e.Values {
		if !IsIdentifier(v.Label) {
			addf("enum %q: label %q is not a valid identifier", e.Name, v.Label)
		}
		if labels[v.Label] {
			addf("enum %q: label %q is declared more than once", e.Name, v.Label)
		}
		labels[v.Label] = true
		if prev, dup := numbers[v.Number]; dup {
			addf("enum %q: number %d is used by both %q and %q", e.Name, v.Number, prev, v.Label)
		}
		numbers[v.Number] = v.Label
	}
	if _, ok := numbers[0]; !ok {
		addf("enum %q has no zero-valued member", e.Name)
	}
}

func copyMessage(m *Message, addf func(string, ...any)) *Message {
	out := &Message{
		Name:        m.Name,
		Description: m.Description,
		Fields:      make([]Field, len(m.Fields)),
	}
	names := make(map[string]bool, len(m.Fields))
	numbers := make(map[int]string, len(m.Fields))
	for i, f := range m.Fields {
		if f.Number == 0 {
			f.Number = i + 1
		}
		switch {
		case f.Name == "":
			addf("message %q: field #%d has no name", m.Name, i+1)
		case !IsIdentifier(f.Name):
			addf("message %q: field name %q is not a valid identifier", m.Name, f.Name)
		case names[f.Name]:
			addf("message %q: field %q is declared more than once", m.Name, f.Name)
		}
		names[f.Name] = true

		if f.Type == "" {
			addf("message %q: field %q has no type", m.Name, f.Name)
		}

		switch {
		case f.Number < 1 || f.Number > maxFieldNumber:
			addf("message %q: field %q has out of range number %d", m.Name, f.Name, f.Number)
		case f.Number >= reservedRangeLow && f.Number <= reservedRangeHigh:
			addf("message %q: field %q uses reserved number %d", m.Name, f.Name, f.Number)
		}
		if prev, dup := numbers[f.Number]; dup {
			addf("message %q: number %d is used by both %q and %q", m.Name, f.Number, prev, f.Name)
		}
		numbers[f.Number] = f.Name

		out.Fields[i] = f
	}
	return out
}

// resolve sets every field's Kind. Messages are visited in name order so the
// reported reference is stable when several are dangling.
func (s *Schema) resolve() error {
	for _, name := range sortedKeys(s.messages) {
		m := s.messages[name]
		for i := range m.Fields {
			f := &m.Fields[i]
			kind, err := s.KindOf(f.Type)
			if err != nil {
				return &UnknownTypeReference{Field: s.QualifiedName(m.Name, f.Name), Type: f.Type}
			}
			f.Kind = kind
		}
	}
	return nil
}

// requiredCycle reports the first cycle of required, singular message
// fields. Such a message can never be populated with finite data, but the
// schema stays valid.
func (s *Schema) requiredCycle() string {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(s.messages))
	var stack []string

	var visit func(name string) string
	visit = func(name string) string {
		state[name] = visiting
		m := s.messages[name]
		for _, f := range m.Fields {
			if !requiredRef(f) {
				continue
			}
			stack = append(stack, name+"."+f.Name)
			switch state[f.Type] {
			case visiting:
				return strings.Join(stack, " -> ") + " -> " + f.Type
			case 0:
				if cycle := visit(f.Type); cycle != "" {
					return cycle
				}
			}
			stack = stack[:len(stack)-1]
		}
		state[name] = done
		return ""
	}

	for _, name := range sortedKeys(s.messages) {
		if state[name] == 0 {
			if cycle := visit(name); cycle != "" {
				return cycle
			}
		}
	}
	return ""
}

// requiredCycleFields returns every required, singular message field that
// lies on a cycle of such fields, keyed by "Message.field".
func (s *Schema) requiredCycleFields() map[string]bool {
	out := make(map[string]bool)
	for _, name := range sortedKeys(s.messages) {
		for _, f := range s.messages[name].Fields {
			if requiredRef(f) && s.reachesRequired(f.Type, name) {
				out[name+"."+f.Name] = true
			}
		}
	}
	return out
}

// reachesRequired reports whether message to can be reached from message
// from by following required, singular message fields.
func (s *Schema) reachesRequired(from, to string) bool {
	seen := make(map[string]bool)
	var walk func(name string) bool
	walk = func(name string) bool {
		if name == to {
			return true
		}
		if seen[name] {
			return false
		}
		seen[name] = true
		for _, f := range s.messages[name].Fields {
			if requiredRef(f) && walk(f.Type) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

func requiredRef(f Field) bool {
	return f.Kind == KindMessage && !f.Optional && !f.Repeated
}

// KindOf classifies a type name as written in a field definition.
func (s *Schema) KindOf(typ string) (Kind, error) {
	if k, ok := keywordKind(typ); ok {
		return k, nil
	}
	if _, ok := s.enums[typ]; ok {
		return KindEnum, nil
	}
	if _, ok := s.messages[typ]; ok {
		return KindMessage, nil
	}
	return KindInvalid, ErrUnknownType
}

// IsIdentifier reports whether s starts with an ASCII letter or underscore
// and contains only ASCII letters, digits and underscores. Every target
// language accepts such names unchanged.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
		digit := c >= '0' && c <= '9'
		if !letter && (i == 0 || !digit) {
			return false
		}
	}
	return true
}
