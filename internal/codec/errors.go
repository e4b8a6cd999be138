// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies encode and decode failures.
type ErrorKind int

const (
	// MissingField means a required field has no value.
	MissingField ErrorKind = iota + 1
	// TypeMismatch means a value has the wrong Go type for its field.
	TypeMismatch
	// Malformed means the input bytes cannot be parsed.
	Malformed
	// UnknownMessage means the requested message is not in the schema.
	UnknownMessage
	// InvalidValue means a value has the right type but is not acceptable.
	InvalidValue
)

var kindNames = map[ErrorKind]string{
	MissingField:   "missing field",
	TypeMismatch:   "type mismatch",
	Malformed:      "malformed input",
	UnknownMessage: "unknown message",
	InvalidValue:   "invalid value",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is, one per ErrorKind.
var (
	ErrMissingField   = errors.New("missing field")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrMalformed      = errors.New("malformed input")
	ErrUnknownMessage = errors.New("unknown message")
	ErrInvalidValue   = errors.New("invalid value")
)

var sentinels = map[ErrorKind]error{
	MissingField:   ErrMissingField,
	TypeMismatch:   ErrTypeMismatch,
	Malformed:      ErrMalformed,
	UnknownMessage: ErrUnknownMessage,
	InvalidValue:   ErrInvalidValue,
}

// EncodeError reports why a value could not be encoded.
type EncodeError struct {
	Kind    ErrorKind
	Message string // schema message being encoded
	Path    string // field path inside Message, e.g. "lines[2].qty"
	Detail  string
}

func (e *EncodeError) Error() string {
	return formatError("encode", e.Kind, e.Message, e.Path, e.Detail)
}

// Is makes errors.Is match the sentinel of the error's kind.
func (e *EncodeError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// DecodeError reports why input bytes could not be decoded.
type DecodeError struct {
	Kind    ErrorKind
	Message string
	Path    string
	Detail  string
}

func (e *DecodeError) Error() string {
	return formatError("decode", e.Kind, e.Message, e.Path, e.Detail)
}

// Is makes errors.Is match the sentinel of the error's kind.
func (e *DecodeError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func formatError(op string, kind ErrorKind, msg, path, detail string) string {
	where := msg
	if path != "" {
		where += "." + path
	}
	s := fmt.Sprintf("%s %s: %s", op, where, kind)
	if detail != "" {
		s += ": " + detail
	}
	return s
}
