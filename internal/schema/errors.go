// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("schema parse error")

	// ErrUnknownType matches every *UnknownTypeReference.
	ErrUnknownType = errors.New("unknown type reference")
)

// ParseError reports a malformed definition source. It lists every problem
// found, not just the first.
type ParseError struct {
	Source   string
	Problems []string
}

func (e *ParseError) Error() string {
	src := e.Source
	if src == "" {
		src = "<input>"
	}
	if len(e.Problems) == 1 {
		return fmt.Sprintf("parse schema %s: %s", src, e.Problems[0])
	}
	return fmt.Sprintf("parse schema %s:\n  - %s", src, strings.Join(e.Problems, "\n  - "))
}

// Is makes errors.Is(err, ErrParse) hold.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnknownTypeReference reports a field whose type names no enum or message.
type UnknownTypeReference struct {
	Field string // fully qualified, e.g. "common.AuditInfo.createdBy"
	Type  string
}

func (e *UnknownTypeReference) Error() string {
	return fmt.Sprintf("field %s references unknown type %q", e.Field, e.Type)
}

// Is makes errors.Is(err, ErrUnknownType) hold.
func (e *UnknownTypeReference) Is(target error) bool {
	return target == ErrUnknownType
}
