// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate renders a schema into target-language source files.
package translate

import (
	"fmt"
	"sort"

	"github.com/dacolabs/schemagen/internal/schema"
)

// Translator defines the interface all target emitters must implement.
type Translator interface {
	// Name returns the target's identifier (e.g., "typescript", "go")
	Name() string

	// Translate renders the schema into one or more files.
	// Paths are relative, slash separated and unique.
	Translate(s *schema.Schema, opts Options) ([]File, error)
}

// Register maps target names to translators.
type Register map[string]Translator

// Get retrieves a translator by name.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown target: %s", name)
	}
	return t, nil
}

// Available returns all registered target names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
