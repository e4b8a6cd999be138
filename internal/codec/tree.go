// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"time"

	"github.com/dacolabs/schemagen/internal/schema"
)

// treeOptions tune how canonical values map onto a document format's types.
type treeOptions struct {
	nativeTime bool // keep time.Time instead of an RFC 3339 string
}

// toTree converts a canonical message into plain maps, slices and scalars.
// Enum values are written as numbers so readers on an older schema can still
// decode members added later.
func toTree(s *schema.Schema, m *schema.Message, v Message, opts treeOptions) map[string]any {
	out := make(map[string]any, len(v))
	for _, f := range m.Fields {
		val, ok := v[f.Name]
		if !ok {
			continue
		}
		if !f.Repeated {
			out[f.Name] = treeElement(s, f, val, opts)
			continue
		}
		list := val.([]any)
		elems := make([]any, len(list))
		for i, elem := range list {
			elems[i] = treeElement(s, f, elem, opts)
		}
		out[f.Name] = elems
	}
	return out
}

func treeElement(s *schema.Schema, f schema.Field, v any, opts treeOptions) any {
	switch f.Kind {
	case schema.KindTimestamp:
		t := v.(time.Time).UTC()
		if opts.nativeTime {
			return t
		}
		return t.Format(time.RFC3339Nano)
	case schema.KindEnum:
		return int64(v.(EnumValue).Number)
	case schema.KindMessage:
		def, _ := s.Message(f.Type)
		return toTree(s, def, v.(Message), opts)
	case schema.KindUUID, schema.KindMoney, schema.KindAddress:
		def, _ := schema.WellKnown(f.Kind)
		return toTree(s, def, v.(Message), opts)
	}
	return v
}
