// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import (
	"sort"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dacolabs/schemagen/internal/schema"
)

// BSON renders messages as BSON documents with sorted keys. Timestamps are
// RFC 3339 strings because BSON datetimes stop at milliseconds.
var BSON Format = bsonFormat{}

type bsonFormat struct{}

func (bsonFormat) Name() string { return "bson" }

func (bsonFormat) Marshal(s *schema.Schema, m *schema.Message, v Message) ([]byte, error) {
	data, err := bson.Marshal(toDocument(toTree(s, m, v, treeOptions{})))
	if err != nil {
		return nil, errors.Wrap(err, "bson")
	}
	return data, nil
}

func (bsonFormat) Unmarshal(_ *schema.Schema, _ *schema.Message, data []byte) (map[string]any, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "bson")
	}
	return fromBSON(doc).(map[string]any), nil
}

// toDocument orders map keys so equal messages produce equal bytes.
func toDocument(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := make(bson.D, 0, len(keys))
		for _, k := range keys {
			doc = append(doc, bson.E{Key: k, Value: toDocument(t[k])})
		}
		return doc
	case []any:
		arr := make(bson.A, len(t))
		for i, elem := range t {
			arr[i] = toDocument(elem)
		}
		return arr
	}
	return v
}

// fromBSON turns decoded documents and arrays back into plain maps and slices.
func fromBSON(v any) any {
	switch t := v.(type) {
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[k] = fromBSON(elem)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = fromBSON(elem)
		}
		return out
	case primitive.DateTime:
		return t.Time()
	}
	return v
}
