// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package codec

import "strconv"

// Message is the in-memory value of a schema message, keyed by schema field
// name. An absent key is an absent optional field.
//
// Canonical field values are:
//   - string, int64, float64 and bool for scalars
//   - time.Time in UTC for timestamps
//   - Message for UUID, Money, Address and message references
//   - EnumValue for enum references
//   - []any holding the above for repeated fields
type Message map[string]any

// EnumValue is an enum field value. Enums are open: a number the schema does
// not declare is kept with an empty Label.
type EnumValue struct {
	Number int32
	Label  string
}

// Known reports whether the number matched a declared member.
func (v EnumValue) Known() bool {
	return v.Label != ""
}

func (v EnumValue) String() string {
	if v.Label != "" {
		return v.Label
	}
	return strconv.Itoa(int(v.Number))
}
