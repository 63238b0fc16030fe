/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"math"
	"strconv"
	"strings"
)

// MissingDisplay is rendered for a cell whose column exists but has no value.
const MissingDisplay = "N/A"

// Value is a single optional cell. The zero value is an absent cell.
type Value struct {
	raw     string
	present bool
}

// Text wraps raw cell text. Blank text is treated as absent.
func Text(raw string) Value {
	return Value{raw: raw, present: strings.TrimSpace(raw) != ""}
}

// Missing returns an absent cell.
func Missing() Value {
	return Value{}
}

// Present reports whether the cell carries a value.
func (v Value) Present() bool {
	return v.present
}

// Raw returns the cell text exactly as read from the source.
func (v Value) Raw() string {
	return v.raw
}

// String returns the trimmed cell text, or an empty string when absent.
func (v Value) String() string {
	if !v.present {
		return ""
	}
	return strings.TrimSpace(v.raw)
}

// Float coerces the cell to a number, accepting a comma decimal separator.
func (v Value) Float() (float64, bool) {
	if !v.present {
		return 0, false
	}
	return ParseFloat(v.raw)
}

// Display formats the cell for a metric card: integers verbatim, other
// numbers with two decimals, text as-is and absent cells as N/A.
func (v Value) Display() string {
	if !v.present {
		return MissingDisplay
	}

	s := v.String()
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	if f, ok := ParseFloat(s); ok {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}

	return s
}

// ParseFloat parses a locale-tolerant number. It never panics and reports
// false for anything that is not a finite number.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
