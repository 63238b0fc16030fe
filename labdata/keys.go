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

// KeySeparator joins the parts of a synthesized patient key. It is removed
// from both parts, so it never appears inside either of them.
const KeySeparator = "\x1f"

// PatientKey identifies one patient across all sources.
type PatientKey string

// KeyKind tells how a PatientKey was derived.
type KeyKind int

const (
	// KeyExplicit keys come verbatim from an identifier column.
	KeyExplicit KeyKind = iota
	// KeySynthesized keys combine normalized age and gender.
	KeySynthesized
)

// Kind reports how the key was derived.
func (k PatientKey) Kind() KeyKind {
	if strings.Contains(string(k), KeySeparator) {
		return KeySynthesized
	}
	return KeyExplicit
}

// Parts splits a synthesized key into its age and gender parts.
func (k PatientKey) Parts() (age, gender string, ok bool) {
	age, gender, ok = strings.Cut(string(k), KeySeparator)
	return age, gender, ok
}

// KeyResolver derives patient keys from raw row fields.
type KeyResolver struct {
	IDColumns     []string
	AgeColumns    []string
	GenderColumns []string
}

// NewKeyResolver returns a resolver using the profile's identity columns.
func NewKeyResolver(p Profile) KeyResolver {
	return KeyResolver{
		IDColumns:     p.IDColumns,
		AgeColumns:    p.AgeColumns,
		GenderColumns: p.GenderColumns,
	}
}

// Resolve returns the row's patient key. A present identifier is used
// verbatim; otherwise the key is synthesized from age and gender. The
// result depends on the row alone.
func (r KeyResolver) Resolve(row Row) PatientKey {
	if id, _, ok := row.First(r.IDColumns); ok {
		return PatientKey(id.Raw())
	}

	age, _, _ := row.First(r.AgeColumns)
	gender, _, _ := row.First(r.GenderColumns)

	return SynthesizeKey(age.String(), gender.String())
}

// SynthesizeKey builds a composite key from age and gender.
func SynthesizeKey(age, gender string) PatientKey {
	return PatientKey(normalizeAge(age) + KeySeparator + normalizeGender(gender))
}

func normalizeAge(age string) string {
	age = strings.TrimSpace(strings.ReplaceAll(age, KeySeparator, ""))
	if f, ok := ParseFloat(age); ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return age
}

func normalizeGender(gender string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(gender, KeySeparator, "")))
}
