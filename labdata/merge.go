/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"slices"
	"sort"
)

// Table is the long-form union of every source, addressable by patient
// key. It is immutable once built.
type Table struct {
	rows    []Row
	keys    []PatientKey
	columns map[string][]string
	sources []string
	byKey   map[PatientKey][]int
	order   []PatientKey
}

// Merge concatenates parsed sources into one table and resolves a patient
// key for every row. Each source's native column order is kept.
func Merge(sources []ParsedSource, resolver KeyResolver) *Table {
	t := &Table{
		columns: make(map[string][]string, len(sources)),
		byKey:   make(map[PatientKey][]int),
	}

	for _, src := range sources {
		if _, dup := t.columns[src.Name]; !dup {
			t.sources = append(t.sources, src.Name)
		}
		t.columns[src.Name] = slices.Clone(src.Columns)

		for idx, record := range src.Records {
			cells := make(map[string]Value, len(src.Columns))
			for i, column := range src.Columns {
				if i < len(record) {
					cells[column] = Text(record[i])
				} else {
					cells[column] = Missing()
				}
			}

			row := Row{Source: src.Name, Index: idx, Cells: cells}
			key := resolver.Resolve(row)

			if _, seen := t.byKey[key]; !seen {
				t.order = append(t.order, key)
			}
			t.byKey[key] = append(t.byKey[key], len(t.rows))
			t.rows = append(t.rows, row)
			t.keys = append(t.keys, key)
		}
	}

	sort.Strings(t.sources)

	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row i and its patient key.
func (t *Table) Row(i int) (Row, PatientKey) {
	return t.rows[i], t.keys[i]
}

// Sources returns source names in sorted order.
func (t *Table) Sources() []string {
	return slices.Clone(t.sources)
}

// Columns returns the native column order of source.
func (t *Table) Columns(source string) ([]string, bool) {
	columns, ok := t.columns[source]
	if !ok {
		return nil, false
	}
	return slices.Clone(columns), true
}

// HasColumn reports whether column belongs to the schema of source.
func (t *Table) HasColumn(source, column string) bool {
	return slices.Contains(t.columns[source], column)
}

// Keys returns every patient key in first-seen order.
func (t *Table) Keys() []PatientKey {
	return slices.Clone(t.order)
}

// HasPatient reports whether any row resolves to key.
func (t *Table) HasPatient(key PatientKey) bool {
	_, ok := t.byKey[key]
	return ok
}

// PatientRows returns the rows of one patient in load order.
func (t *Table) PatientRows(key PatientKey) []Row {
	indexes := t.byKey[key]
	rows := make([]Row, 0, len(indexes))
	for _, i := range indexes {
		rows = append(rows, t.rows[i])
	}
	return rows
}

// SourceRows returns the rows of one source in file order.
func (t *Table) SourceRows(source string) []Row {
	var rows []Row
	for _, row := range t.rows {
		if row.Source == source {
			rows = append(rows, row)
		}
	}
	return rows
}
