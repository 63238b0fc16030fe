/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

// SourceColumn is the tag injected into every row naming its origin file.
const SourceColumn = "Source_File"

// Row is one record of one source file. Cells holds an entry for every
// column of the source's schema, so map presence means "column exists in
// this source" and Value.Present means "this row has a value".
type Row struct {
	Source string
	Index  int
	Cells  map[string]Value
}

// Get returns the cell for column and whether the column belongs to the
// row's source schema.
func (r Row) Get(column string) (Value, bool) {
	if column == SourceColumn {
		return Text(r.Source), true
	}

	v, ok := r.Cells[column]
	return v, ok
}

// Value returns the cell for column, absent when the column does not exist.
func (r Row) Value(column string) Value {
	v, _ := r.Get(column)
	return v
}

// First returns the first present cell among columns.
func (r Row) First(columns []string) (Value, string, bool) {
	for _, column := range columns {
		if v, ok := r.Cells[column]; ok && v.Present() {
			return v, column, true
		}
	}

	return Missing(), "", false
}
