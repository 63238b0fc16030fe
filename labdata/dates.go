/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"sort"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02.01.2006",
	"02.01.2006 15:04",
	"02.01.2006 15:04:05",
	"02/01/2006",
	"01-02-06",
}

// ParseDate parses the date formats found in lab exports.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

type datedRow struct {
	row   Row
	date  time.Time
	dated bool
}

// sortRowsByDate orders rows by the date column. Rows with a parseable date
// come first; undated rows keep their relative order at the end.
func sortRowsByDate(rows []Row, dateColumn string, descending bool) []Row {
	dated := make([]datedRow, len(rows))
	for i, row := range rows {
		t, ok := ParseDate(row.Value(dateColumn).String())
		dated[i] = datedRow{row: row, date: t, dated: ok}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		if a.dated != b.dated {
			return a.dated
		}
		if !a.dated {
			return false
		}
		if descending {
			return a.date.After(b.date)
		}
		return a.date.Before(b.date)
	})

	sorted := make([]Row, len(dated))
	for i, d := range dated {
		sorted[i] = d.row
	}

	return sorted
}
