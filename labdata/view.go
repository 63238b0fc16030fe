/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"slices"
	"strconv"
	"strings"
)

// EmptyPatientMessage is shown when a patient key has no rows.
const EmptyPatientMessage = "Нет данных по выбранному пациенту."

// Tone is the semantic coloring of a metric card.
type Tone int

const (
	ToneNeutral Tone = iota
	// TonePositive marks a diagnosis that matched the positive marker.
	TonePositive
	// ToneNegative marks a diagnosis that did not.
	ToneNegative
)

// Card is one metric of one record.
type Card struct {
	Column  string
	Title   string
	Display string
	Missing bool
	Tone    Tone
}

// GaugeID addresses one gauge: a row of a source and a metric.
type GaugeID struct {
	Row    string
	Metric string
	Source string
}

// GaugeBlock is a gauge together with the identity of its history toggle.
type GaugeBlock struct {
	ID    GaugeID
	Gauge Gauge
}

// Record is the display form of one source row.
type Record struct {
	RowID  string
	Date   string
	Gauges []GaugeBlock
	Cards  []Card
}

// SourceGroup holds the records of one patient from one source.
type SourceGroup struct {
	Source       string
	Label        string
	HeaderName   string
	HeaderGender string
	Columns      []string
	Records      []Record
}

// PatientView is the structured display data for one patient.
type PatientView struct {
	Key     PatientKey
	Empty   bool
	Message string
	Groups  []SourceGroup
}

// BuildPatientView groups a patient's rows by source and derives display
// data. It only reads the dataset.
func BuildPatientView(d *Dataset, key PatientKey) PatientView {
	rows := d.table.PatientRows(key)
	if key == "" || len(rows) == 0 {
		return PatientView{Key: key, Empty: true, Message: EmptyPatientMessage}
	}

	bySource := make(map[string][]Row)
	for _, row := range rows {
		bySource[row.Source] = append(bySource[row.Source], row)
	}

	view := PatientView{Key: key}
	for _, source := range d.table.Sources() {
		subset, ok := bySource[source]
		if !ok {
			continue
		}
		view.Groups = append(view.Groups, d.buildSourceGroup(source, subset))
	}

	return view
}

func (d *Dataset) buildSourceGroup(source string, rows []Row) SourceGroup {
	p := d.profile
	columns, _ := d.table.Columns(source)

	if dateColumn, ok := p.DateColumn(columns); ok {
		rows = sortRowsByDate(rows, dateColumn, true)
	}
	rows = d.aggregate(rows, columns)

	group := SourceGroup{
		Source:       source,
		Label:        p.SourceLabel(source),
		HeaderName:   "Имя неизвестно",
		HeaderGender: "Пол неизвестен",
		Columns:      d.displayColumns(source, columns),
	}

	if name, _, ok := rows[0].First(p.NameColumns); ok {
		group.HeaderName = name.String()
	}
	if gender, _, ok := rows[0].First(p.GenderColumns); ok {
		group.HeaderGender = gender.String()
	}

	for _, row := range rows {
		group.Records = append(group.Records, d.buildRecord(source, row, group.Columns))
	}

	return group
}

// aggregate applies the configured rule to date-sorted rows.
func (d *Dataset) aggregate(rows []Row, columns []string) []Row {
	if d.aggregation != AggregateLatest || len(rows) <= 1 {
		return rows
	}

	if dateColumn, ok := d.profile.DateColumn(columns); ok {
		if _, dated := ParseDate(rows[0].Value(dateColumn).String()); dated {
			return rows[:1]
		}
	}

	last := rows[0]
	for _, row := range rows[1:] {
		if row.Index > last.Index {
			last = row
		}
	}

	return []Row{last}
}

// displayColumns returns priority fields present in the source followed by
// the remaining native columns. Identity and gauge-rendered columns are
// left out.
func (d *Dataset) displayColumns(source string, columns []string) []string {
	p := d.profile
	gaugeSource := p.IsGaugeSource(source)

	hidden := func(column string) bool {
		return p.isIdentityColumn(column) || (gaugeSource && p.isGaugeColumn(column))
	}

	display := make([]string, 0, len(columns))
	for _, field := range p.PriorityFields {
		if slices.Contains(columns, field) && !hidden(field) && !slices.Contains(display, field) {
			display = append(display, field)
		}
	}

	for _, column := range columns {
		if hidden(column) || slices.Contains(p.PriorityFields, column) {
			continue
		}
		display = append(display, column)
	}

	return display
}

func (d *Dataset) buildRecord(source string, row Row, columns []string) Record {
	p := d.profile

	record := Record{
		RowID: RowID(row),
		Date:  MissingDisplay,
	}
	if date, _, ok := row.First(p.DateColumns); ok {
		record.Date = date.String()
	}

	if p.IsGaugeSource(source) {
		for _, spec := range p.Gauges {
			record.Gauges = append(record.Gauges, GaugeBlock{
				ID: GaugeID{Row: record.RowID, Metric: spec.Metric, Source: source},
				Gauge: NewGauge(spec.Metric,
					row.Value(spec.Metric), row.Value(spec.MinColumn), row.Value(spec.MaxColumn)),
			})
		}
	}

	for _, column := range columns {
		value, ok := row.Get(column)
		if !ok {
			continue
		}

		card := Card{
			Column:  column,
			Title:   strings.ReplaceAll(column, "_", " "),
			Display: value.Display(),
			Missing: !value.Present(),
		}

		if column == p.DiagnosisColumn && p.IsUrineSource(source) {
			card.Tone = diagnosisTone(value, p.PositiveMarker)
		}

		record.Cards = append(record.Cards, card)
	}

	return record
}

// RowID is the stable display identity of a row within the dataset.
func RowID(row Row) string {
	return row.Source + "-" + strconv.Itoa(row.Index)
}

func diagnosisTone(v Value, marker string) Tone {
	if v.Present() && strings.EqualFold(v.String(), strings.TrimSpace(marker)) {
		return TonePositive
	}
	return ToneNegative
}
