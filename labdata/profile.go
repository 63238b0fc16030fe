/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import "slices"

// GaugeSpec names the value and reference-bound columns of a gauge metric.
type GaugeSpec struct {
	Metric    string
	MinColumn string
	MaxColumn string
}

// ScatterSpec names the columns of the fixed correlation scatter plot.
type ScatterSpec struct {
	X      string
	Y      string
	Color  string
	Size   string
	Title  string
	XLabel string
	YLabel string
}

// Profile declares which columns and files carry meaning for the viewer.
// Nothing outside a Profile assumes a column exists.
type Profile struct {
	IDColumns     []string
	AgeColumns    []string
	GenderColumns []string
	NameColumns   []string
	DateColumns   []string

	// PriorityFields are shown first, in this order, when a source has them.
	PriorityFields []string

	GaugeSources []string
	UrineSources []string
	SourceLabels map[string]string

	Gauges []GaugeSpec

	DiagnosisColumn string
	PositiveMarker  string

	// PreferredMetrics seed the initial distribution-plot metric.
	PreferredMetrics []string

	Scatter ScatterSpec
}

// DefaultProfile describes the blood and urine panel exports.
func DefaultProfile() Profile {
	return Profile{
		IDColumns:      []string{"ID"},
		AgeColumns:     []string{"Возраст", "Age"},
		GenderColumns:  []string{"Пол", "Gender"},
		NameColumns:    []string{"Имя", "Name"},
		DateColumns:    []string{"Дата", "Date"},
		PriorityFields: []string{"Имя", "Name", "Возраст", "Age", "Пол", "Gender"},
		GaugeSources:   []string{"анализ_крови.csv", "анализ_крови.xlsx"},
		UrineSources:   []string{"анализ_мочи.csv", "анализ_мочи.xlsx"},
		SourceLabels: map[string]string{
			"анализ_мочи.csv":   "Анализ мочи",
			"анализ_мочи.xlsx":  "Анализ мочи",
			"анализ_крови.csv":  "Биохимический анализ крови",
			"анализ_крови.xlsx": "Биохимический анализ крови",
		},
		Gauges: []GaugeSpec{
			{Metric: "Гемоглобин", MinColumn: "Гемоглобин мин норма", MaxColumn: "Гемоглобин макс норма"},
			{Metric: "Тромбоциты", MinColumn: "Тромбоциты мин норма", MaxColumn: "Тромбоциты макс норма"},
		},
		DiagnosisColumn: "Диагноз",
		PositiveMarker:  "POSITIVE",
		PreferredMetrics: []string{
			"Гемоглобин", "Тромбоциты", "Лейкоциты", "Эритроциты",
			"Hemoglobin", "Platelet_Count", "White_Blood_Cells", "Red_Blood_Cells",
			"MCV", "MCH", "MCHC",
		},
		Scatter: ScatterSpec{
			X:      "Эритроциты",
			Y:      "Гемоглобин",
			Color:  "Пол",
			Size:   "Возраст",
			Title:  "Эритроциты vs. Гемоглобин by Возраст and Пол",
			XLabel: "Эритроциты (10^6/µL)",
			YLabel: "Гемоглобин (g/dL)",
		},
	}
}

// IsGaugeSource reports whether gauges are attached to rows of source.
func (p Profile) IsGaugeSource(source string) bool {
	return slices.Contains(p.GaugeSources, source)
}

// IsUrineSource reports whether source gets diagnosis coloring.
func (p Profile) IsUrineSource(source string) bool {
	return slices.Contains(p.UrineSources, source)
}

// SourceLabel returns the human label for a source file.
func (p Profile) SourceLabel(source string) string {
	if label, ok := p.SourceLabels[source]; ok {
		return label
	}
	return source
}

// Gauge returns the gauge declared for metric.
func (p Profile) Gauge(metric string) (GaugeSpec, bool) {
	for _, g := range p.Gauges {
		if g.Metric == metric {
			return g, true
		}
	}
	return GaugeSpec{}, false
}

// DateColumn returns the first date column among columns.
func (p Profile) DateColumn(columns []string) (string, bool) {
	return firstColumn(columns, p.DateColumns)
}

// isIdentityColumn reports columns that identify a record rather than
// describe a measurement.
func (p Profile) isIdentityColumn(column string) bool {
	return column == SourceColumn ||
		slices.Contains(p.IDColumns, column) ||
		slices.Contains(p.DateColumns, column)
}

// isGaugeColumn reports value and bound columns rendered by a gauge.
func (p Profile) isGaugeColumn(column string) bool {
	for _, g := range p.Gauges {
		if column == g.Metric || column == g.MinColumn || column == g.MaxColumn {
			return true
		}
	}
	return false
}

func firstColumn(columns, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if slices.Contains(columns, candidate) {
			return candidate, true
		}
	}
	return "", false
}
