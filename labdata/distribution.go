/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"slices"
	"strings"
)

// Placeholder titles for plots that cannot be drawn.
const (
	MetricUnavailableTitle = "Параметр недоступен в текущем наборе данных"
	GenderUnavailableTitle = "Boxplot недоступен: нет колонки Пол"
	MetricHintTitle        = "Выберите показатель, кликая по карточкам пациента — boxplot"
	ScatterMissingTitle    = "Загрузите анализы, чтобы построить диаграмму"
)

// ValueGroup is the values of one category.
type ValueGroup struct {
	Label  string
	Values []float64
}

// Distribution is the data behind the per-gender box plot.
type Distribution struct {
	Metric    string
	Available bool
	Title     string
	Header    string
	Groups    []ValueGroup
}

// Distribution groups the primary source's values of metric by gender.
func (d *Dataset) Distribution(metric string) Distribution {
	if !d.IsDistributionMetric(metric) {
		return Distribution{Metric: metric, Title: MetricUnavailableTitle, Header: MetricHintTitle}
	}

	columns, _ := d.table.Columns(d.primary)
	genderColumn, ok := firstColumn(columns, d.profile.GenderColumns)
	if !ok {
		return Distribution{Metric: metric, Title: "Пол отсутствует в наборе данных", Header: GenderUnavailableTitle}
	}

	label := strings.ReplaceAll(metric, "_", " ")
	dist := Distribution{
		Metric:    metric,
		Available: true,
		Title:     "Distribution of " + label + " by " + genderColumn,
		Header:    "Boxplot: " + label,
	}

	index := make(map[string]int)
	for _, row := range d.table.SourceRows(d.primary) {
		value, ok := row.Value(metric).Float()
		if !ok {
			continue
		}

		gender := row.Value(genderColumn).String()
		if gender == "" {
			gender = MissingDisplay
		}

		i, seen := index[gender]
		if !seen {
			i = len(dist.Groups)
			index[gender] = i
			dist.Groups = append(dist.Groups, ValueGroup{Label: gender})
		}
		dist.Groups[i].Values = append(dist.Groups[i].Values, value)
	}

	return dist
}

// ScatterPoint is one row of the correlation plot.
type ScatterPoint struct {
	X    float64
	Y    float64
	Size float64
}

// ScatterSeries is the points of one category.
type ScatterSeries struct {
	Label  string
	Points []ScatterPoint
}

// ScatterData is the data behind the fixed two-metric scatter plot.
type ScatterData struct {
	Available bool
	Title     string
	XLabel    string
	YLabel    string
	Series    []ScatterSeries
}

// Scatter builds the correlation plot from the primary source.
func (d *Dataset) Scatter() ScatterData {
	spec := d.profile.Scatter
	columns, _ := d.table.Columns(d.primary)

	for _, required := range []string{spec.X, spec.Y, spec.Color, spec.Size} {
		if required == "" || !slices.Contains(columns, required) {
			return ScatterData{Title: ScatterMissingTitle}
		}
	}

	data := ScatterData{
		Available: true,
		Title:     spec.Title,
		XLabel:    spec.XLabel,
		YLabel:    spec.YLabel,
	}

	index := make(map[string]int)
	for _, row := range d.table.SourceRows(d.primary) {
		x, okX := row.Value(spec.X).Float()
		y, okY := row.Value(spec.Y).Float()
		if !okX || !okY {
			continue
		}

		size, _ := row.Value(spec.Size).Float()
		label := row.Value(spec.Color).String()
		if label == "" {
			label = MissingDisplay
		}

		i, seen := index[label]
		if !seen {
			i = len(data.Series)
			index[label] = i
			data.Series = append(data.Series, ScatterSeries{Label: label})
		}
		data.Series[i].Points = append(data.Series[i].Points, ScatterPoint{X: x, Y: y, Size: size})
	}

	return data
}
