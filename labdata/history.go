/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"sort"
	"time"
)

// Point is one dated measurement.
type Point struct {
	Date  time.Time
	Label string
	Value float64
}

// Bound is a reference bound aligned with a Point; absent when the row
// carried no bound.
type Bound struct {
	Value   float64
	Present bool
}

// Series is the trend of one metric of one patient within one source.
type Series struct {
	Source string
	Metric string
	Points []Point
	Min    []Bound
	Max    []Bound
	HasMin bool
	HasMax bool
}

// Empty reports whether the series has nothing to plot.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// BuildHistory reconstructs the ascending trend of metric from the
// patient's rows of source. Rows without a numeric value or a parseable
// date are dropped. Bound overlays are attached when the profile declares
// bound columns for the metric and at least one kept row carries them.
func BuildHistory(rows []Row, source, metric string, profile Profile) Series {
	series := Series{Source: source, Metric: metric}

	type sample struct {
		date     time.Time
		label    string
		value    float64
		min, max Bound
	}

	var samples []sample

	for _, row := range rows {
		if row.Source != source {
			continue
		}

		value, ok := row.Value(metric).Float()
		if !ok {
			continue
		}

		dateValue, _, hasDate := row.First(profile.DateColumns)
		if !hasDate {
			continue
		}

		date, ok := ParseDate(dateValue.String())
		if !ok {
			continue
		}

		s := sample{date: date, label: dateValue.String(), value: value}
		if spec, ok := profile.Gauge(metric); ok {
			if f, ok := row.Value(spec.MinColumn).Float(); ok {
				s.min = Bound{Value: f, Present: true}
			}
			if f, ok := row.Value(spec.MaxColumn).Float(); ok {
				s.max = Bound{Value: f, Present: true}
			}
		}

		samples = append(samples, s)
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].date.Before(samples[j].date)
	})

	for _, s := range samples {
		series.Points = append(series.Points, Point{Date: s.date, Label: s.label, Value: s.value})
		series.Min = append(series.Min, s.min)
		series.Max = append(series.Max, s.max)
		series.HasMin = series.HasMin || s.min.Present
		series.HasMax = series.HasMax || s.max.Present
	}

	if !series.HasMin {
		series.Min = nil
	}
	if !series.HasMax {
		series.Max = nil
	}

	return series
}
