/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"math"
	"strconv"
)

// The gauge bar shows the reference range in its middle third. Values at or
// beyond a bound are pinned to the bar's edges.
const (
	GaugeLowerMark = 33.3
	GaugeUpperMark = 66.6
	gaugeBandWidth = 33.4
)

// Normalize maps value into a [0,100] bar position relative to [lo,hi].
// It reports false when the range cannot be displayed.
func Normalize(value, lo, hi float64) (float64, bool) {
	for _, f := range []float64{value, lo, hi} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
	}

	if hi <= lo {
		return 0, false
	}

	switch {
	case value <= lo:
		return 0, true
	case value >= hi:
		return 100, true
	}

	ratio := (value - lo) / (hi - lo)

	return GaugeLowerMark + ratio*gaugeBandWidth, true
}

// Gauge is a reference-range indicator for one metric of one row.
type Gauge struct {
	Title      string
	Renderable bool
	Value      float64
	Min        float64
	Max        float64
	Position   float64
}

// NewGauge coerces the raw cells and positions the value. Any missing or
// unparseable input yields a gauge that is not renderable.
func NewGauge(title string, value, lower, upper Value) Gauge {
	g := Gauge{Title: title}

	v, okV := value.Float()
	lo, okMin := lower.Float()
	hi, okMax := upper.Float()
	if !okV || !okMin || !okMax {
		return g
	}

	position, ok := Normalize(v, lo, hi)
	if !ok {
		return g
	}

	g.Renderable = true
	g.Value = v
	g.Min = lo
	g.Max = hi
	g.Position = position

	return g
}

// Placeholder is the text shown instead of an undisplayable gauge.
func (g Gauge) Placeholder() string {
	return "Нет данных по показателю " + g.Title
}

// ValueLabel formats the marker text.
func (g Gauge) ValueLabel() string {
	return strconv.FormatFloat(g.Value, 'f', 1, 64)
}

// MinLabel formats the lower boundary label.
func (g Gauge) MinLabel() string {
	return strconv.FormatFloat(g.Min, 'f', 1, 64)
}

// MaxLabel formats the upper boundary label.
func (g Gauge) MaxLabel() string {
	return strconv.FormatFloat(g.Max, 'f', 1, 64)
}

// PositionPercent formats the marker offset for a CSS left property.
func (g Gauge) PositionPercent() string {
	return strconv.FormatFloat(g.Position, 'f', 2, 64) + "%"
}
