/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plots

import (
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labdash/labdata"
)

// BoxPlot renders the per-category distribution of one metric.
func BoxPlot(dist labdata.Distribution) (Figure, error) {
	id := ChartID("box", dist.Metric)

	if !dist.Available {
		return placeholder(id, dist.Title), nil
	}

	categories := make([]string, 0, len(dist.Groups))
	data := make([]opts.BoxPlotData, 0, len(dist.Groups))

	for _, group := range dist.Groups {
		summary, ok := FiveNumberSummary(group.Values)
		if !ok {
			continue
		}
		categories = append(categories, group.Label)
		data = append(data, opts.BoxPlotData{Name: group.Label, Value: summary[:]})
	}

	if len(data) == 0 {
		return placeholder(id, dist.Title), nil
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(id)),
		charts.WithTitleOpts(opts.Title{Title: dist.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Name: dist.Metric}),
	)
	box.SetXAxis(categories).AddSeries(dist.Metric, data)

	return render(id, dist.Title, box)
}

// FiveNumberSummary returns minimum, lower quartile, median, upper
// quartile and maximum using linear interpolation between order statistics.
func FiveNumberSummary(values []float64) ([5]float64, bool) {
	var out [5]float64

	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return out, false
	}

	slices.Sort(sorted)

	for i, q := range []float64{0, 0.25, 0.5, 0.75, 1} {
		out[i] = quantile(sorted, q)
	}

	return out, true
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)

	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
