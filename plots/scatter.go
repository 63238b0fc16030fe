/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plots

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labdash/labdata"
)

const (
	minSymbolSize = 6
	maxSymbolSize = 20
)

// Scatter renders the correlation plot, one series per category with the
// symbol size scaled from the size column.
func Scatter(data labdata.ScatterData) (Figure, error) {
	id := ChartID("scatter", data.XLabel, data.YLabel)

	if !data.Available || len(data.Series) == 0 {
		return placeholder(id, data.Title), nil
	}

	largest := 0.0
	for _, series := range data.Series {
		for _, p := range series.Points {
			largest = math.Max(largest, p.Size)
		}
	}

	chart := charts.NewScatter()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(id)),
		charts.WithTitleOpts(opts.Title{Title: data.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: data.XLabel, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: data.YLabel, Type: "value"}),
	)

	for _, series := range data.Series {
		points := make([]opts.ScatterData, 0, len(series.Points))
		for _, p := range series.Points {
			points = append(points, opts.ScatterData{
				Value:      []float64{p.X, p.Y},
				SymbolSize: symbolSize(p.Size, largest),
			})
		}
		chart.AddSeries(series.Label, points)
	}

	return render(id, data.Title, chart)
}

func symbolSize(size, largest float64) int {
	if largest <= 0 || size <= 0 {
		return minSymbolSize
	}

	return minSymbolSize + int(math.Round(size/largest*(maxSymbolSize-minSymbolSize)))
}
