/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plots

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labdash/labdata"
)

// HistoryEmptyTitle is shown when a gauge has no dated values.
const HistoryEmptyTitle = "Нет данных для построения графика"

// echarts leaves a gap for this value.
const gapValue = "-"

// History renders a metric trend with dashed reference-bound overlays.
// key distinguishes charts of the same metric on one page.
func History(series labdata.Series, key string) (Figure, error) {
	id := ChartID("history", key, series.Source, series.Metric)
	title := "История: " + series.Metric

	if series.Empty() {
		return placeholder(id, HistoryEmptyTitle), nil
	}

	labels := make([]string, 0, len(series.Points))
	values := make([]opts.LineData, 0, len(series.Points))
	for _, p := range series.Points {
		labels = append(labels, p.Label)
		values = append(values, opts.LineData{Value: p.Value})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(id)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: series.Metric}),
	)

	line.SetXAxis(labels).AddSeries(series.Metric, values,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
	)

	if series.HasMin {
		line.AddSeries("Мин. норма", boundData(series.Min), boundSeriesOpts()...)
	}
	if series.HasMax {
		line.AddSeries("Макс. норма", boundData(series.Max), boundSeriesOpts()...)
	}

	return render(id, title, line)
}

func boundData(bounds []labdata.Bound) []opts.LineData {
	data := make([]opts.LineData, 0, len(bounds))
	for _, b := range bounds {
		if !b.Present {
			data = append(data, opts.LineData{Value: gapValue})
			continue
		}
		data = append(data, opts.LineData{Value: b.Value})
	}
	return data
}

func boundSeriesOpts() []charts.SeriesOpts {
	return []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: boundColor,
			Type:  "dashed",
			Width: 1.5,
		}),
	}
}
