/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/humaidq/labdash/labdata"
	"github.com/humaidq/labdash/plots"
	"github.com/humaidq/labdash/viewstate"
)

type cardPanel struct {
	Card       labdata.Card
	Class      string
	Selectable bool
	Selected   bool
}

type gaugePanel struct {
	Block      labdata.GaugeBlock
	Expanded   bool
	NextClicks int
	History    plots.Figure
}

type recordPanel struct {
	Record labdata.Record
	Gauges []gaugePanel
	Cards  []cardPanel
}

type groupPanel struct {
	Group   labdata.SourceGroup
	Records []recordPanel
}

type dashboardPage struct {
	View    viewstate.View
	Groups  []groupPanel
	BoxPlot plots.Figure
	Scatter plots.Figure
}

// buildDashboardPage pairs the derived view with rendered figures. Chart
// failures are logged and shown as placeholders.
func buildDashboardPage(d *labdata.Dataset, v viewstate.View) dashboardPage {
	page := dashboardPage{View: v}

	page.BoxPlot = figureOrPlaceholder(plots.BoxPlot(v.Distribution))
	page.Scatter = figureOrPlaceholder(plots.Scatter(v.Scatter))

	for _, group := range v.Patient.Groups {
		gp := groupPanel{Group: group}

		for _, record := range group.Records {
			rp := recordPanel{Record: record}

			for _, block := range record.Gauges {
				panel := gaugePanel{
					Block:      block,
					Expanded:   v.Expanded(block.ID),
					NextClicks: v.NextClicks(block.ID),
				}
				if series, ok := v.History(block.ID); ok {
					panel.History = figureOrPlaceholder(plots.History(series, block.ID.Row))
				}
				rp.Gauges = append(rp.Gauges, panel)
			}

			for _, card := range record.Cards {
				rp.Cards = append(rp.Cards, cardPanel{
					Card:       card,
					Class:      cardClass(card),
					Selectable: d.IsDistributionMetric(card.Column),
					Selected:   card.Column == v.SelectedMetric,
				})
			}

			gp.Records = append(gp.Records, rp)
		}

		page.Groups = append(page.Groups, gp)
	}

	return page
}

func figureOrPlaceholder(fig plots.Figure, err error) plots.Figure {
	if err != nil {
		logger.Error("Failed to render chart", "error", err)
		return plots.Figure{Title: msgChartFailed, Placeholder: true}
	}
	return fig
}

func cardClass(card labdata.Card) string {
	switch {
	case card.Tone == labdata.TonePositive:
		return "card positive"
	case card.Tone == labdata.ToneNegative:
		return "card negative"
	case card.Missing:
		return "card missing"
	default:
		return "card"
	}
}
