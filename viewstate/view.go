/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package viewstate

import (
	"maps"

	"github.com/humaidq/labdash/labdata"
)

// View is the display data derived from one session state.
type View struct {
	Phase          Phase
	Username       string
	Options        []labdata.PatientOption
	PatientKey     labdata.PatientKey
	Patient        labdata.PatientView
	SelectedMetric string
	// Histories holds a series for every expanded toggle.
	Histories    map[GaugeToggleKey]labdata.Series
	Distribution labdata.Distribution
	Scatter      labdata.ScatterData

	clicks map[GaugeToggleKey]int
}

// Expanded reports whether the gauge's history panel is open.
func (v View) Expanded(id labdata.GaugeID) bool {
	_, ok := v.Histories[ToggleKey(id)]
	return ok
}

// NextClicks returns the cumulative click count a new activation of the
// gauge's toggle carries.
func (v View) NextClicks(id labdata.GaugeID) int {
	return v.clicks[ToggleKey(id)] + 1
}

// History returns the series of an expanded gauge.
func (v View) History(id labdata.GaugeID) (labdata.Series, bool) {
	s, ok := v.Histories[ToggleKey(id)]
	return s, ok
}

// View derives everything the dashboard shows for s. Nothing beyond the
// login form is derived while logged out.
func (r *Reactor) View(s State) View {
	phase := s.Phase()
	if phase == PhaseLoggedOut {
		return View{Phase: phase}
	}

	v := View{
		Phase:          phase,
		Username:       s.Username,
		Options:        r.dataset.PatientOptions(),
		PatientKey:     s.PatientKey,
		SelectedMetric: s.SelectedMetric,
		Distribution:   r.dataset.Distribution(s.SelectedMetric),
		Scatter:        r.dataset.Scatter(),
	}

	if phase != PhasePatientSelected {
		return v
	}

	v.Patient = labdata.BuildPatientView(r.dataset, s.PatientKey)
	v.clicks = maps.Clone(s.Toggles)

	rows := r.dataset.Table().PatientRows(s.PatientKey)
	for key := range s.Toggles {
		if !s.Expanded(key) || !r.isPatientGauge(s.PatientKey, key) {
			continue
		}
		if v.Histories == nil {
			v.Histories = make(map[GaugeToggleKey]labdata.Series)
		}
		v.Histories[key] = labdata.BuildHistory(rows, key.Source, key.Metric, r.dataset.Profile())
	}

	return v
}
