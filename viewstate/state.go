/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package viewstate

import (
	"encoding/gob"
	"maps"

	"github.com/humaidq/labdash/labdata"
)

// Phase is the coarse position of a session in the dashboard flow.
type Phase int

const (
	PhaseLoggedOut Phase = iota
	PhaseNoPatientSelected
	PhasePatientSelected
)

func (p Phase) String() string {
	switch p {
	case PhaseLoggedOut:
		return "logged_out"
	case PhaseNoPatientSelected:
		return "no_patient_selected"
	case PhasePatientSelected:
		return "patient_selected"
	default:
		return "unknown"
	}
}

// MetricCardKey identifies a clickable metric card.
type MetricCardKey struct {
	Metric string
}

// GaugeToggleKey identifies the history toggle of one gauge.
type GaugeToggleKey struct {
	Row    string
	Metric string
	Source string
}

// ToggleKey returns the toggle identity of a rendered gauge.
func ToggleKey(id labdata.GaugeID) GaugeToggleKey {
	return GaugeToggleKey(id)
}

// State is everything remembered about one session. It is stored in the
// session between requests and replaced wholesale by Apply.
type State struct {
	Authenticated  bool
	Username       string
	PatientKey     labdata.PatientKey
	SelectedMetric string
	// Toggles holds click counts; an odd count means expanded.
	Toggles map[GaugeToggleKey]int
}

func init() {
	gob.Register(State{})
}

// Phase derives the session phase.
func (s State) Phase() Phase {
	switch {
	case !s.Authenticated:
		return PhaseLoggedOut
	case s.PatientKey == "":
		return PhaseNoPatientSelected
	default:
		return PhasePatientSelected
	}
}

// Expanded reports whether the history panel of key is open.
func (s State) Expanded(key GaugeToggleKey) bool {
	return s.Toggles[key]%2 == 1
}

func (s State) clone() State {
	s.Toggles = maps.Clone(s.Toggles)
	return s
}
