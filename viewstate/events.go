/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package viewstate

import "github.com/humaidq/labdash/labdata"

// Event is a user interaction reduced by Reactor.Apply.
type Event interface {
	event()
}

// SubmitCredentials is a login form submission.
type SubmitCredentials struct {
	Username string
	Password string
}

// Logout ends the authenticated part of the session.
type Logout struct{}

// SelectPatient changes the patient picker; an empty key clears it.
type SelectPatient struct {
	Key labdata.PatientKey
}

// ActivateMetricCard is a click on a metric card.
type ActivateMetricCard struct {
	Key MetricCardKey
}

// ActivateGaugeToggle is a click on a gauge's history toggle. Clicks is
// the client's cumulative click count for the toggle; zero means unknown.
type ActivateGaugeToggle struct {
	Key    GaugeToggleKey
	Clicks int
}

func (SubmitCredentials) event()   {}
func (Logout) event()              {}
func (SelectPatient) event()       {}
func (ActivateMetricCard) event()  {}
func (ActivateGaugeToggle) event() {}
