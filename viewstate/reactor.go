/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package viewstate

import (
	"strings"

	"github.com/humaidq/labdash/labdata"
)

// Feedback messages shown to the user.
const (
	MissingCredentialsMessage  = "Введите логин и пароль."
	RejectedCredentialsMessage = "Неверный логин или пароль."
)

// Result is the outcome of one event.
type Result struct {
	State State
	// Feedback is a user-visible notice; empty when there is nothing to say.
	Feedback string
}

// Reactor reduces session events against the shared dataset. It holds no
// per-session data and is safe for concurrent use.
type Reactor struct {
	dataset *labdata.Dataset
	auth    AuthenticationProvider
}

// New returns a Reactor. A nil provider uses PlaceholderProvider.
func New(d *labdata.Dataset, auth AuthenticationProvider) *Reactor {
	if auth == nil {
		auth = PlaceholderProvider{}
	}
	return &Reactor{dataset: d, auth: auth}
}

// Dataset returns the dataset the reactor reads from.
func (r *Reactor) Dataset() *labdata.Dataset {
	return r.dataset
}

// Initial returns the state of a fresh session.
func (r *Reactor) Initial() State {
	return State{SelectedMetric: r.dataset.DefaultMetric()}
}

// Apply returns the state following ev. The input state is never modified,
// and applying an event whose effect is already reflected in the state
// returns an equal state.
func (r *Reactor) Apply(s State, ev Event) Result {
	if c, ok := ev.(SubmitCredentials); ok {
		return r.login(s, c)
	}

	if !s.Authenticated {
		return Result{State: s}
	}

	switch ev := ev.(type) {
	case Logout:
		next := s.clone()
		next.Authenticated = false
		next.Username = ""
		return Result{State: next}
	case SelectPatient:
		return r.selectPatient(s, ev.Key)
	case ActivateMetricCard:
		if ev.Key.Metric == s.SelectedMetric || !r.dataset.IsDistributionMetric(ev.Key.Metric) {
			return Result{State: s}
		}
		next := s.clone()
		next.SelectedMetric = ev.Key.Metric
		return Result{State: next}
	case ActivateGaugeToggle:
		return r.toggle(s, ev)
	default:
		return Result{State: s}
	}
}

func (r *Reactor) login(s State, c SubmitCredentials) Result {
	username := strings.TrimSpace(c.Username)
	if username == "" || c.Password == "" {
		return Result{State: s, Feedback: MissingCredentialsMessage}
	}

	if !r.auth.Authenticate(username, c.Password) {
		return Result{State: s, Feedback: RejectedCredentialsMessage}
	}

	if s.Authenticated && s.Username == username {
		return Result{State: s}
	}

	next := s.clone()
	next.Authenticated = true
	next.Username = username
	next.PatientKey = ""
	next.Toggles = nil
	if next.SelectedMetric == "" {
		next.SelectedMetric = r.dataset.DefaultMetric()
	}

	return Result{State: next}
}

func (r *Reactor) selectPatient(s State, key labdata.PatientKey) Result {
	if key == s.PatientKey {
		return Result{State: s}
	}

	next := s.clone()
	next.Toggles = nil

	if key == "" {
		next.PatientKey = ""
		return Result{State: next}
	}

	if !r.dataset.HasPatient(key) {
		next.PatientKey = ""
		return Result{State: next, Feedback: labdata.EmptyPatientMessage}
	}

	next.PatientKey = key

	return Result{State: next}
}

func (r *Reactor) toggle(s State, ev ActivateGaugeToggle) Result {
	if !r.isPatientGauge(s.PatientKey, ev.Key) || ev.Clicks < 0 {
		return Result{State: s}
	}

	current := s.Toggles[ev.Key]

	var count int
	switch {
	case ev.Clicks == 0:
		count = current + 1
	case ev.Clicks == current:
		return Result{State: s}
	default:
		count = ev.Clicks
	}

	next := s.clone()
	if next.Toggles == nil {
		next.Toggles = make(map[GaugeToggleKey]int)
	}
	next.Toggles[ev.Key] = count

	return Result{State: next}
}

// isPatientGauge reports whether key addresses a gauge of one of the
// selected patient's rows.
func (r *Reactor) isPatientGauge(patient labdata.PatientKey, key GaugeToggleKey) bool {
	if patient == "" {
		return false
	}

	profile := r.dataset.Profile()
	if !profile.IsGaugeSource(key.Source) {
		return false
	}
	if _, ok := profile.Gauge(key.Metric); !ok {
		return false
	}

	for _, row := range r.dataset.Table().PatientRows(patient) {
		if row.Source == key.Source && labdata.RowID(row) == key.Row {
			return true
		}
	}

	return false
}
