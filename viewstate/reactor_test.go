// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package viewstate

import (
	"reflect"
	"testing"

	"github.com/humaidq/labdash/labdata"
)

const (
	bloodCSV = "анализ_крови.csv"
	urineCSV = "анализ_мочи.csv"
)

func newTestReactor(t *testing.T) *Reactor {
	t.Helper()

	sources := []labdata.ParsedSource{
		{
			Name: bloodCSV,
			Columns: []string{
				"ID", "Дата", "Пол", "Гемоглобин", "Гемоглобин мин норма", "Гемоглобин макс норма",
			},
			Records: [][]string{
				{"1", "2020-03-03", "Ж", "14.1", "12", "16"},
				{"1", "2020-02-02", "Ж", "13.2", "12", "16"},
				{"2", "2020-01-01", "М", "15.0", "13", "17"},
			},
		},
		{
			Name:    urineCSV,
			Columns: []string{"ID", "Диагноз", "Белок"},
			Records: [][]string{{"1", "POSITIVE", "0.3"}},
		},
	}

	d, err := labdata.NewDataset(sources, labdata.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}

	return New(d, nil)
}

func loggedIn(t *testing.T, r *Reactor) State {
	t.Helper()

	res := r.Apply(r.Initial(), SubmitCredentials{Username: "doctor", Password: "secret"})
	if res.State.Phase() != PhaseNoPatientSelected {
		t.Fatalf("expected login to succeed, got phase %v", res.State.Phase())
	}

	return res.State
}

func withPatient(t *testing.T, r *Reactor, key labdata.PatientKey) State {
	t.Helper()

	res := r.Apply(loggedIn(t, r), SelectPatient{Key: key})
	if res.State.Phase() != PhasePatientSelected {
		t.Fatalf("expected patient %q to be selected", key)
	}

	return res.State
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty password", username: "doctor"},
		{name: "empty username", password: "secret"},
		{name: "blank username", username: "   ", password: "secret"},
		{name: "both empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := r.Apply(r.Initial(), SubmitCredentials{Username: tt.username, Password: tt.password})
			if res.State.Phase() != PhaseLoggedOut {
				t.Fatalf("expected to stay logged out, got %v", res.State.Phase())
			}
			if res.Feedback == "" {
				t.Fatal("expected a validation message")
			}
		})
	}
}

func TestLoginAcceptsAnyNonEmptyPair(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)

	res := r.Apply(r.Initial(), SubmitCredentials{Username: " nurse ", Password: "x"})
	if res.State.Phase() != PhaseNoPatientSelected || res.Feedback != "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.State.Username != "nurse" {
		t.Fatalf("expected trimmed username, got %q", res.State.Username)
	}
	if res.State.SelectedMetric != "Гемоглобин" {
		t.Fatalf("expected default metric, got %q", res.State.SelectedMetric)
	}
}

type denyAll struct{}

func (denyAll) Authenticate(_, _ string) bool { return false }

func TestLoginUsesProvider(t *testing.T) {
	t.Parallel()

	base := newTestReactor(t)
	r := New(base.Dataset(), denyAll{})

	res := r.Apply(r.Initial(), SubmitCredentials{Username: "doctor", Password: "secret"})
	if res.State.Authenticated || res.Feedback != RejectedCredentialsMessage {
		t.Fatalf("expected rejection, got %+v", res)
	}
}

func TestEventsIgnoredWhileLoggedOut(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)
	initial := r.Initial()

	for _, ev := range []Event{
		SelectPatient{Key: "1"},
		ActivateMetricCard{Key: MetricCardKey{Metric: "Гемоглобин"}},
		Logout{},
	} {
		if res := r.Apply(initial, ev); !reflect.DeepEqual(res.State, initial) {
			t.Fatalf("expected %T to be ignored, got %+v", ev, res.State)
		}
	}
}

func TestSelectPatientTransitions(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)
	s := withPatient(t, r, "1")

	same := r.Apply(s, SelectPatient{Key: "1"})
	if !reflect.DeepEqual(same.State, s) {
		t.Fatal("selecting the same patient must not change state")
	}

	cleared := r.Apply(s, SelectPatient{})
	if cleared.State.Phase() != PhaseNoPatientSelected {
		t.Fatalf("expected no patient selected, got %v", cleared.State.Phase())
	}

	unknown := r.Apply(s, SelectPatient{Key: "404"})
	if unknown.State.Phase() != PhaseNoPatientSelected || unknown.Feedback != labdata.EmptyPatientMessage {
		t.Fatalf("expected empty-state notice, got %+v", unknown)
	}

	other := r.Apply(s, SelectPatient{Key: "2"})
	if other.State.PatientKey != "2" {
		t.Fatalf("expected patient 2, got %q", other.State.PatientKey)
	}
}

func TestActivateMetricCard(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)
	s := withPatient(t, r, "1")

	absent := r.Apply(s, ActivateMetricCard{Key: MetricCardKey{Metric: "Белок"}})
	if absent.State.SelectedMetric != s.SelectedMetric {
		t.Fatalf("metric outside the distribution source must be a no-op, got %q", absent.State.SelectedMetric)
	}

	present := r.Apply(s, ActivateMetricCard{Key: MetricCardKey{Metric: "Пол"}})
	if present.State.SelectedMetric != "Пол" {
		t.Fatalf("expected metric to change, got %q", present.State.SelectedMetric)
	}

	again := r.Apply(present.State, ActivateMetricCard{Key: MetricCardKey{Metric: "Пол"}})
	if !reflect.DeepEqual(again.State, present.State) {
		t.Fatal("re-delivering the same activation must not change state")
	}
}

func TestGaugeToggle(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)
	s := withPatient(t, r, "1")

	key := GaugeToggleKey{Row: bloodCSV + "-0", Metric: "Гемоглобин", Source: bloodCSV}
	other := GaugeToggleKey{Row: bloodCSV + "-1", Metric: "Гемоглобин", Source: bloodCSV}

	opened := r.Apply(s, ActivateGaugeToggle{Key: key, Clicks: 1}).State
	if !opened.Expanded(key) || opened.Expanded(other) {
		t.Fatalf("expected only %v to be expanded, got %+v", key, opened.Toggles)
	}
	if s.Toggles != nil {
		t.Fatal("Apply must not modify its input state")
	}

	duplicate := r.Apply(opened, ActivateGaugeToggle{Key: key, Clicks: 1}).State
	if !reflect.DeepEqual(duplicate, opened) {
		t.Fatal("duplicate delivery must be a no-op")
	}

	closed := r.Apply(opened, ActivateGaugeToggle{Key: key, Clicks: 2}).State
	if closed.Expanded(key) {
		t.Fatal("expected toggle to collapse on the second click")
	}

	flipped := r.Apply(closed, ActivateGaugeToggle{Key: key}).State
	if !flipped.Expanded(key) {
		t.Fatal("expected a click without a count to flip the toggle")
	}

	foreign := GaugeToggleKey{Row: bloodCSV + "-2", Metric: "Гемоглобин", Source: bloodCSV}
	if res := r.Apply(s, ActivateGaugeToggle{Key: foreign, Clicks: 1}); res.State.Expanded(foreign) {
		t.Fatal("toggles for another patient's rows must be ignored")
	}

	urine := GaugeToggleKey{Row: urineCSV + "-0", Metric: "Гемоглобин", Source: urineCSV}
	if res := r.Apply(s, ActivateGaugeToggle{Key: urine, Clicks: 1}); res.State.Expanded(urine) {
		t.Fatal("toggles outside gauge sources must be ignored")
	}
}

func TestSelectingPatientClearsToggles(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)
	s := withPatient(t, r, "1")

	key := GaugeToggleKey{Row: bloodCSV + "-0", Metric: "Гемоглобин", Source: bloodCSV}
	s = r.Apply(s, ActivateGaugeToggle{Key: key, Clicks: 1}).State

	cleared := r.Apply(s, SelectPatient{}).State
	if len(cleared.Toggles) != 0 {
		t.Fatalf("expected toggles to be cleared, got %+v", cleared.Toggles)
	}
}

func TestLogoutKeepsSessionData(t *testing.T) {
	t.Parallel()

	r := newTestReactor(t)
	s := withPatient(t, r, "1")

	out := r.Apply(s, Logout{}).State
	if out.Phase() != PhaseLoggedOut || out.Username != "" {
		t.Fatalf("expected logged out state, got %+v", out)
	}
	if out.SelectedMetric != s.SelectedMetric {
		t.Fatal("logout must only clear authentication")
	}
}
