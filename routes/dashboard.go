/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labdash/labdata"
	"github.com/humaidq/labdash/store"
	"github.com/humaidq/labdash/viewstate"
)

// Dashboard renders the patient dashboard for the session's state.
func Dashboard(s session.Session, r *viewstate.Reactor, t template.Template, data template.Data) {
	view := r.View(loadState(s, r))

	data["Page"] = buildDashboardPage(r.Dataset(), view)
	data["PatientSelected"] = view.Phase == viewstate.PhasePatientSelected

	t.HTML(http.StatusOK, "dashboard")
}

// SelectPatient handles the patient picker.
func SelectPatient(c flamego.Context, s session.Session, r *viewstate.Reactor) {
	form, ok := parseForm(c, s)
	if !ok {
		return
	}

	dispatch(s, r, viewstate.SelectPatient{Key: labdata.PatientKey(form.Get("patient"))})
	c.Redirect("/", http.StatusSeeOther)
}

// ActivateMetric handles a metric card click.
func ActivateMetric(c flamego.Context, s session.Session, r *viewstate.Reactor) {
	form, ok := parseForm(c, s)
	if !ok {
		return
	}

	dispatch(s, r, viewstate.ActivateMetricCard{
		Key: viewstate.MetricCardKey{Metric: form.Get("metric")},
	})
	c.Redirect("/#distribution", http.StatusSeeOther)
}

// ToggleGauge handles a gauge history toggle.
func ToggleGauge(c flamego.Context, s session.Session, r *viewstate.Reactor) {
	form, ok := parseForm(c, s)
	if !ok {
		return
	}

	clicks, err := strconv.Atoi(strings.TrimSpace(form.Get("clicks")))
	if err != nil {
		clicks = 0
	}

	dispatch(s, r, viewstate.ActivateGaugeToggle{
		Key: viewstate.GaugeToggleKey{
			Row:    form.Get("row"),
			Metric: form.Get("metric"),
			Source: form.Get("source"),
		},
		Clicks: clicks,
	})
	c.Redirect("/", http.StatusSeeOther)
}

type healthResponse struct {
	Status   string `json:"status"`
	Sources  int    `json:"sources"`
	Rows     int    `json:"rows"`
	Patients int    `json:"patients"`
	Store    bool   `json:"store"`
	Sessions *int   `json:"sessions,omitempty"`
}

// Healthz reports liveness with a summary of the loaded dataset.
func Healthz(c flamego.Context, r *viewstate.Reactor) {
	table := r.Dataset().Table()

	resp := healthResponse{
		Status:   "ok",
		Sources:  len(table.Sources()),
		Rows:     table.Len(),
		Patients: len(table.Keys()),
		Store:    store.Enabled(),
	}

	if resp.Store {
		if n, err := store.CountActiveSessions(c.Request().Context()); err != nil {
			logger.Warn("Failed to count sessions", "error", err)
		} else {
			resp.Sessions = &n
		}
	}

	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(c.ResponseWriter()).Encode(resp); err != nil {
		logger.Warn("Failed to write health response", "error", err)
	}
}

func parseForm(c flamego.Context, s session.Session) (url.Values, bool) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Failed to parse form", "error", err, "path", c.Request().URL.Path)
		SetErrorFlash(s, msgFormParseFailed)
		c.Redirect("/", http.StatusSeeOther)
		return nil, false
	}

	return c.Request().Form, true
}
