/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labdash/store"
	"github.com/humaidq/labdash/viewstate"
)

// LoginForm renders the login page.
func LoginForm(c flamego.Context, s session.Session, r *viewstate.Reactor, t template.Template, data template.Data) {
	if loadState(s, r).Authenticated {
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	data["HeaderOnly"] = true
	t.HTML(http.StatusOK, "login")
}

// Login handles the login form submission.
func Login(c flamego.Context, s session.Session, r *viewstate.Reactor) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Failed to parse login form", "error", err)
		SetErrorFlash(s, msgFormParseFailed)
		c.Redirect("/login", http.StatusSeeOther)
		return
	}

	form := c.Request().Form
	username := strings.TrimSpace(form.Get("username"))

	res := dispatch(s, r, viewstate.SubmitCredentials{
		Username: username,
		Password: form.Get("password"),
	})

	switch {
	case res.State.Authenticated:
		recordLogin(c, username, store.LoginAccepted)
	case res.Feedback == viewstate.MissingCredentialsMessage:
		recordLogin(c, username, store.LoginInvalid)
	default:
		recordLogin(c, username, store.LoginRejected)
	}

	if !res.State.Authenticated {
		c.Redirect("/login", http.StatusSeeOther)
		return
	}

	if err := s.RegenerateID(c.ResponseWriter(), c.Request().Request); err != nil {
		logger.Warn("Failed to regenerate session ID", "error", err)
	}

	c.Redirect("/", http.StatusSeeOther)
}

// Logout ends the authenticated session. The rest of the session state is
// kept.
func Logout(c flamego.Context, s session.Session, r *viewstate.Reactor) {
	username := loadState(s, r).Username

	dispatch(s, r, viewstate.Logout{})

	if username != "" {
		recordLogin(c, username, store.LoggedOut)
	}

	c.Redirect("/login", http.StatusSeeOther)
}

// RequireAuth redirects sessions that are not logged in to the login page.
func RequireAuth(c flamego.Context, s session.Session, r *viewstate.Reactor) {
	if !loadState(s, r).Authenticated {
		logAccessDenied(c, s, "unauthenticated", "/login")
		c.Redirect("/login", http.StatusSeeOther)
		return
	}

	c.Next()
}

func recordLogin(c flamego.Context, username string, outcome store.LoginOutcome) {
	err := store.RecordLoginEvent(c.Request().Context(), store.LoginEvent{
		Username:  username,
		Outcome:   outcome,
		IP:        clientIP(c),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		logger.Warn("Failed to record login event", "error", err, "outcome", outcome)
	}
}
