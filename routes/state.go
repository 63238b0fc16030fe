/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/flamego/session"

	"github.com/humaidq/labdash/viewstate"
)

const viewStateKey = "view_state"

// loadState returns the session's view state, or a fresh one.
func loadState(s session.Session, r *viewstate.Reactor) viewstate.State {
	if st, ok := s.Get(viewStateKey).(viewstate.State); ok {
		return st
	}
	return r.Initial()
}

// dispatch applies ev to the session's state and stores the result.
// Feedback is queued as a flash message.
func dispatch(s session.Session, r *viewstate.Reactor, ev viewstate.Event) viewstate.Result {
	res := r.Apply(loadState(s, r), ev)
	s.Set(viewStateKey, res.State)

	if res.Feedback != "" {
		SetWarningFlash(s, res.Feedback)
	}

	return res
}
