/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/humaidq/labdash/logging"
	"github.com/humaidq/labdash/viewstate"
)

var (
	logger        = logging.Logger(logging.SourceApp)
	requestLogger = logging.Logger(logging.SourceWebRequest)
)

// RequestLogger logs method, path, status and timing of every request.
func RequestLogger(c flamego.Context, s session.Session) {
	start := time.Now()

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	fields := []interface{}{
		"event", "request",
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	fields = append(fields, baseRequestFields(c, s)...)

	requestLogger.Info("request", fields...)
}

func logAccessDenied(c flamego.Context, s session.Session, reason string, redirect string) {
	fields := []interface{}{
		"event", "access_denied",
		"reason", reason,
		"redirect", redirect,
	}
	fields = append(fields, baseRequestFields(c, s)...)

	requestLogger.Warn("access denied", fields...)
}

func baseRequestFields(c flamego.Context, s session.Session) []interface{} {
	authenticated, username := sessionAuthInfo(s)

	fields := []interface{}{
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", clientIP(c),
		"user_agent", c.Request().UserAgent(),
		"authenticated", authenticated,
	}
	if username != "" {
		fields = append(fields, "username", username)
	}

	return fields
}

func sessionAuthInfo(s session.Session) (bool, string) {
	st, ok := s.Get(viewStateKey).(viewstate.State)
	if !ok || !st.Authenticated {
		return false, ""
	}

	return true, st.Username
}

func clientIP(c flamego.Context) string {
	forwardedFor := c.Request().Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		if idx := strings.Index(forwardedFor, ","); idx != -1 {
			forwardedFor = forwardedFor[:idx]
		}

		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}

	return c.RemoteAddr()
}
