/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LoginOutcome classifies a login attempt.
type LoginOutcome string

const (
	LoginAccepted LoginOutcome = "accepted"
	LoginRejected LoginOutcome = "rejected"
	LoginInvalid  LoginOutcome = "invalid"
	LoggedOut     LoginOutcome = "logout"
)

// LoginEvent is one entry of the login audit trail.
type LoginEvent struct {
	ID        uuid.UUID
	Username  string
	Outcome   LoginOutcome
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// RecordLoginEvent appends ev to the audit trail. It is a no-op without a
// database connection.
func RecordLoginEvent(ctx context.Context, ev LoginEvent) error {
	if pool == nil {
		return nil
	}

	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO login_events (id, username, outcome, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.Username, string(ev.Outcome), ev.IP, ev.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to record login event: %w", err)
	}

	return nil
}

// RecentLoginEvents returns up to limit events, newest first.
func RecentLoginEvents(ctx context.Context, limit int) ([]LoginEvent, error) {
	if pool == nil {
		return nil, ErrDatabaseNotInitialized
	}

	rows, err := pool.Query(ctx,
		`SELECT id, username, outcome, ip, user_agent, created_at
		FROM login_events ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query login events: %w", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LoginEvent, error) {
		var ev LoginEvent
		var outcome string
		err := row.Scan(&ev.ID, &ev.Username, &outcome, &ev.IP, &ev.UserAgent, &ev.CreatedAt)
		ev.Outcome = LoginOutcome(outcome)
		return ev, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan login events: %w", err)
	}

	return events, nil
}
