// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLoginAuditTrail(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()

	events := []LoginEvent{
		{Username: "doctor", Outcome: LoginRejected, IP: "192.0.2.10", UserAgent: "curl/8.0"},
		{Username: "doctor", Outcome: LoginAccepted, IP: "192.0.2.10", UserAgent: "curl/8.0"},
		{Username: "doctor", Outcome: LoggedOut, IP: "192.0.2.11"},
	}

	for _, ev := range events {
		if err := RecordLoginEvent(ctx, ev); err != nil {
			t.Fatalf("RecordLoginEvent failed: %v", err)
		}
		// created_at comes from NOW(); keep the timestamps apart.
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := RecentLoginEvents(ctx, 10)
	if err != nil {
		t.Fatalf("RecentLoginEvents failed: %v", err)
	}
	if len(recent) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(recent))
	}

	wantOrder := []LoginOutcome{LoggedOut, LoginAccepted, LoginRejected}
	for i, ev := range recent {
		if ev.Outcome != wantOrder[i] {
			t.Fatalf("event %d: expected outcome %q, got %q", i, wantOrder[i], ev.Outcome)
		}
		if ev.ID == uuid.Nil {
			t.Fatalf("event %d: expected a generated ID", i)
		}
		if ev.CreatedAt.IsZero() {
			t.Fatalf("event %d: expected a timestamp", i)
		}
	}

	if recent[0].IP != "192.0.2.11" || recent[0].UserAgent != "" {
		t.Fatalf("unexpected newest event %+v", recent[0])
	}
	if recent[2].UserAgent != "curl/8.0" {
		t.Fatalf("expected user agent to be kept, got %q", recent[2].UserAgent)
	}

	limited, err := RecentLoginEvents(ctx, 1)
	if err != nil {
		t.Fatalf("RecentLoginEvents failed: %v", err)
	}
	if len(limited) != 1 || limited[0].Outcome != LoggedOut {
		t.Fatalf("expected only the newest event, got %+v", limited)
	}
}

func TestRecordLoginEventKeepsExplicitID(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()

	id := uuid.New()
	if err := RecordLoginEvent(ctx, LoginEvent{ID: id, Username: "nurse", Outcome: LoginInvalid}); err != nil {
		t.Fatalf("RecordLoginEvent failed: %v", err)
	}

	recent, err := RecentLoginEvents(ctx, 5)
	if err != nil {
		t.Fatalf("RecentLoginEvents failed: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != id || recent[0].Username != "nurse" {
		t.Fatalf("unexpected events %+v", recent)
	}
}
