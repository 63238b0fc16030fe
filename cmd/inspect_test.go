// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/labdash/labdata"
	"github.com/humaidq/labdash/store"
)

func TestWriteDatasetSummaryListsSources(t *testing.T) {
	t.Parallel()

	d, err := labdata.NewDataset([]labdata.ParsedSource{
		{
			Name:    labdata.DefaultPrimarySource,
			Columns: []string{"ID", "Гемоглобин"},
			Records: [][]string{{"1", "135"}, {"2", "140"}},
		},
		{
			Name:    "анализ_мочи.csv",
			Columns: []string{"ID", "Белок"},
			Records: [][]string{{"1", "0"}},
		},
	}, labdata.DefaultConfig())
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	var out strings.Builder
	if err := writeDatasetSummary(&out, d); err != nil {
		t.Fatalf("writeDatasetSummary: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		labdata.DefaultPrimarySource,
		"Анализ мочи",
		"Default metric:",
		"Гемоглобин",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected summary to contain %q, got:\n%s", want, got)
		}
	}
}

func TestWriteLoginEvents(t *testing.T) {
	t.Parallel()

	events := []store.LoginEvent{{
		Username:  "doctor",
		Outcome:   store.LoginRejected,
		IP:        "192.0.2.10",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	var out strings.Builder
	if err := writeLoginEvents(&out, events, 3); err != nil {
		t.Fatalf("writeLoginEvents: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Active sessions:", "3", "doctor", "rejected", "2025-01-02 03:04:05"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

// Not parallel: the store keeps a package-wide pool.
func TestStoreReportOnFreshDatabase(t *testing.T) {
	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		t.Skip("DATABASE_URL is not set")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" {
		t.Skipf("DATABASE_URL is not a URL: %v", err)
	}

	ctx := context.Background()
	name := fmt.Sprintf("labdash_inspect_%d", time.Now().UnixNano())
	parsed.Path = "/" + name

	t.Cleanup(func() { dropDatabase(t, baseURL, name) })

	if err := openStore(ctx, parsed.String()); err != nil {
		t.Fatalf("openStore: %v", err)
	}
	t.Cleanup(store.Close)

	var out strings.Builder
	if err := writeStoreReport(ctx, &out, 5); err != nil {
		t.Fatalf("writeStoreReport on a fresh database: %v", err)
	}

	if !strings.Contains(out.String(), "Active sessions:") {
		t.Fatalf("expected session count in report, got:\n%s", out.String())
	}
}

func dropDatabase(t *testing.T, baseURL, name string) {
	t.Helper()

	ctx := context.Background()

	config, err := pgx.ParseConfig(baseURL)
	if err != nil {
		t.Errorf("failed to parse database url: %v", err)
		return
	}
	config.Database = "postgres"

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		t.Errorf("failed to connect to postgres database: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			t.Logf("failed to close connection: %v", err)
		}
	}()

	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{name}.Sanitize()); err != nil {
		t.Errorf("failed to drop database %s: %v", name, err)
	}
}
