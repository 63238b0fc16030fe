// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package labdata

import (
	"errors"
	"testing"
)

func TestNewDatasetRequiresPrimarySource(t *testing.T) {
	t.Parallel()

	_, err := NewDataset([]ParsedSource{urineSource([]string{"1", "2020-01-01", "Анна", "Ж", "0.1", "negative"})}, DefaultConfig())
	if !errors.Is(err, ErrPrimarySourceMissing) {
		t.Fatalf("expected ErrPrimarySourceMissing, got %v", err)
	}

	_, err = NewDataset(nil, DefaultConfig())
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
}

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	d := mustDataset(t, DefaultConfig(), bloodSource(
		[]string{"1", "2020-02-02", "Анна", "Ж", "30", "13.2", "12", "16", "4.4"},
	))
	if got := d.DefaultMetric(); got != "Гемоглобин" {
		t.Fatalf("expected preferred metric, got %q", got)
	}

	cfg := DefaultConfig()
	cfg.Profile.PreferredMetrics = nil

	fallback := mustDataset(t, cfg, ParsedSource{
		Name:    bloodCSV,
		Columns: []string{"ID", "Пол", "Возраст", "Комментарий", "Глюкоза"},
		Records: [][]string{{"1", "Ж", "30", "ок", "5.1"}},
	})
	if got := fallback.DefaultMetric(); got != "Глюкоза" {
		t.Fatalf("expected first numeric measurement column, got %q", got)
	}

	none := mustDataset(t, cfg, ParsedSource{
		Name:    bloodCSV,
		Columns: []string{"ID", "Комментарий"},
		Records: [][]string{{"1", "ок"}},
	})
	if got := none.DefaultMetric(); got != "" {
		t.Fatalf("expected no default metric, got %q", got)
	}
}

func TestPatientOptions(t *testing.T) {
	t.Parallel()

	d := mustDataset(t, DefaultConfig(), bloodSource(
		[]string{"1", "2020-02-02", "Анна", "Ж", "30", "13.2", "12", "16", "4.4"},
		[]string{"", "2020-02-02", "Мария", "ж", "30.0", "12.9", "12", "16", "4.1"},
		[]string{"1", "2020-03-03", "Анна", "Ж", "30", "14.1", "12", "16", "4.5"},
	))

	options := d.PatientOptions()
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %+v", options)
	}

	if options[0].Key != "1" || options[0].Label != "Пациент: ID 1" {
		t.Fatalf("unexpected explicit option %+v", options[0])
	}
	if options[1].Key != SynthesizeKey("30", "ж") || options[1].Label != "Пациент: возраст 30, пол Ж" {
		t.Fatalf("unexpected synthesized option %+v", options[1])
	}

	if !d.HasPatient(options[1].Key) {
		t.Fatal("expected synthesized key to resolve")
	}
}

func TestParseAggregation(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Aggregation{"": AggregateAll, "ALL": AggregateAll, " latest ": AggregateLatest} {
		got, err := ParseAggregation(input)
		if err != nil || got != want {
			t.Fatalf("ParseAggregation(%q) = %q, %v", input, got, err)
		}
	}

	if _, err := ParseAggregation("mean"); !errors.Is(err, ErrInvalidAggregation) {
		t.Fatalf("expected ErrInvalidAggregation, got %v", err)
	}
}

func TestDistribution(t *testing.T) {
	t.Parallel()

	d := twoPanelDataset(t, DefaultConfig())

	dist := d.Distribution("Гемоглобин")
	if !dist.Available {
		t.Fatal("expected distribution to be available")
	}
	if dist.Title != "Distribution of Гемоглобин by Пол" || dist.Header != "Boxplot: Гемоглобин" {
		t.Fatalf("unexpected titles %q / %q", dist.Title, dist.Header)
	}
	if len(dist.Groups) != 2 || dist.Groups[0].Label != "Ж" || len(dist.Groups[0].Values) != 2 {
		t.Fatalf("unexpected groups %+v", dist.Groups)
	}

	unavailable := d.Distribution("Белок")
	if unavailable.Available || unavailable.Title != MetricUnavailableTitle {
		t.Fatalf("expected placeholder for non-primary column, got %+v", unavailable)
	}
}

func TestScatter(t *testing.T) {
	t.Parallel()

	d := twoPanelDataset(t, DefaultConfig())

	data := d.Scatter()
	if !data.Available || len(data.Series) != 2 {
		t.Fatalf("expected two scatter series, got %+v", data)
	}
	if data.Series[1].Label != "М" || data.Series[1].Points[0].Size != 40 {
		t.Fatalf("unexpected series %+v", data.Series[1])
	}

	missing := mustDataset(t, DefaultConfig(), ParsedSource{
		Name:    bloodCSV,
		Columns: []string{"ID", "Гемоглобин"},
		Records: [][]string{{"1", "13"}},
	})
	if got := missing.Scatter(); got.Available || got.Title != ScatterMissingTitle {
		t.Fatalf("expected scatter placeholder, got %+v", got)
	}
}
