/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPrimarySource is the panel file backing the distribution plot.
const DefaultPrimarySource = "анализ_крови.csv"

// Aggregation selects which of a patient's rows are shown per source.
type Aggregation string

const (
	// AggregateAll shows every record, most recent first.
	AggregateAll Aggregation = "all"
	// AggregateLatest shows only the most recent record by date, or the
	// last one in the file when no date is available.
	AggregateLatest Aggregation = "latest"
)

// ParseAggregation validates an aggregation rule name.
func ParseAggregation(s string) (Aggregation, error) {
	switch Aggregation(strings.ToLower(strings.TrimSpace(s))) {
	case "", AggregateAll:
		return AggregateAll, nil
	case AggregateLatest:
		return AggregateLatest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAggregation, s)
	}
}

// Config controls how a Dataset is assembled.
type Config struct {
	Loader        LoaderOptions
	Profile       Profile
	PrimarySource string
	Aggregation   Aggregation
}

// DefaultConfig returns the configuration for the standard lab exports.
func DefaultConfig() Config {
	return Config{
		Loader:        LoaderOptions{Delimiters: DefaultDelimiterRules()},
		Profile:       DefaultProfile(),
		PrimarySource: DefaultPrimarySource,
		Aggregation:   AggregateAll,
	}
}

// PatientOption is one entry of the patient picker.
type PatientOption struct {
	Key   PatientKey
	Label string
}

// Dataset is the immutable application context built once at startup and
// shared read-only by every session.
type Dataset struct {
	table         *Table
	profile       Profile
	primary       string
	aggregation   Aggregation
	defaultMetric string
	options       []PatientOption
}

// LoadDataset loads every source from src and assembles a Dataset.
func LoadDataset(ctx context.Context, src FileSource, cfg Config) (*Dataset, error) {
	sources, err := NewLoader(cfg.Loader).Load(ctx, src)
	if err != nil {
		return nil, err
	}

	return NewDataset(sources, cfg)
}

// NewDataset merges parsed sources. The primary source must be among them.
func NewDataset(sources []ParsedSource, cfg Config) (*Dataset, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	if cfg.PrimarySource == "" {
		cfg.PrimarySource = DefaultPrimarySource
	}
	if cfg.Aggregation == "" {
		cfg.Aggregation = AggregateAll
	}

	table := Merge(sources, NewKeyResolver(cfg.Profile))
	if _, ok := table.Columns(cfg.PrimarySource); !ok {
		return nil, fmt.Errorf("%w: %s", ErrPrimarySourceMissing, cfg.PrimarySource)
	}

	d := &Dataset{
		table:       table,
		profile:     cfg.Profile,
		primary:     cfg.PrimarySource,
		aggregation: cfg.Aggregation,
	}
	d.defaultMetric = d.pickDefaultMetric()
	d.options = d.buildPatientOptions()

	return d, nil
}

// Table returns the merged table.
func (d *Dataset) Table() *Table {
	return d.table
}

// Profile returns the column profile.
func (d *Dataset) Profile() Profile {
	return d.profile
}

// PrimarySource returns the distribution-plot source name.
func (d *Dataset) PrimarySource() string {
	return d.primary
}

// Aggregation returns the per-source row aggregation rule.
func (d *Dataset) Aggregation() Aggregation {
	return d.aggregation
}

// DefaultMetric returns the initial distribution-plot metric; empty when
// the primary source has no usable column.
func (d *Dataset) DefaultMetric() string {
	return d.defaultMetric
}

// PatientOptions returns the patient picker entries.
func (d *Dataset) PatientOptions() []PatientOption {
	return slices.Clone(d.options)
}

// HasPatient reports whether key resolves to any row.
func (d *Dataset) HasPatient(key PatientKey) bool {
	return d.table.HasPatient(key)
}

// IsDistributionMetric reports whether metric is a column of the primary source.
func (d *Dataset) IsDistributionMetric(metric string) bool {
	return metric != "" && d.table.HasColumn(d.primary, metric)
}

func (d *Dataset) pickDefaultMetric() string {
	columns, _ := d.table.Columns(d.primary)

	for _, metric := range d.profile.PreferredMetrics {
		if slices.Contains(columns, metric) {
			return metric
		}
	}

	rows := d.table.SourceRows(d.primary)
	for _, column := range columns {
		if d.profile.isIdentityColumn(column) || slices.Contains(d.profile.AgeColumns, column) {
			continue
		}
		if isNumericColumn(rows, column) {
			return column
		}
	}

	return ""
}

func isNumericColumn(rows []Row, column string) bool {
	seen := false
	for _, row := range rows {
		v := row.Value(column)
		if !v.Present() {
			continue
		}
		if _, ok := v.Float(); !ok {
			return false
		}
		seen = true
	}
	return seen
}

func (d *Dataset) buildPatientOptions() []PatientOption {
	title := cases.Title(language.Russian)
	keys := d.table.Keys()
	options := make([]PatientOption, 0, len(keys))

	for _, key := range keys {
		age, gender, synthesized := key.Parts()
		if !synthesized {
			options = append(options, PatientOption{Key: key, Label: "Пациент: ID " + string(key)})
			continue
		}

		if age == "" {
			age = MissingDisplay
		}
		if gender == "" {
			gender = MissingDisplay
		} else {
			gender = title.String(gender)
		}

		options = append(options, PatientOption{
			Key:   key,
			Label: fmt.Sprintf("Пациент: возраст %s, пол %s", age, gender),
		})
	}

	return options
}
