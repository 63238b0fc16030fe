/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import "errors"

var (
	// ErrNoSources is returned when not a single tabular file could be parsed.
	ErrNoSources = errors.New("no tabular sources could be parsed")
	// ErrPrimarySourceMissing is returned when the distribution panel file is absent.
	ErrPrimarySourceMissing = errors.New("primary panel source is missing")
	// ErrInvalidAggregation is returned for an unknown aggregation rule name.
	ErrInvalidAggregation = errors.New("aggregation must be one of: all, latest")
	// ErrInvalidDelimiterRule is returned for a malformed pattern=delimiter rule.
	ErrInvalidDelimiterRule = errors.New("delimiter rule must look like pattern=delimiter")

	errMissingHeader      = errors.New("missing header row")
	errUnsupportedFormat  = errors.New("unsupported file format")
	errWorkbookHasNoSheet = errors.New("workbook has no sheets")
	errWebDAVURLRequired  = errors.New("webdav url is required")
)
