/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package store

import "errors"

var (
	// ErrDatabaseURLRequired is returned when no connection string was given.
	ErrDatabaseURLRequired = errors.New("database URL is required")
	// ErrDatabaseNameNotSpecified is returned when the URL names no database.
	ErrDatabaseNameNotSpecified = errors.New("database name not specified in URL")
	// ErrDatabaseNotInitialized is returned when the pool is used before Init.
	ErrDatabaseNotInitialized = errors.New("database connection not initialized")

	errInvalidSessionConfig = errors.New("invalid PostgresSessionConfig")
)
