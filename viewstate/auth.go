/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package viewstate

// AuthenticationProvider verifies a non-empty username and password pair.
type AuthenticationProvider interface {
	Authenticate(username, password string) bool
}

// PlaceholderProvider accepts every pair. Credentials are not verified
// anywhere; deployments that need real checks supply their own provider.
type PlaceholderProvider struct{}

// Authenticate always succeeds.
func (PlaceholderProvider) Authenticate(_, _ string) bool {
	return true
}
