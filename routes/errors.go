/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

// User-visible messages for request failures.
const (
	msgFormParseFailed = "Не удалось обработать форму."
	msgChartFailed     = "Не удалось построить график"
)
