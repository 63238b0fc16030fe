// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package labdata

import (
	"math"
	"testing"
)

const (
	bloodCSV = "анализ_крови.csv"
	urineCSV = "анализ_мочи.csv"
)

func bloodSource(records ...[]string) ParsedSource {
	return ParsedSource{
		Name: bloodCSV,
		Columns: []string{
			"ID", "Дата", "Имя", "Пол", "Возраст",
			"Гемоглобин", "Гемоглобин мин норма", "Гемоглобин макс норма",
			"Эритроциты",
		},
		Records: records,
	}
}

func urineSource(records ...[]string) ParsedSource {
	return ParsedSource{
		Name:    urineCSV,
		Columns: []string{"ID", "Дата", "Имя", "Пол", "Белок", "Диагноз"},
		Records: records,
	}
}

func mustDataset(t *testing.T, cfg Config, sources ...ParsedSource) *Dataset {
	t.Helper()

	d, err := NewDataset(sources, cfg)
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}

	return d
}

func assertFloatClose(t *testing.T, got, want float64) {
	t.Helper()

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
