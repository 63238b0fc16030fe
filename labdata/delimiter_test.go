// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package labdata

import (
	"errors"
	"testing"
)

func TestDefaultDelimiterRules(t *testing.T) {
	t.Parallel()

	rules := DefaultDelimiterRules()

	if got := rules.For("анализ_мочи.csv"); got != ';' {
		t.Fatalf("expected semicolon for urine panel, got %q", got)
	}
	if got := rules.For("data/анализ_крови.csv"); got != ',' {
		t.Fatalf("expected comma for blood panel, got %q", got)
	}
}

func TestParseDelimiterRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    DelimiterRule
		wantErr bool
	}{
		{input: "*.tsv=tab", want: DelimiterRule{Pattern: "*.tsv", Delimiter: '\t'}},
		{input: "export_*=;", want: DelimiterRule{Pattern: "export_*", Delimiter: ';'}},
		{input: "a=b=|", want: DelimiterRule{Pattern: "a=b", Delimiter: '|'}},
		{input: "x=semicolon", want: DelimiterRule{Pattern: "x", Delimiter: ';'}},
		{input: "=;", wantErr: true},
		{input: "x=", wantErr: true},
		{input: "x=ab", wantErr: true},
		{input: "x=\"", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDelimiterRule(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDelimiterRule) {
					t.Fatalf("expected ErrInvalidDelimiterRule, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
