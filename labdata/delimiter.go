/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// DelimiterRule selects a delimiter for files whose base name matches Pattern.
type DelimiterRule struct {
	Pattern   string
	Delimiter rune
}

// DelimiterRules is an ordered rule list; the first match wins.
type DelimiterRules struct {
	Rules   []DelimiterRule
	Default rune
}

// DefaultDelimiterRules returns the rules for the known lab exports: the
// urine panel is exported with semicolons, everything else with commas.
func DefaultDelimiterRules() DelimiterRules {
	return DelimiterRules{
		Rules: []DelimiterRule{
			{Pattern: "анализ_мочи*", Delimiter: ';'},
		},
		Default: ',',
	}
}

// For returns the delimiter to use for the named file.
func (r DelimiterRules) For(name string) rune {
	base := path.Base(name)
	lower := strings.ToLower(base)

	for _, rule := range r.Rules {
		if ok, _ := path.Match(rule.Pattern, base); ok {
			return rule.Delimiter
		}
		if ok, _ := path.Match(strings.ToLower(rule.Pattern), lower); ok {
			return rule.Delimiter
		}
	}

	if r.Default == 0 {
		return ','
	}

	return r.Default
}

// ParseDelimiterRule parses "pattern=delimiter". The delimiter is a single
// character or one of the names tab, comma, semicolon, pipe.
func ParseDelimiterRule(s string) (DelimiterRule, error) {
	idx := strings.LastIndex(s, "=")
	if idx <= 0 || idx == len(s)-1 {
		return DelimiterRule{}, fmt.Errorf("%w: %q", ErrInvalidDelimiterRule, s)
	}

	pattern := strings.TrimSpace(s[:idx])
	if _, err := path.Match(pattern, ""); err != nil {
		return DelimiterRule{}, fmt.Errorf("%w: %q: %w", ErrInvalidDelimiterRule, s, err)
	}

	spec := s[idx+1:]
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "tab", `\t`:
		return DelimiterRule{Pattern: pattern, Delimiter: '\t'}, nil
	case "comma":
		return DelimiterRule{Pattern: pattern, Delimiter: ','}, nil
	case "semicolon":
		return DelimiterRule{Pattern: pattern, Delimiter: ';'}, nil
	case "pipe":
		return DelimiterRule{Pattern: pattern, Delimiter: '|'}, nil
	}

	if utf8.RuneCountInString(spec) != 1 {
		return DelimiterRule{}, fmt.Errorf("%w: %q", ErrInvalidDelimiterRule, s)
	}

	d, _ := utf8.DecodeRuneInString(spec)
	if d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError {
		return DelimiterRule{}, fmt.Errorf("%w: %q", ErrInvalidDelimiterRule, s)
	}

	return DelimiterRule{Pattern: pattern, Delimiter: d}, nil
}
