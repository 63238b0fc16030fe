/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plots

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
)

// chartNamespace seeds deterministic chart IDs so re-rendering the same
// figure yields identical markup.
var chartNamespace = uuid.MustParse("6f1c5a8e-3b5d-4c2a-9e47-1d2f0b7a9c31")

const (
	defaultWidth  = "100%"
	defaultHeight = "360px"

	boundColor = "#d62728"
)

// Figure is a rendered chart, or a title-only placeholder when there was
// nothing to draw.
type Figure struct {
	ID          string
	Title       string
	Placeholder bool
	HTML        template.HTML
}

func placeholder(id, title string) Figure {
	return Figure{ID: id, Title: title, Placeholder: true}
}

// ChartID returns a stable element ID for a chart. The result is a valid
// JavaScript identifier, which go-echarts requires.
func ChartID(kind string, parts ...string) string {
	name := kind + "\x1f" + strings.Join(parts, "\x1f")
	id := uuid.NewSHA1(chartNamespace, []byte(name))

	return kind + "_" + strings.ReplaceAll(id.String(), "-", "")
}

func initOpts(id string) opts.Initialization {
	return opts.Initialization{
		ChartID: id,
		Width:   defaultWidth,
		Height:  defaultHeight,
	}
}

type renderer interface {
	Render(w io.Writer) error
}

func render(id, title string, chart renderer) (Figure, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return Figure{}, fmt.Errorf("failed to render %s: %w", id, err)
	}

	return Figure{ID: id, Title: title, HTML: template.HTML(buf.String())}, nil //nolint:gosec // Markup is produced by go-echarts.
}
