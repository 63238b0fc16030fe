/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/humaidq/labdash/logging"
)

var loaderLogger = logging.Logger(logging.SourceLoader)

const defaultLoadWorkers = 4

// ParsedSource is one successfully parsed tabular file.
type ParsedSource struct {
	Name    string
	Columns []string
	Records [][]string
}

// LoaderOptions controls how files are parsed.
type LoaderOptions struct {
	Delimiters DelimiterRules
	// Workers bounds concurrent file parsing; 0 uses a small default.
	Workers int
}

// Loader parses every supported file of a FileSource.
type Loader struct {
	opts LoaderOptions
}

// NewLoader returns a Loader with the given options.
func NewLoader(opts LoaderOptions) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = defaultLoadWorkers
	}
	if opts.Delimiters.Default == 0 && len(opts.Delimiters.Rules) == 0 {
		opts.Delimiters = DefaultDelimiterRules()
	}

	return &Loader{opts: opts}
}

// Load parses all supported files in name order. Files that fail to parse
// are logged and skipped; ErrNoSources is returned only when nothing parsed.
func (l *Loader) Load(ctx context.Context, src FileSource) ([]ParsedSource, error) {
	names, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list sources: %w", ErrNoSources, err)
	}

	supported := make([]string, 0, len(names))
	for _, name := range names {
		if detectFormat(name) == formatUnknown {
			loaderLogger.Debug("skipping unsupported file", "file", name)
			continue
		}
		supported = append(supported, name)
	}

	results := make([]*ParsedSource, len(supported))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)

	for i, name := range supported {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			parsed, err := l.parseFile(gctx, src, name)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				loaderLogger.Warn("skipping unparseable source", "file", name, "error", err)
				return nil
			}

			results[i] = parsed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sources := make([]ParsedSource, 0, len(results))
	for _, parsed := range results {
		if parsed == nil {
			continue
		}
		loaderLogger.Info("loaded source", "file", parsed.Name, "columns", len(parsed.Columns), "rows", len(parsed.Records))
		sources = append(sources, *parsed)
	}

	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	return sources, nil
}

func (l *Loader) parseFile(ctx context.Context, src FileSource, name string) (*ParsedSource, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := rc.Close(); err != nil {
			loaderLogger.Warn("failed to close source", "file", name, "error", err)
		}
	}()

	var table [][]string

	switch detectFormat(name) {
	case formatDelimited:
		table, err = readDelimited(rc, l.opts.Delimiters.For(name))
	case formatSpreadsheet:
		table, err = readSpreadsheet(rc)
	default:
		err = errUnsupportedFormat
	}

	if err != nil {
		return nil, err
	}

	return newParsedSource(name, table)
}

func readDelimited(r io.Reader, delimiter rune) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	data, err = decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited text: %w", err)
	}

	return records, nil
}

func readSpreadsheet(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	defer func() {
		if err := book.Close(); err != nil {
			loaderLogger.Warn("failed to close workbook", "error", err)
		}
	}()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errWorkbookHasNoSheet
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

// newParsedSource splits a raw table into header and records. Blank header
// cells are named "Unnamed: N" and duplicates get a ".N" suffix.
func newParsedSource(name string, table [][]string) (*ParsedSource, error) {
	headerIdx := -1
	for i, record := range table {
		if !isBlankRecord(record) {
			headerIdx = i
			break
		}
	}

	if headerIdx == -1 {
		return nil, errMissingHeader
	}

	header := table[headerIdx]
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, raw := range header {
		column := strings.TrimSpace(raw)
		if column == "" {
			column = "Unnamed: " + strconv.Itoa(i)
		}

		if n, dup := seen[column]; dup {
			seen[column] = n + 1
			column = column + "." + strconv.Itoa(n+1)
		} else {
			seen[column] = 0
		}

		columns[i] = column
	}

	records := make([][]string, 0, len(table)-headerIdx-1)
	for _, record := range table[headerIdx+1:] {
		if isBlankRecord(record) {
			continue
		}
		records = append(records, record)
	}

	return &ParsedSource{Name: name, Columns: columns, Records: records}, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
