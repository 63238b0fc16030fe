/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// FileSource enumerates and opens tabular files by name.
type FileSource interface {
	List(ctx context.Context) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirSource reads files from the top level of a filesystem.
type DirSource struct {
	FS fs.FS
}

// NewDirSource returns a DirSource rooted at dir on the local disk.
func NewDirSource(dir string) DirSource {
	return DirSource{FS: os.DirFS(dir)}
}

// List returns the names of regular files in the root directory.
func (d DirSource) List(_ context.Context) ([]string, error) {
	entries, err := fs.ReadDir(d.FS, ".")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names, nil
}

// Open opens a file by name.
func (d DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return d.FS.Open(name)
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatDelimited
	formatSpreadsheet
)

// detectFormat picks a parser from the file extension. Hidden files and
// spreadsheet lock files are ignored.
func detectFormat(name string) fileFormat {
	base := path.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return formatUnknown
	}

	switch strings.ToLower(path.Ext(base)) {
	case ".csv", ".txt":
		return formatDelimited
	case ".xlsx":
		return formatSpreadsheet
	default:
		return formatUnknown
	}
}
