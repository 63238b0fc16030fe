/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp        = "app"
	SourceWebRequest = "web_request"
	SourceLoader     = "loader"
	SourceStore      = "store"
)

// Output formats accepted by Configure.
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
	FormatText   = "text"
)

var ErrUnknownFormat = errors.New("unknown log format")

var (
	initOnce   sync.Once
	mu         sync.Mutex
	baseLogger *log.Logger
	// Children copy level and formatter on creation, so every logger handed
	// out is tracked for Configure.
	issued []*log.Logger
)

// Init configures the base logger and stdlib log output.
func Init() {
	initOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stdout, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339Nano,
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})

		stdlog.SetFlags(0)
		stdlog.SetOutput(track(baseLogger.With("source", SourceApp)).
			StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer())
	})
}

func track(l *log.Logger) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	issued = append(issued, l)

	return l
}

// Logger returns a logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()
	return track(baseLogger.With("source", source))
}

// StdLogger returns a stdlib logger that writes through a source logger.
func StdLogger(source string) *stdlog.Logger {
	return Logger(source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}

// Configure sets the level and output format of every logger.
func Configure(level, format string) error {
	Init()

	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	formatter, err := parseFormat(format)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	for _, l := range append([]*log.Logger{baseLogger}, issued...) {
		l.SetLevel(lvl)
		l.SetFormatter(formatter)
	}

	return nil
}

func parseFormat(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatLogfmt:
		return log.LogfmtFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatText:
		return log.TextFormatter, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
