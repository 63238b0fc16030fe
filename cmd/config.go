/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdash/labdata"
)

const defaultDataDir = "data"

// datasetFlags are shared by every command that loads lab sources.
func datasetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Sources: cli.EnvVars("DATA_DIR"),
			Usage:   "directory containing the lab result files (default \"" + defaultDataDir + "\")",
		},
		&cli.StringFlag{
			Name:    "webdav-url",
			Sources: cli.EnvVars("WEBDAV_URL"),
			Usage:   "WebDAV collection containing the lab result files",
		},
		&cli.StringFlag{
			Name:    "webdav-username",
			Sources: cli.EnvVars("WEBDAV_USERNAME"),
			Usage:   "WebDAV username",
		},
		&cli.StringFlag{
			Name:    "webdav-password",
			Sources: cli.EnvVars("WEBDAV_PASSWORD"),
			Usage:   "WebDAV password",
		},
		&cli.StringFlag{
			Name:    "primary-source",
			Value:   labdata.DefaultPrimarySource,
			Sources: cli.EnvVars("PRIMARY_SOURCE"),
			Usage:   "file backing the distribution and scatter plots",
		},
		&cli.StringSliceFlag{
			Name:    "delimiter",
			Sources: cli.EnvVars("DELIMITERS"),
			Usage:   "per-file delimiter rule pattern=delimiter, e.g. 'export_*=;' (repeatable)",
		},
		&cli.StringFlag{
			Name:    "aggregation",
			Value:   string(labdata.AggregateAll),
			Sources: cli.EnvVars("AGGREGATION"),
			Usage:   "records shown per source: all or latest",
		},
		&cli.IntFlag{
			Name:    "load-workers",
			Value:   4,
			Sources: cli.EnvVars("LOAD_WORKERS"),
			Usage:   "number of files parsed concurrently",
		},
	}
}

// datasetConfig builds the dataset configuration from flags.
func datasetConfig(cmd *cli.Command) (labdata.Config, error) {
	cfg := labdata.DefaultConfig()

	aggregation, err := labdata.ParseAggregation(cmd.String("aggregation"))
	if err != nil {
		return cfg, err
	}
	cfg.Aggregation = aggregation

	if primary := cmd.String("primary-source"); primary != "" {
		cfg.PrimarySource = primary
	}

	cfg.Loader.Workers = int(cmd.Int("load-workers"))

	// User rules take precedence over the built-in ones.
	var rules []labdata.DelimiterRule
	for _, raw := range cmd.StringSlice("delimiter") {
		rule, err := labdata.ParseDelimiterRule(raw)
		if err != nil {
			return cfg, err
		}
		rules = append(rules, rule)
	}
	cfg.Loader.Delimiters.Rules = append(rules, cfg.Loader.Delimiters.Rules...)

	return cfg, nil
}

// fileSource selects a local directory or a WebDAV collection.
func fileSource(cmd *cli.Command) (labdata.FileSource, string, error) {
	dir := cmd.String("data-dir")
	webdavURL := cmd.String("webdav-url")

	if dir != "" && webdavURL != "" {
		return nil, "", errConflictingSources
	}

	if webdavURL != "" {
		src, err := labdata.NewWebDAVSource(labdata.WebDAVConfig{
			URL:      webdavURL,
			Username: cmd.String("webdav-username"),
			Password: cmd.String("webdav-password"),
			Timeout:  30 * time.Second,
		})
		if err != nil {
			return nil, "", err
		}
		return src, webdavURL, nil
	}

	if dir == "" {
		dir = defaultDataDir
	}

	return labdata.NewDirSource(dir), dir, nil
}

// loadDataset loads and merges the configured lab sources.
func loadDataset(ctx context.Context, cmd *cli.Command) (*labdata.Dataset, error) {
	cfg, err := datasetConfig(cmd)
	if err != nil {
		return nil, err
	}

	src, location, err := fileSource(cmd)
	if err != nil {
		return nil, err
	}

	appLogger.Info("Loading lab sources", "location", location, "aggregation", cfg.Aggregation)

	d, err := labdata.LoadDataset(ctx, src, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load lab sources from %s: %w", location, err)
	}

	table := d.Table()
	appLogger.Info("Dataset ready",
		"sources", len(table.Sources()),
		"rows", table.Len(),
		"patients", len(table.Keys()),
		"default_metric", d.DefaultMetric(),
	)

	return d, nil
}
