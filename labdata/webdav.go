/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-webdav"
)

// WebDAVConfig describes a remote collection holding lab exports.
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// WebDAVSource lists and downloads lab exports from a WebDAV collection.
type WebDAVSource struct {
	client *webdav.Client
}

type basicAuthTransport struct {
	Username string
	Password string
	Base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.Username, t.Password)
	return t.Base.RoundTrip(req)
}

// NewWebDAVSource creates a source for the collection at config.URL.
func NewWebDAVSource(config WebDAVConfig) (*WebDAVSource, error) {
	if strings.TrimSpace(config.URL) == "" {
		return nil, errWebDAVURLRequired
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if config.Username != "" && config.Password != "" {
		transport = &basicAuthTransport{
			Username: config.Username,
			Password: config.Password,
			Base:     http.DefaultTransport,
		}
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	client, err := webdav.NewClient(httpClient, strings.TrimSuffix(config.URL, "/")+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to create WebDAV client: %w", err)
	}

	return &WebDAVSource{client: client}, nil
}

// List returns the file names directly inside the collection.
func (w *WebDAVSource) List(ctx context.Context) ([]string, error) {
	infos, err := w.client.ReadDir(ctx, ".", false)
	if err != nil {
		return nil, fmt.Errorf("failed to list WebDAV collection: %w", err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir {
			continue
		}
		names = append(names, path.Base(strings.TrimSuffix(info.Path, "/")))
	}

	sort.Strings(names)

	return names, nil
}

// Open downloads a file from the collection.
func (w *WebDAVSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := w.client.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}

	return rc, nil
}
