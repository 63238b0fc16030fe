/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"os"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/template"
)

const (
	defaultSiteTitle = "Лабораторные анализы"
	siteTitleEnvVar  = "LABDASH_TITLE"
)

// SiteTitleInjector sets the page title from LABDASH_TITLE.
func SiteTitleInjector() flamego.Handler {
	return func(data template.Data) {
		setSiteTitle(data)
	}
}

func setSiteTitle(data template.Data) {
	title := strings.TrimSpace(os.Getenv(siteTitleEnvVar))
	if title == "" {
		title = defaultSiteTitle
	}

	data["PageTitle"] = title
}
