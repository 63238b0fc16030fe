/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdash/labdata"
	"github.com/humaidq/labdash/routes"
	"github.com/humaidq/labdash/static"
	"github.com/humaidq/labdash/store"
	"github.com/humaidq/labdash/templates"
	"github.com/humaidq/labdash/viewstate"
)

const shutdownTimeout = 10 * time.Second

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Load the lab sources and start the web server",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "optional PostgreSQL connection string for sessions and the login audit trail",
		},
		&cli.StringFlag{
			Name:    "csrf-secret",
			Sources: cli.EnvVars("CSRF_SECRET"),
			Usage:   "secret for CSRF tokens; a random one is generated when empty",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "serve templates and static files from disk and show panic details",
		},
	}, datasetFlags()...),
	Action: start,
}

type serverOptions struct {
	Dev        bool
	CSRFSecret string
	Session    session.Options
}

func start(ctx context.Context, cmd *cli.Command) error {
	d, err := loadDataset(ctx, cmd)
	if err != nil {
		return err
	}

	opts := serverOptions{
		Dev:        cmd.Bool("dev"),
		CSRFSecret: cmd.String("csrf-secret"),
	}

	if databaseURL := cmd.String("database-url"); databaseURL != "" {
		if err := openStore(ctx, databaseURL); err != nil {
			return err
		}
		defer store.Close()

		opts.Session = session.Options{
			Initer: store.PostgresSessionIniter(),
			Config: store.PostgresSessionConfig{},
		}
	} else {
		appLogger.Info("No database configured, sessions are kept in memory")
	}

	if opts.CSRFSecret == "" {
		opts.CSRFSecret = uuid.NewString()
		appLogger.Warn("CSRF_SECRET not set, using a random secret; tokens will not survive restarts")
	}

	if opts.Dev {
		flamego.SetEnv(flamego.EnvTypeDev)
		appLogger.Info("Development mode enabled, serving templates and static files from disk")
	} else {
		flamego.SetEnv(flamego.EnvTypeProd)
	}

	f, err := newServer(viewstate.New(d, nil), opts)
	if err != nil {
		return err
	}

	port := cmd.String("port")
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           f,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ErrorLog:          requestStdLogger,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shut down web server", "error", err)
		}
	}()

	appLogger.Info("Starting web server", "port", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}

	return nil
}

// openStore connects to the database and applies pending migrations.
func openStore(ctx context.Context, databaseURL string) error {
	appLogger.Info("Connecting to database")

	if err := store.Init(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := store.SyncSchema(ctx); err != nil {
		store.Close()
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	appLogger.Info("Database schema synced")

	return nil
}

// newServer wires middleware and routes around the reactor.
func newServer(r *viewstate.Reactor, opts serverOptions) (*flamego.Flame, error) {
	templateOpts, err := templateOptions(opts.Dev)
	if err != nil {
		return nil, err
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(flamego.Static(staticOptions(opts.Dev)))
	f.Use(session.Sessioner(opts.Session))
	f.Use(csrf.Csrfer(csrf.Options{Secret: opts.CSRFSecret}))
	f.Use(template.Templater(templateOpts))
	f.Map(r)
	f.Use(routes.RequestLogger)
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.CSRFInjector())
	f.Use(routes.FlashInjector())
	f.Use(routes.SessionInjector())
	f.Use(routes.SiteTitleInjector())

	configureEmptyNotFoundHandler(f)

	f.Get("/healthz", routes.Healthz)
	f.Get("/login", routes.LoginForm)
	f.Post("/login", csrf.Validate, routes.Login)
	f.Get("/logout", routes.Logout)

	f.Group("", func() {
		f.Get("/", routes.Dashboard)
		f.Post("/patient", csrf.Validate, routes.SelectPatient)
		f.Post("/metric", csrf.Validate, routes.ActivateMetric)
		f.Post("/gauge", csrf.Validate, routes.ToggleGauge)
	}, routes.RequireAuth)

	return f, nil
}

// Development mode reads templates and static files from the working tree.
const (
	devTemplatesDir = "templates"
	devStaticDir    = "static"
)

func templateOptions(dev bool) (template.Options, error) {
	funcs := []htmltemplate.FuncMap{templateFuncs()}

	if dev {
		return template.Options{Directory: devTemplatesDir, FuncMaps: funcs}, nil
	}

	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		return template.Options{}, fmt.Errorf("failed to load templates: %w", err)
	}

	return template.Options{FileSystem: fs, FuncMaps: funcs}, nil
}

func staticOptions(dev bool) flamego.StaticOptions {
	if dev {
		return flamego.StaticOptions{Directory: devStaticDir, Prefix: "static"}
	}

	return flamego.StaticOptions{FileSystem: http.FS(static.Static), Prefix: "static"}
}

func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}

func templateFuncs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"markerStyle": markerStyle,
	}
}

// markerStyle positions a gauge marker. The position is computed, never
// user input.
func markerStyle(g labdata.Gauge) htmltemplate.CSS {
	return htmltemplate.CSS("left: " + g.PositionPercent()) //nolint:gosec // Numeric percentage only.
}
