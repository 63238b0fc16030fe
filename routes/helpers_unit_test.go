// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labdash/labdata"
	"github.com/humaidq/labdash/viewstate"
)

const (
	testBloodCSV = "анализ_крови.csv"
	testUrineCSV = "анализ_мочи.csv"
)

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}

	regenerated int
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	s.regenerated++
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

func (s *testSession) state(t *testing.T) viewstate.State {
	t.Helper()

	st, ok := s.data[viewStateKey].(viewstate.State)
	if !ok {
		t.Fatalf("expected view state in session, got %T", s.data[viewStateKey])
	}

	return st
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

type testTemplate struct {
	status int
	name   string
}

func (t *testTemplate) HTML(status int, name string) {
	t.status = status
	t.name = name
}

func newTestDataset(t *testing.T) *labdata.Dataset {
	t.Helper()

	sources := []labdata.ParsedSource{
		{
			Name: testBloodCSV,
			Columns: []string{
				"ID", "Дата", "Имя", "Пол", "Возраст",
				"Гемоглобин", "Гемоглобин мин норма", "Гемоглобин макс норма", "Эритроциты",
			},
			Records: [][]string{
				{"1", "2020-03-03", "Анна", "Ж", "30", "14.1", "12", "16", "4.5"},
				{"1", "2020-02-02", "Анна", "Ж", "30", "13.2", "12", "16", "4.4"},
				{"2", "2020-01-01", "Иван", "М", "40", "15.0", "13", "17", "5.0"},
			},
		},
		{
			Name:    testUrineCSV,
			Columns: []string{"ID", "Дата", "Белок", "Диагноз"},
			Records: [][]string{{"1", "2020-02-02", "", "POSITIVE"}},
		},
	}

	d, err := labdata.NewDataset(sources, labdata.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}

	return d
}

type testApp struct {
	f        *flamego.Flame
	session  *testSession
	template *testTemplate
	data     template.Data
	reactor  *viewstate.Reactor
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		f:        flamego.New(),
		session:  newTestSession(),
		template: &testTemplate{},
		data:     template.Data{},
		reactor:  viewstate.New(newTestDataset(t), nil),
	}

	app.f.Use(func(c flamego.Context) {
		c.MapTo(app.session, (*session.Session)(nil))
		c.MapTo(app.template, (*template.Template)(nil))
		c.Map(app.data)
		c.Map(app.reactor)
		c.Next()
	})

	app.f.Get("/login", LoginForm)
	app.f.Post("/login", Login)
	app.f.Get("/logout", Logout)
	app.f.Get("/healthz", Healthz)

	app.f.Group("", func() {
		app.f.Get("/", Dashboard)
		app.f.Post("/patient", SelectPatient)
		app.f.Post("/metric", ActivateMetric)
		app.f.Post("/gauge", ToggleGauge)
	}, RequireAuth)

	return app
}

func (app *testApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.f.ServeHTTP(rec, req)

	return rec
}

func (app *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	app.f.ServeHTTP(rec, req)

	return rec
}

func (app *testApp) login(t *testing.T) {
	t.Helper()

	rec := app.post("/login", url.Values{"username": {"doctor"}, "password": {"secret"}})
	assertRedirect(t, rec, "/")
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("expected redirect %q, got %q", wantLocation, got)
	}
}

func assertFlash(t *testing.T, s *testSession, wantType FlashType, wantMessage string) {
	t.Helper()

	msg, ok := s.flash.(FlashMessage)
	if !ok {
		t.Fatalf("expected flash message, got %T", s.flash)
	}

	if msg.Type != wantType || msg.Message != wantMessage {
		t.Fatalf("unexpected flash message: %#v", msg)
	}
}

func assertNoFlash(t *testing.T, s *testSession) {
	t.Helper()

	if s.flash != nil {
		t.Fatalf("expected no flash message, got %#v", s.flash)
	}
}

func (app *testApp) postRaw(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	app.f.ServeHTTP(rec, req)

	return rec
}
