package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/philippauer/ha-wartungsplaner/internal/config"
	"github.com/philippauer/ha-wartungsplaner/internal/serverapp"
)

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logs := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.Storage.DataDir = t.TempDir()
	cfg.ApplyDefaults()

	app, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: log.New(logs, "", 0),
	})
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return &testApp{handler: app.Handler, logs: logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthAndReadiness(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodGet, "/healthz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"service":"wartungsplaner"`) {
		t.Fatalf("unexpected healthz body: %s", res.Body.String())
	}

	res = app.json(http.MethodGet, "/readyz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("readyz expected 200, got %d body=%s", res.Code, res.Body.String())
	}
}

func TestServer_RequestIDHeaderFlows(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodGet, "/api/tasks", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("tasks expected 200, got %d", res.Code)
	}
	if res.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id header on API responses")
	}
}

func TestServer_TaskFlowEndToEnd(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/tasks", map[string]any{
		"name":           "Heizungsanlage warten",
		"category":       "heating",
		"interval_value": 1,
		"interval_unit":  "years",
	})
	if res.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d body=%s", res.Code, res.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("bad create response: %s", res.Body.String())
	}

	res = app.json(http.MethodPost, "/api/tasks/"+created.ID+"/complete", map[string]any{
		"notes": "alles gut",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("complete expected 200, got %d body=%s", res.Code, res.Body.String())
	}

	res = app.json(http.MethodGet, "/api/stats", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("stats expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"total":1`) {
		t.Fatalf("unexpected stats body: %s", res.Body.String())
	}

	res = app.json(http.MethodGet, "/api/calendar.ics", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("calendar expected 200, got %d", res.Code)
	}
	if !strings.HasPrefix(res.Body.String(), "BEGIN:VCALENDAR") {
		t.Fatalf("unexpected calendar body: %s", res.Body.String())
	}

	// access log lines are JSON
	if !strings.Contains(app.logs.String(), `"msg":"http_request"`) {
		t.Fatalf("expected structured access log, got: %s", app.logs.String())
	}
}

func TestServer_UnknownAPIPathIs404(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodGet, "/api/tasks/x/y/z", nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}
