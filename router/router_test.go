// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/danielhkuo/listen/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	st := testutil.SetupTestStore(t)
	mux := NewRouter(st, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	st := testutil.SetupTestStore(t)
	mux := NewRouter(st, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, `hx-get="/runbooks"`)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}
}

func TestUnknownPath(t *testing.T) {
	st := testutil.SetupTestStore(t)
	mux := NewRouter(st, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	st := testutil.SetupTestStore(t)
	f := testutil.CreateTestFixture(t, st)
	mux := NewRouter(st, testutil.GetTestConfig())

	rb := strconv.FormatInt(f.Runbook.ID, 10)
	run := strconv.FormatInt(f.Run.ID, 10)
	item := strconv.FormatInt(f.EachItem.ID, 10)
	target := strconv.FormatInt(f.TargetA.ID, 10)

	// Every route must reach its handler; 400 and 404 are valid handler answers
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/_/runbooks/" + rb},
		{"GET", "/_/runs/" + run},

		{"GET", "/runbooks"},
		{"POST", "/runbooks/new"},
		{"GET", "/runbooks/" + rb},
		{"POST", "/runbooks/change/" + rb},
		{"GET", "/runbooks/dump/" + rb},
		{"POST", "/runbooks/load"},

		{"POST", "/sections/new/" + rb},
		{"POST", "/sections/change/999"},
		{"POST", "/items/new/999"},
		{"POST", "/items/toggle/999"},
		{"POST", "/items/change/999"},

		{"GET", "/runs"},
		{"POST", "/runs/new/" + rb},
		{"GET", "/runs/" + run},
		{"POST", "/runs/change/" + run},
		{"POST", "/targets/new/" + run},

		{"POST", "/checkmarks/check/" + run + "/" + item},
		{"POST", "/checkmarks/check/" + run + "/" + item + "/" + target},
		{"POST", "/checkmarks/disable/" + run + "/" + item},
		{"POST", "/checkmarks/disable/" + run + "/" + item + "/" + target},

		{"POST", "/runs/delete/999"},
		{"POST", "/runbooks/delete/999"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
			if w.Header().Get("X-Request-ID") == "" && tc.path != "/health" {
				t.Errorf("Route %s %s did not pass through the logging middleware", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	st := testutil.SetupTestStore(t)
	mux := NewRouter(st, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/runbooks/1"},
		{"GET", "/checkmarks/check/1/2"},
		{"PUT", "/items/toggle/1"},
		{"POST", "/runs/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "htmx.min.js"), []byte("var htmx;"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testutil.GetTestConfig()
	cfg.AssetsDir = dir
	mux := NewRouter(testutil.SetupTestStore(t), cfg)

	req := httptest.NewRequest("GET", "/vendor/htmx.min.js", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "var htmx;" {
		t.Errorf("Expected file contents, got '%s'", w.Body.String())
	}

	req = httptest.NewRequest("GET", "/favicon.ico", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
