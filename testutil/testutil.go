// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/listen/cliparse"
	"github.com/danielhkuo/listen/db"
	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/store"
)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", db.SQLiteDSN(":memory:"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every connection to :memory: is a separate database; keep exactly one
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := db.CreateSchema(context.Background(), conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

// SetupTestStore returns a store over a fresh in-memory database
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t), db.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8080,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		AssetsDir:    ".",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	}
}

// CreateTestRunbook creates a runbook and returns it
func CreateTestRunbook(t *testing.T, st *store.Store, name string) models.Runbook {
	t.Helper()

	rb, err := st.Runbooks.Create(context.Background(), store.Fields{"name": name})
	if err != nil {
		t.Fatalf("Failed to create test runbook: %v", err)
	}
	return rb
}

// CreateTestSection appends a section to a runbook
func CreateTestSection(t *testing.T, st *store.Store, runbookID int64, name string) models.Section {
	t.Helper()

	section, err := st.AddSection(context.Background(), runbookID, name)
	if err != nil {
		t.Fatalf("Failed to create test section: %v", err)
	}
	return section
}

// CreateTestItem appends an item to a section
func CreateTestItem(t *testing.T, st *store.Store, sectionID int64, name string, itemType models.ItemType) models.Item {
	t.Helper()

	item, err := st.AddItem(context.Background(), sectionID, name, itemType)
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return item
}

// CreateTestRun starts a run of a runbook
func CreateTestRun(t *testing.T, st *store.Store, runbookID int64, name string) models.Run {
	t.Helper()

	run, err := st.AddRun(context.Background(), runbookID, name)
	if err != nil {
		t.Fatalf("Failed to create test run: %v", err)
	}
	return run
}

// CreateTestTarget adds a target to a run
func CreateTestTarget(t *testing.T, st *store.Store, runID int64, name string) models.Target {
	t.Helper()

	target, err := st.AddTarget(context.Background(), runID, name)
	if err != nil {
		t.Fatalf("Failed to create test target: %v", err)
	}
	return target
}

// Fixture is a runbook with one section, a once item and an each item,
// plus a run with two targets
type Fixture struct {
	Runbook  models.Runbook
	Section  models.Section
	OnceItem models.Item
	EachItem models.Item
	Run      models.Run
	TargetA  models.Target
	TargetB  models.Target
}

// CreateTestFixture builds a Fixture
func CreateTestFixture(t *testing.T, st *store.Store) Fixture {
	t.Helper()

	var f Fixture
	f.Runbook = CreateTestRunbook(t, st, "Packliste")
	f.Section = CreateTestSection(t, st, f.Runbook.ID, "Kleidung")
	f.OnceItem = CreateTestItem(t, st, f.Section.ID, "Zelt", models.ItemOnce)
	f.EachItem = CreateTestItem(t, st, f.Section.ID, "Jacke", models.ItemEach)
	f.Run = CreateTestRun(t, st, f.Runbook.ID, "Tirol 2024")
	f.TargetA = CreateTestTarget(t, st, f.Run.ID, "Anna")
	f.TargetB = CreateTestTarget(t, st, f.Run.ID, "Ben")
	return f
}

// CountRows returns the number of rows in a table matching an optional
// SQL condition
func CountRows(t *testing.T, conn *sql.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeFormRequest creates an HTTP test request with a urlencoded body
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertContains checks that the response body contains every fragment
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := w.Body.String()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("Expected body to contain %q. Body: %s", f, body)
		}
	}
}
