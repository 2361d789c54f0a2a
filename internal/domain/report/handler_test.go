package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer(repo Repository) *echo.Echo {
	e := echo.New()
	h := NewHandler(NewService(repo))
	h.RegisterRoutes(e.Group("/api/v1"))
	return e
}

func TestHandler_GetDashboard(t *testing.T) {
	e := newTestServer(newTestRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?year=2024&disease_group=Respiratory", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var d Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if d.KPI.TotalCases != 15 {
		t.Errorf("expected 15 total cases, got %d", d.KPI.TotalCases)
	}
	if d.Filters.SelectedYear != "2024" || d.Filters.SelectedGroup != "Respiratory" {
		t.Errorf("filters not echoed: %+v", d.Filters)
	}
	if len(d.Monthly) == 0 || len(d.Provinces) == 0 {
		t.Errorf("expected populated views, got %+v", d)
	}
}

func TestHandler_GetDashboard_Defaults(t *testing.T) {
	e := newTestServer(newTestRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var d Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if d.Filters.SelectedYear != "2024" {
		t.Errorf("expected default year 2024, got %s", d.Filters.SelectedYear)
	}
}

func TestHandler_GetDashboard_QueryError(t *testing.T) {
	repo := newTestRepo()
	repo.failWith = map[string]error{"KPI": fmt.Errorf("connection refused")}
	e := newTestServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dashboard query failed") {
		t.Errorf("expected wrapped error message, got %s", rec.Body.String())
	}
}

func TestHandler_GetFilters(t *testing.T) {
	e := newTestServer(newTestRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/filters", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var f Filters
	if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(f.Groups) == 0 || f.Groups[0].Value != AllGroups {
		t.Errorf("expected sentinel first, got %v", f.Groups)
	}
}

func TestHandler_GetFilters_QueryError(t *testing.T) {
	repo := newTestRepo()
	repo.failWith = map[string]error{"Years": fmt.Errorf("connection refused")}
	e := newTestServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/filters", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
