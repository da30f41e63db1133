package ui

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"framelens/adapters/memory"
	"framelens/app"
	"framelens/domain/stats"
	"framelens/internal/rng"
	"framelens/ports"
)

func newTestApp() (*App, ports.ReportRepository) {
	reports := memory.NewReportRepository()
	service := app.NewComparisonService(rng.New(42), reports, 100, 0.95)
	return NewApp(service, reports), reports
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to encode request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func series(n int, base, spike float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base
		if i%2 == 1 {
			out[i] = base + 1
		}
		if i%10 == 0 {
			out[i] = spike
		}
	}
	return out
}

// TestHandleStats verifies the single-sample statistics endpoint
func TestHandleStats(t *testing.T) {
	a, _ := newTestApp()

	rec := postJSON(t, a.Router(), "/api/stats", map[string]any{
		"name":   "run",
		"metric": "FrameTime",
		"values": []float64{16, 17, 18, 16, 17, 18},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result stats.StatisticsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Min.F() != 16 || result.Max.F() != 18 {
		t.Errorf("Expected min/max 16/18, got %f/%f", result.Min.F(), result.Max.F())
	}
}

// TestHandleStats_EmptyBody verifies validation failures are 400s
func TestHandleStats_EmptyBody(t *testing.T) {
	a, _ := newTestApp()

	rec := postJSON(t, a.Router(), "/api/stats", map[string]any{"name": "run"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing values, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/stats", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", rec.Code)
	}
}

// TestHandlePacing verifies the pacing endpoint
func TestHandlePacing(t *testing.T) {
	a, _ := newTestApp()

	rec := postJSON(t, a.Router(), "/api/pacing", map[string]any{
		"name":   "run",
		"values": []float64{16.7, 16.7, 16.7, 16.7, 16.7},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result stats.PacingResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Consistency != 100 {
		t.Errorf("Expected perfect consistency, got %f", result.Consistency)
	}
}

// TestHandleCompare_FullFlow verifies compare, list, get and the HTML view
func TestHandleCompare_FullFlow(t *testing.T) {
	a, _ := newTestApp()
	router := a.Router()

	rec := postJSON(t, router, "/api/compare", map[string]any{
		"a": map[string]any{"name": "before", "values": series(60, 19, 55)},
		"b": map[string]any{"name": "after", "values": series(60, 15, 16)},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report stats.ComparisonReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if len(report.Tests) != 5 {
		t.Errorf("Expected the full battery, got %d tests", len(report.Tests))
	}
	if report.ID == "" {
		t.Fatal("Expected a report ID")
	}

	// The report is listed
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing reports, got %d", rec.Code)
	}
	var listed []stats.ComparisonReport
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != report.ID {
		t.Errorf("Expected the stored report in the list, got %+v", listed)
	}

	// And retrievable by ID
	req = httptest.NewRequest(http.MethodGet, "/api/reports/"+string(report.ID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 fetching the report, got %d", rec.Code)
	}

	// The HTML view renders the markdown verdict
	req = httptest.NewRequest(http.MethodGet, "/reports/"+string(report.ID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for the HTML view, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected an HTML content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "<h2") {
		t.Errorf("Expected rendered markdown headings, got: %s", rec.Body.String())
	}
}

// TestHandleGetReport_NotFound verifies unknown IDs are 404s
func TestHandleGetReport_NotFound(t *testing.T) {
	a, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/reports/unknown", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown report, got %d", rec.Code)
	}
}

// TestHealthz verifies the liveness endpoint
func TestHealthz(t *testing.T) {
	a, _ := newTestApp()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from healthz, got %d", rec.Code)
	}
}
