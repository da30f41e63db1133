package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gomarkdown/markdown"

	"framelens/analysis"
	"framelens/app"
	"framelens/domain/capture"
	"framelens/domain/core"
	apperrors "framelens/internal/errors"
)

// sampleRequest is a raw numeric series with its dataset identity
type sampleRequest struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type statsRequest struct {
	sampleRequest
	Metric string `json:"metric"`
}

type compareRequest struct {
	A      sampleRequest `json:"a"`
	B      sampleRequest `json:"b"`
	Metric string        `json:"metric"`
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.httpError(w, http.StatusBadRequest, apperrors.ParseError("invalid request body", err))
		return
	}
	if len(req.Values) == 0 {
		a.httpError(w, http.StatusBadRequest, apperrors.InsufficientData("values are required"))
		return
	}

	result := analysis.Describe(req.Values, req.Metric)
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handlePacing(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.httpError(w, http.StatusBadRequest, apperrors.ParseError("invalid request body", err))
		return
	}

	result := analysis.AnalyzePacing(req.Values)
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.httpError(w, http.StatusBadRequest, apperrors.ParseError("invalid request body", err))
		return
	}

	metric := core.MetricKey(req.Metric)
	if metric == "" {
		metric = core.MetricFrameTime
	}
	nameA, nameB := req.A.Name, req.B.Name
	if nameA == "" {
		nameA = "A"
	}
	if nameB == "" {
		nameB = "B"
	}

	report, err := a.service.Compare(r.Context(), app.ComparisonRequest{
		A:      capture.FromValues(core.DatasetName(nameA), metric, req.A.Values),
		B:      capture.FromValues(core.DatasetName(nameB), metric, req.B.Values),
		Metric: metric,
	})
	if err != nil {
		a.httpError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reports, err := a.reports.List(r.Context(), limit)
	if err != nil {
		a.httpError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := core.ReportID(chi.URLParam(r, "id"))
	report, err := a.reports.Get(r.Context(), id)
	if err != nil {
		a.httpError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleReportHTML renders the markdown verdict of a stored report
func (a *App) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	id := core.ReportID(chi.URLParam(r, "id"))
	report, err := a.reports.Get(r.Context(), id)
	if err != nil {
		a.httpError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(markdown.ToHTML([]byte(report.Verdict), nil, nil))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInsufficientData, apperrors.CodeLengthMismatch, apperrors.CodeInvalidInput, apperrors.CodeParseError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
