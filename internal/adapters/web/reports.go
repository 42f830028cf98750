package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"stockmaster/internal/app"
	"stockmaster/internal/core"
)

// getFinancialSummary aggregates the configured source for ?period=.
func (h *Handler) getFinancialSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetFinancialSummary(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSummary(w, result)
}

// postFinancialSummary aggregates a caller-supplied
// {warehouseName: [{day, profit}]} object, preserving warehouse order.
func (h *Handler) postFinancialSummary(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, r, "read body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var payload core.SeriesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		if errors.Is(err, core.ErrInvalidSeries) {
			writeServiceError(w, r, err)
			return
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SummarizePortfolio(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSummary(w, result)
}

// postWarehouseSummary summarizes one {warehouseName, entries} object.
func (h *Handler) postWarehouseSummary(w http.ResponseWriter, r *http.Request) {
	var req app.WarehouseSummaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	summary, err := h.svc.SummarizeWarehouse(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// getSummaryChart renders the warehouse totals for ?period= as a PNG.
func (h *Handler) getSummaryChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.svc.RenderSummaryChart(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

func writeSummary(w http.ResponseWriter, result *app.FinancialSummaryResult) {
	if result.Period != "" {
		w.Header().Set("X-Report-Period", result.Period)
	}
	writeJSON(w, http.StatusOK, result.Summary)
}
