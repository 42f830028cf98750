package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"stockmaster/internal/app"
	"stockmaster/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, logger zerolog.Logger, allowedOrigins []string) *Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/api/health", h.health)

	// ── Reports ───────────────────────────────────────────────────────────────
	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/financial-summary", h.getFinancialSummary)
		r.Post("/financial-summary", h.postFinancialSummary)
		r.Get("/financial-summary/chart.png", h.getSummaryChart)
		r.Post("/warehouse-summary", h.postWarehouseSummary)
	})

	// ── Inventory ─────────────────────────────────────────────────────────────
	h.mountInventory(r)

	// ── Preferences ───────────────────────────────────────────────────────────
	r.Route("/api/preferences", func(r chi.Router) {
		r.Get("/", h.listPreferences)
		r.Put("/", h.putPreferences)
		r.Delete("/identity", h.clearIdentity)
		r.Get("/{key}", h.getPreference)
		r.Put("/{key}", h.putPreference)
		r.Delete("/{key}", h.deletePreference)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// health reports liveness.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, http.StatusOK, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware, the service status for domain errors raised while
// decoding (an entry without a profit is INVALID_SERIES), and HTTP 400 otherwise.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		if errors.Is(err, core.ErrInvalidSeries) {
			writeServiceError(w, r, err)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
