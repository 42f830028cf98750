package web

import (
	"net/http"
	"sort"

	"stockmaster/internal/core"

	"github.com/go-chi/chi/v5"
)

type preferenceValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) listPreferences(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.Preferences().All(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// putPreferences stores every key of a flat {key: value} object. Keys are
// validated before any is written, in sorted order.
func (h *Handler) putPreferences(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if !decodeJSON(w, r, &values) {
		return
	}
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if err := core.ValidatePreference(k, v); err != nil {
			writeServiceError(w, r, err)
			return
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prefs := h.svc.Preferences()
	for _, k := range keys {
		if err := prefs.Set(r.Context(), k, values[k]); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	h.listPreferences(w, r)
}

func (h *Handler) getPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.svc.Preferences().Get(r.Context(), key)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferenceValue{Key: key, Value: value})
}

func (h *Handler) putPreference(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	key := chi.URLParam(r, "key")
	if err := h.svc.Preferences().Set(r.Context(), key, body.Value); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferenceValue{Key: key, Value: body.Value})
}

func (h *Handler) deletePreference(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Preferences().Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearIdentity forgets the stored user name and email, as a logout does.
func (h *Handler) clearIdentity(w http.ResponseWriter, r *http.Request) {
	if err := core.ClearIdentity(r.Context(), h.svc.Preferences()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
