package web

import (
	"net/http"
	"net/url"

	"stockmaster/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// mountInventory exposes every inventory collection under /api/{collection}.
func (h *Handler) mountInventory(r chi.Router) {
	inv := h.svc.Inventory()

	mountCollection(r, inv.Stock, func(q url.Values) (func(core.StockItem) bool, error) {
		return core.StockFilter(q.Get("availability"))
	}, func(r chi.Router) {
		r.Put("/{id}/on-hand", h.setStockOnHand)
	})
	mountCollection(r, inv.Receipts, func(q url.Values) (func(core.Receipt) bool, error) {
		return core.ReceiptFilter(q.Get("type"))
	})
	mountCollection(r, inv.Deliveries, func(q url.Values) (func(core.Delivery) bool, error) {
		return core.DeliveryFilter(q.Get("state"))
	})
	mountCollection(r, inv.Adjustments, func(q url.Values) (func(core.Adjustment) bool, error) {
		return core.AdjustmentFilter(q.Get("type"), q.Get("search"))
	})
	mountCollection(r, inv.Transfers, func(q url.Values) (func(core.Transfer) bool, error) {
		return core.TransferFilter(q.Get("status"))
	})
	mountCollection(r, inv.Moves, func(q url.Values) (func(core.MoveRecord) bool, error) {
		return core.MoveFilter(q.Get("status"))
	})
	mountCollection[core.Warehouse](r, inv.Warehouses, nil)
}

// mountCollection registers list/create on /api/{name} and get/update/delete
// on /api/{name}/{id}. filter turns the query string into a list filter; nil
// lists all. extra adds collection-specific routes under the same prefix.
func mountCollection[T core.Record[T]](
	r chi.Router,
	c *core.Collection[T],
	filter func(url.Values) (func(T) bool, error),
	extra ...func(chi.Router),
) {
	r.Route("/api/"+c.Name(), func(r chi.Router) {
		for _, mount := range extra {
			mount(r)
		}

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			var accept func(T) bool
			if filter != nil {
				var err error
				if accept, err = filter(r.URL.Query()); err != nil {
					writeServiceError(w, r, err)
					return
				}
			}
			items, err := c.List(r.Context(), accept)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, items)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var item T
			if !decodeJSON(w, r, &item) {
				return
			}
			created, err := c.Create(r.Context(), item)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			zerolog.Ctx(r.Context()).Info().Str("collection", c.Name()).Str("id", created.EntityID()).Msg("record created")
			writeJSON(w, http.StatusCreated, created)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			item, err := c.Get(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, item)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var item T
			if !decodeJSON(w, r, &item) {
				return
			}
			updated, err := c.Update(r.Context(), chi.URLParam(r, "id"), item)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, updated)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if err := c.Delete(r.Context(), id); err != nil {
				writeServiceError(w, r, err)
				return
			}
			zerolog.Ctx(r.Context()).Info().Str("collection", c.Name()).Str("id", id).Msg("record deleted")
			w.WriteHeader(http.StatusNoContent)
		})
	})
}

// setStockOnHand records a stock count: {"onHand": n}.
func (h *Handler) setStockOnHand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OnHand *int `json:"onHand"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OnHand == nil {
		writeError(w, r, "onHand is required", "VALIDATION_FAILED", http.StatusBadRequest)
		return
	}
	item, err := h.svc.Inventory().SetOnHand(r.Context(), chi.URLParam(r, "id"), *req.OnHand)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
