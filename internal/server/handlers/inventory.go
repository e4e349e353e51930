package handlers

import (
	"net/http"
	"strconv"

	"github.com/stockmatch/stockmatch/internal/server/response"
	"github.com/stockmatch/stockmatch/pkg/errors"
)

// HandleInventory handles GET /api/inventory. The production report is
// served from cache unless refresh=true.
func (h *Handlers) HandleInventory(w http.ResponseWriter, r *http.Request) {
	refresh, err := boolParam(r, "refresh", false)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if !refresh {
		if report, ok := h.cache.Production(); ok {
			w.Header().Set("X-Cache", "HIT")
			response.OK(w, report)
			return
		}
	}

	report, err := h.sm.ProductionInventory(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("production inventory scan failed")
		response.ErrorFromType(w, err)
		return
	}
	h.cache.SetProduction(report)
	w.Header().Set("X-Cache", "MISS")
	response.OK(w, report)
}

// HandlePOSInventory handles GET /api/pos-inventory. With a location it
// returns that store's products; without one it returns every store.
// filter defaults to true and keeps house products only.
func (h *Handlers) HandlePOSInventory(w http.ResponseWriter, r *http.Request) {
	house, err := boolParam(r, "filter", true)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	location := r.URL.Query().Get("location")

	if location == "" {
		all := h.sm.AllPOSInventory(r.Context(), house)
		response.OK(w, map[string]any{"locations": all})
		return
	}

	products, ok := h.cache.POS(location, house)
	if !ok {
		products, err = h.sm.POSInventory(r.Context(), location, house)
		if err != nil {
			h.log(r).Error().Err(err).Str("location", location).Msg("POS inventory fetch failed")
			response.ErrorFromType(w, err)
			return
		}
		h.cache.SetPOS(location, house, products)
	}

	response.OK(w, map[string]any{
		"location": location,
		"filtered": house,
		"count":    len(products),
		"products": products,
	})
}

func boolParam(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewValidationError(name, raw, name+" must be true or false")
	}
	return v, nil
}
