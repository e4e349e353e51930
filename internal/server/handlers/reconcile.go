package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/export"
	"github.com/stockmatch/stockmatch/internal/server/events"
	"github.com/stockmatch/stockmatch/internal/server/response"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReconcileRequest is the body of the reconcile, export and orders routes.
type ReconcileRequest struct {
	POSProducts []inventory.POSProduct `json:"pos_products" validate:"required,min=1,dive"`
	Location    string                 `json:"location"`
}

// OrderRequest adds an optional order date (YYYY-MM-DD) to ReconcileRequest.
type OrderRequest struct {
	ReconcileRequest
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// HandleReconcile handles POST /api/reconcile.
func (h *Handlers) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.sm.Reconcile(r.Context(), req.Location, req.POSProducts)
	if err != nil {
		h.log(r).Error().Err(err).Msg("reconciliation failed")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, rec)
}

// HandleExport handles POST /api/reconcile/export and answers with the
// reconciliation as an .xlsx attachment.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.sm.Reconcile(r.Context(), req.Location, req.POSProducts)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, rec.Result); err != nil {
		h.log(r).Error().Err(err).Msg("reconciliation export failed")
		response.InternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(rec.Summary.Location)))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleOrders handles POST /api/orders.
func (h *Handlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	date := h.now()
	if req.Date != "" {
		parsed, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			response.ErrorFromType(w, errors.NewValidationError("date", req.Date, "date must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	sheet, err := h.sm.Orders(r.Context(), req.Location, req.POSProducts, date)
	if err != nil {
		h.log(r).Error().Err(err).Msg("order generation failed")
		response.ErrorFromType(w, err)
		return
	}

	h.broker.Publish(events.OrderGenerated, map[string]any{
		"order_number": sheet.Order.Number,
		"location":     sheet.Order.Location,
		"summary":      sheet.Summary,
	})
	response.OK(w, sheet)
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

func exportFilename(location string) string {
	slug := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(location), "-"), "-")
	if slug == "" {
		slug = stockmatch.UnknownLocation
	}
	return "reconciliation-" + slug + ".xlsx"
}
