package handlers

import (
	"io"
	"mime"
	"net/http"

	"github.com/stockmatch/stockmatch/internal/server/response"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/pos"
)

// uploadFormField is the multipart field holding the CSV.
const uploadFormField = "file"

// UploadResult is the response of the CSV upload route.
type UploadResult struct {
	TotalRows          int                    `json:"total_rows"`
	HouseProducts      int                    `json:"house_products"`
	AggregatedProducts int                    `json:"aggregated_products"`
	Products           []inventory.POSProduct `json:"products"`
}

// HandleUploadCSV handles POST /api/upload-csv. The POS export is accepted
// as a raw body or as the "file" part of a multipart form; the response
// holds the house products aggregated by name, ready for /api/reconcile.
func (h *Handlers) HandleUploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxUploadBytes)

	body, closeBody, err := h.uploadBody(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, tooLarge.Limit)
			return
		}
		response.ErrorFromType(w, err)
		return
	}
	defer closeBody()

	records, err := pos.ParseCSV(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, tooLarge.Limit)
			return
		}
		response.ErrorFromType(w, err)
		return
	}

	house := h.sm.HouseRecords(records)
	aggregated := pos.AggregateRecords(house)

	h.log(r).Info().
		Int("total_rows", len(records)).
		Int("house_products", len(house)).
		Int("aggregated_products", len(aggregated)).
		Msg("CSV upload parsed")

	response.OK(w, UploadResult{
		TotalRows:          len(records),
		HouseProducts:      len(house),
		AggregatedProducts: len(aggregated),
		Products:           aggregated,
	})
}

func (h *Handlers) uploadBody(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	if err := r.ParseMultipartForm(h.limits.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, err
		}
		return nil, nil, errors.NewValidationError(uploadFormField, nil, "invalid multipart form: "+err.Error())
	}
	file, _, err := r.FormFile(uploadFormField)
	if err != nil {
		return nil, nil, errors.NewValidationError(uploadFormField, nil, "multipart form needs a \"file\" part")
	}
	return file, func() { _ = file.Close() }, nil
}
