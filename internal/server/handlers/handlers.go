// Package handlers provides the HTTP handlers of the stockmatch API.
package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/server/cache"
	"github.com/stockmatch/stockmatch/internal/server/events"
	"github.com/stockmatch/stockmatch/internal/server/response"
	"github.com/stockmatch/stockmatch/pkg/constants"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/logging"
)

// Handlers serves the API routes.
type Handlers struct {
	sm        stockmatch.Stockmatch
	cache     *cache.Cache
	broker    *events.Broker
	upgrader  websocket.Upgrader
	validate  *validator.Validate
	logger    *zerolog.Logger
	limits    Limits
	startTime time.Time
	now       func() time.Time
}

// Limits caps request bodies.
type Limits struct {
	MaxRequestBytes int64
	MaxUploadBytes  int64
}

// DefaultLimits returns the default body limits.
func DefaultLimits() Limits {
	return Limits{
		MaxRequestBytes: constants.MaxRequestBytes,
		MaxUploadBytes:  constants.MaxUploadBytes,
	}
}

// New creates a Handlers instance.
func New(
	sm stockmatch.Stockmatch,
	cache *cache.Cache,
	broker *events.Broker,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	limits Limits,
) *Handlers {
	if limits.MaxRequestBytes <= 0 {
		limits.MaxRequestBytes = constants.MaxRequestBytes
	}
	if limits.MaxUploadBytes <= 0 {
		limits.MaxUploadBytes = constants.MaxUploadBytes
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Handlers{
		sm:        sm,
		cache:     cache,
		broker:    broker,
		upgrader:  upgrader,
		validate:  validate,
		logger:    logger,
		limits:    limits,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
// It writes the error response itself and reports whether to continue.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, h.limits.MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, tooLarge.Limit)
			return false
		}
		response.BadRequest(w, "Invalid JSON body", err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		response.ErrorFromType(w, validationError(err))
		return false
	}
	return true
}

// validationError converts the first validator failure into a
// ValidationError named by its JSON field path.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.WrapValidation("body", err)
	}
	fe := fieldErrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return errors.NewValidationError(field, fe.Value(), field+" failed "+fe.Tag()+" validation")
}

// jsonFieldName names validated fields by their JSON keys.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func (h *Handlers) log(r *http.Request) *zerolog.Logger {
	if l := logging.FromContext(r.Context()); l != nil {
		return l
	}
	return h.logger
}
