package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ecommerce-ms/internal/middleware"
	"ecommerce-ms/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	internalErrorMessage = "An unexpected error occurred."
	invalidJSONMessage   = "Invalid request body."
	invalidIDMessage     = "Invalid ID."
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent; an encode failure cannot be reported.
	_ = json.NewEncoder(w).Encode(data)
}

// writeSuccess wraps data in the success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, model.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError writes an error envelope with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.CorrelationID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", code).
		Str("message", message).
		Int("status", status).
		Str("correlation_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.APIResponse{
		Success:       false,
		Message:       message,
		Error:         code,
		CorrelationID: correlationID,
	})
}

// writeServiceError maps a service error to a response. Domain errors keep
// their message; anything else is logged and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, r, statusForKind(domainErr.Kind), domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("unexpected service error")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, internalErrorMessage, logger)
}

func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindInvalidInput, model.KindConflict:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, invalidJSONMessage, logger)
		return false
	}
	return true
}

// pathID parses the {id} route parameter, writing a 400 when it is not an integer.
func pathID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, invalidIDMessage, logger)
		return 0, false
	}
	return id, true
}

// pageParams reads optional limit and offset query parameters.
// Missing parameters default to zero, which means no paging.
func pageParams(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (limit, offset int, ok bool) {
	query := r.URL.Query()

	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidPagination, "Invalid limit parameter.", logger)
			return 0, 0, false
		}
		limit = v
	}

	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidPagination, "Invalid offset parameter.", logger)
			return 0, 0, false
		}
		offset = v
	}

	return limit, offset, true
}
