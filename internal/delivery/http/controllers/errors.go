package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"
)

// writeServiceError maps workflow errors onto the response envelope. Anything that is not a
// business-rule failure is logged and answered with an opaque 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found")
	case errors.Is(err, domain.ErrCapacityExceeded):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityExceeded, "Event capacity full")
	case errors.Is(err, domain.ErrDuplicateRegistration):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeDuplicateRegistration, "Duplicate registration")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteInternalError(w)
	}
}
