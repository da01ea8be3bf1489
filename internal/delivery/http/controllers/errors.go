package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventease/internal/delivery/http/helpers"
	"eventease/internal/domain"
)

// writeDomainError maps a service error to the HTTP response. Known domain
// sentinels get a specific status and code; everything else is logged and
// reported as a 500 with the given fallback message.
func writeDomainError(w http.ResponseWriter, ctx context.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyRegistered), errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrEventFull):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrStorageNotProvisioned):
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStorageUnavailable, err.Error())
	default:
		logger.ErrorContext(ctx, "request failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, fallback)
	}
}
