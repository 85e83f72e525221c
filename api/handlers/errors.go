package handlers

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cyberguard/console/api"
	"github.com/cyberguard/console/config"
	"github.com/cyberguard/console/store"
)

// storeErrorStatus maps a store error kind onto an http status
func storeErrorStatus(err error) int {
	var (
		validationErr *store.ValidationError
		forbiddenErr  *store.ForbiddenError
		authErr       *store.AuthRequiredError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrReadOnly), errors.Is(err, store.ErrNotSynced):
		return http.StatusConflict
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

// storeError logs and writes err with the status of its kind. Validation failures list the
// offending fields.
func storeError(message string, w http.ResponseWriter, r *http.Request, err error) {
	var fields []string
	var validationErr *store.ValidationError
	if errors.As(err, &validationErr) {
		for _, f := range validationErr.Fields {
			fields = append(fields, f.Field+": "+f.Error)
		}
	}
	status := storeErrorStatus(err)
	zap.S().Warnw("store operation failed",
		"requestId", api.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status)
	config.ErrorStatus(message, status, w, err, fields...)
}
