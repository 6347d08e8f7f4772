package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"taskdeck/internal/domain"
	"taskdeck/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "Forbidden")
	default:
		slog.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// validationMessage drops the sentinel prefix so clients see only the reason
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}

// requirePathValue reads a path parameter, answering 400 when it is empty
func requirePathValue(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	v := strings.TrimSpace(r.PathValue(name))
	if v == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return v, true
}
