package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.Message{Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.Join(common.ErrorValidation, err)
	}
	return nil
}

// statusFor maps a service error to an HTTP status and the text the
// client is allowed to see. Unknown errors become an opaque 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusBadRequest, "user already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "not authorized"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "user not authorized"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "post not found"
	case errors.Is(err, common.ErrorUnavailable):
		return http.StatusServiceUnavailable, "images are not configured"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeServiceError answers with the status matching err. Details of 5xx
// failures are logged and never sent.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeMessage(w, status, msg)
}
