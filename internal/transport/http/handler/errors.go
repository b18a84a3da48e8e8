package handler

import (
	"errors"
	"net/http"

	"github.com/go-verify-api/internal/domain"
)

// httpError maps domain sentinel errors to status codes. Unknown errors become
// 500 without exposing their text.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSubjectNotFound), errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnsupportedMethod), errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrDeliveryFailure):
		writeError(w, http.StatusServiceUnavailable, "verification could not be issued, try again later")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
