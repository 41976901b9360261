package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/ternak-atlas/pkg/models/api"
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	JSON(w, r, http.StatusBadRequest, api.Error{Message: message})
}

// ValidationErrors reports a field -> message map from form validation.
func ValidationErrors(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	JSON(w, r, http.StatusBadRequest, api.Error{
		Message: "validasi gagal",
		Errors:  errs,
	})
}

// Error maps domain error kinds onto HTTP status codes. Unknown errors are
// logged and reported as 500 without their details.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		notFound   *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		JSON(w, r, http.StatusBadRequest, api.Error{Message: validation.Error(), Field: validation.Field})
	case errors.As(err, &conflict):
		JSON(w, r, http.StatusConflict, api.Error{Message: conflict.Message})
	case errors.As(err, &notFound):
		JSON(w, r, http.StatusNotFound, api.Error{Message: notFound.Error()})
	default:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("request failed")
		JSON(w, r, http.StatusInternalServerError, api.Error{Message: "internal server error"})
	}
}
