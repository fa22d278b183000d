package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/simple-revision/pkg/simplerevision"
)

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFromError maps domain errors onto HTTP status codes:
// not-found → 404, conflicts → 409, validation → 422, storage
// unavailability and write/insert inconsistency → 503.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, simplerevision.ErrDocumentNotFound),
		errors.Is(err, simplerevision.ErrRevisionNotFound),
		errors.Is(err, simplerevision.ErrBlobNotFound),
		errors.Is(err, simplerevision.ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, simplerevision.ErrRevisionExists),
		errors.Is(err, simplerevision.ErrLinkExists),
		errors.Is(err, simplerevision.ErrBlobExists):
		return http.StatusConflict
	case errors.Is(err, simplerevision.ErrInvalidContent),
		errors.Is(err, simplerevision.ErrInvalidVersion):
		return http.StatusUnprocessableEntity
	}

	var storageErr *simplerevision.StorageError
	var consistencyErr *simplerevision.ConsistencyError
	if errors.As(err, &storageErr) || errors.As(err, &consistencyErr) {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, statusFromError(err))
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}
