package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/DarkEnough/resume-ranker/internal/ranking"
)

// HTTPStatus maps an error to the HTTP status code it should produce.
// Request-shaped problems are the client's fault; everything else is ours.
func HTTPStatus(err error) int {
	var inputErr *ranking.InputError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &inputErr), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
