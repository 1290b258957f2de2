package v1

import (
	"errors"
	"net/http"

	"github.com/budget-desk/backend/internal/budgetclient"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
)

var (
	ErrSessionNotFound = errors.New("there is no reallocation session with this ID, it may have been closed")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrBudgetNotDraft  = errors.New("only draft budgets can be deleted, submitted budgets are changed by reallocations")
	ErrNoFilePost      = errors.New("you must send a file to this endpoint")
	ErrWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, budgetclient.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, reallocation.ErrNoBudgetData), errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
