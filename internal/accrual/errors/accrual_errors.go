package errors

import (
	"net/http"

	"plugohris/internal/shared/apperror"
)

var (
	ErrInvalidAsOfDate       = apperror.New(apperror.CodeInvalidInput, "as_of_date must use YYYY-MM-DD format", http.StatusBadRequest)
	ErrSchedulingUnavailable = apperror.New(apperror.CodeServiceUnavailable, "asynchronous recalculation is not configured", http.StatusServiceUnavailable)
)
