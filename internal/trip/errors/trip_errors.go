package errors

import (
	"net/http"

	"plugohris/internal/shared/apperror"
)

var (
	ErrInvalidTripID     = apperror.New(apperror.CodeInvalidInput, "invalid business trip id", http.StatusBadRequest)
	ErrInvalidDateFormat = apperror.New(apperror.CodeInvalidInput, "dates must use YYYY-MM-DD format", http.StatusBadRequest)
	ErrInvalidDateRange  = apperror.New(apperror.CodeInvalidInput, "end_date must not be before start_date", http.StatusBadRequest)
	ErrStartDateInPast   = apperror.New(apperror.CodeInvalidInput, "start_date must not be in the past", http.StatusBadRequest)
	ErrInvalidCost       = apperror.New(apperror.CodeInvalidInput, "estimated_cost must be a positive decimal", http.StatusBadRequest)
	ErrTripNotFound      = apperror.New(apperror.CodeNotFound, "business trip not found", http.StatusNotFound)
	ErrAlreadyActioned   = apperror.New(apperror.CodeInvalidState, "business trip has already been actioned", http.StatusConflict)
	ErrForbiddenApprover = apperror.New(apperror.CodeForbidden, "not allowed to action this business trip", http.StatusForbidden)
	ErrRejectionReason   = apperror.New(apperror.CodeInvalidInput, "rejection_reason must be at least 10 characters", http.StatusBadRequest)
	ErrEmployeeMissing   = apperror.New(apperror.CodeInvalidState, "requesting employee record not found", http.StatusConflict)
)
