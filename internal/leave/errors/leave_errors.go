package errors

import (
	"net/http"

	"plugohris/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID      = apperror.New(apperror.CodeInvalidInput, "invalid leave request id", http.StatusBadRequest)
	ErrInvalidLeaveTypeRef = apperror.New(apperror.CodeInvalidInput, "leave type does not exist", http.StatusBadRequest)
	ErrInvalidDateFormat   = apperror.New(apperror.CodeInvalidInput, "dates must use YYYY-MM-DD format", http.StatusBadRequest)
	ErrInvalidDateRange    = apperror.New(apperror.CodeInvalidInput, "end_date must not be before start_date", http.StatusBadRequest)
	ErrStartDateInPast     = apperror.New(apperror.CodeInvalidInput, "start_date must not be in the past", http.StatusBadRequest)
	ErrEmptyRequest        = apperror.New(apperror.CodeInvalidInput, "requested range contains no business days", http.StatusBadRequest)
	ErrInsufficientBalance = apperror.New(apperror.CodeInvalidInput, "insufficient leave balance", http.StatusBadRequest)
	ErrOverlappingRequest  = apperror.New(apperror.CodeConflict, "overlapping leave request already exists", http.StatusConflict)
	ErrLeaveNotFound       = apperror.New(apperror.CodeNotFound, "leave request not found", http.StatusNotFound)
	ErrAlreadyActioned     = apperror.New(apperror.CodeInvalidState, "leave request has already been actioned", http.StatusConflict)
	ErrForbiddenApprover   = apperror.New(apperror.CodeForbidden, "not allowed to action this leave request", http.StatusForbidden)
	ErrRejectionReason     = apperror.New(apperror.CodeInvalidInput, "rejection_reason must be at least 10 characters", http.StatusBadRequest)
	ErrEmployeeMissing     = apperror.New(apperror.CodeInvalidState, "requesting employee record not found", http.StatusConflict)
)
