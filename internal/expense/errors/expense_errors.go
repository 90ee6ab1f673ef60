package errors

import (
	"net/http"

	"plugohris/internal/shared/apperror"
)

var (
	ErrInvalidRequestID    = apperror.New(apperror.CodeInvalidInput, "invalid grab code request id", http.StatusBadRequest)
	ErrInvalidAmount       = apperror.New(apperror.CodeInvalidInput, "amount_idr must be a positive decimal", http.StatusBadRequest)
	ErrInvalidMonth        = apperror.New(apperror.CodeInvalidInput, "month must use YYYY-MM format", http.StatusBadRequest)
	ErrMonthAlreadyClaimed = apperror.New(apperror.CodeConflict, "a grab code request for this month already exists", http.StatusConflict)
	ErrRequestNotFound     = apperror.New(apperror.CodeNotFound, "grab code request not found", http.StatusNotFound)
	ErrAlreadyActioned     = apperror.New(apperror.CodeInvalidState, "grab code request has already been actioned", http.StatusConflict)
	ErrForbiddenApprover   = apperror.New(apperror.CodeForbidden, "not allowed to action this grab code request", http.StatusForbidden)
	ErrRejectionReason     = apperror.New(apperror.CodeInvalidInput, "rejection_reason must be at least 10 characters", http.StatusBadRequest)
	ErrEmployeeMissing     = apperror.New(apperror.CodeInvalidState, "requesting employee record not found", http.StatusConflict)
)
