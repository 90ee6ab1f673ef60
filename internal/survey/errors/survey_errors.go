package errors

import (
	"net/http"

	"plugohris/internal/shared/apperror"
)

var (
	ErrInvalidSurveyID    = apperror.New(apperror.CodeInvalidInput, "invalid survey id", http.StatusBadRequest)
	ErrInvalidWindow      = apperror.New(apperror.CodeInvalidInput, "closes_at must be after opens_at", http.StatusBadRequest)
	ErrInvalidTimeFormat  = apperror.New(apperror.CodeInvalidInput, "opens_at and closes_at must use RFC 3339 format", http.StatusBadRequest)
	ErrSurveyNotFound     = apperror.New(apperror.CodeNotFound, "survey not found", http.StatusNotFound)
	ErrSurveyClosed       = apperror.New(apperror.CodeInvalidState, "survey is not open for responses", http.StatusConflict)
	ErrAlreadyResponded   = apperror.New(apperror.CodeConflict, "a response for this survey has already been submitted", http.StatusConflict)
	ErrUnknownQuestion    = apperror.New(apperror.CodeInvalidInput, "answer references a question not on this survey", http.StatusBadRequest)
	ErrIncompleteResponse = apperror.New(apperror.CodeInvalidInput, "every question must be answered exactly once", http.StatusBadRequest)
	ErrInvalidScaleValue  = apperror.New(apperror.CodeInvalidInput, "scale answers must be an integer between 1 and 5", http.StatusBadRequest)
	ErrInvalidTextValue   = apperror.New(apperror.CodeInvalidInput, "free-text answers require a non-empty text_value", http.StatusBadRequest)
	ErrSurveyHasResponses = apperror.New(apperror.CodeConflict, "survey already has responses and cannot be deleted", http.StatusConflict)
	ErrEmployeeMissing    = apperror.New(apperror.CodeInvalidState, "responding employee record not found", http.StatusConflict)
)
