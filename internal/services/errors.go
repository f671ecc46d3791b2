package services

import (
	"errors"
	"fmt"
	"net/http"

	"daleel-backend/internal/models"
)

type ErrorCode string

const (
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeRateLimited   ErrorCode = "RATE_LIMITED"
	CodeQuotaExceeded ErrorCode = "QUOTA_EXCEEDED"
	CodeUpstream      ErrorCode = "UPSTREAM_ERROR"
)

// Error is a classified service failure. Status and Message are the
// caller-facing surface; Err keeps the server-side detail for logs.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (%d)", e.Code, e.Status)
	}
	return fmt.Sprintf("%s (%d): %v", e.Code, e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError unwraps err into a classified *Error if it is one.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func errInvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Status: http.StatusBadRequest, Message: message}
}

func errRateLimited(err error) *Error {
	return &Error{Code: CodeRateLimited, Status: http.StatusTooManyRequests, Message: models.MsgRateLimited, Err: err}
}

func errQuotaExceeded(err error) *Error {
	return &Error{Code: CodeQuotaExceeded, Status: http.StatusPaymentRequired, Message: models.MsgQuotaExceeded, Err: err}
}

func errUpstream(err error) *Error {
	return &Error{Code: CodeUpstream, Status: http.StatusInternalServerError, Message: models.MsgUpstreamError, Err: err}
}
