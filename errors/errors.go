package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so callers can react to what went wrong
// without parsing messages.
type Kind string

const (
	KindInvalidURL          Kind = "invalid_url"
	KindTranscriptsDisabled Kind = "transcripts_disabled"
	KindVideoUnavailable    Kind = "video_unavailable"
	KindFetchFailed         Kind = "fetch_failed"
	KindServerUnreachable   Kind = "model_server_unreachable"
	KindModelNotFound       Kind = "model_not_found"
	KindInferenceFailed     Kind = "inference_failed"
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindInternal            Kind = "internal"
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(code int, kind Kind, op string, err error, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return newError(http.StatusBadRequest, KindInvalidInput, op, err, message)
}

func NotFound(op string, err error, message string) *AppError {
	return newError(http.StatusNotFound, KindNotFound, op, err, message)
}

func Internal(op string, err error, message string) *AppError {
	return newError(http.StatusInternalServerError, KindInternal, op, err, message)
}

func InvalidURL(op string, err error, message string) *AppError {
	return newError(http.StatusBadRequest, KindInvalidURL, op, err, message)
}

func TranscriptsDisabled(op string, err error, message string) *AppError {
	return newError(http.StatusUnprocessableEntity, KindTranscriptsDisabled, op, err, message)
}

func VideoUnavailable(op string, err error, message string) *AppError {
	return newError(http.StatusNotFound, KindVideoUnavailable, op, err, message)
}

func FetchFailed(op string, err error, message string) *AppError {
	return newError(http.StatusBadGateway, KindFetchFailed, op, err, message)
}

func ServerUnreachable(op string, err error, message string) *AppError {
	return newError(http.StatusServiceUnavailable, KindServerUnreachable, op, err, message)
}

func ModelNotFound(op string, err error, message string) *AppError {
	return newError(http.StatusBadRequest, KindModelNotFound, op, err, message)
}

func InferenceFailed(op string, err error, message string) *AppError {
	return newError(http.StatusBadGateway, KindInferenceFailed, op, err, message)
}

// KindOf returns the classification of err, or KindInternal for
// errors that did not originate here.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == http.StatusNotFound
	}
	return false
}
