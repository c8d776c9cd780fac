package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
)

// Kind classifies a job processing failure.
type Kind string

const (
	KindMalformedPayload Kind = "malformed_payload"
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation_error"
	KindUnhandledJobType Kind = "unhandled_job_type"
	KindStore            Kind = "store_error"
)

// Error is a classified processing error. All kinds are terminal for the
// current job attempt: the dispatcher records them and the retry ceiling
// decides whether the job runs again.
type Error struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	path := []string{}
	if e.Entity != "" {
		path = append(path, fmt.Sprintf("entity '%s'", e.Entity))
	}
	if e.Field != "" {
		path = append(path, fmt.Sprintf("field '%s'", e.Field))
	}

	if len(path) == 0 {
		return string(e.Kind) + ": " + e.Message
	}

	return string(e.Kind) + ": " + strings.Join(path, " -> ") + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) AddEntity(entity string) *Error {
	e.Entity = entity
	return e
}

func (e *Error) AddField(field string) *Error {
	e.Field = field
	return e
}

func NewMalformedPayloadf(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedPayload, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundf(entity string, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

func NewValidationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewUnhandledJobType(jobType string) *Error {
	return &Error{Kind: KindUnhandledJobType, Message: fmt.Sprintf("no orchestrator registered for job type '%s'", jobType)}
}

func NewStoreError(err error, msg string) *Error {
	return &Error{Kind: KindStore, Message: msg, cause: err}
}

// IsKind reports whether err (or anything it wraps) is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ToHTTPError maps the taxonomy onto the HTTP surface.
func (e *Error) ToHTTPError() *httperror.HTTPError {
	status := http.StatusInternalServerError
	switch e.Kind {
	case KindMalformedPayload, KindValidation, KindUnhandledJobType:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	}
	return httperror.NewHTTPError(status, e.Error()).AddMetaValue("kind", string(e.Kind)).AddMetaValue("entity", e.Entity)
}
