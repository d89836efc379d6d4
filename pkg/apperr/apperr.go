// Package apperr carries the error taxonomy shared by repositories, services and
// HTTP handlers. Every layer wraps with its own Op but keeps the Kind.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindReference           Kind = "reference_error"
	KindNotFound            Kind = "not_found"
	KindInvalidState        Kind = "invalid_state"
	KindForbidden           Kind = "forbidden"
	KindPaymentNotCompleted Kind = "payment_not_completed"
	KindGatewayUnavailable  Kind = "gateway_unavailable"
	KindPersistence         Kind = "persistence_error"
)

// Sentinels for errors.Is checks against a kind.
var (
	ErrValidation          = &Error{Kind: KindValidation}
	ErrReference           = &Error{Kind: KindReference}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidState        = &Error{Kind: KindInvalidState}
	ErrForbidden           = &Error{Kind: KindForbidden}
	ErrPaymentNotCompleted = &Error{Kind: KindPaymentNotCompleted}
	ErrGatewayUnavailable  = &Error{Kind: KindGatewayUnavailable}
	ErrPersistence         = &Error{Kind: KindPersistence}
)

type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

// Retryable reports whether the caller may retry the whole operation.
func (e *Error) Retryable() bool {
	return e.Kind == KindPersistence || e.Kind == KindGatewayUnavailable
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Validation(op, msg string) *Error   { return New(KindValidation, op, msg) }
func NotFound(op, msg string) *Error     { return New(KindNotFound, op, msg) }
func InvalidState(op, msg string) *Error { return New(KindInvalidState, op, msg) }
func Reference(op, msg string) *Error    { return New(KindReference, op, msg) }
func Forbidden(op, msg string) *Error    { return New(KindForbidden, op, msg) }

// Persistence hides driver detail from clients; the cause stays reachable via Unwrap.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Msg: "persistence failure", Err: err}
}

// Context re-labels err with op while preserving its kind. Unknown errors become
// persistence failures.
func Context(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Op == op {
			return err
		}
		return &Error{Kind: e.Kind, Op: op, Err: err}
	}
	return Persistence(op, err)
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindReference:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindPaymentNotCompleted:
		return http.StatusPaymentRequired
	case KindGatewayUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
