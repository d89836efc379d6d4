package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextKeepsKind(t *testing.T) {
	base := NotFound("repository.GetOrder", "order 7 not found")
	err := Context("lifecycle.Transition", base)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "lifecycle.Transition: repository.GetOrder: order 7 not found", err.Error())

	same := InvalidState("lifecycle.Transition", "order 7 is Delivered")
	assert.Same(t, same, Context("lifecycle.Transition", same))
}

func TestContextWrapsUnknownAsPersistence(t *testing.T) {
	err := Context("repository.CreateOrder", fmt.Errorf("database is locked"))

	require.True(t, errors.Is(err, ErrPersistence))
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.True(t, e.Retryable())
	assert.Equal(t, "repository.CreateOrder: persistence failure", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:          http.StatusBadRequest,
		KindReference:           http.StatusUnprocessableEntity,
		KindNotFound:            http.StatusNotFound,
		KindInvalidState:        http.StatusConflict,
		KindForbidden:           http.StatusForbidden,
		KindPaymentNotCompleted: http.StatusPaymentRequired,
		KindGatewayUnavailable:  http.StatusServiceUnavailable,
		KindPersistence:         http.StatusInternalServerError,
		"":                      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidState, KindOf(fmt.Errorf("wrapped: %w", InvalidState("op", "closed"))))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Nil(t, Context("op", nil))
}
