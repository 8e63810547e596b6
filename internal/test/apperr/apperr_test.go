package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/apperr"
)

func TestKindOf(t *testing.T) {
	err := apperr.New(apperr.KindNotFound, "project not found")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestKindOf_WrappedError(t *testing.T) {
	inner := apperr.New(apperr.KindConflict, "Username is already taken")
	outer := fmt.Errorf("saving profile: %w", inner)

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(outer))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, apperr.KindUnexpected, apperr.KindOf(errors.New("boom")))
}

func TestMessage_HidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := apperr.Wrap(apperr.KindDatabase, "Database operation failed", cause)

	assert.Equal(t, "Database operation failed", apperr.Message(err))
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindAuthRequired: http.StatusUnauthorized,
		apperr.KindValidation:   http.StatusBadRequest,
		apperr.KindNotFound:     http.StatusNotFound,
		apperr.KindAccessDenied: http.StatusForbidden,
		apperr.KindConflict:     http.StatusConflict,
		apperr.KindExternal:     http.StatusBadGateway,
		apperr.KindRateLimited:  http.StatusTooManyRequests,
		apperr.KindUnexpected:   http.StatusInternalServerError,
		apperr.KindDatabase:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, apperr.HTTPStatus(kind))
	}
}
