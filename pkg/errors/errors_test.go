package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := Clone(ErrOutOfScope, "pair outside scope")

	got := FromError(wrapped)

	assert.Same(t, wrapped, got)
	assert.Equal(t, http.StatusUnprocessableEntity, got.Status)
	assert.Equal(t, "reference outside audit scope", ErrOutOfScope.Message)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	got := FromError(cause)

	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, ErrInternal.Message, got.Message)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, FromError(nil))
}

func TestInternal(t *testing.T) {
	cause := errors.New("disk full")

	err := Internal(cause, "failed to store report")

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "failed to store report: disk full", err.Error())
}
