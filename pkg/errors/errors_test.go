package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	err := NotFound("Order", nil)
	assert.True(t, Is(err, "NOT_FOUND"))
	assert.True(t, IsNotFound(err))
	assert.False(t, Is(err, "CONFLICT"))
	assert.False(t, IsNotFound(stderrors.New("boom")))
}

func TestWrapKeepsAppError(t *testing.T) {
	conflict := Conflict("already processed")
	assert.Same(t, conflict, Wrap("ignored", conflict))

	wrapped := Wrap("failed to load", stderrors.New("io"))
	var appErr *AppError
	assert.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, Wrap("nothing", nil))
}
