package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := New(http.StatusInternalServerError, "Failed to send message", cause)

	assert.Equal(t, "Failed to send message", err.Error())
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	assert.True(t, errors.As(error(err), &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad").Code)
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Code)

	internal := Internal(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.Equal(t, "Internal server error", internal.Message)
}
