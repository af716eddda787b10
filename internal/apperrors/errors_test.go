package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	t.Run("wrapped not found", func(t *testing.T) {
		err := fmt.Errorf("loading doctor: %w", NewNotFoundError("Doctor not found"))
		assert.Equal(t, ErrorTypeNotFound, TypeOf(err))
		assert.True(t, IsNotFound(err))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("boom")))
		assert.False(t, IsNotFound(errors.New("boom")))
	})
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewInternalError("failed to load bookings", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "socket closed")
	assert.Equal(t, "failed to load bookings", MessageOf(err, "x"))
	assert.Equal(t, "fallback", MessageOf(cause, "fallback"))
}
