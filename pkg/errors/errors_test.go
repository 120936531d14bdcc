package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		err := NewNotFoundError("user with id u-1 not found")
		assert.Equal(t, "NOT_FOUND: user with id u-1 not found", err.Error())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		inner := fmt.Errorf("connection refused")
		err := NewInternalError("failed to list providers", inner)
		assert.Equal(t, "INTERNAL: failed to list providers: connection refused", err.Error())
		assert.Equal(t, inner, err.Unwrap())
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("gone")))
	assert.False(t, IsNotFound(NewInternalError("boom", nil)))
	assert.False(t, IsNotFound(nil))

	t.Run("sees through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup failed: %w", NewNotFoundError("gone"))
		assert.True(t, IsNotFound(wrapped))
	})
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(NewConfigurationError("DATABASE_URL is required"), ErrorTypeConfiguration))
	assert.False(t, IsType(NewConfigurationError("DATABASE_URL is required"), ErrorTypeNotFound))
}
