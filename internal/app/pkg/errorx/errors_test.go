package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	err := Wrap(404, "Personal info not found for user u-1", ErrRecordNotFound)

	assert.Equal(t, "Personal info not found for user u-1", err.Error())
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NotErrorIs(t, err, ErrRecordExists)
}

func TestBusinessError_As(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", Wrap(422, "bad type", ErrInvalidDataType))

	var be *BusinessError
	require.True(t, errors.As(wrapped, &be))
	assert.Equal(t, 422, be.Code)
	assert.ErrorIs(t, wrapped, ErrInvalidDataType)
}
