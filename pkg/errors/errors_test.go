package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapFormatsMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeStoreError, "push history", cause)

	require.EqualError(t, err, "push history: connection refused")
	require.ErrorIs(t, err, cause)
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("generate: %w", Wrap(CodeNotFound, "entry 3 not found", nil))

	require.True(t, IsCode(err, CodeNotFound))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.False(t, IsCode(errors.New("plain"), CodeNotFound))
}
