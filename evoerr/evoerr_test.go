package evoerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volpe-framework/evocore/evoerr"
)

func TestInvalidArgumentf(t *testing.T) {
	err := evoerr.InvalidArgumentf("bad thing %d", 42)
	require.True(t, evoerr.IsInvalidArgument(err))
	require.False(t, evoerr.IsOverflow(err))
	require.Contains(t, err.Error(), "bad thing 42")
}

func TestTaskError(t *testing.T) {
	cause := errors.New("boom")
	err := evoerr.NewTaskError(cause)
	require.Error(t, err)
	require.True(t, errors.Is(err, cause))

	var te *evoerr.TaskError
	require.True(t, errors.As(err, &te))
	require.Equal(t, cause, te.Cause)

	require.Nil(t, evoerr.NewTaskError(nil))
}

func TestSystemf(t *testing.T) {
	err := evoerr.Systemf("thread panic")
	require.True(t, evoerr.IsSystem(err))
}
