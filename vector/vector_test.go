package vector_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volpe-framework/evocore/evoerr"
	"github.com/volpe-framework/evocore/vector"
)

func TestCheckInputDVs(t *testing.T) {
	require.NoError(t, vector.CheckInputDVs([]float64{1, 2, 3, 4}, 2, "p"))

	err := vector.CheckInputDVs([]float64{1, 2, 3}, 2, "p")
	require.Error(t, err)
	require.True(t, evoerr.IsInvalidArgument(err))

	err = vector.CheckInputDVs([]float64{1, 2}, 0, "p")
	require.Error(t, err)
	require.True(t, evoerr.IsInvalidArgument(err))
}

func TestCheckOutputFVs(t *testing.T) {
	require.NoError(t, vector.CheckOutputFVs([]float64{1, 2, 3}, 1, 3, "p"))

	err := vector.CheckOutputFVs([]float64{1, 2}, 1, 3, "p")
	require.Error(t, err)
	require.True(t, evoerr.IsInvalidArgument(err))
}

func TestCheckOverflow(t *testing.T) {
	require.NoError(t, vector.CheckOverflow(3, 2, "p"))

	err := vector.CheckOverflow(1<<62, 1<<2, "p")
	require.Error(t, err)
	require.True(t, evoerr.IsOverflow(err))
}

func TestHasNaN(t *testing.T) {
	require.False(t, vector.HasNaN([]float64{1, 2, 3}))
	require.True(t, vector.HasNaN([]float64{1, 2, 0.0 / zero()}))
}

func zero() float64 { return 0 }
