package demoproblem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volpe-framework/evocore/demoproblem"
	"github.com/volpe-framework/evocore/tier"
)

func TestSphere_Fitness(t *testing.T) {
	s := demoproblem.NewSphere(3, 5.0, tier.Basic)
	fv, err := s.Fitness([]float64{1, 2, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{9}, fv)
	require.Equal(t, int64(1), s.Fevals())
}

func TestSphere_CloneIsIndependent(t *testing.T) {
	s := demoproblem.NewSphere(2, 5.0, tier.Basic)
	_, err := s.Fitness([]float64{1, 1})
	require.NoError(t, err)

	clone := s.Clone().(*demoproblem.Sphere)
	require.Equal(t, int64(0), clone.Fevals())
	require.Equal(t, int64(1), s.Fevals())
}

func TestSphere_IncrementFevals(t *testing.T) {
	s := demoproblem.NewSphere(2, 5.0, tier.Basic)
	s.IncrementFevals(5)
	require.Equal(t, int64(5), s.Fevals())
}
