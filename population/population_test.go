package population_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volpe-framework/evocore/demoproblem"
	"github.com/volpe-framework/evocore/population"
	"github.com/volpe-framework/evocore/tier"
)

func TestPopulation_PushBackAndSize(t *testing.T) {
	prob := demoproblem.NewSphere(2, 5.0, tier.Basic)
	pop := population.New(prob, 1)
	require.NoError(t, pop.PushBack([]float64{1, 2}))
	require.NoError(t, pop.PushBack([]float64{3, 4}))
	require.Equal(t, 2, pop.Size())

	indvs := pop.Individuals()
	require.Equal(t, []float64{25}, indvs[1].Fitness)
}

func TestPopulation_Clone(t *testing.T) {
	prob := demoproblem.NewSphere(2, 5.0, tier.Basic)
	pop := population.New(prob, 1)
	require.NoError(t, pop.PushBack([]float64{1, 2}))

	clone := pop.Clone()
	require.NoError(t, clone.PushBack([]float64{5, 6}))

	require.Equal(t, 1, pop.Size())
	require.Equal(t, 2, clone.Size())
}

func TestPopulation_NewWithSize(t *testing.T) {
	prob := demoproblem.NewSphere(3, 5.0, tier.Basic)
	pop, err := population.NewWithSize(prob, 4, 7, func(nx int, r *rand.Rand) []float64 {
		dv := make([]float64, nx)
		for i := range dv {
			dv[i] = r.Float64()
		}
		return dv
	})
	require.NoError(t, err)
	require.Equal(t, 4, pop.Size())
}

func TestPopulation_GobRoundTrip(t *testing.T) {
	prob := demoproblem.NewSphere(2, 5.0, tier.Basic)
	pop := population.New(prob, 3)
	require.NoError(t, pop.PushBack([]float64{1, 2}))

	data, err := pop.GobEncode()
	require.NoError(t, err)

	var decoded population.Population
	require.NoError(t, decoded.GobDecode(data))
	require.Equal(t, pop.Size(), decoded.Size())
	require.Equal(t, pop.Seed(), decoded.Seed())
}
