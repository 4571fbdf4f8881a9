package tier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volpe-framework/evocore/tier"
)

func TestOrdering(t *testing.T) {
	require.True(t, tier.None < tier.CopyOnly)
	require.True(t, tier.CopyOnly < tier.Basic)
	require.True(t, tier.Basic < tier.Constant)
	require.True(t, tier.Constant >= tier.Basic)
	require.False(t, tier.CopyOnly >= tier.Basic)
}

func TestString(t *testing.T) {
	require.Equal(t, "none", tier.None.String())
	require.Equal(t, "copyonly", tier.CopyOnly.String())
	require.Equal(t, "basic", tier.Basic.String())
	require.Equal(t, "constant", tier.Constant.String())
}
