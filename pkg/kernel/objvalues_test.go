package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantityIsPositive(t *testing.T) {
	require.True(t, Quantity(1).IsPositive())
	require.True(t, Quantity(12).IsPositive())
	require.False(t, Quantity(0).IsPositive())
	require.False(t, Quantity(-3).IsPositive())
}
