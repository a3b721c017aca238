package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeShippingFee(t *testing.T) {
	require.InDelta(t, 50, ComputeShippingFee(1, false), 0.001)
	require.InDelta(t, 70, ComputeShippingFee(3, false), 0.001)
	require.Zero(t, ComputeShippingFee(3, true))
	require.Zero(t, ComputeShippingFee(0, false))
}
