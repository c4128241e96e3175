package seal_test

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

func TestVector(t *testing.T) {
	v, err := seal.NewVector([]float64{1.5, -2, 3})
	require.NoError(t, err)
	defer v.Delete()

	n, err := v.Size()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	kind, err := v.Kind()
	require.NoError(t, err)
	require.Equal(t, seal.VectorFloat64, kind)

	got, err := seal.VectorValues[float64](v)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, -2, 3}, got)

	_, err = seal.VectorValues[int64](v)
	require.ErrorIs(t, err, seal.ErrTypeMismatch)

	v.Delete()
	_, err = v.Size()
	require.ErrorIs(t, err, seal.ErrInvalidHandle)
}

func TestVectorEmpty(t *testing.T) {
	v, err := seal.NewVector([]uint8{})
	require.NoError(t, err)
	defer v.Delete()

	n, err := v.Size()
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := seal.VectorValues[uint8](v)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCoeffModulus(t *testing.T) {
	require.Equal(t, 109, seal.CoeffModulusMaxBitCount(4096, seal.SecurityLevelTC128))
	require.Zero(t, seal.CoeffModulusMaxBitCount(3000, seal.SecurityLevelTC128))

	primes, err := seal.CoeffModulusCreate(4096, []int{36, 36, 37})
	require.NoError(t, err)
	require.Len(t, primes, 3)
	require.Greater(t, primes[0], primes[1])
	for i, p := range primes {
		require.Equal(t, uint64(1), p%8192, "prime %d", i)
		require.Equal(t, []int{36, 36, 37}[i], bits.Len64(p))
	}

	def, err := seal.CoeffModulusBFVDefault(4096, seal.SecurityLevelTC128)
	require.NoError(t, err)
	total := 0
	for _, p := range def {
		total += bits.Len64(p)
	}
	require.LessOrEqual(t, total, 109)

	_, err = seal.CoeffModulusCreate(3000, []int{30})
	require.ErrorIs(t, err, seal.ErrInvalidArgument)
	_, err = seal.CoeffModulusCreate(4096, []int{61})
	require.ErrorIs(t, err, seal.ErrInvalidArgument)
	_, err = seal.CoeffModulusBFVDefault(3000, seal.SecurityLevelTC128)
	require.ErrorIs(t, err, seal.ErrInvalidArgument)

	tm, err := seal.PlainModulusBatching(4096, 20)
	require.NoError(t, err)
	require.Equal(t, uint64(1), tm%8192)
	require.Equal(t, 20, bits.Len64(tm))
}
