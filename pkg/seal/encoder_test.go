package seal_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

func TestBatchEncoderRoundTrip(t *testing.T) {
	for _, scheme := range integerSchemes {
		t.Run(scheme.String(), func(t *testing.T) {
			f := newFixture(t, scheme)

			n, err := f.be.SlotCount()
			require.NoError(t, err)
			require.Equal(t, testDegree, n)

			t.Run("int32", func(t *testing.T) {
				in := []int32{-3, -2, -1, 0, 1, 2, 3, 1 << 18, -(1 << 18)}
				pt, err := f.be.EncodeNew(in)
				require.NoError(t, err)
				defer pt.Delete()

				out, err := f.be.DecodeInt32(pt)
				require.NoError(t, err)
				if diff := cmp.Diff(padded(in, n), out); diff != "" {
					t.Fatalf("decoded slots mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("int64", func(t *testing.T) {
				in := make([]int64, n)
				for i := range in {
					in[i] = int64(i) - int64(n/2)
				}
				pt, err := f.be.EncodeNew(in)
				require.NoError(t, err)
				defer pt.Delete()

				out, err := f.be.DecodeInt64(pt)
				require.NoError(t, err)
				if diff := cmp.Diff(in, out); diff != "" {
					t.Fatalf("decoded slots mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("uint32", func(t *testing.T) {
				in := []uint32{7, 0, 42, 65535}
				pt, err := f.be.EncodeNew(in)
				require.NoError(t, err)
				defer pt.Delete()

				out, err := f.be.DecodeUint32(pt)
				require.NoError(t, err)
				if diff := cmp.Diff(padded(in, n), out); diff != "" {
					t.Fatalf("decoded slots mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("uint64 reduced", func(t *testing.T) {
				in := []uint64{f.t + 5, f.t - 1, 0}
				pt, err := f.be.EncodeNew(in)
				require.NoError(t, err)
				defer pt.Delete()

				out, err := f.be.DecodeUint64(pt)
				require.NoError(t, err)
				require.Equal(t, []uint64{5, f.t - 1, 0}, out[:3])
			})

			t.Run("negative as unsigned", func(t *testing.T) {
				pt, err := f.be.EncodeNew([]int64{-1})
				require.NoError(t, err)
				defer pt.Delete()

				out, err := f.be.DecodeUint64(pt)
				require.NoError(t, err)
				require.Equal(t, f.t-1, out[0])
			})
		})
	}
}

func TestBatchEncoderRejectsInput(t *testing.T) {
	f := newFixture(t, seal.SchemeBFV)
	pt, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer pt.Delete()

	err = f.be.Encode([]float64{1.5}, pt)
	require.ErrorIs(t, err, seal.ErrUnsupportedType)
	require.Contains(t, err.Error(), "[]float64")

	err = f.be.Encode(make([]uint64, testDegree+1), pt)
	require.ErrorIs(t, err, seal.ErrInvalidArgument)
}

func TestEncoderSchemeMismatch(t *testing.T) {
	ckks := newContext(t, ckksParms(t, 4096))
	_, err := seal.NewBatchEncoder(ckks)
	require.ErrorIs(t, err, seal.ErrSchemeMismatch)

	bfv := newContext(t, integerParms(t, seal.SchemeBFV, 4096))
	_, err = seal.NewCKKSEncoder(bfv)
	require.ErrorIs(t, err, seal.ErrSchemeMismatch)
}

func TestCKKSEncoderRoundTrip(t *testing.T) {
	f := newFixture(t, seal.SchemeCKKS)

	n, err := f.ce.SlotCount()
	require.NoError(t, err)
	require.Equal(t, testDegree/2, n)
	_, err = f.ce.EncodeNew(make([]float64, n+1), ckksScale)
	require.ErrorIs(t, err, seal.ErrInvalidArgument)

	in := make([]float64, n)
	for i := range in {
		in[i] = math.Sin(float64(i)) * 10
	}
	pt, err := f.ce.EncodeNew(in, ckksScale)
	require.NoError(t, err)
	defer pt.Delete()

	ntt, err := pt.IsNTTForm()
	require.NoError(t, err)
	require.True(t, ntt)
	scale, err := pt.Scale()
	require.NoError(t, err)
	require.Equal(t, float64(ckksScale), scale)
	first, err := f.ctx.FirstParmsId()
	require.NoError(t, err)
	id, err := pt.ParmsId()
	require.NoError(t, err)
	require.Equal(t, first, id)

	out, err := f.ce.Decode(pt)
	require.NoError(t, err)
	require.Len(t, out, n)
	require.Less(t, maxAbsError(t, in, out), 1e-6)
}

func TestCKKSEncoderRejectsInput(t *testing.T) {
	f := newFixture(t, seal.SchemeCKKS)
	pt, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer pt.Delete()

	err = f.ce.Encode(make([]float64, testDegree), ckksScale, pt)
	require.ErrorIs(t, err, seal.ErrInvalidArgument)

	err = f.ce.Encode([]float64{1}, math.Ldexp(1, 200), pt)
	require.ErrorIs(t, err, seal.ErrScaleOutOfBounds)

	err = f.ce.Encode([]float64{1}, 0, pt)
	require.ErrorIs(t, err, seal.ErrInvalidArgument)

	// A coefficient-form plaintext cannot be decoded.
	raw, err := seal.NewPlainText(&seal.PlainTextParams{CoeffCount: 4})
	require.NoError(t, err)
	defer raw.Delete()
	_, err = f.ce.Decode(raw)
	require.ErrorIs(t, err, seal.ErrNTTForm)
}

func TestEncoderWithPool(t *testing.T) {
	f := newFixture(t, seal.SchemeBFV)
	pool := seal.MemoryPoolNew(true)
	defer pool.Delete()

	be, err := f.be.WithPool(pool)
	require.NoError(t, err)
	defer be.Delete()

	pt, err := be.EncodeNew([]int64{1, 2, 3})
	require.NoError(t, err)
	defer pt.Delete()
	out, err := be.DecodeInt64(pt)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, out[:3])

	pool.Delete()
	_, err = f.be.WithPool(pool)
	require.ErrorIs(t, err, seal.ErrInvalidHandle)
}
