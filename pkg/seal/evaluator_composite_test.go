package seal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

func constant[T any](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSumElementsIntegers(t *testing.T) {
	for _, scheme := range integerSchemes {
		t.Run(scheme.String(), func(t *testing.T) {
			f := newFixture(t, scheme)
			gk := f.galoisKeys(t, sumSteps(testDegree/2)...)

			in := make([]int64, testDegree)
			var total int64
			for i := range in {
				in[i] = int64(i % 11)
				total += in[i]
			}
			ct := f.encryptInts(t, in)

			sum, err := f.ev.SumElementsNew(ct, gk, scheme)
			require.NoError(t, err)
			defer sum.Delete()
			require.Equal(t, constant(centered(total, f.t), testDegree), f.decryptInts(t, sum))

			// The input is left untouched.
			require.Equal(t, in, f.decryptInts(t, ct))
		})
	}
}

func TestDotProductIntegers(t *testing.T) {
	for _, scheme := range integerSchemes {
		t.Run(scheme.String(), func(t *testing.T) {
			f := newFixture(t, scheme)
			gk := f.galoisKeys(t, sumSteps(testDegree/2)...)

			x := make([]int64, testDegree)
			y := make([]int64, testDegree)
			var dot int64
			for i := range x {
				x[i] = int64(i%5) - 2
				y[i] = int64(i%3) + 1
				dot += x[i] * y[i]
			}
			a := f.encryptInts(t, x)
			b := f.encryptInts(t, y)
			want := constant(centered(dot, f.t), testDegree)

			ct, err := f.ev.DotProductNew(a, b, f.rlk, gk, scheme)
			require.NoError(t, err)
			defer ct.Delete()
			require.Equal(t, want, f.decryptInts(t, ct))

			p, err := f.be.EncodeNew(y)
			require.NoError(t, err)
			defer p.Delete()
			cp, err := f.ev.DotProductPlainNew(a, p, gk, scheme)
			require.NoError(t, err)
			defer cp.Delete()
			require.Equal(t, want, f.decryptInts(t, cp))

			// The destination may alias an operand.
			require.NoError(t, f.ev.DotProduct(a, b, f.rlk, gk, scheme, a))
			require.Equal(t, want, f.decryptInts(t, a))
		})
	}
}

func TestDotProductCKKS(t *testing.T) {
	f := newFixture(t, seal.SchemeCKKS)
	slots := testDegree / 2
	gk := f.galoisKeys(t, sumSteps(slots)...)

	x := ckksInputs(slots, func(i int) float64 { return float64(i%4) * 0.25 })
	y := ckksInputs(slots, func(i int) float64 { return 1 - float64(i%3)*0.5 })
	var dot, total float64
	for i := range x {
		dot += x[i] * y[i]
		total += x[i]
	}
	a := f.encryptReals(t, x)
	b := f.encryptReals(t, y)

	sum, err := f.ev.SumElementsNew(a, gk, seal.SchemeCKKS)
	require.NoError(t, err)
	defer sum.Delete()
	require.Less(t, maxAbsError(t, constant(total, slots), f.decryptReals(t, sum)), 1e-2)

	ct, err := f.ev.DotProductNew(a, b, f.rlk, gk, seal.SchemeCKKS)
	require.NoError(t, err)
	defer ct.Delete()
	require.Less(t, maxAbsError(t, constant(dot, slots), f.decryptReals(t, ct)), 1e-2)

	p, err := f.ce.EncodeNew(y, ckksScale)
	require.NoError(t, err)
	defer p.Delete()
	cp, err := f.ev.DotProductPlainNew(a, p, gk, seal.SchemeCKKS)
	require.NoError(t, err)
	defer cp.Delete()
	require.Less(t, maxAbsError(t, constant(dot, slots), f.decryptReals(t, cp)), 1e-2)
}

func TestCompositeErrors(t *testing.T) {
	f := newFixture(t, seal.SchemeBFV)
	ct := f.encryptInts(t, []int64{1, 2, 3})

	_, err := f.ev.SumElementsNew(ct, nil, seal.SchemeNone)
	require.ErrorIs(t, err, seal.ErrSchemeMismatch)

	// Without the row swap key the last step fails.
	partial := f.galoisKeys(t, sumSteps(testDegree / 2)[1:]...)
	_, err = f.ev.SumElementsNew(ct, partial, seal.SchemeBFV)
	require.ErrorIs(t, err, seal.ErrKeyMissing)

	// The scheme argument must match the context.
	_, err = f.ev.SumElementsNew(ct, partial, seal.SchemeCKKS)
	require.ErrorIs(t, err, seal.ErrSchemeMismatch)

	zero, err := f.be.EncodeNew([]int64{0})
	require.NoError(t, err)
	defer zero.Delete()
	_, err = f.ev.DotProductPlainNew(ct, zero, partial, seal.SchemeBFV)
	require.ErrorIs(t, err, seal.ErrZeroPlain)
}
