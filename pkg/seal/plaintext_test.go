package seal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

var comprModes = []seal.ComprModeType{seal.ComprModeNone, seal.ComprModeZlib, seal.ComprModeZstd}

func TestPlainTextAccessors(t *testing.T) {
	pt, err := seal.NewPlainText(&seal.PlainTextParams{Capacity: 16, CoeffCount: 8})
	require.NoError(t, err)
	defer pt.Delete()

	n, err := pt.CoeffCount()
	require.NoError(t, err)
	require.Equal(t, 8, n)
	c, err := pt.Capacity()
	require.NoError(t, err)
	require.Equal(t, 16, c)

	zero, err := pt.IsZero()
	require.NoError(t, err)
	require.True(t, zero)

	require.NoError(t, pt.SetCoefficient(5, 0xAB))
	v, err := pt.Coefficient(5)
	require.NoError(t, err)
	require.Equal(t, uint64(0xAB), v)

	nz, err := pt.NonZeroCoeffCount()
	require.NoError(t, err)
	require.Equal(t, 1, nz)
	sig, err := pt.SignificantCoeffCount()
	require.NoError(t, err)
	require.Equal(t, 6, sig)

	_, err = pt.Coefficient(8)
	require.ErrorIs(t, err, seal.ErrInvalidArgument)

	id, err := pt.ParmsId()
	require.NoError(t, err)
	require.True(t, id.IsZero())
	ntt, err := pt.IsNTTForm()
	require.NoError(t, err)
	require.False(t, ntt)
}

func TestPlainTextPolynomial(t *testing.T) {
	pt, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer pt.Delete()

	require.NoError(t, pt.FromPolynomial("1x^3 + AFx^1 + 7"))
	poly, err := pt.ToPolynomial()
	require.NoError(t, err)
	require.Equal(t, "1x^3 + AFx^1 + 7", poly)

	n, err := pt.CoeffCount()
	require.NoError(t, err)
	require.Equal(t, 4, n)

	require.ErrorIs(t, pt.FromPolynomial("zz"), seal.ErrInvalidArgument)
	require.ErrorIs(t, pt.FromPolynomial(""), seal.ErrInvalidArgument)

	require.NoError(t, pt.SetZero())
	poly, err = pt.ToPolynomial()
	require.NoError(t, err)
	require.Equal(t, "0", poly)
}

func TestPlainTextResize(t *testing.T) {
	pt, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer pt.Delete()

	require.NoError(t, pt.FromPolynomial("3x^2 + 2x^1 + 1"))
	require.NoError(t, pt.Resize(8))
	poly, err := pt.ToPolynomial()
	require.NoError(t, err)
	require.Equal(t, "3x^2 + 2x^1 + 1", poly)

	require.NoError(t, pt.Reserve(2))
	n, err := pt.CoeffCount()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.ErrorIs(t, pt.Resize(-1), seal.ErrInvalidArgument)
	require.ErrorIs(t, pt.Reserve(-1), seal.ErrInvalidArgument)

	require.NoError(t, pt.Release())
	n, err = pt.CoeffCount()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPlainTextCopyCloneMove(t *testing.T) {
	src, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer src.Delete()
	require.NoError(t, src.FromPolynomial("5x^1 + 1"))

	clone, err := src.Clone()
	require.NoError(t, err)
	defer clone.Delete()
	require.NotEqual(t, src.Instance(), clone.Instance())

	// Mutating the clone leaves the source untouched.
	require.NoError(t, clone.SetCoefficient(0, 9))
	poly, err := src.ToPolynomial()
	require.NoError(t, err)
	require.Equal(t, "5x^1 + 1", poly)

	dst, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer dst.Delete()
	require.NoError(t, dst.Copy(src))
	poly, err = dst.ToPolynomial()
	require.NoError(t, err)
	require.Equal(t, "5x^1 + 1", poly)

	moved, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer moved.Delete()
	h := clone.Instance()
	require.NoError(t, moved.Move(clone))
	require.Equal(t, h, moved.Instance())
	require.Zero(t, clone.Instance())
	_, err = clone.CoeffCount()
	require.ErrorIs(t, err, seal.ErrInvalidHandle)

	require.ErrorIs(t, moved.Move(clone), seal.ErrInvalidHandle)
}

func TestPlainTextSaveLoad(t *testing.T) {
	ctx := newContext(t, integerParms(t, seal.SchemeBFV, 4096))

	src, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer src.Delete()
	require.NoError(t, src.FromPolynomial("1x^10 + 2x^5 + 3"))

	for _, mode := range comprModes {
		t.Run(mode.String(), func(t *testing.T) {
			s, err := src.Save(mode)
			require.NoError(t, err)

			dst, err := seal.NewPlainText(nil)
			require.NoError(t, err)
			defer dst.Delete()
			require.NoError(t, dst.Load(ctx, s))

			poly, err := dst.ToPolynomial()
			require.NoError(t, err)
			require.Equal(t, "1x^10 + 2x^5 + 3", poly)
		})
	}

	b, err := src.SaveArray()
	require.NoError(t, err)
	dst, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer dst.Delete()
	require.NoError(t, dst.LoadArray(ctx, b))

	require.ErrorIs(t, dst.Load(ctx, "not base64!"), seal.ErrCorruptData)
	require.ErrorIs(t, dst.Load(nil, ""), seal.ErrInvalidHandle)
}

func TestPlainTextLoadValidatesCoefficients(t *testing.T) {
	parms := integerParms(t, seal.SchemeBFV, 4096)
	ctx := newContext(t, parms)

	pt, err := seal.NewPlainText(&seal.PlainTextParams{CoeffCount: 1})
	require.NoError(t, err)
	defer pt.Delete()
	require.NoError(t, pt.SetCoefficient(0, parms.PlainModulus))

	b, err := pt.SaveArray(seal.ComprModeNone)
	require.NoError(t, err)
	dst, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer dst.Delete()
	require.ErrorIs(t, dst.LoadArray(ctx, b), seal.ErrInvalidData)
}

func TestCKKSPlainTextSaveLoad(t *testing.T) {
	f := newFixture(t, seal.SchemeCKKS)
	in := []float64{1.5, -2.25, 3}
	pt, err := f.ce.EncodeNew(in, ckksScale)
	require.NoError(t, err)
	defer pt.Delete()

	b, err := pt.SaveArray()
	require.NoError(t, err)

	dst, err := seal.NewPlainText(nil)
	require.NoError(t, err)
	defer dst.Delete()
	require.NoError(t, dst.LoadArray(f.ctx, b))

	scale, err := dst.Scale()
	require.NoError(t, err)
	require.Equal(t, float64(ckksScale), scale)
	out, err := f.ce.Decode(dst)
	require.NoError(t, err)
	require.Less(t, maxAbsError(t, in, out), 1e-6)

	// NTT-form data is bound to its chain.
	other := newContext(t, ckksParms(t, 4096))
	require.ErrorIs(t, dst.LoadArray(other, b), seal.ErrInvalidData)
}
