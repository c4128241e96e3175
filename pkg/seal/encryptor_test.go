package seal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

func TestEncryptDecrypt(t *testing.T) {
	for _, scheme := range integerSchemes {
		t.Run(scheme.String(), func(t *testing.T) {
			f := newFixture(t, scheme)
			in := []int64{1, -1, 1000, -1000, 0, 77}
			pt, err := f.be.EncodeNew(in)
			require.NoError(t, err)
			defer pt.Delete()

			asym, err := f.enc.EncryptNew(pt)
			require.NoError(t, err)
			defer asym.Delete()
			require.Equal(t, in, f.decryptInts(t, asym)[:len(in)])

			sym, err := f.enc.EncryptSymmetricNew(pt)
			require.NoError(t, err)
			defer sym.Delete()
			require.Equal(t, in, f.decryptInts(t, sym)[:len(in)])

			zero, err := f.enc.EncryptZeroNew()
			require.NoError(t, err)
			defer zero.Delete()
			require.Equal(t, make([]int64, testDegree), f.decryptInts(t, zero))

			// Two encryptions of the same plaintext differ.
			again, err := f.enc.EncryptNew(pt)
			require.NoError(t, err)
			defer again.Delete()
			a, err := asym.SaveArray(seal.ComprModeNone)
			require.NoError(t, err)
			b, err := again.SaveArray(seal.ComprModeNone)
			require.NoError(t, err)
			require.NotEqual(t, a, b)
		})
	}
}

func TestEncryptCKKS(t *testing.T) {
	f := newFixture(t, seal.SchemeCKKS)
	in := []float64{0.5, -1.25, 3.14159, 100}

	ct := f.encryptReals(t, in)
	scale, err := ct.Scale()
	require.NoError(t, err)
	require.Equal(t, float64(ckksScale), scale)
	require.Less(t, maxAbsError(t, in, f.decryptReals(t, ct)), 1e-4)

	pt, err := f.ce.EncodeNew(in, ckksScale)
	require.NoError(t, err)
	defer pt.Delete()
	sym, err := f.enc.EncryptSymmetricNew(pt)
	require.NoError(t, err)
	defer sym.Delete()
	require.Less(t, maxAbsError(t, in, f.decryptReals(t, sym)), 1e-4)
}

func TestEncryptorKeys(t *testing.T) {
	f := newFixture(t, seal.SchemeBFV)

	_, err := seal.NewEncryptor(f.ctx, nil, nil)
	require.ErrorIs(t, err, seal.ErrKeyMissing)

	pt, err := f.be.EncodeNew([]int64{5})
	require.NoError(t, err)
	defer pt.Delete()

	pkOnly, err := seal.NewEncryptor(f.ctx, f.pk, nil)
	require.NoError(t, err)
	defer pkOnly.Delete()
	_, err = pkOnly.EncryptSymmetricNew(pt)
	require.ErrorIs(t, err, seal.ErrKeyMissing)

	require.NoError(t, pkOnly.SetSecretKey(f.sk))
	ct, err := pkOnly.EncryptSymmetricNew(pt)
	require.NoError(t, err)
	defer ct.Delete()
	require.Equal(t, int64(5), f.decryptInts(t, ct)[0])

	skOnly, err := seal.NewEncryptor(f.ctx, nil, f.sk)
	require.NoError(t, err)
	defer skOnly.Delete()
	_, err = skOnly.EncryptNew(pt)
	require.ErrorIs(t, err, seal.ErrKeyMissing)
	require.NoError(t, skOnly.SetPublicKey(f.pk))
	ct2, err := skOnly.EncryptNew(pt)
	require.NoError(t, err)
	defer ct2.Delete()
	require.Equal(t, int64(5), f.decryptInts(t, ct2)[0])
}

func TestEncryptRejectsInvalidPlain(t *testing.T) {
	f := newFixture(t, seal.SchemeBFV)

	big, err := seal.NewPlainText(&seal.PlainTextParams{CoeffCount: 1})
	require.NoError(t, err)
	defer big.Delete()
	require.NoError(t, big.SetCoefficient(0, f.t))
	_, err = f.enc.EncryptNew(big)
	require.ErrorIs(t, err, seal.ErrInvalidData)

	long, err := seal.NewPlainText(&seal.PlainTextParams{CoeffCount: testDegree + 1})
	require.NoError(t, err)
	defer long.Delete()
	_, err = f.enc.EncryptNew(long)
	require.ErrorIs(t, err, seal.ErrInvalidData)
}

func TestNoiseBudget(t *testing.T) {
	f := newFixture(t, seal.SchemeBFV)
	ct := f.encryptInts(t, []int64{3})

	fresh, err := f.dec.InvariantNoiseBudget(ct)
	require.NoError(t, err)
	require.Positive(t, fresh)

	sq, err := f.ev.SquareNew(ct)
	require.NoError(t, err)
	defer sq.Delete()
	after, err := f.dec.InvariantNoiseBudget(sq)
	require.NoError(t, err)
	require.Less(t, after, fresh)

	ckks := newFixture(t, seal.SchemeCKKS)
	zero, err := ckks.enc.EncryptZeroNew()
	require.NoError(t, err)
	defer zero.Delete()
	_, err = ckks.dec.InvariantNoiseBudget(zero)
	require.ErrorIs(t, err, seal.ErrSchemeMismatch)
}

func TestDecryptorWithPool(t *testing.T) {
	f := newFixture(t, seal.SchemeBGV)
	pool := seal.MemoryPoolNew(false)
	defer pool.Delete()

	dec, err := f.dec.WithPool(pool)
	require.NoError(t, err)
	defer dec.Delete()

	ct := f.encryptInts(t, []int64{42})
	pt, err := dec.DecryptNew(ct)
	require.NoError(t, err)
	defer pt.Delete()
	out, err := f.be.DecodeInt64(pt)
	require.NoError(t, err)
	require.Equal(t, int64(42), out[0])

	empty := f.cipher(t)
	_, err = dec.DecryptNew(empty)
	require.ErrorIs(t, err, seal.ErrInvalidData)
}
