package seal_test

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

const (
	testDegree = 8192
	ckksScale  = 1 << 40
)

type fixture struct {
	scheme seal.SchemeType
	ctx    *seal.Context
	kg     *seal.KeyGenerator
	sk     *seal.SecretKey
	pk     *seal.PublicKey
	rlk    *seal.RelinKeys
	enc    *seal.Encryptor
	dec    *seal.Decryptor
	ev     *seal.Evaluator
	be     *seal.BatchEncoder
	ce     *seal.CKKSEncoder
	t      uint64
}

func integerParms(t *testing.T, scheme seal.SchemeType, n uint64) seal.EncryptionParameters {
	t.Helper()

	q, err := seal.CoeffModulusBFVDefault(n, seal.SecurityLevelTC128)
	require.NoError(t, err)
	p, err := seal.PlainModulusBatching(n, 20)
	require.NoError(t, err)
	return seal.EncryptionParameters{
		Scheme:            scheme,
		PolyModulusDegree: n,
		CoeffModulus:      q,
		PlainModulus:      p,
	}
}

func ckksParms(t *testing.T, n uint64) seal.EncryptionParameters {
	t.Helper()

	// 200 bits needs degree 8192 under TC128; smaller rings get a short
	// chain that still fits.
	sizes := []int{60, 40, 40, 60}
	if n < 8192 {
		sizes = []int{30, 20, 30}
	}
	q, err := seal.CoeffModulusCreate(n, sizes)
	require.NoError(t, err)
	return seal.EncryptionParameters{
		Scheme:            seal.SchemeCKKS,
		PolyModulusDegree: n,
		CoeffModulus:      q,
	}
}

func newContext(t *testing.T, parms seal.EncryptionParameters) *seal.Context {
	t.Helper()

	ctx, err := seal.NewContext(parms, true, seal.SecurityLevelTC128)
	require.NoError(t, err)
	t.Cleanup(ctx.Delete)
	ok, err := ctx.ParametersSet()
	require.NoError(t, err)
	require.True(t, ok)
	return ctx
}

// newFixture builds a context with every key except Galois keys, which are
// generated per test for the steps it needs.
func newFixture(t *testing.T, scheme seal.SchemeType) *fixture {
	t.Helper()

	f := &fixture{scheme: scheme}
	if scheme == seal.SchemeCKKS {
		f.ctx = newContext(t, ckksParms(t, testDegree))
	} else {
		parms := integerParms(t, scheme, testDegree)
		f.t = parms.PlainModulus
		f.ctx = newContext(t, parms)
	}

	var err error
	f.kg, err = seal.NewKeyGenerator(f.ctx, nil)
	require.NoError(t, err)
	t.Cleanup(f.kg.Delete)

	f.sk, err = f.kg.SecretKey()
	require.NoError(t, err)
	t.Cleanup(f.sk.Delete)

	f.pk, err = f.kg.CreatePublicKey()
	require.NoError(t, err)
	t.Cleanup(f.pk.Delete)

	f.rlk, err = f.kg.CreateRelinKeys()
	require.NoError(t, err)
	t.Cleanup(f.rlk.Delete)

	f.enc, err = seal.NewEncryptor(f.ctx, f.pk, f.sk)
	require.NoError(t, err)
	t.Cleanup(f.enc.Delete)

	f.dec, err = seal.NewDecryptor(f.ctx, f.sk)
	require.NoError(t, err)
	t.Cleanup(f.dec.Delete)

	f.ev, err = seal.NewEvaluator(f.ctx)
	require.NoError(t, err)
	t.Cleanup(f.ev.Delete)

	if scheme == seal.SchemeCKKS {
		f.ce, err = seal.NewCKKSEncoder(f.ctx)
		require.NoError(t, err)
		t.Cleanup(f.ce.Delete)
	} else {
		f.be, err = seal.NewBatchEncoder(f.ctx)
		require.NoError(t, err)
		t.Cleanup(f.be.Delete)
	}
	return f
}

func (f *fixture) galoisKeys(t *testing.T, steps ...int) *seal.GaloisKeys {
	t.Helper()

	gk, err := f.kg.CreateGaloisKeys(steps)
	require.NoError(t, err)
	t.Cleanup(gk.Delete)
	return gk
}

// sumSteps are the rotations used by SumElements.
func sumSteps(width int) []int {
	steps := []int{0}
	for k := 1; k < width; k <<= 1 {
		steps = append(steps, k)
	}
	return steps
}

func (f *fixture) encryptInts(t *testing.T, values []int64) *seal.CipherText {
	t.Helper()

	pt, err := f.be.EncodeNew(values)
	require.NoError(t, err)
	defer pt.Delete()
	ct, err := f.enc.EncryptNew(pt)
	require.NoError(t, err)
	t.Cleanup(ct.Delete)
	return ct
}

func (f *fixture) decryptInts(t *testing.T, ct *seal.CipherText) []int64 {
	t.Helper()

	pt, err := f.dec.DecryptNew(ct)
	require.NoError(t, err)
	defer pt.Delete()
	out, err := f.be.DecodeInt64(pt)
	require.NoError(t, err)
	return out
}

func (f *fixture) encryptReals(t *testing.T, values []float64) *seal.CipherText {
	t.Helper()

	pt, err := f.ce.EncodeNew(values, ckksScale)
	require.NoError(t, err)
	defer pt.Delete()
	ct, err := f.enc.EncryptNew(pt)
	require.NoError(t, err)
	t.Cleanup(ct.Delete)
	return ct
}

func (f *fixture) decryptReals(t *testing.T, ct *seal.CipherText) []float64 {
	t.Helper()

	pt, err := f.dec.DecryptNew(ct)
	require.NoError(t, err)
	defer pt.Delete()
	out, err := f.ce.Decode(pt)
	require.NoError(t, err)
	return out
}

func (f *fixture) cipher(t *testing.T) *seal.CipherText {
	t.Helper()

	ct, err := seal.NewCipherText(f.ctx, nil)
	require.NoError(t, err)
	t.Cleanup(ct.Delete)
	return ct
}

// padded returns values extended with zeros to n slots.
func padded[T any](values []T, n int) []T {
	out := make([]T, n)
	copy(out, values)
	return out
}

// centered maps x mod t to (-t/2, t/2].
func centered(x int64, t uint64) int64 {
	m := x % int64(t)
	if m < 0 {
		m += int64(t)
	}
	if uint64(m) > t/2 {
		m -= int64(t)
	}
	return m
}

// maxAbsError returns the largest distance between want and the first
// len(want) values of got.
func maxAbsError(t *testing.T, want, got []float64) float64 {
	t.Helper()

	require.GreaterOrEqual(t, len(got), len(want))
	errs := make(stats.Float64Data, len(want))
	for i := range want {
		errs[i] = math.Abs(want[i] - got[i])
	}
	m, err := errs.Max()
	require.NoError(t, err)
	return m
}

var integerSchemes = []seal.SchemeType{seal.SchemeBFV, seal.SchemeBGV}
