package seal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

func TestContextRejectsInvalidParameters(t *testing.T) {
	parms := integerParms(t, seal.SchemeBFV, 4096)
	parms.PolyModulusDegree = 3000

	ctx, err := seal.NewContext(parms, true, seal.SecurityLevelTC128)
	require.NoError(t, err)
	defer ctx.Delete()

	ok, err := ctx.ParametersSet()
	require.NoError(t, err)
	require.False(t, ok)

	name, err := ctx.ParameterErrorName()
	require.NoError(t, err)
	require.Equal(t, "invalid_poly_modulus_degree", name)

	_, err = ctx.FirstParmsId()
	require.ErrorIs(t, err, seal.ErrParametersNotSet)

	_, err = seal.NewEvaluator(ctx)
	require.ErrorIs(t, err, seal.ErrParametersNotSet)

	human, err := ctx.ToHuman()
	require.NoError(t, err)
	require.Contains(t, human, "parameters not set")
}

func TestContextRejectsInsecureModulus(t *testing.T) {
	q, err := seal.CoeffModulusCreate(4096, []int{60, 60, 60})
	require.NoError(t, err)

	ctx, err := seal.NewContext(seal.EncryptionParameters{
		Scheme:            seal.SchemeCKKS,
		PolyModulusDegree: 4096,
		CoeffModulus:      q,
	}, true, seal.SecurityLevelTC128)
	require.NoError(t, err)
	defer ctx.Delete()

	name, err := ctx.ParameterErrorName()
	require.NoError(t, err)
	require.Equal(t, "invalid_parameters_insecure", name)
}

func TestContextChain(t *testing.T) {
	ctx := newContext(t, ckksParms(t, testDegree))

	ok, err := ctx.UsingKeyswitching()
	require.NoError(t, err)
	require.True(t, ok)

	key, err := ctx.KeyContextData()
	require.NoError(t, err)
	defer key.Delete()

	prev, err := key.PrevContextData()
	require.NoError(t, err)
	require.Nil(t, prev)

	var (
		indices []int
		bits    []int
	)
	for d := key; d != nil; {
		idx, err := d.ChainIndex()
		require.NoError(t, err)
		indices = append(indices, idx)
		n, err := d.TotalCoeffModulusBitCount()
		require.NoError(t, err)
		bits = append(bits, n)

		next, err := d.NextContextData()
		require.NoError(t, err)
		if d != key {
			d.Delete()
		}
		d = next
	}
	require.Equal(t, []int{3, 2, 1, 0}, indices)
	require.Equal(t, []int{200, 140, 100, 60}, bits)

	first, err := ctx.FirstParmsId()
	require.NoError(t, err)
	last, err := ctx.LastParmsId()
	require.NoError(t, err)
	keyId, err := ctx.KeyParmsId()
	require.NoError(t, err)
	require.NotEqual(t, first, last)
	require.NotEqual(t, keyId, first)

	data, err := ctx.GetContextData(last)
	require.NoError(t, err)
	require.NotNil(t, data)
	defer data.Delete()
	idx, err := data.ChainIndex()
	require.NoError(t, err)
	require.Zero(t, idx)

	next, err := data.NextContextData()
	require.NoError(t, err)
	require.Nil(t, next)

	missing, err := ctx.GetContextData(seal.ParmsIdZero)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestContextDataParms(t *testing.T) {
	parms := ckksParms(t, testDegree)
	ctx := newContext(t, parms)

	data, err := ctx.LastContextData()
	require.NoError(t, err)
	defer data.Delete()

	got, err := data.Parms()
	require.NoError(t, err)
	require.Equal(t, parms.CoeffModulus[:1], got.CoeffModulus)
	require.Equal(t, seal.SchemeCKKS, got.Scheme)

	q, err := data.Qualifiers()
	require.NoError(t, err)
	require.True(t, q.ParametersSet)
	require.False(t, q.UsingBatching)
	require.Equal(t, seal.SecurityLevelTC128, q.SecurityLevel)
}

func TestContextParmsIdIsDeterministic(t *testing.T) {
	parms := integerParms(t, seal.SchemeBFV, 4096)
	a := newContext(t, parms)
	b := newContext(t, parms)

	for _, get := range []func(*seal.Context) (seal.ParmsId, error){
		(*seal.Context).KeyParmsId,
		(*seal.Context).FirstParmsId,
		(*seal.Context).LastParmsId,
	} {
		x, err := get(a)
		require.NoError(t, err)
		y, err := get(b)
		require.NoError(t, err)
		require.Equal(t, x, y)
		require.False(t, x.IsZero())
	}

	other := newContext(t, integerParms(t, seal.SchemeBGV, 4096))
	x, err := a.FirstParmsId()
	require.NoError(t, err)
	y, err := other.FirstParmsId()
	require.NoError(t, err)
	require.NotEqual(t, x, y)
}

func TestContextWithoutExpandedChain(t *testing.T) {
	ctx, err := seal.NewContext(ckksParms(t, testDegree), false, seal.SecurityLevelTC128)
	require.NoError(t, err)
	defer ctx.Delete()

	first, err := ctx.FirstParmsId()
	require.NoError(t, err)
	last, err := ctx.LastParmsId()
	require.NoError(t, err)
	require.Equal(t, first, last)

	data, err := ctx.FirstContextData()
	require.NoError(t, err)
	defer data.Delete()
	next, err := data.NextContextData()
	require.NoError(t, err)
	require.Nil(t, next)
}

func TestContextParms(t *testing.T) {
	parms := integerParms(t, seal.SchemeBGV, 4096)
	ctx := newContext(t, parms)

	got, err := ctx.Parms()
	require.NoError(t, err)
	require.Equal(t, parms, got)

	scheme, err := ctx.Scheme()
	require.NoError(t, err)
	require.Equal(t, seal.SchemeBGV, scheme)

	human, err := ctx.ToHuman()
	require.NoError(t, err)
	require.Contains(t, human, "poly_modulus_degree: 4096")
}
