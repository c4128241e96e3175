package seal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s0l0ist/sealgo/pkg/seal"
)

func TestParseParametersBFVDefaults(t *testing.T) {
	set, err := seal.ParseParameters([]byte(`
scheme: bfv
poly_modulus_degree: 4096
plain_modulus_batching_bits: 20
`))
	require.NoError(t, err)

	want, err := seal.CoeffModulusBFVDefault(4096, seal.SecurityLevelTC128)
	require.NoError(t, err)
	require.Equal(t, seal.SchemeBFV, set.Parms.Scheme)
	require.Equal(t, want, set.Parms.CoeffModulus)
	require.Equal(t, uint64(1), set.Parms.PlainModulus%(2*4096))
	require.True(t, set.ExpandModChain)
	require.Equal(t, seal.SecurityLevelTC128, set.Security)

	ctx, err := set.NewContext()
	require.NoError(t, err)
	defer ctx.Delete()
	ok, err := ctx.ParametersSet()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestParseParametersCKKSBits(t *testing.T) {
	set, err := seal.ParseParameters([]byte(`
scheme: CKKS
poly_modulus_degree: 8192
coeff_modulus_bits: [60, 40, 40, 60]
security_level: tc128
expand_mod_chain: false
`))
	require.NoError(t, err)
	require.Equal(t, seal.SchemeCKKS, set.Parms.Scheme)
	require.Len(t, set.Parms.CoeffModulus, 4)
	require.Zero(t, set.Parms.PlainModulus)
	require.False(t, set.ExpandModChain)
}

func TestParseParametersErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown scheme", "scheme: paillier\npoly_modulus_degree: 4096\n"},
		{"unknown security level", "scheme: bfv\npoly_modulus_degree: 4096\nsecurity_level: tc64\n"},
		{"both coeff forms", "scheme: ckks\npoly_modulus_degree: 4096\ncoeff_modulus: [1]\ncoeff_modulus_bits: [30]\n"},
		{"both plain forms", "scheme: bfv\npoly_modulus_degree: 4096\nplain_modulus: 65537\nplain_modulus_batching_bits: 20\n"},
		{"malformed yaml", "scheme: [bfv\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seal.ParseParameters([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestLoadParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bgv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheme: bgv\npoly_modulus_degree: 8192\nplain_modulus: 65537\n"), 0o600))

	set, err := seal.LoadParameters(path)
	require.NoError(t, err)
	require.Equal(t, seal.SchemeBGV, set.Parms.Scheme)
	require.Equal(t, uint64(65537), set.Parms.PlainModulus)

	_, err = seal.LoadParameters(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
