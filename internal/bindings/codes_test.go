package bindings

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	for code := CodeOK; code <= CodeInternal; code++ {
		require.NotContains(t, ErrorMessage(code), "unknown", "code %d", code)
	}
	require.Equal(t, "unknown fault code 99", ErrorMessage(99))
}

func TestWrap(t *testing.T) {
	require.NoError(t, wrap(CodeInternal, nil, "noop"))

	base := errors.New("ring degree mismatch")
	err := wrap(CodeInvalidData, base, "decode")
	require.Equal(t, CodeInvalidData, codeOf(err))
	require.ErrorIs(t, err, base)
	require.Equal(t, "decode: ring degree mismatch", err.Error())

	// faults keep their code when they cross another layer
	inner := raise(CodeScaleMismatch, "scales differ")
	require.Same(t, inner, wrap(CodeInternal, inner, "add"))
	outer := wrap(CodeInternal, fmt.Errorf("add: %w", CodeKeyMissing), "add")
	require.Equal(t, CodeKeyMissing, codeOf(outer))
}

func TestGuard(t *testing.T) {
	call := func() (err error) {
		defer guard(&err)
		var s []int
		_ = s[3]
		return nil
	}

	err := call()
	require.Error(t, err)
	require.Equal(t, CodeInternal, codeOf(err))
	require.Contains(t, err.Error(), "engine panic")

	ok := func() (err error) {
		defer guard(&err)
		return raise(CodeZeroPlain, "zero")
	}
	require.Equal(t, CodeZeroPlain, codeOf(ok()))
}
