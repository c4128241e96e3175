package bindings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type scrubbed struct{ released bool }

func (s *scrubbed) release() { s.released = true }

func codeOf(err error) Code {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return CodeOK
}

func TestRegistryLifecycle(t *testing.T) {
	base := Live()
	obj := &scrubbed{}

	h := put(obj)
	require.NotZero(t, h)
	require.True(t, Valid(h))
	require.Equal(t, base+1, Live())

	got, err := get[*scrubbed](h)
	require.NoError(t, err)
	require.Same(t, obj, got)

	_, err = get[*vectorObj](h)
	require.Equal(t, CodeTypeMismatch, codeOf(err))

	Delete(h)
	require.True(t, obj.released)
	require.False(t, Valid(h))
	require.Equal(t, base, Live())

	_, err = get[*scrubbed](h)
	require.Equal(t, CodeInvalidHandle, codeOf(err))

	// second delete and the empty handle are no-ops
	Delete(h)
	Delete(0)
	require.Equal(t, base, Live())
}

func TestRegistrySwap(t *testing.T) {
	h := put(&scrubbed{})
	defer Delete(h)

	replacement := &scrubbed{}
	require.NoError(t, swap(h, replacement))
	got, err := get[*scrubbed](h)
	require.NoError(t, err)
	require.Same(t, replacement, got)

	Delete(h)
	require.Equal(t, CodeInvalidHandle, codeOf(swap(h, replacement)))
}

func TestHandlesIncrease(t *testing.T) {
	a := put(&scrubbed{})
	Delete(a)
	b := put(&scrubbed{})
	defer Delete(b)
	require.Greater(t, b, a)
}
