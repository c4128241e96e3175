package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// CKKSEncoder encodes real vectors into CKKS plaintexts.
type CKKSEncoder struct {
	handle
	ctx *Context
}

// NewCKKSEncoder fails with ErrSchemeMismatch for BFV and BGV contexts.
func NewCKKSEncoder(ctx *Context) (*CKKSEncoder, error) {
	return newCKKSEncoder(ctx, nil)
}

func newCKKSEncoder(ctx *Context, pool *MemoryPoolHandle) (*CKKSEncoder, error) {
	if ctx == nil {
		return nil, ErrInvalidHandle
	}
	poolH, err := poolOf(pool)
	if err != nil {
		return nil, err
	}
	h, err := bindings.NewCKKSEncoder(ctx.h, poolH)
	if err != nil {
		return nil, translate(err)
	}
	return track(&CKKSEncoder{handle: handle{h}, ctx: ctx}), nil
}

func (e *CKKSEncoder) WithPool(pool *MemoryPoolHandle) (*CKKSEncoder, error) {
	return newCKKSEncoder(e.ctx, pool)
}

// SlotCount is half the poly modulus degree, not the full degree: each
// slot holds one complex value and Encode fills the real parts, so a
// context of degree N carries N/2 reals per plaintext. Encode rejects
// longer inputs and Decode returns N/2 values.
func (e *CKKSEncoder) SlotCount() (int, error) {
	n, err := bindings.CKKSSlotCount(e.h)
	return n, translate(err)
}

// Encode writes values into dst at the first data level with the given
// scale. The result is in NTT form. A scale not below the data modulus
// fails with ErrScaleOutOfBounds.
func (e *CKKSEncoder) Encode(values []float64, scale float64, dst *PlainText) error {
	return withVector(values, func(vec bindings.Handle) error {
		return bindings.CKKSEncode(e.h, vec, scale, dst.h)
	})
}

func (e *CKKSEncoder) EncodeNew(values []float64, scale float64) (*PlainText, error) {
	dst, err := newPlain()
	if err != nil {
		return nil, err
	}
	if err := e.Encode(values, scale, dst); err != nil {
		dst.Delete()
		return nil, err
	}
	return dst, nil
}

// Decode returns SlotCount approximations of the encoded values.
func (e *CKKSEncoder) Decode(pt *PlainText) ([]float64, error) {
	return takeValues[float64](bindings.CKKSDecode(e.h, pt.h))
}
