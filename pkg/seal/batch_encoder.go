package seal

import "github.com/s0l0ist/sealgo/internal/bindings"

// BatchEncoder packs integer vectors into the slots of a BFV or BGV
// plaintext. The N slots form a 2 x N/2 matrix: the first half of the
// input is row 0, the second half row 1.
//
// A BatchEncoder is safe for concurrent use; scratch space comes from the
// memory pool it is bound to.
type BatchEncoder struct {
	handle
	ctx *Context
}

// NewBatchEncoder fails with ErrSchemeMismatch for CKKS contexts.
func NewBatchEncoder(ctx *Context) (*BatchEncoder, error) {
	return newBatchEncoder(ctx, nil)
}

func newBatchEncoder(ctx *Context, pool *MemoryPoolHandle) (*BatchEncoder, error) {
	if ctx == nil {
		return nil, ErrInvalidHandle
	}
	poolH, err := poolOf(pool)
	if err != nil {
		return nil, err
	}
	h, err := bindings.NewBatchEncoder(ctx.h, poolH)
	if err != nil {
		return nil, translate(err)
	}
	return track(&BatchEncoder{handle: handle{h}, ctx: ctx}), nil
}

// WithPool returns a new encoder bound to pool.
func (e *BatchEncoder) WithPool(pool *MemoryPoolHandle) (*BatchEncoder, error) {
	return newBatchEncoder(e.ctx, pool)
}

// SlotCount equals the poly modulus degree.
func (e *BatchEncoder) SlotCount() (int, error) {
	n, err := bindings.BatchSlotCount(e.h)
	return n, translate(err)
}

// Encode packs values into dst. values must be a []int32, []uint32,
// []int64 or []uint64 no longer than SlotCount; missing slots are zero.
// Signed values are reduced modulo the plain modulus.
func (e *BatchEncoder) Encode(values any, dst *PlainText) error {
	encode := func(vec bindings.Handle) error {
		return bindings.BatchEncode(e.h, vec, dst.h)
	}
	switch v := values.(type) {
	case []int32:
		return withVector(v, encode)
	case []uint32:
		return withVector(v, encode)
	case []int64:
		return withVector(v, encode)
	case []uint64:
		return withVector(v, encode)
	}
	return unsupported(values)
}

func (e *BatchEncoder) EncodeNew(values any) (*PlainText, error) {
	dst, err := newPlain()
	if err != nil {
		return nil, err
	}
	if err := e.Encode(values, dst); err != nil {
		dst.Delete()
		return nil, err
	}
	return dst, nil
}

// DecodeInt32 returns the slots centered around zero, narrowed to 32 bits.
func (e *BatchEncoder) DecodeInt32(pt *PlainText) ([]int32, error) {
	return takeValues[int32](bindings.BatchDecode(e.h, pt.h, bindings.VecInt32))
}

func (e *BatchEncoder) DecodeUint32(pt *PlainText) ([]uint32, error) {
	return takeValues[uint32](bindings.BatchDecode(e.h, pt.h, bindings.VecUint32))
}

// DecodeInt64 returns the slots centered around zero.
func (e *BatchEncoder) DecodeInt64(pt *PlainText) ([]int64, error) {
	return takeValues[int64](bindings.BatchDecode(e.h, pt.h, bindings.VecInt64))
}

// DecodeUint64 returns the slots in [0, t).
func (e *BatchEncoder) DecodeUint64(pt *PlainText) ([]uint64, error) {
	return takeValues[uint64](bindings.BatchDecode(e.h, pt.h, bindings.VecUint64))
}
